package domain

import (
	"context"
	"fmt"
	"time"
)

// Form field types. The option-bearing types (select, radio, checkbox) must
// carry at least one option.
const (
	FieldTypeText     = "text"
	FieldTypeEmail    = "email"
	FieldTypeNumber   = "number"
	FieldTypeTel      = "tel"
	FieldTypeTextarea = "textarea"
	FieldTypeCheckbox = "checkbox"
	FieldTypeDate     = "date"
	FieldTypeTime     = "time"
	FieldTypeSelect   = "select"
	FieldTypeRadio    = "radio"
)

var fieldTypes = map[string]bool{
	FieldTypeText:     true,
	FieldTypeEmail:    true,
	FieldTypeNumber:   true,
	FieldTypeTel:      true,
	FieldTypeTextarea: true,
	FieldTypeCheckbox: true,
	FieldTypeDate:     true,
	FieldTypeTime:     true,
	FieldTypeSelect:   true,
	FieldTypeRadio:    true,
}

// FieldDefinition describes one typed form field of a stakeholder group.
// swagger:model FieldDefinition
type FieldDefinition struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Required bool     `json:"required"`
	Options  []string `json:"options"`
}

// HasOptions reports whether the field type selects from a fixed option list.
func (f FieldDefinition) HasOptions() bool {
	return f.Type == FieldTypeSelect || f.Type == FieldTypeRadio || f.Type == FieldTypeCheckbox
}

// Validate checks the field name, type, and the option invariant.
func (f FieldDefinition) Validate() error {
	if f.Name == "" {
		return fmt.Errorf("field name is required: %w", ErrInvalidInput)
	}
	if !fieldTypes[f.Type] {
		return fmt.Errorf("unknown field type %q: %w", f.Type, ErrInvalidInput)
	}
	if f.HasOptions() && len(f.Options) == 0 {
		return fmt.Errorf("field %q of type %q requires at least one option: %w", f.Name, f.Type, ErrInvalidInput)
	}
	return nil
}

// ValidateFields validates a whole field list.
func ValidateFields(fields []FieldDefinition) error {
	if len(fields) == 0 {
		return fmt.Errorf("at least one field is required: %w", ErrInvalidInput)
	}
	for _, f := range fields {
		if err := f.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// StakeholderGroup is a named participant category with its own registration form.
// swagger:model StakeholderGroup
type StakeholderGroup struct {
	ID        string            `json:"id"`
	EventID   string            `json:"event_id"`
	Name      string            `json:"name"`
	Fields    []FieldDefinition `json:"fields"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// NewStakeholderGroup returns a new StakeholderGroup. ID is typically set by the repository on create.
func NewStakeholderGroup(eventID, name string, fields []FieldDefinition, createdAt, updatedAt time.Time) *StakeholderGroup {
	return &StakeholderGroup{
		EventID:   eventID,
		Name:      name,
		Fields:    fields,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// StakeholderGroupRepository defines storage operations for stakeholder groups.
type StakeholderGroupRepository interface {
	Create(ctx context.Context, group *StakeholderGroup) error
	GetByID(ctx context.Context, id string) (*StakeholderGroup, error)
	ListByEventID(ctx context.Context, eventID string) ([]*StakeholderGroup, error)
	Update(ctx context.Context, id, name string, fields []FieldDefinition) (*StakeholderGroup, error)
	Delete(ctx context.Context, id string) error
	DeleteByEventID(ctx context.Context, eventID string) error
}

// StakeholderGroupService defines form-definition management.
type StakeholderGroupService interface {
	CreateGroup(ctx context.Context, eventID, name string, fields []FieldDefinition) (*StakeholderGroup, error)
	ListGroups(ctx context.Context, eventID string) ([]*StakeholderGroup, error)
	UpdateGroup(ctx context.Context, id, name string, fields []FieldDefinition) (*StakeholderGroup, error)
	DeleteGroup(ctx context.Context, id string) error
}
