package domain

import (
	"context"
	"time"
)

// TemplateGroup is a denormalized stakeholder-group definition inside a template.
type TemplateGroup struct {
	Name   string            `json:"name"`
	Fields []FieldDefinition `json:"fields"`
}

// TemplateData is the snapshot a template carries: group definitions plus the
// event's capacity settings at save time.
type TemplateData struct {
	StakeholderGroups    []TemplateGroup `json:"stakeholder_groups"`
	Capacity             *int            `json:"capacity"`
	WaitlistEnabled      bool            `json:"waitlist_enabled"`
	RegistrationDeadline *time.Time      `json:"registration_deadline"`
}

// Template is a reusable snapshot of one event's form and capacity configuration.
// swagger:model Template
type Template struct {
	ID          string       `json:"id"`
	OrganizerID string       `json:"organizer_id"`
	Name        string       `json:"name"`
	Data        TemplateData `json:"data"`
	UsageCount  int          `json:"usage_count"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// TemplateRepository defines storage operations for templates.
type TemplateRepository interface {
	Create(ctx context.Context, tpl *Template) error
	GetByID(ctx context.Context, id string) (*Template, error)
	ListByOrganizerID(ctx context.Context, organizerID string) ([]*Template, error)
	IncrementUsage(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// TemplateService defines template save/apply operations.
type TemplateService interface {
	ListTemplates(ctx context.Context, callerID string) ([]*Template, error)
	SaveTemplate(ctx context.Context, name, eventID, callerID string) (*Template, error)
	ApplyTemplate(ctx context.Context, templateID, eventID, callerID string) (*Event, error)
	DeleteTemplate(ctx context.Context, id, callerID string) error
}
