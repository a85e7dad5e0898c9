package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Registration statuses. Waitlisted is assigned when an event is at capacity
// and its waitlist is enabled.
const (
	RegistrationStatusSubmitted  = "submitted"
	RegistrationStatusWaitlisted = "waitlisted"
)

// AnswerValue is one submitted form answer: either a scalar string or a
// string list (multi-select checkbox). It marshals to a JSON string or array.
type AnswerValue struct {
	Scalar string
	List   []string
	IsList bool
}

// ScalarAnswer returns a scalar AnswerValue.
func ScalarAnswer(s string) AnswerValue {
	return AnswerValue{Scalar: s}
}

// ListAnswer returns a list AnswerValue.
func ListAnswer(items []string) AnswerValue {
	return AnswerValue{List: items, IsList: true}
}

// String returns the scalar value, or a comma-joined rendering for lists.
func (v AnswerValue) String() string {
	if !v.IsList {
		return v.Scalar
	}
	return strings.Join(v.List, ", ")
}

// MarshalJSON encodes scalars as JSON strings and lists as JSON arrays.
func (v AnswerValue) MarshalJSON() ([]byte, error) {
	if v.IsList {
		if v.List == nil {
			return json.Marshal([]string{})
		}
		return json.Marshal(v.List)
	}
	return json.Marshal(v.Scalar)
}

// UnmarshalJSON accepts a string, an array of strings, or any other scalar
// (coerced to its JSON text, matching the string-typed storage of answers).
func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = ScalarAnswer(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*v = ListAnswer(list)
		return nil
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw.(type) {
	case map[string]any:
		return fmt.Errorf("answer values must be strings or string arrays: %w", ErrInvalidInput)
	default:
		*v = ScalarAnswer(fmt.Sprint(raw))
	}
	return nil
}

// AnswerMap maps a field name to its submitted answer.
type AnswerMap map[string]AnswerValue

// EmailAnswer returns the first answer whose field name contains "email"
// (case-insensitive), or "" if none.
func (m AnswerMap) EmailAnswer() string {
	return m.firstMatching("email")
}

// NameAnswer returns the first answer whose field name contains "name"
// (case-insensitive), or "" if none.
func (m AnswerMap) NameAnswer() string {
	return m.firstMatching("name")
}

func (m AnswerMap) firstMatching(substr string) string {
	for name, v := range m {
		if strings.Contains(strings.ToLower(name), substr) && !v.IsList && v.Scalar != "" {
			return v.Scalar
		}
	}
	return ""
}

// QRPayload is the JSON object embedded in a registration's QR code.
// RegistrationID makes a scan resolve to exactly one record.
type QRPayload struct {
	RegistrationID  string    `json:"registrationId"`
	EventID         string    `json:"eventId"`
	ParticipantName string    `json:"participantName"`
	Timestamp       time.Time `json:"timestamp"`
}

// QRGenerator renders a QR payload into an inline image (data URL).
type QRGenerator interface {
	Encode(payload QRPayload) (dataURL string, err error)
}

// Registration is one submitted form for an event and stakeholder group.
// swagger:model Registration
type Registration struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	GroupID   string    `json:"stakeholder_group_id"`
	Answers   AnswerMap `json:"answers"`
	QRCode    string    `json:"qr_code"`
	Status    string    `json:"status"`
	CheckedIn bool      `json:"checked_in"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewRegistration returns a new Registration. ID is typically set by the repository on create.
func NewRegistration(eventID, groupID string, answers AnswerMap, status string, createdAt, updatedAt time.Time) *Registration {
	return &Registration{
		EventID:   eventID,
		GroupID:   groupID,
		Answers:   answers,
		Status:    status,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// RegistrationRepository defines storage operations for registrations.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *Registration) error
	GetByID(ctx context.Context, id string) (*Registration, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Registration, error)
	ListByGroupIDs(ctx context.Context, eventID string, groupIDs []string) ([]*Registration, error)
	SetQRCode(ctx context.Context, id, qrCode string) error
	SetCheckedIn(ctx context.Context, id string, checkedIn bool) (*Registration, error)
	Delete(ctx context.Context, id string) error
	CountByEventID(ctx context.Context, eventID string) (int, error)
	CountByOwner(ctx context.Context, ownerID string) (int, error)
	Count(ctx context.Context) (int, error)
}

// RegistrationService defines the registration and check-in flow.
type RegistrationService interface {
	CreateRegistration(ctx context.Context, eventID, groupID string, answers AnswerMap) (*Registration, error)
	ListByEvent(ctx context.Context, eventID string) ([]*Registration, error)
	ToggleCheckIn(ctx context.Context, id string) (*Registration, error)
	DeleteRegistration(ctx context.Context, id string) error
}
