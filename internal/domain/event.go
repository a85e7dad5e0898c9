package domain

import (
	"context"
	"time"
)

// Event statuses.
const (
	EventStatusDraft     = "draft"
	EventStatusPublished = "published"
	EventStatusCancelled = "cancelled"
	EventStatusCompleted = "completed"
)

// Team member roles. Owner is assigned at event creation only.
const (
	TeamRoleOwner  = "owner"
	TeamRoleEditor = "editor"
	TeamRoleViewer = "viewer"
)

// Event represents an organizer's event.
// Capacity nil means unlimited; RegistrationDeadline nil means no deadline.
// swagger:model Event
type Event struct {
	ID                   string     `json:"id"`
	Title                string     `json:"title"`
	Date                 time.Time  `json:"date"`
	Location             string     `json:"location"`
	Description          string     `json:"description"`
	OwnerID              string     `json:"owner_id"`
	Capacity             *int       `json:"capacity"`
	WaitlistEnabled      bool       `json:"waitlist_enabled"`
	RegistrationDeadline *time.Time `json:"registration_deadline"`
	Status               string     `json:"status"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// NewEvent returns a new Event. ID is typically set by the repository on create.
func NewEvent(title string, date time.Time, location, description, ownerID string, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Title:       title,
		Date:        date,
		Location:    location,
		Description: description,
		OwnerID:     ownerID,
		Status:      EventStatusPublished,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// IsRegistrationClosed reports whether the registration deadline has passed at now.
func (e *Event) IsRegistrationClosed(now time.Time) bool {
	return e.RegistrationDeadline != nil && now.After(*e.RegistrationDeadline)
}

// EventWithStats is an event annotated with registration-count derived fields.
// AvailableSpots is nil for unlimited-capacity events.
// swagger:model EventWithStats
type EventWithStats struct {
	*Event
	CurrentRegistrations int  `json:"current_registrations"`
	AvailableSpots       *int `json:"available_spots"`
	IsAtCapacity         bool `json:"is_at_capacity"`
}

// PublicEvent is the unauthenticated single-event view used by the
// registration page. CanRegister is published AND not full AND deadline not passed.
// swagger:model PublicEvent
type PublicEvent struct {
	EventWithStats
	IsRegistrationClosed bool `json:"is_registration_closed"`
	CanRegister          bool `json:"can_register"`
}

// WithStats annotates the event with the given registration count.
func (e *Event) WithStats(registrationCount int) *EventWithStats {
	out := &EventWithStats{Event: e, CurrentRegistrations: registrationCount}
	if e.Capacity != nil {
		spots := *e.Capacity - registrationCount
		out.AvailableSpots = &spots
		out.IsAtCapacity = registrationCount >= *e.Capacity
	}
	return out
}

// EventUpdate carries the optional fields of an event update; nil fields are unchanged.
type EventUpdate struct {
	Title                *string
	Date                 *time.Time
	Location             *string
	Description          *string
	Capacity             *int
	ClearCapacity        bool
	WaitlistEnabled      *bool
	RegistrationDeadline *time.Time
	ClearDeadline        bool
	Status               *string
}

// TeamMember represents a user's membership in an event's team.
// swagger:model TeamMember
type TeamMember struct {
	EventID  string    `json:"event_id"`
	UserID   string    `json:"user_id"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
	Name     string    `json:"name,omitempty"`
	Email    string    `json:"email,omitempty"`
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	ListByMember(ctx context.Context, userID string) ([]*Event, error)
	ListAll(ctx context.Context) ([]*Event, error)
	Update(ctx context.Context, eventID string, upd EventUpdate) (*Event, error)
	Delete(ctx context.Context, id string) error
	CountByOwner(ctx context.Context, ownerID string) (int, error)
	Count(ctx context.Context) (int, error)
}

// TeamMemberRepository defines the interface for event team membership storage.
type TeamMemberRepository interface {
	Add(ctx context.Context, member *TeamMember) error
	ListByEventID(ctx context.Context, eventID string) ([]*TeamMember, error)
	GetRole(ctx context.Context, eventID, userID string) (string, error)
	Remove(ctx context.Context, eventID, userID string) error
}

// EventService defines the business logic for event management.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	ListMyEvents(ctx context.Context, userID string) ([]*EventWithStats, error)
	GetPublicEvent(ctx context.Context, eventID string) (*PublicEvent, error)
	UpdateEvent(ctx context.Context, eventID, callerID string, upd EventUpdate) (*Event, error)
	DeleteEvent(ctx context.Context, eventID, callerID string) error
}
