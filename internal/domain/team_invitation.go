package domain

import (
	"context"
	"time"
)

// Invitation statuses.
const (
	InvitationStatusPending  = "pending"
	InvitationStatusAccepted = "accepted"
	InvitationStatusRejected = "rejected"
)

// InvitationTTL is how long a team invitation stays redeemable.
const InvitationTTL = 7 * 24 * time.Hour

// TeamInvitation is a time-limited token granting editor or viewer access to an event.
// swagger:model TeamInvitation
type TeamInvitation struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	InvitedBy string    `json:"invited_by"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TeamInvitationRepository defines storage operations for team invitations.
type TeamInvitationRepository interface {
	Create(ctx context.Context, inv *TeamInvitation) error
	GetPendingByToken(ctx context.Context, token string) (*TeamInvitation, error)
	ListPendingByEventID(ctx context.Context, eventID string) ([]*TeamInvitation, error)
	SetStatus(ctx context.Context, id, status string) error
}

// TeamService defines team collaboration operations.
type TeamService interface {
	GetTeam(ctx context.Context, eventID, callerID string) ([]*TeamMember, []*TeamInvitation, error)
	Invite(ctx context.Context, eventID, callerID, email, role string) (*TeamInvitation, error)
	Accept(ctx context.Context, token, callerID string) (*Event, error)
	RemoveMember(ctx context.Context, eventID, userID, callerID string) error
}
