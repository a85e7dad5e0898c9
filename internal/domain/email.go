package domain

import (
	"context"
	"time"
)

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to []string, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// RegistrationConfirmationEmailData holds data for the registration confirmation email.
type RegistrationConfirmationEmailData struct {
	Email           string
	ParticipantName string
	EventTitle      string
	EventDate       string
	EventLocation   string
	QRCodeDataURL   string
}

// TeamInvitationEmailData holds data for the team invitation email.
type TeamInvitationEmailData struct {
	Email      string
	EventTitle string
	Role       string
	AcceptURL  string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendRegistrationConfirmation(ctx context.Context, data *RegistrationConfirmationEmailData) error
	SendTeamInvitation(ctx context.Context, data *TeamInvitationEmailData) error
	SendAnnouncement(ctx context.Context, to []string, subject, message string) error
}

// EmailLog is the audit record written after each announcement send attempt.
// swagger:model EmailLog
type EmailLog struct {
	ID             string    `json:"id"`
	EventID        string    `json:"event_id"`
	GroupIDs       []string  `json:"group_ids"`
	Subject        string    `json:"subject"`
	Message        string    `json:"message"`
	RecipientCount int       `json:"recipient_count"`
	CreatedAt      time.Time `json:"created_at"`
}

// EmailLogRepository defines storage operations for announcement audit records.
type EmailLogRepository interface {
	Create(ctx context.Context, log *EmailLog) error
	ListByEventID(ctx context.Context, eventID string) ([]*EmailLog, error)
}

// AnnouncementService sends announcement emails to stakeholder groups and
// exposes the audit trail.
type AnnouncementService interface {
	SendToGroups(ctx context.Context, eventID string, groupIDs []string, subject, message string) (recipients int, err error)
	ListLogs(ctx context.Context, eventID string) ([]*EmailLog, error)
}
