package services

import (
	"context"
	"fmt"
	"html"
	"log"
	"strings"

	"eventms/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendRegistrationConfirmation sends the registration confirmation email,
// including the inline QR code, using the "registration_confirmation" template.
func (s *emailService) SendRegistrationConfirmation(ctx context.Context, data *domain.RegistrationConfirmationEmailData) error {
	if data == nil {
		return fmt.Errorf("registration confirmation data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("registration_confirmation", data)
	if err != nil {
		return fmt.Errorf("failed to render registration_confirmation template: %w", err)
	}
	if err := s.mailer.Send([]string{data.Email}, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}
	log.Printf("[EMAIL] Registration confirmation sent to %s", data.Email)
	return nil
}

// SendTeamInvitation sends the team invitation email using the "team_invitation" template.
func (s *emailService) SendTeamInvitation(ctx context.Context, data *domain.TeamInvitationEmailData) error {
	if data == nil {
		return fmt.Errorf("team invitation data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("team_invitation", data)
	if err != nil {
		return fmt.Errorf("failed to render team_invitation template: %w", err)
	}
	if err := s.mailer.Send([]string{data.Email}, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send invitation email: %w", err)
	}
	log.Printf("[EMAIL] Team invitation sent to %s", data.Email)
	return nil
}

// SendAnnouncement sends a free-form announcement. The message is plain text
// written by an organizer, so the HTML body is built here rather than from an
// embedded template.
func (s *emailService) SendAnnouncement(ctx context.Context, to []string, subject, message string) error {
	if len(to) == 0 {
		return fmt.Errorf("announcement has no recipients")
	}
	escaped := html.EscapeString(message)
	htmlBody := fmt.Sprintf(
		`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;"><p>%s</p></div>`,
		strings.ReplaceAll(escaped, "\n", "<br>"),
	)
	if err := s.mailer.Send(to, subject, htmlBody, message); err != nil {
		return fmt.Errorf("failed to send announcement: %w", err)
	}
	log.Printf("[EMAIL] Announcement sent to %d recipients", len(to))
	return nil
}
