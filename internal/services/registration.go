package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"eventms/internal/domain"
)

type registrationService struct {
	regRepo        domain.RegistrationRepository
	eventRepo      domain.EventRepository
	groupRepo      domain.StakeholderGroupRepository
	qr             domain.QRGenerator
	emailService   domain.EmailService
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewRegistrationService creates a RegistrationService. The email service is
// used best-effort: a failed confirmation email never fails the registration.
func NewRegistrationService(regRepo domain.RegistrationRepository,
	eventRepo domain.EventRepository,
	groupRepo domain.StakeholderGroupRepository,
	qr domain.QRGenerator,
	emailService domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.RegistrationService {
	return &registrationService{
		regRepo:        regRepo,
		eventRepo:      eventRepo,
		groupRepo:      groupRepo,
		qr:             qr,
		emailService:   emailService,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *registrationService) CreateRegistration(ctx context.Context, eventID, groupID string, answers domain.AnswerMap) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if len(answers) == 0 {
		return nil, fmt.Errorf("%w: answers are required", domain.ErrInvalidInput)
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get group: %w", err)
	}
	if group.EventID != eventID {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	if event.Status != domain.EventStatusPublished || event.IsRegistrationClosed(now) {
		return nil, domain.ErrRegistrationClosed
	}

	status := domain.RegistrationStatusSubmitted
	if event.Capacity != nil {
		count, err := s.regRepo.CountByEventID(ctx, eventID)
		if err != nil {
			return nil, fmt.Errorf("count registrations: %w", err)
		}
		if count >= *event.Capacity {
			if !event.WaitlistEnabled {
				return nil, domain.ErrAtCapacity
			}
			status = domain.RegistrationStatusWaitlisted
		}
	}

	reg := domain.NewRegistration(eventID, groupID, answers, status, now, now)
	if err := s.regRepo.Create(ctx, reg); err != nil {
		return nil, fmt.Errorf("create registration: %w", err)
	}

	// The payload embeds the registration id, so the QR code can only be
	// generated and attached after the insert.
	dataURL, err := s.qr.Encode(domain.QRPayload{
		RegistrationID:  reg.ID,
		EventID:         eventID,
		ParticipantName: answers.NameAnswer(),
		Timestamp:       now.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}
	if err := s.regRepo.SetQRCode(ctx, reg.ID, dataURL); err != nil {
		return nil, fmt.Errorf("attach qr code: %w", err)
	}
	reg.QRCode = dataURL

	s.sendConfirmation(ctx, event, reg)
	return reg, nil
}

// sendConfirmation emails the registrant their QR code. Failures are logged
// and swallowed: the registration already exists.
func (s *registrationService) sendConfirmation(ctx context.Context, event *domain.Event, reg *domain.Registration) {
	to := reg.Answers.EmailAnswer()
	if to == "" {
		return
	}
	data := &domain.RegistrationConfirmationEmailData{
		Email:           to,
		ParticipantName: reg.Answers.NameAnswer(),
		EventTitle:      event.Title,
		EventDate:       event.Date.Format("Monday, January 2, 2006"),
		EventLocation:   event.Location,
		QRCodeDataURL:   reg.QRCode,
	}
	if err := s.emailService.SendRegistrationConfirmation(ctx, data); err != nil {
		s.logger.Error("confirmation email failed", "registration_id", reg.ID, "error", err)
	}
}

func (s *registrationService) ListByEvent(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	regs, err := s.regRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return regs, nil
}

func (s *registrationService) ToggleCheckIn(ctx context.Context, id string) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	reg, err := s.regRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get registration: %w", err)
	}

	updated, err := s.regRepo.SetCheckedIn(ctx, id, !reg.CheckedIn)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("set checked in: %w", err)
	}
	return updated, nil
}

func (s *registrationService) DeleteRegistration(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.regRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete registration: %w", err)
	}
	return nil
}
