package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"eventms/internal/domain"
)

type announcementService struct {
	eventRepo      domain.EventRepository
	regRepo        domain.RegistrationRepository
	logRepo        domain.EmailLogRepository
	emailService   domain.EmailService
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewAnnouncementService creates an AnnouncementService with the given repositories.
func NewAnnouncementService(eventRepo domain.EventRepository,
	regRepo domain.RegistrationRepository,
	logRepo domain.EmailLogRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.AnnouncementService {
	return &announcementService{
		eventRepo:      eventRepo,
		regRepo:        regRepo,
		logRepo:        logRepo,
		emailService:   emailService,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *announcementService) SendToGroups(ctx context.Context, eventID string, groupIDs []string, subject, message string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if subject == "" || message == "" {
		return 0, fmt.Errorf("%w: subject and message are required", domain.ErrInvalidInput)
	}
	if len(groupIDs) == 0 {
		return 0, fmt.Errorf("%w: at least one group is required", domain.ErrInvalidInput)
	}
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("get event: %w", err)
	}

	regs, err := s.regRepo.ListByGroupIDs(ctx, eventID, groupIDs)
	if err != nil {
		return 0, fmt.Errorf("list registrations: %w", err)
	}

	// Recipient addresses come out of free-form answers, so registrations
	// without a recognizable email field are skipped, and duplicates
	// collapse to one send.
	seen := make(map[string]struct{})
	to := make([]string, 0, len(regs))
	for _, r := range regs {
		addr := r.Answers.EmailAnswer()
		if addr == "" {
			continue
		}
		if _, ok := seen[addr]; ok {
			continue
		}
		seen[addr] = struct{}{}
		to = append(to, addr)
	}

	if len(to) > 0 {
		if err := s.emailService.SendAnnouncement(ctx, to, subject, message); err != nil {
			s.logger.Error("announcement send failed", "event_id", eventID, "error", err)
		}
	}

	// The audit row is written regardless of delivery outcome.
	entry := &domain.EmailLog{
		EventID:        eventID,
		GroupIDs:       groupIDs,
		Subject:        subject,
		Message:        message,
		RecipientCount: len(to),
		CreatedAt:      time.Now(),
	}
	if err := s.logRepo.Create(ctx, entry); err != nil {
		return 0, fmt.Errorf("write email log: %w", err)
	}
	return len(to), nil
}

func (s *announcementService) ListLogs(ctx context.Context, eventID string) ([]*domain.EmailLog, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	logs, err := s.logRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list email logs: %w", err)
	}
	return logs, nil
}
