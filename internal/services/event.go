package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventms/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	teamRepo       domain.TeamMemberRepository
	regRepo        domain.RegistrationRepository
	contextTimeout time.Duration
}

// NewEventService creates an EventService with the given repositories.
func NewEventService(eventRepo domain.EventRepository,
	teamRepo domain.TeamMemberRepository,
	regRepo domain.RegistrationRepository,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		teamRepo:       teamRepo,
		regRepo:        regRepo,
		contextTimeout: timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if event.OwnerID == "" {
		return fmt.Errorf("%w: event owner is required", domain.ErrInvalidInput)
	}
	if event.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if event.Capacity != nil && *event.Capacity < 1 {
		return fmt.Errorf("%w: capacity must be at least 1", domain.ErrInvalidInput)
	}
	if event.Status == "" {
		event.Status = domain.EventStatusPublished
	}

	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}

	// The creator always appears on the team roster as its owner.
	member := &domain.TeamMember{
		EventID:  event.ID,
		UserID:   event.OwnerID,
		Role:     domain.TeamRoleOwner,
		JoinedAt: now,
	}
	if err := s.teamRepo.Add(ctx, member); err != nil && !errors.Is(err, domain.ErrAlreadyMember) {
		return fmt.Errorf("add owner to team: %w", err)
	}
	return nil
}

func (s *eventService) ListMyEvents(ctx context.Context, userID string) ([]*domain.EventWithStats, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListByMember(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	out := make([]*domain.EventWithStats, 0, len(events))
	for _, e := range events {
		count, err := s.regRepo.CountByEventID(ctx, e.ID)
		if err != nil {
			return nil, fmt.Errorf("count registrations: %w", err)
		}
		out = append(out, e.WithStats(count))
	}
	return out, nil
}

func (s *eventService) GetPublicEvent(ctx context.Context, eventID string) (*domain.PublicEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	count, err := s.regRepo.CountByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("count registrations: %w", err)
	}

	stats := event.WithStats(count)
	closed := event.IsRegistrationClosed(time.Now())
	return &domain.PublicEvent{
		EventWithStats:       *stats,
		IsRegistrationClosed: closed,
		CanRegister:          event.Status == domain.EventStatusPublished && !closed && !stats.IsAtCapacity,
	}, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, eventID, callerID string, upd domain.EventUpdate) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	ok, err := s.canEdit(ctx, event, callerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Non-editors cannot probe for an event's existence.
		return nil, domain.ErrNotFound
	}

	if upd.Capacity != nil && *upd.Capacity < 1 {
		return nil, fmt.Errorf("%w: capacity must be at least 1", domain.ErrInvalidInput)
	}
	if upd.Status != nil {
		switch *upd.Status {
		case domain.EventStatusDraft, domain.EventStatusPublished, domain.EventStatusCancelled, domain.EventStatusCompleted:
		default:
			return nil, fmt.Errorf("%w: invalid status %q", domain.ErrInvalidInput, *upd.Status)
		}
	}

	updated, err := s.eventRepo.Update(ctx, eventID, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return updated, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, eventID, callerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if event.OwnerID != callerID {
		// Only the owner may delete, and non-owners see a 404.
		return domain.ErrNotFound
	}
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

// canEdit reports whether the caller owns the event or holds an owner or
// editor seat on its team.
func (s *eventService) canEdit(ctx context.Context, event *domain.Event, callerID string) (bool, error) {
	if event.OwnerID == callerID {
		return true, nil
	}
	role, err := s.teamRepo.GetRole(ctx, event.ID, callerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("get team role: %w", err)
	}
	return role == domain.TeamRoleOwner || role == domain.TeamRoleEditor, nil
}
