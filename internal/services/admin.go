package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventms/internal/domain"
)

type adminService struct {
	userRepo       domain.UserRepository
	eventRepo      domain.EventRepository
	regRepo        domain.RegistrationRepository
	contextTimeout time.Duration
}

// NewAdminService creates an AdminService with the given repositories.
func NewAdminService(userRepo domain.UserRepository,
	eventRepo domain.EventRepository,
	regRepo domain.RegistrationRepository,
	timeout time.Duration,
) domain.AdminService {
	return &adminService{
		userRepo:       userRepo,
		eventRepo:      eventRepo,
		regRepo:        regRepo,
		contextTimeout: timeout,
	}
}

func (s *adminService) ListOrganizers(ctx context.Context) ([]*domain.OrganizerStats, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	users, err := s.userRepo.ListByRoles(ctx, []string{domain.RoleOrganizer, domain.RoleAdmin})
	if err != nil {
		return nil, fmt.Errorf("list organizers: %w", err)
	}

	out := make([]*domain.OrganizerStats, 0, len(users))
	for _, u := range users {
		events, err := s.eventRepo.CountByOwner(ctx, u.ID)
		if err != nil {
			return nil, fmt.Errorf("count events: %w", err)
		}
		regs, err := s.regRepo.CountByOwner(ctx, u.ID)
		if err != nil {
			return nil, fmt.Errorf("count registrations: %w", err)
		}
		out = append(out, &domain.OrganizerStats{
			User:               u,
			TotalEvents:        events,
			TotalRegistrations: regs,
		})
	}
	return out, nil
}

func (s *adminService) ListAllEvents(ctx context.Context) ([]*domain.AdminEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	owners := make(map[string]*domain.User)
	out := make([]*domain.AdminEvent, 0, len(events))
	for _, e := range events {
		owner, ok := owners[e.OwnerID]
		if !ok {
			owner, err = s.userRepo.GetByID(ctx, e.OwnerID)
			if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
				return nil, fmt.Errorf("get owner: %w", err)
			}
			owners[e.OwnerID] = owner
		}
		count, err := s.regRepo.CountByEventID(ctx, e.ID)
		if err != nil {
			return nil, fmt.Errorf("count registrations: %w", err)
		}
		ae := &domain.AdminEvent{Event: e, RegistrationCount: count}
		if owner != nil {
			ae.OwnerName = owner.Name
			ae.OwnerEmail = owner.Email
		}
		out = append(out, ae)
	}
	return out, nil
}

func (s *adminService) ToggleUserStatus(ctx context.Context, userID string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	updated, err := s.userRepo.SetActive(ctx, userID, !user.Active)
	if err != nil {
		return nil, fmt.Errorf("set active: %w", err)
	}
	return updated, nil
}

func (s *adminService) ForceDeleteEvent(ctx context.Context, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	// Registrations and team rows go with the event via the schema's
	// cascade rules; no ownership check here, this is the admin path.
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func (s *adminService) GetSystemStats(ctx context.Context) (*domain.SystemStats, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	users, err := s.userRepo.ListByRoles(ctx, []string{domain.RoleOrganizer, domain.RoleParticipant, domain.RoleAdmin})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	events, err := s.eventRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}
	regs, err := s.regRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count registrations: %w", err)
	}

	avg := "0.0"
	if events > 0 {
		avg = fmt.Sprintf("%.1f", float64(regs)/float64(events))
	}
	return &domain.SystemStats{
		TotalUsers:               len(users),
		TotalEvents:              events,
		TotalRegistrations:       regs,
		AvgRegistrationsPerEvent: avg,
	}, nil
}
