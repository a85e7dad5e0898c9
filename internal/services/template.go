package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventms/internal/domain"
)

type templateService struct {
	templateRepo   domain.TemplateRepository
	eventRepo      domain.EventRepository
	groupRepo      domain.StakeholderGroupRepository
	contextTimeout time.Duration
}

// NewTemplateService creates a TemplateService with the given repositories.
func NewTemplateService(templateRepo domain.TemplateRepository,
	eventRepo domain.EventRepository,
	groupRepo domain.StakeholderGroupRepository,
	timeout time.Duration,
) domain.TemplateService {
	return &templateService{
		templateRepo:   templateRepo,
		eventRepo:      eventRepo,
		groupRepo:      groupRepo,
		contextTimeout: timeout,
	}
}

func (s *templateService) ListTemplates(ctx context.Context, callerID string) ([]*domain.Template, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	tpls, err := s.templateRepo.ListByOrganizerID(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return tpls, nil
}

func (s *templateService) SaveTemplate(ctx context.Context, name, eventID, callerID string) (*domain.Template, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: template name is required", domain.ErrInvalidInput)
	}

	event, err := s.ownedEvent(ctx, eventID, callerID)
	if err != nil {
		return nil, err
	}

	groups, err := s.groupRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}

	data := domain.TemplateData{
		StakeholderGroups:    make([]domain.TemplateGroup, 0, len(groups)),
		Capacity:             event.Capacity,
		WaitlistEnabled:      event.WaitlistEnabled,
		RegistrationDeadline: event.RegistrationDeadline,
	}
	for _, g := range groups {
		data.StakeholderGroups = append(data.StakeholderGroups, domain.TemplateGroup{
			Name:   g.Name,
			Fields: g.Fields,
		})
	}

	now := time.Now()
	tpl := &domain.Template{
		OrganizerID: callerID,
		Name:        name,
		Data:        data,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.templateRepo.Create(ctx, tpl); err != nil {
		return nil, fmt.Errorf("create template: %w", err)
	}
	return tpl, nil
}

func (s *templateService) ApplyTemplate(ctx context.Context, templateID, eventID, callerID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	tpl, err := s.templateRepo.GetByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get template: %w", err)
	}
	if tpl.OrganizerID != callerID {
		return nil, domain.ErrNotFound
	}

	if _, err := s.ownedEvent(ctx, eventID, callerID); err != nil {
		return nil, err
	}

	// Applying is destructive: the event's existing groups are replaced
	// wholesale with the template's snapshot.
	if err := s.groupRepo.DeleteByEventID(ctx, eventID); err != nil {
		return nil, fmt.Errorf("delete groups: %w", err)
	}
	now := time.Now()
	for _, tg := range tpl.Data.StakeholderGroups {
		group := &domain.StakeholderGroup{
			EventID:   eventID,
			Name:      tg.Name,
			Fields:    tg.Fields,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.groupRepo.Create(ctx, group); err != nil {
			return nil, fmt.Errorf("create group: %w", err)
		}
	}

	upd := domain.EventUpdate{
		WaitlistEnabled: &tpl.Data.WaitlistEnabled,
	}
	if tpl.Data.Capacity != nil {
		upd.Capacity = tpl.Data.Capacity
	} else {
		upd.ClearCapacity = true
	}
	if tpl.Data.RegistrationDeadline != nil {
		upd.RegistrationDeadline = tpl.Data.RegistrationDeadline
	} else {
		upd.ClearDeadline = true
	}
	event, err := s.eventRepo.Update(ctx, eventID, upd)
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}

	if err := s.templateRepo.IncrementUsage(ctx, templateID); err != nil {
		return nil, fmt.Errorf("increment usage: %w", err)
	}
	return event, nil
}

func (s *templateService) DeleteTemplate(ctx context.Context, id, callerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	tpl, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get template: %w", err)
	}
	if tpl.OrganizerID != callerID {
		return domain.ErrNotFound
	}
	if err := s.templateRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}

// ownedEvent loads the event and hides it behind ErrNotFound unless the
// caller is its owner.
func (s *templateService) ownedEvent(ctx context.Context, eventID, callerID string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.OwnerID != callerID {
		return nil, domain.ErrNotFound
	}
	return event, nil
}
