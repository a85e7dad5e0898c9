package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventms/internal/domain"
)

type stakeholderGroupService struct {
	groupRepo      domain.StakeholderGroupRepository
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
}

// NewStakeholderGroupService creates a StakeholderGroupService with the given repositories.
func NewStakeholderGroupService(groupRepo domain.StakeholderGroupRepository, eventRepo domain.EventRepository, timeout time.Duration) domain.StakeholderGroupService {
	return &stakeholderGroupService{
		groupRepo:      groupRepo,
		eventRepo:      eventRepo,
		contextTimeout: timeout,
	}
}

func (s *stakeholderGroupService) CreateGroup(ctx context.Context, eventID, name string, fields []domain.FieldDefinition) (*domain.StakeholderGroup, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: group name is required", domain.ErrInvalidInput)
	}
	if err := domain.ValidateFields(fields); err != nil {
		return nil, err
	}

	// Groups hang off an event id but carry no foreign key, so the event
	// must exist at creation time.
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	now := time.Now()
	group := &domain.StakeholderGroup{
		EventID:   eventID,
		Name:      name,
		Fields:    fields,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}
	return group, nil
}

func (s *stakeholderGroupService) ListGroups(ctx context.Context, eventID string) ([]*domain.StakeholderGroup, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	groups, err := s.groupRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}

func (s *stakeholderGroupService) UpdateGroup(ctx context.Context, id, name string, fields []domain.FieldDefinition) (*domain.StakeholderGroup, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: group name is required", domain.ErrInvalidInput)
	}
	if err := domain.ValidateFields(fields); err != nil {
		return nil, err
	}

	group, err := s.groupRepo.Update(ctx, id, name, fields)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update group: %w", err)
	}
	return group, nil
}

func (s *stakeholderGroupService) DeleteGroup(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.groupRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete group: %w", err)
	}
	return nil
}
