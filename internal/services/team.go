package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"eventms/internal/domain"
)

type teamService struct {
	eventRepo      domain.EventRepository
	teamRepo       domain.TeamMemberRepository
	invitationRepo domain.TeamInvitationRepository
	userRepo       domain.UserRepository
	emailService   domain.EmailService
	frontendURL    string
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewTeamService creates a TeamService. frontendURL is the base used to build
// invitation accept links.
func NewTeamService(eventRepo domain.EventRepository,
	teamRepo domain.TeamMemberRepository,
	invitationRepo domain.TeamInvitationRepository,
	userRepo domain.UserRepository,
	emailService domain.EmailService,
	frontendURL string,
	logger *slog.Logger,
	timeout time.Duration,
) domain.TeamService {
	return &teamService{
		eventRepo:      eventRepo,
		teamRepo:       teamRepo,
		invitationRepo: invitationRepo,
		userRepo:       userRepo,
		emailService:   emailService,
		frontendURL:    strings.TrimRight(frontendURL, "/"),
		logger:         logger,
		contextTimeout: timeout,
	}
}

// GetTeam does not consult callerID: any authenticated user may read an
// event's team roster, matching the open-access contract of the route.
func (s *teamService) GetTeam(ctx context.Context, eventID, callerID string) ([]*domain.TeamMember, []*domain.TeamInvitation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("get event: %w", err)
	}

	members, err := s.teamRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, nil, fmt.Errorf("list team members: %w", err)
	}
	pending, err := s.invitationRepo.ListPendingByEventID(ctx, eventID)
	if err != nil {
		return nil, nil, fmt.Errorf("list invitations: %w", err)
	}
	return members, pending, nil
}

func (s *teamService) Invite(ctx context.Context, eventID, callerID, email, role string) (*domain.TeamInvitation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	email = strings.TrimSpace(strings.ToLower(email))
	if !emailRegexp.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}
	if role != domain.TeamRoleEditor && role != domain.TeamRoleViewer {
		return nil, fmt.Errorf("%w: role must be editor or viewer", domain.ErrInvalidInput)
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	ok, err := s.canInvite(ctx, event, callerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrForbidden
	}

	token, err := generateInviteToken()
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	now := time.Now()
	inv := &domain.TeamInvitation{
		EventID:   eventID,
		InvitedBy: callerID,
		Email:     email,
		Role:      role,
		Status:    domain.InvitationStatusPending,
		Token:     token,
		ExpiresAt: now.Add(domain.InvitationTTL),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.invitationRepo.Create(ctx, inv); err != nil {
		return nil, fmt.Errorf("create invitation: %w", err)
	}

	data := &domain.TeamInvitationEmailData{
		Email:      email,
		EventTitle: event.Title,
		Role:       role,
		AcceptURL:  fmt.Sprintf("%s/team/accept/%s", s.frontendURL, token),
	}
	if err := s.emailService.SendTeamInvitation(ctx, data); err != nil {
		s.logger.Error("invitation email failed", "invitation_id", inv.ID, "error", err)
	}
	return inv, nil
}

func (s *teamService) Accept(ctx context.Context, token, callerID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	inv, err := s.invitationRepo.GetPendingByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get invitation: %w", err)
	}
	if time.Now().After(inv.ExpiresAt) {
		return nil, domain.ErrExpired
	}

	user, err := s.userRepo.GetByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	// The invitation is bound to the invited address, not to whoever holds
	// the link.
	if !strings.EqualFold(user.Email, inv.Email) {
		return nil, domain.ErrForbidden
	}

	member := &domain.TeamMember{
		EventID:  inv.EventID,
		UserID:   callerID,
		Role:     inv.Role,
		JoinedAt: time.Now(),
	}
	if err := s.teamRepo.Add(ctx, member); err != nil && !errors.Is(err, domain.ErrAlreadyMember) {
		return nil, fmt.Errorf("add team member: %w", err)
	}
	if err := s.invitationRepo.SetStatus(ctx, inv.ID, domain.InvitationStatusAccepted); err != nil {
		return nil, fmt.Errorf("mark invitation accepted: %w", err)
	}

	event, err := s.eventRepo.GetByID(ctx, inv.EventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *teamService) RemoveMember(ctx context.Context, eventID, userID, callerID string) error {
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
		return domain.ErrForbidden
	}
	if userID == event.OwnerID {
		return fmt.Errorf("%w: cannot remove the event owner", domain.ErrInvalidInput)
	}

	if err := s.teamRepo.Remove(ctx, eventID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("remove team member: %w", err)
	}
	return nil
}

// canInvite reports whether the caller owns the event or holds an owner or
// editor seat on its team.
func (s *teamService) canInvite(ctx context.Context, event *domain.Event, callerID string) (bool, error) {
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

func generateInviteToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
