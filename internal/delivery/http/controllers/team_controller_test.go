package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventms/internal/domain"
)

// fakeTeamService implements domain.TeamService for handler tests.
type fakeTeamService struct {
	membersOut     []*domain.TeamMember
	invitationsOut []*domain.TeamInvitation
	teamErr        error
	inviteOut      *domain.TeamInvitation
	inviteErr      error
	acceptOut      *domain.Event
	acceptErr      error
	removeErr      error

	lastEventID  string
	lastCallerID string
	lastEmail    string
	lastRole     string
	lastToken    string
	lastUserID   string
}

func (f *fakeTeamService) GetTeam(ctx context.Context, eventID, callerID string) ([]*domain.TeamMember, []*domain.TeamInvitation, error) {
	f.lastEventID = eventID
	f.lastCallerID = callerID
	return f.membersOut, f.invitationsOut, f.teamErr
}

func (f *fakeTeamService) Invite(ctx context.Context, eventID, callerID, email, role string) (*domain.TeamInvitation, error) {
	f.lastEventID = eventID
	f.lastCallerID = callerID
	f.lastEmail = email
	f.lastRole = role
	if f.inviteErr != nil {
		return nil, f.inviteErr
	}
	return f.inviteOut, nil
}

func (f *fakeTeamService) Accept(ctx context.Context, token, callerID string) (*domain.Event, error) {
	f.lastToken = token
	f.lastCallerID = callerID
	if f.acceptErr != nil {
		return nil, f.acceptErr
	}
	return f.acceptOut, nil
}

func (f *fakeTeamService) RemoveMember(ctx context.Context, eventID, userID, callerID string) error {
	f.lastEventID = eventID
	f.lastUserID = userID
	f.lastCallerID = callerID
	return f.removeErr
}

func TestTeamGetTeam(t *testing.T) {
	svc := &fakeTeamService{
		membersOut: []*domain.TeamMember{
			{EventID: uuid.NewString(), UserID: "u-1", Role: domain.TeamRoleOwner, Name: "Owner", Email: "owner@example.com"},
		},
		invitationsOut: []*domain.TeamInvitation{
			{ID: uuid.NewString(), Email: "e@example.com", Role: domain.TeamRoleEditor, Status: domain.InvitationStatusPending},
		},
	}
	ctrl := NewTeamController(testLogger, svc)

	eventID := uuid.NewString()
	req := newJSONRequest(t, http.MethodGet, "/api/team/event/"+eventID, nil, "u-1", domain.RoleOrganizer)
	req.SetPathValue("eventId", eventID)
	rr := httptest.NewRecorder()
	ctrl.GetTeam(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, eventID, svc.lastEventID)
	assert.Equal(t, "u-1", svc.lastCallerID)
	body := decodeEnvelope(t, rr)
	assert.Len(t, body["members"].([]any), 1)
	assert.Len(t, body["invitations"].([]any), 1)
}

func TestTeamInvite(t *testing.T) {
	inv := &domain.TeamInvitation{
		ID:        uuid.NewString(),
		Email:     "new@example.com",
		Role:      domain.TeamRoleEditor,
		Status:    domain.InvitationStatusPending,
		ExpiresAt: time.Now().Add(domain.InvitationTTL),
	}
	svc := &fakeTeamService{inviteOut: inv}
	ctrl := NewTeamController(testLogger, svc)

	req := newJSONRequest(t, http.MethodPost, "/api/team/invite", map[string]any{
		"event_id": uuid.NewString(),
		"email":    "new@example.com",
		"role":     "editor",
	}, "u-1", domain.RoleOrganizer)
	rr := httptest.NewRecorder()
	ctrl.Invite(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "new@example.com", svc.lastEmail)
	assert.Equal(t, "editor", svc.lastRole)
	body := decodeEnvelope(t, rr)
	assert.Equal(t, "Invitation sent successfully", body["message"])
	assert.Contains(t, body, "invitation")
}

func TestTeamInviteValidation(t *testing.T) {
	ctrl := NewTeamController(testLogger, &fakeTeamService{})

	cases := []map[string]any{
		{"email": "a@b.co", "role": "editor"},                                 // missing event_id
		{"event_id": uuid.NewString(), "role": "editor"},                      // missing email
		{"event_id": uuid.NewString(), "email": "a@b.co", "role": "owner"},    // owner not grantable
		{"event_id": uuid.NewString(), "email": "a@b.co", "role": "reviewer"}, // unknown role
	}
	for _, body := range cases {
		req := newJSONRequest(t, http.MethodPost, "/api/team/invite", body, "u-1", domain.RoleOrganizer)
		rr := httptest.NewRecorder()
		ctrl.Invite(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	}
}

func TestTeamInviteForbidden(t *testing.T) {
	ctrl := NewTeamController(testLogger, &fakeTeamService{inviteErr: domain.ErrForbidden})

	req := newJSONRequest(t, http.MethodPost, "/api/team/invite", map[string]any{
		"event_id": uuid.NewString(),
		"email":    "a@b.co",
		"role":     "viewer",
	}, "u-2", domain.RoleOrganizer)
	rr := httptest.NewRecorder()
	ctrl.Invite(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestTeamAccept(t *testing.T) {
	event := &domain.Event{ID: uuid.NewString(), Title: "Conf"}
	svc := &fakeTeamService{acceptOut: event}
	ctrl := NewTeamController(testLogger, svc)

	token := "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"
	req := newJSONRequest(t, http.MethodPost, "/api/team/accept/"+token, nil, "u-2", domain.RoleOrganizer)
	req.SetPathValue("token", token)
	rr := httptest.NewRecorder()
	ctrl.Accept(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, token, svc.lastToken)
	assert.Equal(t, "u-2", svc.lastCallerID)
	body := decodeEnvelope(t, rr)
	assert.Equal(t, "Invitation accepted", body["message"])
	assert.Equal(t, event.ID, body["event"].(map[string]any)["id"])
}

func TestTeamAcceptErrors(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.ErrExpired, http.StatusBadRequest},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrNotFound, http.StatusNotFound},
	}
	for _, tc := range cases {
		ctrl := NewTeamController(testLogger, &fakeTeamService{acceptErr: tc.err})
		req := newJSONRequest(t, http.MethodPost, "/api/team/accept/sometoken", nil, "u-2", domain.RoleOrganizer)
		req.SetPathValue("token", "sometoken")
		rr := httptest.NewRecorder()
		ctrl.Accept(rr, req)
		assert.Equal(t, tc.want, rr.Code)
	}
}

func TestTeamRemoveMember(t *testing.T) {
	svc := &fakeTeamService{}
	ctrl := NewTeamController(testLogger, svc)

	eventID := uuid.NewString()
	userID := uuid.NewString()
	req := newJSONRequest(t, http.MethodDelete, "/api/team/event/"+eventID+"/member/"+userID, nil, "u-1", domain.RoleOrganizer)
	req.SetPathValue("eventId", eventID)
	req.SetPathValue("userId", userID)
	rr := httptest.NewRecorder()
	ctrl.RemoveMember(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, eventID, svc.lastEventID)
	assert.Equal(t, userID, svc.lastUserID)
	assert.Equal(t, "u-1", svc.lastCallerID)
}
