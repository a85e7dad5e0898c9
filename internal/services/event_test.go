package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventms/internal/domain"
)

func intPtr(v int) *int          { return &v }
func strPtr(v string) *string    { return &v }
func boolPtr(v bool) *bool       { return &v }
func timePtr(v time.Time) *time.Time { return &v }

func TestCreateEventAddsOwnerToTeam(t *testing.T) {
	events := newFakeEventRepo()
	team := newFakeTeamRepo()
	svc := NewEventService(events, team, newFakeRegRepo(), 2*time.Second)

	event := domain.NewEvent("Launch", time.Now().Add(48*time.Hour), "Berlin", "", "u-1", time.Time{}, time.Time{})
	require.NoError(t, svc.CreateEvent(context.Background(), event))
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, domain.EventStatusPublished, event.Status)

	role, err := team.GetRole(context.Background(), event.ID, "u-1")
	require.NoError(t, err)
	assert.Equal(t, domain.TeamRoleOwner, role)
}

func TestCreateEventValidation(t *testing.T) {
	svc := NewEventService(newFakeEventRepo(), newFakeTeamRepo(), newFakeRegRepo(), 2*time.Second)

	err := svc.CreateEvent(context.Background(), &domain.Event{Title: "No owner"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = svc.CreateEvent(context.Background(), &domain.Event{OwnerID: "u-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	bad := &domain.Event{Title: "Bad cap", OwnerID: "u-1", Capacity: intPtr(0)}
	err = svc.CreateEvent(context.Background(), bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListMyEventsIncludesStats(t *testing.T) {
	events := newFakeEventRepo()
	regs := newFakeRegRepo()
	svc := NewEventService(events, newFakeTeamRepo(), regs, 2*time.Second)

	event := domain.NewEvent("Meetup", time.Now(), "", "", "u-1", time.Time{}, time.Time{})
	event.Capacity = intPtr(10)
	require.NoError(t, svc.CreateEvent(context.Background(), event))

	for i := 0; i < 3; i++ {
		reg := domain.NewRegistration(event.ID, "g-1", domain.AnswerMap{}, domain.RegistrationStatusSubmitted, time.Now(), time.Now())
		require.NoError(t, regs.Create(context.Background(), reg))
	}

	list, err := svc.ListMyEvents(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 3, list[0].CurrentRegistrations)
	require.NotNil(t, list[0].AvailableSpots)
	assert.Equal(t, 7, *list[0].AvailableSpots)
	assert.False(t, list[0].IsAtCapacity)
}

func TestGetPublicEvent(t *testing.T) {
	events := newFakeEventRepo()
	regs := newFakeRegRepo()
	svc := NewEventService(events, newFakeTeamRepo(), regs, 2*time.Second)

	event := domain.NewEvent("Open", time.Now().Add(time.Hour), "", "", "u-1", time.Time{}, time.Time{})
	require.NoError(t, svc.CreateEvent(context.Background(), event))

	pub, err := svc.GetPublicEvent(context.Background(), event.ID)
	require.NoError(t, err)
	assert.True(t, pub.CanRegister)
	assert.False(t, pub.IsRegistrationClosed)

	_, err = svc.GetPublicEvent(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetPublicEventClosedStates(t *testing.T) {
	events := newFakeEventRepo()
	svc := NewEventService(events, newFakeTeamRepo(), newFakeRegRepo(), 2*time.Second)

	draft := domain.NewEvent("Draft", time.Now(), "", "", "u-1", time.Time{}, time.Time{})
	draft.Status = domain.EventStatusDraft
	require.NoError(t, svc.CreateEvent(context.Background(), draft))

	pub, err := svc.GetPublicEvent(context.Background(), draft.ID)
	require.NoError(t, err)
	assert.False(t, pub.CanRegister)

	past := domain.NewEvent("Past deadline", time.Now(), "", "", "u-1", time.Time{}, time.Time{})
	past.RegistrationDeadline = timePtr(time.Now().Add(-time.Hour))
	require.NoError(t, svc.CreateEvent(context.Background(), past))

	pub, err = svc.GetPublicEvent(context.Background(), past.ID)
	require.NoError(t, err)
	assert.True(t, pub.IsRegistrationClosed)
	assert.False(t, pub.CanRegister)
}

func TestUpdateEventPermissions(t *testing.T) {
	events := newFakeEventRepo()
	team := newFakeTeamRepo()
	svc := NewEventService(events, team, newFakeRegRepo(), 2*time.Second)

	event := domain.NewEvent("Original", time.Now(), "", "", "owner", time.Time{}, time.Time{})
	require.NoError(t, svc.CreateEvent(context.Background(), event))
	require.NoError(t, team.Add(context.Background(), &domain.TeamMember{EventID: event.ID, UserID: "editor", Role: domain.TeamRoleEditor}))
	require.NoError(t, team.Add(context.Background(), &domain.TeamMember{EventID: event.ID, UserID: "viewer", Role: domain.TeamRoleViewer}))

	updated, err := svc.UpdateEvent(context.Background(), event.ID, "editor", domain.EventUpdate{Title: strPtr("Edited")})
	require.NoError(t, err)
	assert.Equal(t, "Edited", updated.Title)

	_, err = svc.UpdateEvent(context.Background(), event.ID, "viewer", domain.EventUpdate{Title: strPtr("Nope")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.UpdateEvent(context.Background(), event.ID, "stranger", domain.EventUpdate{Title: strPtr("Nope")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateEventClearCapacity(t *testing.T) {
	events := newFakeEventRepo()
	svc := NewEventService(events, newFakeTeamRepo(), newFakeRegRepo(), 2*time.Second)

	event := domain.NewEvent("Capped", time.Now(), "", "", "owner", time.Time{}, time.Time{})
	event.Capacity = intPtr(50)
	require.NoError(t, svc.CreateEvent(context.Background(), event))

	updated, err := svc.UpdateEvent(context.Background(), event.ID, "owner", domain.EventUpdate{ClearCapacity: true})
	require.NoError(t, err)
	assert.Nil(t, updated.Capacity)

	_, err = svc.UpdateEvent(context.Background(), event.ID, "owner", domain.EventUpdate{Status: strPtr("bogus")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeleteEventOwnerOnly(t *testing.T) {
	events := newFakeEventRepo()
	team := newFakeTeamRepo()
	svc := NewEventService(events, team, newFakeRegRepo(), 2*time.Second)

	event := domain.NewEvent("Doomed", time.Now(), "", "", "owner", time.Time{}, time.Time{})
	require.NoError(t, svc.CreateEvent(context.Background(), event))
	require.NoError(t, team.Add(context.Background(), &domain.TeamMember{EventID: event.ID, UserID: "editor", Role: domain.TeamRoleEditor}))

	err := svc.DeleteEvent(context.Background(), event.ID, "editor")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, svc.DeleteEvent(context.Background(), event.ID, "owner"))
	_, err = events.GetByID(context.Background(), event.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
