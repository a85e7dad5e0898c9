package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventms/internal/domain"
)

type regFixture struct {
	svc    domain.RegistrationService
	events *fakeEventRepo
	groups *fakeGroupRepo
	regs   *fakeRegRepo
	qr     *fakeQR
	email  *fakeEmailService
}

func newRegFixture(t *testing.T) *regFixture {
	t.Helper()
	f := &regFixture{
		events: newFakeEventRepo(),
		groups: newFakeGroupRepo(),
		regs:   newFakeRegRepo(),
		qr:     &fakeQR{},
		email:  &fakeEmailService{},
	}
	f.svc = NewRegistrationService(f.regs, f.events, f.groups, f.qr, f.email, testLogger(), 2*time.Second)
	return f
}

func (f *regFixture) addEvent(t *testing.T, mutate func(*domain.Event)) *domain.Event {
	t.Helper()
	event := domain.NewEvent("Conf", time.Now().Add(48*time.Hour), "Oslo", "", "owner", time.Now(), time.Now())
	if mutate != nil {
		mutate(event)
	}
	require.NoError(t, f.events.Create(context.Background(), event))
	return event
}

func (f *regFixture) addGroup(t *testing.T, eventID string) *domain.StakeholderGroup {
	t.Helper()
	group := &domain.StakeholderGroup{
		EventID: eventID,
		Name:    "Attendees",
		Fields: []domain.FieldDefinition{
			{Name: "Full Name", Type: domain.FieldTypeText, Required: true},
			{Name: "Email Address", Type: domain.FieldTypeEmail, Required: true},
		},
	}
	require.NoError(t, f.groups.Create(context.Background(), group))
	return group
}

func attendeeAnswers(name, email string) domain.AnswerMap {
	return domain.AnswerMap{
		"Full Name":     domain.ScalarAnswer(name),
		"Email Address": domain.ScalarAnswer(email),
	}
}

func TestCreateRegistration(t *testing.T) {
	f := newRegFixture(t)
	event := f.addEvent(t, nil)
	group := f.addGroup(t, event.ID)

	reg, err := f.svc.CreateRegistration(context.Background(), event.ID, group.ID, attendeeAnswers("Ana", "ana@example.com"))
	require.NoError(t, err)
	assert.Equal(t, domain.RegistrationStatusSubmitted, reg.Status)
	assert.False(t, reg.CheckedIn)
	assert.Equal(t, "data:image/png;base64,stub-"+reg.ID, reg.QRCode)

	// The QR payload embeds the persisted registration id.
	assert.Equal(t, reg.ID, f.qr.last.RegistrationID)
	assert.Equal(t, event.ID, f.qr.last.EventID)
	assert.Equal(t, "Ana", f.qr.last.ParticipantName)
	assert.False(t, f.qr.last.Timestamp.IsZero())
	assert.Equal(t, time.UTC, f.qr.last.Timestamp.Location())

	require.Len(t, f.email.confirmations, 1)
	assert.Equal(t, "ana@example.com", f.email.confirmations[0].Email)
	assert.Equal(t, reg.QRCode, f.email.confirmations[0].QRCodeDataURL)
}

func TestCreateRegistrationEmailFailureIsSwallowed(t *testing.T) {
	f := newRegFixture(t)
	f.email.err = fmt.Errorf("smtp down")
	event := f.addEvent(t, nil)
	group := f.addGroup(t, event.ID)

	reg, err := f.svc.CreateRegistration(context.Background(), event.ID, group.ID, attendeeAnswers("Ana", "ana@example.com"))
	require.NoError(t, err)
	assert.NotEmpty(t, reg.ID)
}

func TestCreateRegistrationValidation(t *testing.T) {
	f := newRegFixture(t)
	event := f.addEvent(t, nil)
	group := f.addGroup(t, event.ID)

	_, err := f.svc.CreateRegistration(context.Background(), event.ID, group.ID, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.svc.CreateRegistration(context.Background(), "missing", group.ID, attendeeAnswers("A", "a@b.co"))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.svc.CreateRegistration(context.Background(), event.ID, "missing", attendeeAnswers("A", "a@b.co"))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// A group belonging to another event is invisible here.
	other := f.addEvent(t, nil)
	foreign := f.addGroup(t, other.ID)
	_, err = f.svc.CreateRegistration(context.Background(), event.ID, foreign.ID, attendeeAnswers("A", "a@b.co"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateRegistrationClosedEvent(t *testing.T) {
	f := newRegFixture(t)

	draft := f.addEvent(t, func(e *domain.Event) { e.Status = domain.EventStatusDraft })
	g1 := f.addGroup(t, draft.ID)
	_, err := f.svc.CreateRegistration(context.Background(), draft.ID, g1.ID, attendeeAnswers("A", "a@b.co"))
	assert.ErrorIs(t, err, domain.ErrRegistrationClosed)

	past := f.addEvent(t, func(e *domain.Event) {
		deadline := time.Now().Add(-time.Hour)
		e.RegistrationDeadline = &deadline
	})
	g2 := f.addGroup(t, past.ID)
	_, err = f.svc.CreateRegistration(context.Background(), past.ID, g2.ID, attendeeAnswers("A", "a@b.co"))
	assert.ErrorIs(t, err, domain.ErrRegistrationClosed)
}

func TestCreateRegistrationCapacity(t *testing.T) {
	f := newRegFixture(t)
	event := f.addEvent(t, func(e *domain.Event) { e.Capacity = intPtr(2) })
	group := f.addGroup(t, event.ID)

	for i := 0; i < 2; i++ {
		_, err := f.svc.CreateRegistration(context.Background(), event.ID, group.ID, attendeeAnswers("A", fmt.Sprintf("a%d@b.co", i)))
		require.NoError(t, err)
	}

	// Third registration hits the cap and there is no waitlist.
	_, err := f.svc.CreateRegistration(context.Background(), event.ID, group.ID, attendeeAnswers("A", "late@b.co"))
	assert.ErrorIs(t, err, domain.ErrAtCapacity)
}

func TestCreateRegistrationWaitlist(t *testing.T) {
	f := newRegFixture(t)
	event := f.addEvent(t, func(e *domain.Event) {
		e.Capacity = intPtr(1)
		e.WaitlistEnabled = true
	})
	group := f.addGroup(t, event.ID)

	first, err := f.svc.CreateRegistration(context.Background(), event.ID, group.ID, attendeeAnswers("A", "a@b.co"))
	require.NoError(t, err)
	assert.Equal(t, domain.RegistrationStatusSubmitted, first.Status)

	second, err := f.svc.CreateRegistration(context.Background(), event.ID, group.ID, attendeeAnswers("B", "b@b.co"))
	require.NoError(t, err)
	assert.Equal(t, domain.RegistrationStatusWaitlisted, second.Status)
}

func TestToggleCheckIn(t *testing.T) {
	f := newRegFixture(t)
	event := f.addEvent(t, nil)
	group := f.addGroup(t, event.ID)

	reg, err := f.svc.CreateRegistration(context.Background(), event.ID, group.ID, attendeeAnswers("Ana", "ana@example.com"))
	require.NoError(t, err)

	checked, err := f.svc.ToggleCheckIn(context.Background(), reg.ID)
	require.NoError(t, err)
	assert.True(t, checked.CheckedIn)

	// Toggling again undoes the check-in.
	unchecked, err := f.svc.ToggleCheckIn(context.Background(), reg.ID)
	require.NoError(t, err)
	assert.False(t, unchecked.CheckedIn)

	_, err = f.svc.ToggleCheckIn(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// staleRegRepo serves a fixed snapshot from GetByID so a test can force two
// toggles to observe the same prior state.
type staleRegRepo struct {
	*fakeRegRepo
	stale *domain.Registration
}

func (f *staleRegRepo) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	if f.stale != nil && f.stale.ID == id {
		snapshot := *f.stale
		return &snapshot, nil
	}
	return f.fakeRegRepo.GetByID(ctx, id)
}

func TestToggleCheckInLostUpdate(t *testing.T) {
	// The toggle is an unsynchronized read-modify-write: two interleaved
	// scans of the same badge can both read checked_in=false and both write
	// true, so the final state depends on timing. Serialized, a double scan
	// cancels out; with stale reads it does not.
	f := newRegFixture(t)
	event := f.addEvent(t, nil)
	group := f.addGroup(t, event.ID)

	reg, err := f.svc.CreateRegistration(context.Background(), event.ID, group.ID, attendeeAnswers("Ana", "ana@example.com"))
	require.NoError(t, err)

	snapshot := *reg
	svc := NewRegistrationService(&staleRegRepo{fakeRegRepo: f.regs, stale: &snapshot}, f.events, f.groups, f.qr, f.email, testLogger(), 2*time.Second)

	for i := 0; i < 2; i++ {
		_, err := svc.ToggleCheckIn(context.Background(), reg.ID)
		require.NoError(t, err)
	}

	// Both toggles saw an unchecked record, so the second one did not undo
	// the first: the registration ends checked in, not back where it started.
	after, err := f.regs.GetByID(context.Background(), reg.ID)
	require.NoError(t, err)
	assert.True(t, after.CheckedIn)
}

func TestDeleteRegistration(t *testing.T) {
	f := newRegFixture(t)
	event := f.addEvent(t, nil)
	group := f.addGroup(t, event.ID)

	reg, err := f.svc.CreateRegistration(context.Background(), event.ID, group.ID, attendeeAnswers("Ana", "ana@example.com"))
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteRegistration(context.Background(), reg.ID))
	err = f.svc.DeleteRegistration(context.Background(), reg.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
