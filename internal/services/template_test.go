package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventms/internal/domain"
)

type templateFixture struct {
	svc       domain.TemplateService
	templates *fakeTemplateRepo
	events    *fakeEventRepo
	groups    *fakeGroupRepo
}

func newTemplateFixture(t *testing.T) *templateFixture {
	t.Helper()
	f := &templateFixture{
		templates: newFakeTemplateRepo(),
		events:    newFakeEventRepo(),
		groups:    newFakeGroupRepo(),
	}
	f.svc = NewTemplateService(f.templates, f.events, f.groups, 2*time.Second)
	return f
}

func (f *templateFixture) addEvent(t *testing.T, ownerID string, mutate func(*domain.Event)) *domain.Event {
	t.Helper()
	event := domain.NewEvent("Expo", time.Now().Add(24*time.Hour), "", "", ownerID, time.Now(), time.Now())
	if mutate != nil {
		mutate(event)
	}
	require.NoError(t, f.events.Create(context.Background(), event))
	return event
}

func (f *templateFixture) addGroup(t *testing.T, eventID, name string) *domain.StakeholderGroup {
	t.Helper()
	group := &domain.StakeholderGroup{
		EventID: eventID,
		Name:    name,
		Fields:  []domain.FieldDefinition{{Name: "Email", Type: domain.FieldTypeEmail, Required: true}},
	}
	require.NoError(t, f.groups.Create(context.Background(), group))
	return group
}

func TestSaveTemplate(t *testing.T) {
	f := newTemplateFixture(t)
	deadline := time.Now().Add(12 * time.Hour)
	event := f.addEvent(t, "org", func(e *domain.Event) {
		e.Capacity = intPtr(100)
		e.WaitlistEnabled = true
		e.RegistrationDeadline = &deadline
	})
	f.addGroup(t, event.ID, "Speakers")
	f.addGroup(t, event.ID, "Guests")

	tpl, err := f.svc.SaveTemplate(context.Background(), "Conference setup", event.ID, "org")
	require.NoError(t, err)
	assert.Equal(t, "org", tpl.OrganizerID)
	assert.Equal(t, 0, tpl.UsageCount)
	require.Len(t, tpl.Data.StakeholderGroups, 2)
	require.NotNil(t, tpl.Data.Capacity)
	assert.Equal(t, 100, *tpl.Data.Capacity)
	assert.True(t, tpl.Data.WaitlistEnabled)
	require.NotNil(t, tpl.Data.RegistrationDeadline)
}

func TestSaveTemplateAuthorization(t *testing.T) {
	f := newTemplateFixture(t)
	event := f.addEvent(t, "org", nil)

	_, err := f.svc.SaveTemplate(context.Background(), "Nope", event.ID, "other")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.svc.SaveTemplate(context.Background(), "  ", event.ID, "org")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApplyTemplateReplacesGroups(t *testing.T) {
	f := newTemplateFixture(t)

	source := f.addEvent(t, "org", func(e *domain.Event) {
		e.Capacity = intPtr(50)
		e.WaitlistEnabled = true
	})
	f.addGroup(t, source.ID, "Speakers")
	tpl, err := f.svc.SaveTemplate(context.Background(), "Standard", source.ID, "org")
	require.NoError(t, err)

	target := f.addEvent(t, "org", func(e *domain.Event) { e.Capacity = intPtr(10) })
	f.addGroup(t, target.ID, "Old group A")
	f.addGroup(t, target.ID, "Old group B")

	updated, err := f.svc.ApplyTemplate(context.Background(), tpl.ID, target.ID, "org")
	require.NoError(t, err)

	// Old groups are gone, the snapshot's groups replace them exactly.
	groups, err := f.groups.ListByEventID(context.Background(), target.ID)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "Speakers", groups[0].Name)

	require.NotNil(t, updated.Capacity)
	assert.Equal(t, 50, *updated.Capacity)
	assert.True(t, updated.WaitlistEnabled)
	assert.Nil(t, updated.RegistrationDeadline)

	stored, err := f.templates.GetByID(context.Background(), tpl.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.UsageCount)
}

func TestApplyTemplateClearsCapacity(t *testing.T) {
	f := newTemplateFixture(t)

	source := f.addEvent(t, "org", nil)
	tpl, err := f.svc.SaveTemplate(context.Background(), "Uncapped", source.ID, "org")
	require.NoError(t, err)

	target := f.addEvent(t, "org", func(e *domain.Event) {
		e.Capacity = intPtr(25)
		deadline := time.Now().Add(time.Hour)
		e.RegistrationDeadline = &deadline
	})

	updated, err := f.svc.ApplyTemplate(context.Background(), tpl.ID, target.ID, "org")
	require.NoError(t, err)
	assert.Nil(t, updated.Capacity)
	assert.Nil(t, updated.RegistrationDeadline)
}

func TestApplyTemplateAuthorization(t *testing.T) {
	f := newTemplateFixture(t)

	source := f.addEvent(t, "org", nil)
	tpl, err := f.svc.SaveTemplate(context.Background(), "Mine", source.ID, "org")
	require.NoError(t, err)

	// Someone else's template is invisible.
	target := f.addEvent(t, "other", nil)
	_, err = f.svc.ApplyTemplate(context.Background(), tpl.ID, target.ID, "other")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// So is someone else's event.
	_, err = f.svc.ApplyTemplate(context.Background(), tpl.ID, target.ID, "org")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteTemplate(t *testing.T) {
	f := newTemplateFixture(t)
	source := f.addEvent(t, "org", nil)
	tpl, err := f.svc.SaveTemplate(context.Background(), "Old", source.ID, "org")
	require.NoError(t, err)

	err = f.svc.DeleteTemplate(context.Background(), tpl.ID, "other")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, f.svc.DeleteTemplate(context.Background(), tpl.ID, "org"))

	list, err := f.svc.ListTemplates(context.Background(), "org")
	require.NoError(t, err)
	assert.Empty(t, list)
}
