package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"eventms/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeUserRepo is an in-memory UserRepository for tests.
type fakeUserRepo struct {
	byID   map[string]*domain.User
	nextID int
	err    error // if set, Create returns this error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[string]*domain.User), nextID: 1}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	if f.err != nil {
		return f.err
	}
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return domain.ErrDuplicateEmail
		}
	}
	u.ID = fmt.Sprintf("u-%d", f.nextID)
	f.nextID++
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.byID {
		if u.Email == strings.ToLower(email) {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) ListByRoles(ctx context.Context, roles []string) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range f.byID {
		for _, r := range roles {
			if u.Role == r {
				out = append(out, u)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUserRepo) SetActive(ctx context.Context, id string, active bool) (*domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Active = active
	return u, nil
}

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	byID   map[string]*domain.Event
	nextID int
	err    error // if set, Create returns this error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{byID: make(map[string]*domain.Event), nextID: 1}
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.err != nil {
		return f.err
	}
	e.ID = fmt.Sprintf("ev-%d", f.nextID)
	f.nextID++
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) ListByMember(ctx context.Context, userID string) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, e := range f.byID {
		if e.OwnerID == userID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeEventRepo) ListAll(ctx context.Context) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, e := range f.byID {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeEventRepo) Update(ctx context.Context, eventID string, upd domain.EventUpdate) (*domain.Event, error) {
	e, ok := f.byID[eventID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if upd.Title != nil {
		e.Title = *upd.Title
	}
	if upd.Date != nil {
		e.Date = *upd.Date
	}
	if upd.Location != nil {
		e.Location = *upd.Location
	}
	if upd.Description != nil {
		e.Description = *upd.Description
	}
	if upd.ClearCapacity {
		e.Capacity = nil
	} else if upd.Capacity != nil {
		e.Capacity = upd.Capacity
	}
	if upd.WaitlistEnabled != nil {
		e.WaitlistEnabled = *upd.WaitlistEnabled
	}
	if upd.ClearDeadline {
		e.RegistrationDeadline = nil
	} else if upd.RegistrationDeadline != nil {
		e.RegistrationDeadline = upd.RegistrationDeadline
	}
	if upd.Status != nil {
		e.Status = *upd.Status
	}
	e.UpdatedAt = time.Now()
	return e, nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeEventRepo) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	n := 0
	for _, e := range f.byID {
		if e.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

func (f *fakeEventRepo) Count(ctx context.Context) (int, error) {
	return len(f.byID), nil
}

// fakeTeamRepo is an in-memory TeamMemberRepository for tests.
type fakeTeamRepo struct {
	members []*domain.TeamMember
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{}
}

func (f *fakeTeamRepo) Add(ctx context.Context, m *domain.TeamMember) error {
	for _, existing := range f.members {
		if existing.EventID == m.EventID && existing.UserID == m.UserID {
			return domain.ErrAlreadyMember
		}
	}
	f.members = append(f.members, m)
	return nil
}

func (f *fakeTeamRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.TeamMember, error) {
	var out []*domain.TeamMember
	for _, m := range f.members {
		if m.EventID == eventID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeTeamRepo) GetRole(ctx context.Context, eventID, userID string) (string, error) {
	for _, m := range f.members {
		if m.EventID == eventID && m.UserID == userID {
			return m.Role, nil
		}
	}
	return "", domain.ErrNotFound
}

func (f *fakeTeamRepo) Remove(ctx context.Context, eventID, userID string) error {
	for i, m := range f.members {
		if m.EventID == eventID && m.UserID == userID {
			f.members = append(f.members[:i], f.members[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// fakeGroupRepo is an in-memory StakeholderGroupRepository for tests.
type fakeGroupRepo struct {
	byID   map[string]*domain.StakeholderGroup
	nextID int
}

func newFakeGroupRepo() *fakeGroupRepo {
	return &fakeGroupRepo{byID: make(map[string]*domain.StakeholderGroup), nextID: 1}
}

func (f *fakeGroupRepo) Create(ctx context.Context, g *domain.StakeholderGroup) error {
	g.ID = fmt.Sprintf("g-%d", f.nextID)
	f.nextID++
	f.byID[g.ID] = g
	return nil
}

func (f *fakeGroupRepo) GetByID(ctx context.Context, id string) (*domain.StakeholderGroup, error) {
	if g, ok := f.byID[id]; ok {
		return g, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeGroupRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.StakeholderGroup, error) {
	var out []*domain.StakeholderGroup
	for _, g := range f.byID {
		if g.EventID == eventID {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeGroupRepo) Update(ctx context.Context, id, name string, fields []domain.FieldDefinition) (*domain.StakeholderGroup, error) {
	g, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	g.Name = name
	g.Fields = fields
	g.UpdatedAt = time.Now()
	return g, nil
}

func (f *fakeGroupRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeGroupRepo) DeleteByEventID(ctx context.Context, eventID string) error {
	for id, g := range f.byID {
		if g.EventID == eventID {
			delete(f.byID, id)
		}
	}
	return nil
}

// fakeRegRepo is an in-memory RegistrationRepository for tests. eventOwners
// maps event id to owner id for CountByOwner.
type fakeRegRepo struct {
	byID        map[string]*domain.Registration
	nextID      int
	eventOwners map[string]string
	createErr   error
	qrErr       error
}

func newFakeRegRepo() *fakeRegRepo {
	return &fakeRegRepo{
		byID:        make(map[string]*domain.Registration),
		nextID:      1,
		eventOwners: make(map[string]string),
	}
}

func (f *fakeRegRepo) Create(ctx context.Context, r *domain.Registration) error {
	if f.createErr != nil {
		return f.createErr
	}
	r.ID = fmt.Sprintf("r-%d", f.nextID)
	f.nextID++
	f.byID[r.ID] = r
	return nil
}

func (f *fakeRegRepo) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	if r, ok := f.byID[id]; ok {
		return r, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRegRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	var out []*domain.Registration
	for _, r := range f.byID {
		if r.EventID == eventID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRegRepo) ListByGroupIDs(ctx context.Context, eventID string, groupIDs []string) ([]*domain.Registration, error) {
	var out []*domain.Registration
	for _, r := range f.byID {
		if r.EventID != eventID {
			continue
		}
		for _, gid := range groupIDs {
			if r.GroupID == gid {
				out = append(out, r)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRegRepo) SetQRCode(ctx context.Context, id, qrCode string) error {
	if f.qrErr != nil {
		return f.qrErr
	}
	r, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	r.QRCode = qrCode
	return nil
}

func (f *fakeRegRepo) SetCheckedIn(ctx context.Context, id string, checkedIn bool) (*domain.Registration, error) {
	r, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	r.CheckedIn = checkedIn
	r.UpdatedAt = time.Now()
	return r, nil
}

func (f *fakeRegRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeRegRepo) CountByEventID(ctx context.Context, eventID string) (int, error) {
	n := 0
	for _, r := range f.byID {
		if r.EventID == eventID {
			n++
		}
	}
	return n, nil
}

func (f *fakeRegRepo) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	n := 0
	for _, r := range f.byID {
		if f.eventOwners[r.EventID] == ownerID {
			n++
		}
	}
	return n, nil
}

func (f *fakeRegRepo) Count(ctx context.Context) (int, error) {
	return len(f.byID), nil
}

// fakeInvitationRepo is an in-memory TeamInvitationRepository for tests.
type fakeInvitationRepo struct {
	byID   map[string]*domain.TeamInvitation
	nextID int
}

func newFakeInvitationRepo() *fakeInvitationRepo {
	return &fakeInvitationRepo{byID: make(map[string]*domain.TeamInvitation), nextID: 1}
}

func (f *fakeInvitationRepo) Create(ctx context.Context, inv *domain.TeamInvitation) error {
	inv.ID = fmt.Sprintf("inv-%d", f.nextID)
	f.nextID++
	f.byID[inv.ID] = inv
	return nil
}

func (f *fakeInvitationRepo) GetPendingByToken(ctx context.Context, token string) (*domain.TeamInvitation, error) {
	for _, inv := range f.byID {
		if inv.Token == token && inv.Status == domain.InvitationStatusPending {
			return inv, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeInvitationRepo) ListPendingByEventID(ctx context.Context, eventID string) ([]*domain.TeamInvitation, error) {
	var out []*domain.TeamInvitation
	for _, inv := range f.byID {
		if inv.EventID == eventID && inv.Status == domain.InvitationStatusPending {
			out = append(out, inv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeInvitationRepo) SetStatus(ctx context.Context, id, status string) error {
	inv, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	inv.Status = status
	inv.UpdatedAt = time.Now()
	return nil
}

// fakeTemplateRepo is an in-memory TemplateRepository for tests.
type fakeTemplateRepo struct {
	byID   map[string]*domain.Template
	nextID int
}

func newFakeTemplateRepo() *fakeTemplateRepo {
	return &fakeTemplateRepo{byID: make(map[string]*domain.Template), nextID: 1}
}

func (f *fakeTemplateRepo) Create(ctx context.Context, t *domain.Template) error {
	t.ID = fmt.Sprintf("tpl-%d", f.nextID)
	f.nextID++
	f.byID[t.ID] = t
	return nil
}

func (f *fakeTemplateRepo) GetByID(ctx context.Context, id string) (*domain.Template, error) {
	if t, ok := f.byID[id]; ok {
		return t, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeTemplateRepo) ListByOrganizerID(ctx context.Context, organizerID string) ([]*domain.Template, error) {
	var out []*domain.Template
	for _, t := range f.byID {
		if t.OrganizerID == organizerID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeTemplateRepo) IncrementUsage(ctx context.Context, id string) error {
	t, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	t.UsageCount++
	return nil
}

func (f *fakeTemplateRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeLogRepo is an in-memory EmailLogRepository for tests.
type fakeLogRepo struct {
	logs   []*domain.EmailLog
	nextID int
}

func newFakeLogRepo() *fakeLogRepo {
	return &fakeLogRepo{nextID: 1}
}

func (f *fakeLogRepo) Create(ctx context.Context, l *domain.EmailLog) error {
	l.ID = fmt.Sprintf("log-%d", f.nextID)
	f.nextID++
	f.logs = append(f.logs, l)
	return nil
}

func (f *fakeLogRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.EmailLog, error) {
	var out []*domain.EmailLog
	for _, l := range f.logs {
		if l.EventID == eventID {
			out = append(out, l)
		}
	}
	return out, nil
}

// fakeSnapshotRepo is an in-memory AnalyticsSnapshotRepository for tests.
type fakeSnapshotRepo struct {
	snaps  []*domain.AnalyticsSnapshot
	nextID int
}

func newFakeSnapshotRepo() *fakeSnapshotRepo {
	return &fakeSnapshotRepo{nextID: 1}
}

func (f *fakeSnapshotRepo) Create(ctx context.Context, s *domain.AnalyticsSnapshot) error {
	s.ID = fmt.Sprintf("snap-%d", f.nextID)
	f.nextID++
	f.snaps = append(f.snaps, s)
	return nil
}

func (f *fakeSnapshotRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.AnalyticsSnapshot, error) {
	var out []*domain.AnalyticsSnapshot
	for _, s := range f.snaps {
		if s.EventID == eventID {
			out = append(out, s)
		}
	}
	return out, nil
}

// fakeEmailService records sent emails instead of delivering them.
type fakeEmailService struct {
	confirmations []*domain.RegistrationConfirmationEmailData
	invitations   []*domain.TeamInvitationEmailData
	announcements [][]string
	err           error
}

func (f *fakeEmailService) SendRegistrationConfirmation(ctx context.Context, data *domain.RegistrationConfirmationEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.confirmations = append(f.confirmations, data)
	return nil
}

func (f *fakeEmailService) SendTeamInvitation(ctx context.Context, data *domain.TeamInvitationEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.invitations = append(f.invitations, data)
	return nil
}

func (f *fakeEmailService) SendAnnouncement(ctx context.Context, to []string, subject, message string) error {
	if f.err != nil {
		return f.err
	}
	f.announcements = append(f.announcements, to)
	return nil
}

// fakeQR encodes payloads as a stub data URL.
type fakeQR struct {
	err  error
	last domain.QRPayload
}

func (f *fakeQR) Encode(payload domain.QRPayload) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.last = payload
	return "data:image/png;base64,stub-" + payload.RegistrationID, nil
}

// fakeHasher is a transparent PasswordHasher for tests.
type fakeHasher struct{}

func (fakeHasher) GenerateSalt() (string, error) { return "salt", nil }

func (fakeHasher) Hash(salt, password string) (string, error) {
	return "h:" + salt + ":" + password, nil
}

func (fakeHasher) Compare(hash, salt, password string) error {
	if hash != "h:"+salt+":"+password {
		return fmt.Errorf("password mismatch")
	}
	return nil
}

// fakeTokenIssuer issues predictable tokens for tests.
type fakeTokenIssuer struct{}

func (fakeTokenIssuer) Issue(userID, email, role string, expiry time.Duration) (string, error) {
	return "tok-" + userID, nil
}
