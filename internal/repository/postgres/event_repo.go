package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"eventms/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

const eventColumns = `id, title, date, location, description, owner_id, capacity, waitlist_enabled, registration_deadline, status, created_at, updated_at`

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (title, date, location, description, owner_id, capacity, waitlist_enabled, registration_deadline, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	var capacity sql.NullInt64
	if e.Capacity != nil {
		capacity = sql.NullInt64{Int64: int64(*e.Capacity), Valid: true}
	}
	var deadline sql.NullTime
	if e.RegistrationDeadline != nil {
		deadline = sql.NullTime{Time: *e.RegistrationDeadline, Valid: true}
	}
	return r.DB.QueryRowContext(ctx, query,
		e.Title, e.Date, e.Location, e.Description, e.OwnerID,
		capacity, e.WaitlistEnabled, deadline, e.Status, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) ListByMember(ctx context.Context, userID string) ([]*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE owner_id = $1
		   OR id IN (SELECT event_id FROM event_team_members WHERE user_id = $1)
		ORDER BY created_at DESC
	`
	return r.list(ctx, query, userID)
}

func (r *eventRepository) ListAll(ctx context.Context) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *eventRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Event, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, eventID string, upd domain.EventUpdate) (*domain.Event, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	n := 1
	add := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, n))
		args = append(args, value)
		n++
	}
	if upd.Title != nil {
		add("title", *upd.Title)
	}
	if upd.Date != nil {
		add("date", *upd.Date)
	}
	if upd.Location != nil {
		add("location", *upd.Location)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.ClearCapacity {
		setClauses = append(setClauses, "capacity = NULL")
	} else if upd.Capacity != nil {
		add("capacity", *upd.Capacity)
	}
	if upd.WaitlistEnabled != nil {
		add("waitlist_enabled", *upd.WaitlistEnabled)
	}
	if upd.ClearDeadline {
		setClauses = append(setClauses, "registration_deadline = NULL")
	} else if upd.RegistrationDeadline != nil {
		add("registration_deadline", *upd.RegistrationDeadline)
	}
	if upd.Status != nil {
		add("status", *upd.Status)
	}
	args = append(args, eventID)
	query := fmt.Sprintf(`
		UPDATE events SET %s
		WHERE id = $%d
		RETURNING `+eventColumns+`
	`, strings.Join(setClauses, ", "), n)
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM events WHERE owner_id = $1`, ownerID).Scan(&count)
	return count, err
}

func (r *eventRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&count)
	return count, err
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var capacity sql.NullInt64
	var deadline sql.NullTime
	err := row.Scan(
		&e.ID, &e.Title, &e.Date, &e.Location, &e.Description, &e.OwnerID,
		&capacity, &e.WaitlistEnabled, &deadline, &e.Status, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if capacity.Valid {
		c := int(capacity.Int64)
		e.Capacity = &c
	}
	if deadline.Valid {
		d := deadline.Time
		e.RegistrationDeadline = &d
	}
	return e, nil
}
