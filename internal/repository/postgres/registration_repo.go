package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"eventms/internal/domain"
)

type registrationRepository struct {
	DB *sql.DB
}

func NewRegistrationRepository(db *sql.DB) domain.RegistrationRepository {
	return &registrationRepository{DB: db}
}

const registrationColumns = `id, event_id, group_id, answers, qr_code, status, checked_in, created_at, updated_at`

func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	answers, err := json.Marshal(reg.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}
	query := `
		INSERT INTO registrations (event_id, group_id, answers, qr_code, status, checked_in, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		reg.EventID, reg.GroupID, answers, reg.QRCode, reg.Status, reg.CheckedIn, reg.CreatedAt, reg.UpdatedAt,
	).Scan(&reg.ID)
}

func (r *registrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE id = $1`
	reg, err := scanRegistration(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (r *registrationRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM registrations
		WHERE event_id = $1
		ORDER BY created_at DESC
	`
	return r.list(ctx, query, eventID)
}

func (r *registrationRepository) ListByGroupIDs(ctx context.Context, eventID string, groupIDs []string) ([]*domain.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM registrations
		WHERE event_id = $1 AND group_id = ANY($2)
		ORDER BY created_at DESC
	`
	return r.list(ctx, query, eventID, pq.Array(groupIDs))
}

func (r *registrationRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Registration, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	regs := make([]*domain.Registration, 0)
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

func (r *registrationRepository) SetQRCode(ctx context.Context, id, qrCode string) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE registrations SET qr_code = $1 WHERE id = $2`, qrCode, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *registrationRepository) SetCheckedIn(ctx context.Context, id string, checkedIn bool) (*domain.Registration, error) {
	query := `
		UPDATE registrations SET checked_in = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + registrationColumns + `
	`
	reg, err := scanRegistration(r.DB.QueryRowContext(ctx, query, checkedIn, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (r *registrationRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM registrations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *registrationRepository) CountByEventID(ctx context.Context, eventID string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM registrations WHERE event_id = $1`, eventID).Scan(&count)
	return count, err
}

func (r *registrationRepository) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM registrations r
		JOIN events e ON e.id = r.event_id
		WHERE e.owner_id = $1
	`
	var count int
	err := r.DB.QueryRowContext(ctx, query, ownerID).Scan(&count)
	return count, err
}

func (r *registrationRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM registrations`).Scan(&count)
	return count, err
}

func scanRegistration(row rowScanner) (*domain.Registration, error) {
	reg := &domain.Registration{}
	var answers []byte
	err := row.Scan(
		&reg.ID, &reg.EventID, &reg.GroupID, &answers, &reg.QRCode,
		&reg.Status, &reg.CheckedIn, &reg.CreatedAt, &reg.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(answers, &reg.Answers); err != nil {
		return nil, fmt.Errorf("unmarshal answers: %w", err)
	}
	return reg, nil
}
