package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventms/internal/domain"
)

type teamInvitationRepository struct {
	DB *sql.DB
}

func NewTeamInvitationRepository(db *sql.DB) domain.TeamInvitationRepository {
	return &teamInvitationRepository{DB: db}
}

const invitationColumns = `id, event_id, invited_by, email, role, status, token, expires_at, created_at, updated_at`

func (r *teamInvitationRepository) Create(ctx context.Context, inv *domain.TeamInvitation) error {
	query := `
		INSERT INTO team_invitations (event_id, invited_by, email, role, status, token, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		inv.EventID, inv.InvitedBy, inv.Email, inv.Role, inv.Status, inv.Token, inv.ExpiresAt, inv.CreatedAt, inv.UpdatedAt,
	).Scan(&inv.ID)
}

func (r *teamInvitationRepository) GetPendingByToken(ctx context.Context, token string) (*domain.TeamInvitation, error) {
	query := `
		SELECT ` + invitationColumns + `
		FROM team_invitations
		WHERE token = $1 AND status = 'pending'
	`
	inv, err := scanInvitation(r.DB.QueryRowContext(ctx, query, token))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return inv, nil
}

func (r *teamInvitationRepository) ListPendingByEventID(ctx context.Context, eventID string) ([]*domain.TeamInvitation, error) {
	query := `
		SELECT ` + invitationColumns + `
		FROM team_invitations
		WHERE event_id = $1 AND status = 'pending'
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	invs := make([]*domain.TeamInvitation, 0)
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		invs = append(invs, inv)
	}
	return invs, rows.Err()
}

func (r *teamInvitationRepository) SetStatus(ctx context.Context, id, status string) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE team_invitations SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanInvitation(row rowScanner) (*domain.TeamInvitation, error) {
	inv := &domain.TeamInvitation{}
	err := row.Scan(
		&inv.ID, &inv.EventID, &inv.InvitedBy, &inv.Email, &inv.Role,
		&inv.Status, &inv.Token, &inv.ExpiresAt, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return inv, nil
}
