package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"eventms/internal/domain"
)

type teamMemberRepository struct {
	DB *sql.DB
}

func NewTeamMemberRepository(db *sql.DB) domain.TeamMemberRepository {
	return &teamMemberRepository{DB: db}
}

func (r *teamMemberRepository) Add(ctx context.Context, m *domain.TeamMember) error {
	query := `
		INSERT INTO event_team_members (event_id, user_id, role, joined_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.DB.ExecContext(ctx, query, m.EventID, m.UserID, m.Role, m.JoinedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return domain.ErrAlreadyMember
		}
		return err
	}
	return nil
}

func (r *teamMemberRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.TeamMember, error) {
	query := `
		SELECT m.event_id, m.user_id, m.role, m.joined_at, u.name, u.email
		FROM event_team_members m
		JOIN users u ON u.id = m.user_id
		WHERE m.event_id = $1
		ORDER BY m.joined_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	members := make([]*domain.TeamMember, 0)
	for rows.Next() {
		m := &domain.TeamMember{}
		if err := rows.Scan(&m.EventID, &m.UserID, &m.Role, &m.JoinedAt, &m.Name, &m.Email); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *teamMemberRepository) GetRole(ctx context.Context, eventID, userID string) (string, error) {
	query := `SELECT role FROM event_team_members WHERE event_id = $1 AND user_id = $2`
	var role string
	err := r.DB.QueryRowContext(ctx, query, eventID, userID).Scan(&role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", err
	}
	return role, nil
}

func (r *teamMemberRepository) Remove(ctx context.Context, eventID, userID string) error {
	query := `DELETE FROM event_team_members WHERE event_id = $1 AND user_id = $2`
	result, err := r.DB.ExecContext(ctx, query, eventID, userID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
