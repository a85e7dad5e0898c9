package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"eventms/internal/domain"
)

type stakeholderGroupRepository struct {
	DB *sql.DB
}

func NewStakeholderGroupRepository(db *sql.DB) domain.StakeholderGroupRepository {
	return &stakeholderGroupRepository{DB: db}
}

func (r *stakeholderGroupRepository) Create(ctx context.Context, g *domain.StakeholderGroup) error {
	fields, err := json.Marshal(g.Fields)
	if err != nil {
		return fmt.Errorf("marshal fields: %w", err)
	}
	query := `
		INSERT INTO stakeholder_groups (event_id, name, fields, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, g.EventID, g.Name, fields, g.CreatedAt, g.UpdatedAt).Scan(&g.ID)
}

func (r *stakeholderGroupRepository) GetByID(ctx context.Context, id string) (*domain.StakeholderGroup, error) {
	query := `
		SELECT id, event_id, name, fields, created_at, updated_at
		FROM stakeholder_groups
		WHERE id = $1
	`
	g, err := scanGroup(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return g, nil
}

func (r *stakeholderGroupRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.StakeholderGroup, error) {
	query := `
		SELECT id, event_id, name, fields, created_at, updated_at
		FROM stakeholder_groups
		WHERE event_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	groups := make([]*domain.StakeholderGroup, 0)
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (r *stakeholderGroupRepository) Update(ctx context.Context, id, name string, fields []domain.FieldDefinition) (*domain.StakeholderGroup, error) {
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("marshal fields: %w", err)
	}
	query := `
		UPDATE stakeholder_groups SET name = $1, fields = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING id, event_id, name, fields, created_at, updated_at
	`
	g, err := scanGroup(r.DB.QueryRowContext(ctx, query, name, raw, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return g, nil
}

func (r *stakeholderGroupRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM stakeholder_groups WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *stakeholderGroupRepository) DeleteByEventID(ctx context.Context, eventID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM stakeholder_groups WHERE event_id = $1`, eventID)
	return err
}

func scanGroup(row rowScanner) (*domain.StakeholderGroup, error) {
	g := &domain.StakeholderGroup{}
	var fields []byte
	if err := row.Scan(&g.ID, &g.EventID, &g.Name, &fields, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(fields, &g.Fields); err != nil {
		return nil, fmt.Errorf("unmarshal fields: %w", err)
	}
	return g, nil
}
