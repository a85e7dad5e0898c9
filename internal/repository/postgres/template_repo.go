package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"eventms/internal/domain"
)

type templateRepository struct {
	DB *sql.DB
}

func NewTemplateRepository(db *sql.DB) domain.TemplateRepository {
	return &templateRepository{DB: db}
}

func (r *templateRepository) Create(ctx context.Context, tpl *domain.Template) error {
	data, err := json.Marshal(tpl.Data)
	if err != nil {
		return fmt.Errorf("marshal template data: %w", err)
	}
	query := `
		INSERT INTO templates (organizer_id, name, data, usage_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, tpl.OrganizerID, tpl.Name, data, tpl.UsageCount, tpl.CreatedAt, tpl.UpdatedAt).Scan(&tpl.ID)
}

func (r *templateRepository) GetByID(ctx context.Context, id string) (*domain.Template, error) {
	query := `
		SELECT id, organizer_id, name, data, usage_count, created_at, updated_at
		FROM templates
		WHERE id = $1
	`
	tpl, err := scanTemplate(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return tpl, nil
}

func (r *templateRepository) ListByOrganizerID(ctx context.Context, organizerID string) ([]*domain.Template, error) {
	query := `
		SELECT id, organizer_id, name, data, usage_count, created_at, updated_at
		FROM templates
		WHERE organizer_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, organizerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	templates := make([]*domain.Template, 0)
	for rows.Next() {
		tpl, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, tpl)
	}
	return templates, rows.Err()
}

func (r *templateRepository) IncrementUsage(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE templates SET usage_count = usage_count + 1, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *templateRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM templates WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanTemplate(row rowScanner) (*domain.Template, error) {
	tpl := &domain.Template{}
	var data []byte
	if err := row.Scan(&tpl.ID, &tpl.OrganizerID, &tpl.Name, &data, &tpl.UsageCount, &tpl.CreatedAt, &tpl.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &tpl.Data); err != nil {
		return nil, fmt.Errorf("unmarshal template data: %w", err)
	}
	return tpl, nil
}
