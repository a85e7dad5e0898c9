package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"eventms/internal/domain"
)

type emailLogRepository struct {
	DB *sql.DB
}

func NewEmailLogRepository(db *sql.DB) domain.EmailLogRepository {
	return &emailLogRepository{DB: db}
}

func (r *emailLogRepository) Create(ctx context.Context, l *domain.EmailLog) error {
	groupIDs, err := json.Marshal(l.GroupIDs)
	if err != nil {
		return fmt.Errorf("marshal group ids: %w", err)
	}
	query := `
		INSERT INTO email_logs (event_id, group_ids, subject, message, recipient_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, l.EventID, groupIDs, l.Subject, l.Message, l.RecipientCount, l.CreatedAt).Scan(&l.ID)
}

func (r *emailLogRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.EmailLog, error) {
	query := `
		SELECT id, event_id, group_ids, subject, message, recipient_count, created_at
		FROM email_logs
		WHERE event_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	logs := make([]*domain.EmailLog, 0)
	for rows.Next() {
		l := &domain.EmailLog{}
		var groupIDs []byte
		if err := rows.Scan(&l.ID, &l.EventID, &groupIDs, &l.Subject, &l.Message, &l.RecipientCount, &l.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(groupIDs, &l.GroupIDs); err != nil {
			return nil, fmt.Errorf("unmarshal group ids: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
