package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"eventms/internal/domain"
)

type analyticsSnapshotRepository struct {
	DB *sql.DB
}

func NewAnalyticsSnapshotRepository(db *sql.DB) domain.AnalyticsSnapshotRepository {
	return &analyticsSnapshotRepository{DB: db}
}

func (r *analyticsSnapshotRepository) Create(ctx context.Context, snap *domain.AnalyticsSnapshot) error {
	metrics, err := json.Marshal(snap.Metrics)
	if err != nil {
		return fmt.Errorf("marshal metrics: %w", err)
	}
	query := `
		INSERT INTO analytics_snapshots (event_id, metrics, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, snap.EventID, metrics, snap.CreatedAt).Scan(&snap.ID)
}

func (r *analyticsSnapshotRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.AnalyticsSnapshot, error) {
	query := `
		SELECT id, event_id, metrics, created_at
		FROM analytics_snapshots
		WHERE event_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	snaps := make([]*domain.AnalyticsSnapshot, 0)
	for rows.Next() {
		snap := &domain.AnalyticsSnapshot{}
		var metrics []byte
		if err := rows.Scan(&snap.ID, &snap.EventID, &metrics, &snap.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(metrics, &snap.Metrics); err != nil {
			return nil, fmt.Errorf("unmarshal metrics: %w", err)
		}
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}
