package domain

import (
	"context"
	"time"
)

// AnalyticsSummary holds the headline registration counters for one event.
type AnalyticsSummary struct {
	TotalRegistrations int    `json:"total_registrations"`
	CheckedIn          int    `json:"checked_in"`
	Pending            int    `json:"pending"`
	CheckInRate        string `json:"check_in_rate"` // percentage, one decimal
}

// GroupStats is the per-stakeholder-group registration breakdown.
type GroupStats struct {
	GroupID    string `json:"group_id"`
	GroupName  string `json:"group_name"`
	Total      int    `json:"total"`
	CheckedIn  int    `json:"checked_in"`
	Percentage string `json:"percentage"` // share of all registrations, one decimal
}

// DailyCount is one day of the 7-day registration trend.
type DailyCount struct {
	Date  string `json:"date"` // e.g. "Jun 1"
	Count int    `json:"count"`
}

// HourlyCount is one bucket of the 24-hour registration histogram.
type HourlyCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// EventAnalytics is the full computed metric set for one event.
// swagger:model EventAnalytics
type EventAnalytics struct {
	Summary              AnalyticsSummary `json:"summary"`
	RegistrationsByGroup []GroupStats     `json:"registrations_by_group"`
	DailyTrend           []DailyCount     `json:"daily_trend"`
	RegistrationsByHour  []HourlyCount    `json:"registrations_by_hour"`
	PeakRegistrationHour int              `json:"peak_registration_hour"`
	AverageCheckInTime   string           `json:"average_check_in_time"` // minutes, one decimal
}

// AnalyticsSnapshot is a frozen, point-in-time copy of an event's metrics.
// swagger:model AnalyticsSnapshot
type AnalyticsSnapshot struct {
	ID        string         `json:"id"`
	EventID   string         `json:"event_id"`
	Metrics   EventAnalytics `json:"metrics"`
	CreatedAt time.Time      `json:"created_at"`
}

// AnalyticsSnapshotRepository defines storage operations for analytics snapshots.
type AnalyticsSnapshotRepository interface {
	Create(ctx context.Context, snap *AnalyticsSnapshot) error
	ListByEventID(ctx context.Context, eventID string) ([]*AnalyticsSnapshot, error)
}

// AnalyticsService computes and snapshots event metrics.
type AnalyticsService interface {
	GetEventAnalytics(ctx context.Context, eventID string) (*EventAnalytics, error)
	CreateSnapshot(ctx context.Context, eventID string) (*AnalyticsSnapshot, error)
	ListSnapshots(ctx context.Context, eventID string) ([]*AnalyticsSnapshot, error)
}
