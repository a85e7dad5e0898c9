package services

import (
	"context"
	"fmt"
	"time"

	"eventms/internal/domain"
)

type analyticsService struct {
	regRepo        domain.RegistrationRepository
	groupRepo      domain.StakeholderGroupRepository
	snapshotRepo   domain.AnalyticsSnapshotRepository
	now            func() time.Time
	contextTimeout time.Duration
}

// NewAnalyticsService creates an AnalyticsService with the given repositories.
func NewAnalyticsService(regRepo domain.RegistrationRepository,
	groupRepo domain.StakeholderGroupRepository,
	snapshotRepo domain.AnalyticsSnapshotRepository,
	timeout time.Duration,
) domain.AnalyticsService {
	return &analyticsService{
		regRepo:        regRepo,
		groupRepo:      groupRepo,
		snapshotRepo:   snapshotRepo,
		now:            time.Now,
		contextTimeout: timeout,
	}
}

func (s *analyticsService) GetEventAnalytics(ctx context.Context, eventID string) (*domain.EventAnalytics, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.compute(ctx, eventID)
}

func (s *analyticsService) CreateSnapshot(ctx context.Context, eventID string) (*domain.AnalyticsSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	metrics, err := s.compute(ctx, eventID)
	if err != nil {
		return nil, err
	}
	snap := &domain.AnalyticsSnapshot{
		EventID:   eventID,
		Metrics:   *metrics,
		CreatedAt: s.now(),
	}
	if err := s.snapshotRepo.Create(ctx, snap); err != nil {
		return nil, fmt.Errorf("create snapshot: %w", err)
	}
	return snap, nil
}

func (s *analyticsService) ListSnapshots(ctx context.Context, eventID string) ([]*domain.AnalyticsSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	snaps, err := s.snapshotRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	return snaps, nil
}

func (s *analyticsService) compute(ctx context.Context, eventID string) (*domain.EventAnalytics, error) {
	regs, err := s.regRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	groups, err := s.groupRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}

	total := len(regs)
	checkedIn := 0
	for _, r := range regs {
		if r.CheckedIn {
			checkedIn++
		}
	}

	out := &domain.EventAnalytics{
		Summary: domain.AnalyticsSummary{
			TotalRegistrations: total,
			CheckedIn:          checkedIn,
			Pending:            total - checkedIn,
			CheckInRate:        percentage(checkedIn, total),
		},
		RegistrationsByGroup: groupBreakdown(groups, regs),
		DailyTrend:           dailyTrend(regs, s.now()),
		RegistrationsByHour:  hourlyHistogram(regs),
		PeakRegistrationHour: peakHour(regs),
		AverageCheckInTime:   averageCheckInMinutes(regs),
	}
	return out, nil
}

func groupBreakdown(groups []*domain.StakeholderGroup, regs []*domain.Registration) []domain.GroupStats {
	total := len(regs)
	out := make([]domain.GroupStats, 0, len(groups))
	for _, g := range groups {
		stats := domain.GroupStats{GroupID: g.ID, GroupName: g.Name}
		for _, r := range regs {
			if r.GroupID != g.ID {
				continue
			}
			stats.Total++
			if r.CheckedIn {
				stats.CheckedIn++
			}
		}
		stats.Percentage = percentage(stats.Total, total)
		out = append(out, stats)
	}
	return out
}

// dailyTrend buckets registrations by calendar day over the last seven days,
// oldest first, today last.
func dailyTrend(regs []*domain.Registration, now time.Time) []domain.DailyCount {
	out := make([]domain.DailyCount, 0, 7)
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		count := 0
		for _, r := range regs {
			if sameDay(r.CreatedAt, day) {
				count++
			}
		}
		out = append(out, domain.DailyCount{Date: day.Format("Jan 2"), Count: count})
	}
	return out
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func hourlyHistogram(regs []*domain.Registration) []domain.HourlyCount {
	out := make([]domain.HourlyCount, 24)
	for h := range out {
		out[h].Hour = h
	}
	for _, r := range regs {
		out[r.CreatedAt.Hour()].Count++
	}
	return out
}

func peakHour(regs []*domain.Registration) int {
	var counts [24]int
	for _, r := range regs {
		counts[r.CreatedAt.Hour()]++
	}
	peak := 0
	for h, c := range counts {
		if c > counts[peak] {
			peak = h
		}
	}
	return peak
}

// averageCheckInMinutes approximates time-to-check-in as the gap between a
// registration's creation and its last update, over checked-in rows only.
func averageCheckInMinutes(regs []*domain.Registration) string {
	var sum float64
	n := 0
	for _, r := range regs {
		if !r.CheckedIn {
			continue
		}
		sum += r.UpdatedAt.Sub(r.CreatedAt).Minutes()
		n++
	}
	if n == 0 {
		return "0.0"
	}
	return fmt.Sprintf("%.1f", sum/float64(n))
}

func percentage(part, whole int) string {
	if whole == 0 {
		return "0.0"
	}
	return fmt.Sprintf("%.1f", float64(part)/float64(whole)*100)
}
