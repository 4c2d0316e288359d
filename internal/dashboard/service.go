package dashboard

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/pawan-gold/goldcrest/internal/backend"
	"github.com/pawan-gold/goldcrest/internal/shared"
)

// API is the subset of the backend client the dashboard needs.
type API interface {
	LastNDays(ctx context.Context, days int) ([]backend.DailyCount, error)
	StaffCounts(ctx context.Context, days *int) ([]backend.StaffCount, error)
	ListCustomers(ctx context.Context, page, limit int, purposeID *int64) (backend.CustomerPage, error)
	ListPurposes(ctx context.Context) ([]backend.Purpose, error)
}

// Panel identifies one independently loaded section of the overview.
type Panel string

const (
	PanelDaily     Panel = "daily"
	PanelTrend     Panel = "trend"
	PanelStaff     Panel = "staff"
	PanelPurposes  Panel = "purposes"
	PanelCustomers Panel = "customers"
	PanelRecent    Panel = "recent"
)

const staffLeaderboardDays = 30

// Overview aggregates every panel of the landing page. A panel whose load
// failed carries its zero value and an entry in Failed; the page still
// renders the rest.
type Overview struct {
	Daily7        []backend.DailyCount
	Trend         Trend
	StaffCounts   []backend.StaffCount
	PurposeTotal  int
	CustomerTotal int
	Recent        []backend.Customer
	Failed        map[Panel]error
}

// Degraded reports whether any panel failed to load.
func (o Overview) Degraded() bool {
	return len(o.Failed) > 0
}

// Service assembles the overview from the backend.
type Service struct {
	api    API
	logger *slog.Logger
}

// NewService constructs a Service instance.
func NewService(api API, logger *slog.Logger) *Service {
	return &Service{api: api, logger: logger}
}

// Load fetches all panels concurrently. Each panel degrades on its own; one
// failing fetch never cancels the others.
func (s *Service) Load(ctx context.Context) Overview {
	ov := Overview{Failed: make(map[Panel]error)}
	var g errgroup.Group
	var mu sync.Mutex

	record := func(panel Panel, err error) {
		mu.Lock()
		ov.Failed[panel] = err
		mu.Unlock()
		if s.logger != nil {
			s.logger.Warn("dashboard panel load failed", slog.String("panel", string(panel)), slog.Any("error", err))
		}
	}

	g.Go(func() error {
		series, err := shared.RetryOnce(ctx, func(ctx context.Context) ([]backend.DailyCount, error) {
			return s.api.LastNDays(ctx, 7)
		})
		if err != nil {
			record(PanelDaily, err)
			return nil
		}
		ov.Daily7 = series
		return nil
	})

	g.Go(func() error {
		series, err := shared.RetryOnce(ctx, func(ctx context.Context) ([]backend.DailyCount, error) {
			return s.api.LastNDays(ctx, 14)
		})
		if err != nil {
			record(PanelTrend, err)
			return nil
		}
		counts := make([]int, len(series))
		for i, point := range series {
			counts[i] = point.Count
		}
		ov.Trend = WeekOverWeek(counts)
		return nil
	})

	g.Go(func() error {
		days := staffLeaderboardDays
		counts, err := shared.RetryOnce(ctx, func(ctx context.Context) ([]backend.StaffCount, error) {
			return s.api.StaffCounts(ctx, &days)
		})
		if err != nil {
			record(PanelStaff, err)
			return nil
		}
		ov.StaffCounts = counts
		return nil
	})

	g.Go(func() error {
		purposes, err := shared.RetryOnce(ctx, func(ctx context.Context) ([]backend.Purpose, error) {
			return s.api.ListPurposes(ctx)
		})
		if err != nil {
			record(PanelPurposes, err)
			return nil
		}
		ov.PurposeTotal = len(purposes)
		return nil
	})

	g.Go(func() error {
		page, err := shared.RetryOnce(ctx, func(ctx context.Context) (backend.CustomerPage, error) {
			return s.api.ListCustomers(ctx, 1, 20, nil)
		})
		if err != nil {
			record(PanelCustomers, err)
			return nil
		}
		ov.CustomerTotal = page.TotalRecords
		return nil
	})

	g.Go(func() error {
		page, err := shared.RetryOnce(ctx, func(ctx context.Context) (backend.CustomerPage, error) {
			return s.api.ListCustomers(ctx, 1, 5, nil)
		})
		if err != nil {
			record(PanelRecent, err)
			return nil
		}
		ov.Recent = page.Data
		return nil
	})

	_ = g.Wait()
	return ov
}
