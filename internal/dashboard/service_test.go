package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/pawan-gold/goldcrest/internal/backend"
)

type stubAPI struct {
	daily    map[int][]backend.DailyCount
	dailyErr error
	staff    []backend.StaffCount
	staffErr error
	purposes []backend.Purpose
	pages    map[int]backend.CustomerPage
	listErr  error
}

func (s *stubAPI) LastNDays(_ context.Context, days int) ([]backend.DailyCount, error) {
	if s.dailyErr != nil {
		return nil, s.dailyErr
	}
	return s.daily[days], nil
}

func (s *stubAPI) StaffCounts(context.Context, *int) ([]backend.StaffCount, error) {
	if s.staffErr != nil {
		return nil, s.staffErr
	}
	return s.staff, nil
}

func (s *stubAPI) ListCustomers(_ context.Context, _, limit int, _ *int64) (backend.CustomerPage, error) {
	if s.listErr != nil {
		return backend.CustomerPage{}, s.listErr
	}
	return s.pages[limit], nil
}

func (s *stubAPI) ListPurposes(context.Context) ([]backend.Purpose, error) {
	return s.purposes, nil
}

func TestLoadAssemblesEveryPanel(t *testing.T) {
	api := &stubAPI{
		daily: map[int][]backend.DailyCount{
			7:  {{Date: "2026-08-29", Count: 3}, {Date: "2026-08-28", Count: 1}},
			14: {{Count: 3}, {Count: 3}, {Count: 3}, {Count: 3}, {Count: 3}, {Count: 3}, {Count: 3}, {Count: 5}, {Count: 5}, {Count: 5}, {Count: 5}, {Count: 5}, {Count: 5}, {Count: 5}},
		},
		staff:    []backend.StaffCount{{StaffID: 1, StaffName: "Asha", CustomerCount: 12}},
		purposes: []backend.Purpose{{ID: 1}, {ID: 2}, {ID: 3}},
		pages: map[int]backend.CustomerPage{
			20: {TotalRecords: 240},
			5:  {Data: []backend.Customer{{ID: 9, Name: "Ravi"}}},
		},
	}

	ov := NewService(api, nil).Load(context.Background())

	if ov.Degraded() {
		t.Fatalf("no panel should fail: %+v", ov.Failed)
	}
	if len(ov.Daily7) != 2 || ov.Daily7[0].Count != 3 {
		t.Fatalf("unexpected daily series: %+v", ov.Daily7)
	}
	if ov.CustomerTotal != 240 {
		t.Fatalf("expected total from the page envelope, got %d", ov.CustomerTotal)
	}
	if ov.PurposeTotal != 3 {
		t.Fatalf("expected 3 purposes, got %d", ov.PurposeTotal)
	}
	if len(ov.Recent) != 1 || ov.Recent[0].Name != "Ravi" {
		t.Fatalf("unexpected recent rows: %+v", ov.Recent)
	}
	if len(ov.StaffCounts) != 1 {
		t.Fatalf("unexpected staff counts: %+v", ov.StaffCounts)
	}
	// Recent half 21 vs older half 35: down 40%.
	if ov.Trend.Percent != 40 || ov.Trend.Positive {
		t.Fatalf("unexpected trend: %+v", ov.Trend)
	}
}

func TestLoadPanelsDegradeIndependently(t *testing.T) {
	api := &stubAPI{
		dailyErr: errors.New("analytics down"),
		staff:    []backend.StaffCount{{StaffID: 1, StaffName: "Asha", CustomerCount: 2}},
		purposes: []backend.Purpose{{ID: 1}},
		pages: map[int]backend.CustomerPage{
			20: {TotalRecords: 7},
			5:  {},
		},
	}

	ov := NewService(api, nil).Load(context.Background())

	if !ov.Degraded() {
		t.Fatalf("daily panels should be marked failed")
	}
	if _, ok := ov.Failed[PanelDaily]; !ok {
		t.Fatalf("expected daily panel failure, got %+v", ov.Failed)
	}
	if _, ok := ov.Failed[PanelTrend]; !ok {
		t.Fatalf("expected trend panel failure, got %+v", ov.Failed)
	}
	// The rest still loaded.
	if ov.CustomerTotal != 7 || ov.PurposeTotal != 1 || len(ov.StaffCounts) != 1 {
		t.Fatalf("surviving panels should load: %+v", ov)
	}
}
