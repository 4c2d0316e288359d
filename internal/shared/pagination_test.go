package shared

import "testing"

func TestNewPaginationClampsPage(t *testing.T) {
	p := NewPagination(9, 10, 35)
	if p.TotalPages != 4 {
		t.Fatalf("expected 4 pages, got %d", p.TotalPages)
	}
	if p.Page != 4 {
		t.Fatalf("stale page should clamp to last, got %d", p.Page)
	}

	p = NewPagination(0, 10, 35)
	if p.Page != 1 {
		t.Fatalf("page below range should clamp to 1, got %d", p.Page)
	}
}

func TestNewPaginationEmptySet(t *testing.T) {
	p := NewPagination(3, 10, 0)
	if p.TotalPages != 0 {
		t.Fatalf("expected 0 pages, got %d", p.TotalPages)
	}
	low, high := p.Slice()
	if low != 0 || high != 0 {
		t.Fatalf("empty set should slice to [0,0), got [%d,%d)", low, high)
	}
	if p.HasPrev() == false && p.HasNext() {
		t.Fatalf("empty set should have no next page")
	}
}

func TestPaginationSliceBounds(t *testing.T) {
	p := NewPagination(4, 10, 35)
	low, high := p.Slice()
	if low != 30 || high != 35 {
		t.Fatalf("last partial page should slice [30,35), got [%d,%d)", low, high)
	}
	if p.HasNext() {
		t.Fatalf("last page should have no next")
	}
	if !p.HasPrev() {
		t.Fatalf("last page should have a previous")
	}
}

func TestPaginationDefaultPerPage(t *testing.T) {
	p := NewPagination(1, 0, 25)
	if p.PerPage != 10 {
		t.Fatalf("expected default per-page 10, got %d", p.PerPage)
	}
}
