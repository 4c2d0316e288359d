package customers

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"

	"github.com/pawan-gold/goldcrest/internal/shared"
)

func TestExportWritesHeaderAndRows(t *testing.T) {
	api := &stubAPI{customers: seedCustomers(7)}
	svc := newTestService(api)

	var buf bytes.Buffer
	n, err := svc.Export(context.Background(), &buf, "")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if n != 7 {
		t.Fatalf("expected 7 rows exported, got %d", n)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse exported csv: %v", err)
	}
	if len(records) != 8 {
		t.Fatalf("expected header plus 7 rows, got %d", len(records))
	}
	if records[0][0] != "ID" || records[0][1] != "Name" {
		t.Fatalf("unexpected header: %v", records[0])
	}
	if records[1][1] != "Customer 001" || records[1][4] != "Gold loan" {
		t.Fatalf("row should carry enriched names: %v", records[1])
	}
}

func TestExportQuotesAwkwardFields(t *testing.T) {
	api := &stubAPI{customers: seedCustomers(1)}
	api.customers[0].Address = `Shop 4, "Gold Lane"` + "\nSolapur"
	svc := newTestService(api)

	var buf bytes.Buffer
	if _, err := svc.Export(context.Background(), &buf, ""); err != nil {
		t.Fatalf("export: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("quoted field should survive a round trip: %v", err)
	}
	if records[1][3] != api.customers[0].Address {
		t.Fatalf("address mangled: %q", records[1][3])
	}
}

func TestExportEmptySetReturnsNoRecords(t *testing.T) {
	api := &stubAPI{}
	svc := newTestService(api)

	var buf bytes.Buffer
	_, err := svc.Export(context.Background(), &buf, "")
	if !errors.Is(err, shared.ErrNoRecords) {
		t.Fatalf("expected ErrNoRecords, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("nothing should be written for an empty export")
	}
}

func TestExportAppliesDateFloor(t *testing.T) {
	api := &stubAPI{customers: seedCustomers(4)}
	api.customers[0].JoiningDate = "2026-07-31"
	svc := newTestService(api)

	var buf bytes.Buffer
	n, err := svc.Export(context.Background(), &buf, "2026-08-01")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected the July record dropped, got %d rows", n)
	}
	if api.filterCalls == 0 {
		t.Fatalf("date-scoped export should use the filter endpoint")
	}
}

func TestExportDrainsMultiplePages(t *testing.T) {
	api := &stubAPI{customers: seedCustomers(exportPageSize*2 + 30)}
	svc := newTestService(api)

	var buf bytes.Buffer
	n, err := svc.Export(context.Background(), &buf, "")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if n != exportPageSize*2+30 {
		t.Fatalf("expected full drain, got %d rows", n)
	}
	if api.listCalls != 3 {
		t.Fatalf("expected 3 pages fetched, got %d", api.listCalls)
	}
}

// The drain gives up after 50 pages, so anything beyond 5000 records is cut
// off. Deliberate: this guards the backend against unbounded export loops.
func TestExportStopsAtPageCap(t *testing.T) {
	api := &stubAPI{customers: seedCustomers(exportMaxPages*exportPageSize + 40)}
	svc := newTestService(api)

	var buf bytes.Buffer
	n, err := svc.Export(context.Background(), &buf, "")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if n != exportMaxPages*exportPageSize {
		t.Fatalf("expected cap at %d rows, got %d", exportMaxPages*exportPageSize, n)
	}
	if api.listCalls != exportMaxPages {
		t.Fatalf("expected exactly %d page fetches, got %d", exportMaxPages, api.listCalls)
	}
}

func TestExportFilename(t *testing.T) {
	if got := ExportFilename(""); got != "customers_all.csv" {
		t.Fatalf("unexpected filename: %q", got)
	}
	if got := ExportFilename("2026-08-01"); got != "customers_from_2026-08-01.csv" {
		t.Fatalf("unexpected filename: %q", got)
	}
}
