package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pawan-gold/goldcrest/internal/shared"
)

func TestListCustomersDecodesPageEnvelope(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":        "success",
			"page":          2,
			"limit":         10,
			"total_records": 35,
			"total_pages":   4,
			"data": []map[string]any{
				{"id": 1, "name": "Ravi", "mob_no": "9000000001", "purpose": 1, "staff_id": 1, "joining_date": "2026-08-01", "latitude": 17.66, "longitude": 75.9},
				{"id": 2, "name": "Sneha", "mob_no": "9000000002", "purpose": 2, "staff_id": 1, "joining_date": "2026-08-02", "latitude": nil, "longitude": nil},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	page, err := client.ListCustomers(context.Background(), 2, 10, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if gotPath != "/customers" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if !strings.Contains(gotQuery, "page=2") || !strings.Contains(gotQuery, "limit=10") {
		t.Fatalf("pagination not forwarded: %q", gotQuery)
	}
	if page.TotalRecords != 35 || page.TotalPages != 4 {
		t.Fatalf("envelope metadata lost: %+v", page)
	}
	if len(page.Data) != 2 {
		t.Fatalf("expected 2 records, got %d", len(page.Data))
	}
	if !page.Data[0].HasLocation() {
		t.Fatalf("coordinate pair should decode")
	}
	if page.Data[1].HasLocation() {
		t.Fatalf("null coordinates must stay nil")
	}
}

func TestFilterCustomersForwardsPredicates(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": "success",
			"data":   []any{},
			"analytics": map[string]any{
				"match_total": 12,
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	purpose, staffID := int64(3), int64(7)
	page, err := client.FilterCustomers(context.Background(), 1, 500, CustomerFilter{
		PurposeID: &purpose,
		StaffID:   &staffID,
		StartDate: "2026-08-01",
	})
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if gotPath != "/customers/filter" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotQuery["purpose_id"][0] != "3" || gotQuery["staff_id"][0] != "7" || gotQuery["start_date"][0] != "2026-08-01" {
		t.Fatalf("predicates not forwarded: %v", gotQuery)
	}
	if page.Analytics == nil || page.Analytics.MatchTotal != 12 {
		t.Fatalf("analytics block lost: %+v", page.Analytics)
	}
}

func TestCreateCustomerPostsToAddEndpoint(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "success"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	err := client.CreateCustomer(context.Background(), CustomerInput{
		Name: "Ravi", MobNo: "9000000001", Purpose: 1, StaffID: 1, JoiningDate: "2026-08-29",
		Whatsapp: "yes", Notification: "yes",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if gotMethod != http.MethodPost || gotPath != "/add_customer" {
		t.Fatalf("unexpected request %s %s", gotMethod, gotPath)
	}
	if gotBody["name"] != "Ravi" || gotBody["mob_no"] != "9000000001" {
		t.Fatalf("body not serialised: %v", gotBody)
	}
}

func TestUpdateCustomerOmitsUnsetFields(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "success"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	name := "Renamed"
	if err := client.UpdateCustomer(context.Background(), 5, CustomerPatch{Name: &name}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if gotBody["name"] != "Renamed" {
		t.Fatalf("supplied field missing: %v", gotBody)
	}
	if _, present := gotBody["mob_no"]; present {
		t.Fatalf("unset fields must not be serialised: %v", gotBody)
	}
}

func TestNotFoundMapsToSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.StaffByMobile(context.Background(), "9000000001")
	if !errors.Is(err, shared.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestServerErrorIsGeneric(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.ListPurposes(context.Background())
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAnalyticsEndpoints(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/analytics/last-n-days":
			if r.URL.Query().Get("days") != "7" {
				t.Errorf("days not forwarded: %q", r.URL.RawQuery)
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"status": "success",
				"days":   7,
				"data": []map[string]any{
					{"date": "2026-08-29", "count": 3},
					{"date": "2026-08-28", "count": 1},
				},
			})
		case "/analytics/staff-count":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"status": "success",
				"data": []map[string]any{
					{"staff_id": 1, "staff_name": "Asha", "customer_count": 12},
				},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	daily, err := client.LastNDays(context.Background(), 7)
	if err != nil {
		t.Fatalf("last-n-days: %v", err)
	}
	if len(daily) != 2 || daily[0].Date != "2026-08-29" || daily[0].Count != 3 {
		t.Fatalf("unexpected series: %+v", daily)
	}

	counts, err := client.StaffCounts(context.Background(), nil)
	if err != nil {
		t.Fatalf("staff-count: %v", err)
	}
	if len(counts) != 1 || counts[0].StaffName != "Asha" || counts[0].CustomerCount != 12 {
		t.Fatalf("unexpected leaderboard: %+v", counts)
	}
}
