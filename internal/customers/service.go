package customers

import (
	"context"
	"log/slog"

	"github.com/pawan-gold/goldcrest/internal/backend"
	"github.com/pawan-gold/goldcrest/internal/directory"
	"github.com/pawan-gold/goldcrest/internal/shared"
)

// API is the subset of the backend client the customer pages need.
type API interface {
	ListCustomers(ctx context.Context, page, limit int, purposeID *int64) (backend.CustomerPage, error)
	FilterCustomers(ctx context.Context, page, limit int, filter backend.CustomerFilter) (backend.CustomerPage, error)
	GetCustomer(ctx context.Context, id int64) (backend.Customer, error)
	CreateCustomer(ctx context.Context, input backend.CustomerInput) error
	UpdateCustomer(ctx context.Context, id int64, patch backend.CustomerPatch) error
	DeleteCustomer(ctx context.Context, id int64) error
}

// Row is a customer record enriched with display names.
type Row struct {
	Customer    backend.Customer
	PurposeName string
	StaffName   string
}

// ListResult is one rendered page of the customer listing.
type ListResult struct {
	Rows       []Row
	Pagination shared.Pagination
	Analytics  *backend.FilterAnalytics
}

// Service drives the customer listing, export and mutations.
type Service struct {
	api       API
	directory *directory.Service
	logger    *slog.Logger
}

// NewService constructs a Service instance.
func NewService(api API, dir *directory.Service, logger *slog.Logger) *Service {
	return &Service{api: api, directory: dir, logger: logger}
}

// List runs the full pipeline: one bounded fetch, local narrowing, then
// local pagination at a fixed page size.
func (s *Service) List(ctx context.Context, q Query) (ListResult, error) {
	p := plan(q)

	page, err := shared.RetryOnce(ctx, func(ctx context.Context) (backend.CustomerPage, error) {
		if p.filter.Empty() {
			return s.api.ListCustomers(ctx, 1, p.fetchLimit, nil)
		}
		return s.api.FilterCustomers(ctx, 1, p.fetchLimit, p.filter)
	})
	if err != nil {
		return ListResult{}, err
	}

	matched := make([]backend.Customer, 0, len(page.Data))
	for _, c := range page.Data {
		if matchesLocal(c, q) {
			matched = append(matched, c)
		}
	}

	pagination := shared.NewPagination(q.Page, pageSize, len(matched))
	low, high := pagination.Slice()

	index := s.directory.Index(ctx)
	rows := make([]Row, 0, high-low)
	for _, c := range matched[low:high] {
		rows = append(rows, Row{
			Customer:    c,
			PurposeName: index.PurposeName(c.Purpose),
			StaffName:   index.StaffName(c.StaffID),
		})
	}

	return ListResult{Rows: rows, Pagination: pagination, Analytics: page.Analytics}, nil
}

// Get fetches a single record with a read retry.
func (s *Service) Get(ctx context.Context, id int64) (backend.Customer, error) {
	return shared.RetryOnce(ctx, func(ctx context.Context) (backend.Customer, error) {
		return s.api.GetCustomer(ctx, id)
	})
}

// Create stores a new record. Mutations are never retried.
func (s *Service) Create(ctx context.Context, input backend.CustomerInput) error {
	if err := s.api.CreateCustomer(ctx, input); err != nil {
		return err
	}
	s.directory.Invalidate(ctx)
	return nil
}

// Update applies a partial update to an existing record.
func (s *Service) Update(ctx context.Context, id int64, patch backend.CustomerPatch) error {
	if err := s.api.UpdateCustomer(ctx, id, patch); err != nil {
		return err
	}
	s.directory.Invalidate(ctx)
	return nil
}

// Delete removes a record.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.api.DeleteCustomer(ctx, id); err != nil {
		return err
	}
	s.directory.Invalidate(ctx)
	return nil
}
