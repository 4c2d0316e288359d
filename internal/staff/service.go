package staff

import (
	"context"
	"log/slog"

	"github.com/pawan-gold/goldcrest/internal/backend"
	"github.com/pawan-gold/goldcrest/internal/directory"
	"github.com/pawan-gold/goldcrest/internal/shared"
)

// API is the subset of the backend client the staff pages need.
type API interface {
	ListStaff(ctx context.Context) ([]backend.Staff, error)
	CreateStaff(ctx context.Context, input backend.StaffInput) error
	StaffByMobile(ctx context.Context, mobile string) (backend.Staff, error)
}

// Service drives the staff listing, creation and mobile lookup.
type Service struct {
	api       API
	directory *directory.Service
	logger    *slog.Logger
}

// NewService constructs a Service instance.
func NewService(api API, dir *directory.Service, logger *slog.Logger) *Service {
	return &Service{api: api, directory: dir, logger: logger}
}

// List returns every staff record.
func (s *Service) List(ctx context.Context) ([]backend.Staff, error) {
	return shared.RetryOnce(ctx, func(ctx context.Context) ([]backend.Staff, error) {
		return s.api.ListStaff(ctx)
	})
}

// Create stores a new staff record. Mutations are never retried.
func (s *Service) Create(ctx context.Context, input backend.StaffInput) error {
	if err := s.api.CreateStaff(ctx, input); err != nil {
		return err
	}
	s.directory.Invalidate(ctx)
	return nil
}

// ByMobile looks up the staff record holding exactly this mobile number.
func (s *Service) ByMobile(ctx context.Context, mobile string) (backend.Staff, error) {
	return shared.RetryOnce(ctx, func(ctx context.Context) (backend.Staff, error) {
		return s.api.StaffByMobile(ctx, mobile)
	})
}
