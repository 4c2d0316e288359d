package purposes

import (
	"context"
	"log/slog"

	"github.com/pawan-gold/goldcrest/internal/backend"
	"github.com/pawan-gold/goldcrest/internal/directory"
	"github.com/pawan-gold/goldcrest/internal/shared"
)

// API is the subset of the backend client the purpose pages need.
type API interface {
	ListPurposes(ctx context.Context) ([]backend.Purpose, error)
	GetPurpose(ctx context.Context, id int64) (backend.Purpose, error)
	CreatePurpose(ctx context.Context, input backend.PurposeInput) error
	UpdatePurpose(ctx context.Context, id int64, input backend.PurposeInput) error
	DeletePurpose(ctx context.Context, id int64) error
}

// Service drives the purpose listing and mutations.
type Service struct {
	api       API
	directory *directory.Service
	logger    *slog.Logger
}

// NewService constructs a Service instance.
func NewService(api API, dir *directory.Service, logger *slog.Logger) *Service {
	return &Service{api: api, directory: dir, logger: logger}
}

// List returns all purposes. The collection stays small enough that the
// page never paginates.
func (s *Service) List(ctx context.Context) ([]backend.Purpose, error) {
	return shared.RetryOnce(ctx, func(ctx context.Context) ([]backend.Purpose, error) {
		return s.api.ListPurposes(ctx)
	})
}

// Get fetches one purpose.
func (s *Service) Get(ctx context.Context, id int64) (backend.Purpose, error) {
	return shared.RetryOnce(ctx, func(ctx context.Context) (backend.Purpose, error) {
		return s.api.GetPurpose(ctx, id)
	})
}

// Create stores a new purpose. Mutations are never retried.
func (s *Service) Create(ctx context.Context, input backend.PurposeInput) error {
	if err := s.api.CreatePurpose(ctx, input); err != nil {
		return err
	}
	s.directory.Invalidate(ctx)
	return nil
}

// Update rewrites an existing purpose.
func (s *Service) Update(ctx context.Context, id int64, input backend.PurposeInput) error {
	if err := s.api.UpdatePurpose(ctx, id, input); err != nil {
		return err
	}
	s.directory.Invalidate(ctx)
	return nil
}

// Delete removes a purpose.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.api.DeletePurpose(ctx, id); err != nil {
		return err
	}
	s.directory.Invalidate(ctx)
	return nil
}
