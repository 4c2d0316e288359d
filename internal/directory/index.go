package directory

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pawan-gold/goldcrest/internal/backend"
	"github.com/pawan-gold/goldcrest/internal/shared"
)

// DefaultTTL bounds how long a side-loaded listing survives without a
// mutation bumping it out.
const DefaultTTL = 10 * time.Minute

// API is the slice of the backend client the directory needs.
type API interface {
	ListPurposes(ctx context.Context) ([]backend.Purpose, error)
	ListStaff(ctx context.Context) ([]backend.Staff, error)
}

// Service maintains the side-loaded Purpose and Staff collections and the
// id-to-name index built from them. Reads go through the versioned Redis
// cache with a single retry; a mutation anywhere calls Invalidate.
type Service struct {
	api    API
	cache  *Cache
	logger *slog.Logger
}

// NewService wires the directory against the backend client and cache.
func NewService(api API, cache *Cache, logger *slog.Logger) *Service {
	return &Service{api: api, cache: cache, logger: logger}
}

// Purposes returns the purpose collection, cached.
func (s *Service) Purposes(ctx context.Context) ([]backend.Purpose, error) {
	key, err := s.cache.BuildKey(ctx, "directory", "purposes")
	if err != nil {
		return nil, err
	}
	var purposes []backend.Purpose
	loader := func(ctx context.Context) (interface{}, error) {
		return shared.RetryOnce(ctx, func(ctx context.Context) ([]backend.Purpose, error) {
			return s.api.ListPurposes(ctx)
		})
	}
	if err := s.cache.FetchJSON(ctx, key, &purposes, loader); err != nil {
		return nil, err
	}
	return purposes, nil
}

// StaffList returns the staff collection, cached.
func (s *Service) StaffList(ctx context.Context) ([]backend.Staff, error) {
	key, err := s.cache.BuildKey(ctx, "directory", "staff")
	if err != nil {
		return nil, err
	}
	var staff []backend.Staff
	loader := func(ctx context.Context) (interface{}, error) {
		return shared.RetryOnce(ctx, func(ctx context.Context) ([]backend.Staff, error) {
			return s.api.ListStaff(ctx)
		})
	}
	if err := s.cache.FetchJSON(ctx, key, &staff, loader); err != nil {
		return nil, err
	}
	return staff, nil
}

// Index builds the id-to-name lookup from both collections. A failed load
// degrades to an empty index so callers fall back to placeholder labels
// instead of failing the whole page.
func (s *Service) Index(ctx context.Context) *Index {
	idx := &Index{purposes: map[int64]string{}, staff: map[int64]string{}}
	purposes, err := s.Purposes(ctx)
	if err != nil {
		s.logWarn("load purposes for index", err)
	}
	for _, p := range purposes {
		idx.purposes[p.ID] = p.Purpose
	}
	staff, err := s.StaffList(ctx)
	if err != nil {
		s.logWarn("load staff for index", err)
	}
	for _, st := range staff {
		idx.staff[st.ID] = st.Name
	}
	return idx
}

// Invalidate bumps the cache version after a mutation so every listing is
// refetched on next read.
func (s *Service) Invalidate(ctx context.Context) {
	if err := s.cache.Bump(ctx); err != nil {
		s.logWarn("bump directory cache", err)
	}
}

func (s *Service) logWarn(msg string, err error) {
	if s.logger != nil {
		s.logger.Warn(msg, slog.Any("error", err))
	}
}

// Index resolves purpose and staff ids to display names.
type Index struct {
	purposes map[int64]string
	staff    map[int64]string
}

// NewIndex builds an index directly from collections; used by tests and by
// callers that already hold the listings.
func NewIndex(purposes []backend.Purpose, staff []backend.Staff) *Index {
	idx := &Index{purposes: map[int64]string{}, staff: map[int64]string{}}
	for _, p := range purposes {
		idx.purposes[p.ID] = p.Purpose
	}
	for _, st := range staff {
		idx.staff[st.ID] = st.Name
	}
	return idx
}

// PurposeName resolves a purpose id, substituting a placeholder on miss. A
// miss is never an error.
func (i *Index) PurposeName(id int64) string {
	if i != nil {
		if name, ok := i.purposes[id]; ok {
			return name
		}
	}
	return fmt.Sprintf("Purpose %d", id)
}

// StaffName resolves a staff id, substituting a placeholder on miss.
func (i *Index) StaffName(id int64) string {
	if i != nil {
		if name, ok := i.staff[id]; ok {
			return name
		}
	}
	return fmt.Sprintf("Staff %d", id)
}
