package brief

import (
	"context"
	"fmt"
	"strings"

	"signal-feed/internal/common/pagination"
	"signal-feed/internal/domain/entity"
	"signal-feed/internal/repository"
)

// Service provides brief read use cases.
type Service struct {
	Repo       repository.BriefRepository
	Pagination pagination.Config
}

// List returns one keyset page of briefs.
// The limit is defaulted and capped; sort and cursor are passed through untouched.
func (s *Service) List(ctx context.Context, filters repository.BriefFilters, req pagination.Request) (pagination.Page[*entity.Brief], error) {
	page, err := s.Repo.List(ctx, filters, req.WithDefaults(s.Pagination))
	if err != nil {
		return pagination.Page[*entity.Brief]{}, fmt.Errorf("list briefs: %w", err)
	}
	return page, nil
}

// Get retrieves a brief by slug.
// Returns ErrInvalidSlug for an empty slug and ErrBriefNotFound if none matches.
func (s *Service) Get(ctx context.Context, slug string) (*entity.Brief, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrInvalidSlug
	}
	b, err := s.Repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get brief: %w", err)
	}
	if b == nil {
		return nil, ErrBriefNotFound
	}
	return b, nil
}
