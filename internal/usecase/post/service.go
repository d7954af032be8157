// Package post provides the post listing use case.
package post

import (
	"context"
	"fmt"

	"signal-feed/internal/common/pagination"
	"signal-feed/internal/domain/entity"
	"signal-feed/internal/repository"
)

type Service struct {
	Repo       repository.PostRepository
	Pagination pagination.Config
}

// List returns one keyset page of posts.
func (s *Service) List(ctx context.Context, filters repository.PostFilters, req pagination.Request) (pagination.Page[*entity.Post], error) {
	page, err := s.Repo.List(ctx, filters, req.WithDefaults(s.Pagination))
	if err != nil {
		return pagination.Page[*entity.Post]{}, fmt.Errorf("list posts: %w", err)
	}
	return page, nil
}
