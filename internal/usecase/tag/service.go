// Package tag provides the tag aggregate listing use case.
package tag

import (
	"context"
	"fmt"

	"signal-feed/internal/common/pagination"
	"signal-feed/internal/domain/entity"
	"signal-feed/internal/repository"
)

type Service struct {
	Repo       repository.TagRepository
	Pagination pagination.Config
}

// List pages tags by usage over the entity kind named by kind.
// An unknown kind is a validation error; an empty kind means briefs.
func (s *Service) List(ctx context.Context, kind string, req pagination.Request) (pagination.Page[entity.TagAggregate], error) {
	k, err := repository.ParseTagKind(kind)
	if err != nil {
		return pagination.Page[entity.TagAggregate]{}, err
	}
	page, err := s.Repo.ListAggregates(ctx, k, req.WithDefaults(s.Pagination))
	if err != nil {
		return pagination.Page[entity.TagAggregate]{}, fmt.Errorf("list tags: %w", err)
	}
	return page, nil
}
