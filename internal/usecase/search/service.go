// Package search provides the cross-entity free-text search use case.
package search

import (
	"context"
	"fmt"
	"unicode/utf8"

	"signal-feed/internal/common/pagination"
	"signal-feed/internal/domain/entity"
	"signal-feed/internal/repository"
)

// MaxQueryLength bounds the free-text query, in characters.
const MaxQueryLength = 200

type Service struct {
	Repo       repository.SearchRepository
	Pagination pagination.Config
}

// Search returns one page per entity kind for q.
func (s *Service) Search(ctx context.Context, q string, cursors repository.SearchCursors, limit int) (*repository.SearchResult, error) {
	if utf8.RuneCountInString(q) > MaxQueryLength {
		return nil, &entity.ValidationError{
			Field:   "q",
			Message: fmt.Sprintf("query must not exceed %d characters", MaxQueryLength),
		}
	}
	req := pagination.Request{Limit: limit}.WithDefaults(s.Pagination)
	result, err := s.Repo.Search(ctx, q, cursors, req.Limit)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return result, nil
}
