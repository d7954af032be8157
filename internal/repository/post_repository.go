package repository

import (
	"context"

	"signal-feed/internal/common/pagination"
	"signal-feed/internal/domain/entity"
)

// PostFilters contains optional filters for post listing.
type PostFilters struct {
	TagSlugs  []string
	Source    string
	PostType  string
	Sentiment string
	Query     string // title or body
	Period    string // on external_created_at
}

type PostRepository interface {
	List(ctx context.Context, filters PostFilters, req pagination.Request) (pagination.Page[*entity.Post], error)
}
