package repository

import (
	"context"

	"signal-feed/internal/common/pagination"
	"signal-feed/internal/domain/entity"
)

// BriefFilters contains optional filters for brief listing.
// Zero values add no condition.
type BriefFilters struct {
	TagSlugs  []string // Any of the tags (OR)
	Category  string
	Sentiment string
	Query     string // Case-insensitive substring of title or summary
	Period    string // 7d, 30d or 90d on published_at; other values are ignored
}

type BriefRepository interface {
	// List returns one keyset page of briefs with their tags attached.
	List(ctx context.Context, filters BriefFilters, req pagination.Request) (pagination.Page[*entity.Brief], error)
	// GetBySlug returns (nil, nil) if no brief has the slug.
	GetBySlug(ctx context.Context, slug string) (*entity.Brief, error)
}
