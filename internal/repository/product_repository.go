package repository

import (
	"context"

	"signal-feed/internal/common/pagination"
	"signal-feed/internal/domain/entity"
)

// ProductFilters contains optional filters for product listing.
type ProductFilters struct {
	TagSlugs []string
	Category string
	Source   string
	Query    string // name, tagline or description
	Period   string // on created_at
}

// ProductRepository serves products deduplicated by case-insensitive name.
// Each returned product carries the merged Sources of its duplicates.
type ProductRepository interface {
	List(ctx context.Context, filters ProductFilters, req pagination.Request) (pagination.Page[*entity.Product], error)
	// GetBySlug returns (nil, nil) if no product has the slug.
	GetBySlug(ctx context.Context, slug string) (*entity.Product, error)
}
