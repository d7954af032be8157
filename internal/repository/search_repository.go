package repository

import (
	"context"

	"signal-feed/internal/common/pagination"
	"signal-feed/internal/domain/entity"
)

// SearchCursors holds one independent continuation token per result section.
type SearchCursors struct {
	Briefs   string
	Posts    string
	Products string
}

// SearchResult is one page of each entity matching a free-text query.
type SearchResult struct {
	Briefs   pagination.Page[*entity.Brief]
	Posts    pagination.Page[*entity.Post]
	Products pagination.Page[*entity.Product]
}

type SearchRepository interface {
	// Search runs the query against briefs, posts and products in their default order.
	Search(ctx context.Context, query string, cursors SearchCursors, limit int) (*SearchResult, error)
}
