package postgres

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"signal-feed/internal/common/pagination"
	"signal-feed/internal/domain/entity"
	"signal-feed/internal/repository"
)

// SearchRepo runs a free-text query over briefs, posts and products concurrently.
type SearchRepo struct {
	briefs   repository.BriefRepository
	posts    repository.PostRepository
	products repository.ProductRepository
}

func NewSearchRepo(briefs repository.BriefRepository, posts repository.PostRepository, products repository.ProductRepository) repository.SearchRepository {
	return &SearchRepo{briefs: briefs, posts: posts, products: products}
}

// Search returns one page per entity. Each section paginates independently
// with its own cursor; the first failing section cancels the others.
func (repo *SearchRepo) Search(ctx context.Context, query string, cursors repository.SearchCursors, limit int) (*repository.SearchResult, error) {
	query = strings.TrimSpace(query)
	result := &repository.SearchResult{
		Briefs:   pagination.Page[*entity.Brief]{Items: []*entity.Brief{}},
		Posts:    pagination.Page[*entity.Post]{Items: []*entity.Post{}},
		Products: pagination.Page[*entity.Product]{Items: []*entity.Product{}},
	}
	if query == "" {
		return result, nil
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		page, err := repo.briefs.List(ctx, repository.BriefFilters{Query: query},
			pagination.Request{Cursor: cursors.Briefs, Limit: limit})
		result.Briefs = page
		return err
	})
	eg.Go(func() error {
		page, err := repo.posts.List(ctx, repository.PostFilters{Query: query},
			pagination.Request{Cursor: cursors.Posts, Limit: limit})
		result.Posts = page
		return err
	})
	eg.Go(func() error {
		page, err := repo.products.List(ctx, repository.ProductFilters{Query: query},
			pagination.Request{Cursor: cursors.Products, Limit: limit})
		result.Products = page
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("Search: %w", err)
	}
	return result, nil
}
