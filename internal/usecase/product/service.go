package product

import (
	"context"
	"fmt"
	"strings"

	"signal-feed/internal/common/pagination"
	"signal-feed/internal/domain/entity"
	"signal-feed/internal/repository"
)

type Service struct {
	Repo       repository.ProductRepository
	Pagination pagination.Config
}

// List returns one keyset page of deduplicated products.
func (s *Service) List(ctx context.Context, filters repository.ProductFilters, req pagination.Request) (pagination.Page[*entity.Product], error) {
	page, err := s.Repo.List(ctx, filters, req.WithDefaults(s.Pagination))
	if err != nil {
		return pagination.Page[*entity.Product]{}, fmt.Errorf("list products: %w", err)
	}
	return page, nil
}

// Get returns the product detail for slug, including its sentiment score.
func (s *Service) Get(ctx context.Context, slug string) (*entity.ProductDetail, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrInvalidSlug
	}
	p, err := s.Repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	detail := entity.NewProductDetail(*p)
	return &detail, nil
}
