package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"signal-feed/internal/common/pagination"
	"signal-feed/internal/domain/entity"
	"signal-feed/internal/repository"
)

// productSources aggregates every row sharing a case-insensitive name.
const productSources = `SELECT lower(name) AS name_key,
           array_agg(DISTINCT source) FILTER (WHERE source <> '') AS sources,
           SUM(positive_mentions)::bigint AS positive_mentions,
           SUM(negative_mentions)::bigint AS negative_mentions
    FROM products
    GROUP BY lower(name)`

const productColumns = `id, slug, name, tagline, description, category, source, url,
       trending_score, signal_count, launched_at, positive_mentions, negative_mentions, created_at, sources`

type ProductRepo struct {
	db   Querier
	tags *TagLoader
	now  func() time.Time
}

func NewProductRepo(db Querier) repository.ProductRepository {
	return &ProductRepo{db: db, tags: ProductTags(db), now: time.Now}
}

// List pages deduplicated products. The inner query keeps the best-ranked
// row per lower(name) under the requested sort; the keyset predicate is
// applied to the outer deduplicated set so cursors ignore the duplicates.
func (repo *ProductRepo) List(ctx context.Context, f repository.ProductFilters, req pagination.Request) (pagination.Page[*entity.Product], error) {
	sort := ProductSorts.Resolve(req.Sort)
	cur := pagination.ParseKeysetCursor(req.Cursor, sort)

	inner := NewPredicate().
		TagSlugs(productTagLink, productID, f.TagSlugs).
		Equal(productCategory, f.Category).
		Equal(productSource, f.Source).
		Search(f.Query, productName, productTagline, productDescription).
		Within(productCreatedAt, f.Period, repo.now())
	outer := inner.Continue().Keyset(sort, dedupedID, cur)

	query := fmt.Sprintf(`WITH ranked AS (
    SELECT pr.id, pr.slug, pr.name, pr.tagline, pr.description, pr.category, pr.source, pr.url,
           pr.trending_score, pr.signal_count, pr.launched_at, pr.created_at,
           ROW_NUMBER() OVER (PARTITION BY lower(pr.name) ORDER BY pr.%[1]s DESC NULLS LAST, pr.id DESC) AS rn
    FROM products pr
    %[2]s
), sources AS (
    %[3]s
), deduped AS (
    SELECT r.id, r.slug, r.name, r.tagline, r.description, r.category, r.source, r.url,
           r.trending_score, r.signal_count, r.launched_at,
           COALESCE(s.positive_mentions, 0) AS positive_mentions,
           COALESCE(s.negative_mentions, 0) AS negative_mentions,
           r.created_at,
           COALESCE(s.sources, '{}') AS sources
    FROM ranked r
    LEFT JOIN sources s ON s.name_key = lower(r.name)
    WHERE r.rn = 1
)
SELECT %[4]s
FROM deduped
%[5]s
%[6]s`, sort.Column, inner.Where(), productSources, productColumns, outer.Where(), orderBy(sort, dedupedID))

	page, err := runPage(ctx, repo.db, pageQuery[*entity.Product]{
		Entity: "products",
		SQL:    query,
		Args:   outer.Args(),
		Limit:  req.Limit,
		Scan:   scanProduct,
		Key:    productKey(sort),
	})
	if err != nil {
		return page, fmt.Errorf("ListProducts: %w", err)
	}
	if err := repo.attachTags(ctx, page.Items); err != nil {
		return pagination.Page[*entity.Product]{}, fmt.Errorf("ListProducts: %w", err)
	}
	return page, nil
}

func (repo *ProductRepo) GetBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	query := `WITH sources AS (
    ` + productSources + `
)
SELECT pr.id, pr.slug, pr.name, pr.tagline, pr.description, pr.category, pr.source, pr.url,
       pr.trending_score, pr.signal_count, pr.launched_at,
       COALESCE(s.positive_mentions, 0), COALESCE(s.negative_mentions, 0),
       pr.created_at, COALESCE(s.sources, '{}')
FROM products pr
LEFT JOIN sources s ON s.name_key = lower(pr.name)
WHERE pr.slug = $1
LIMIT 1`
	var p *entity.Product
	err := queryOne(ctx, repo.db, func(s rowScanner) (err error) {
		p, err = scanProduct(s)
		return err
	}, query, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetProductBySlug: %w", err)
	}
	if err := repo.attachTags(ctx, []*entity.Product{p}); err != nil {
		return nil, fmt.Errorf("GetProductBySlug: %w", err)
	}
	return p, nil
}

func (repo *ProductRepo) attachTags(ctx context.Context, products []*entity.Product) error {
	ids := make([]int64, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	tags, err := repo.tags.Load(ctx, ids)
	if err != nil {
		return err
	}
	for _, p := range products {
		p.Tags = tags[p.ID]
	}
	return nil
}

func scanProduct(s rowScanner) (*entity.Product, error) {
	var p entity.Product
	var sources []string
	if err := s.Scan(&p.ID, &p.Slug, &p.Name, &p.Tagline, &p.Description, &p.Category, &p.Source, &p.URL,
		&p.TrendingScore, &p.SignalCount, &p.LaunchedAt, &p.PositiveMentions, &p.NegativeMentions,
		&p.CreatedAt, pq.Array(&sources)); err != nil {
		return nil, err
	}
	p.Sources = entity.MergeSources(sources, p.Source)
	return &p, nil
}

func productKey(sort pagination.SortColumn) pagination.KeyFunc[*entity.Product] {
	return func(p *entity.Product) (any, int64) {
		switch Column(sort.Column) {
		case dedupedSignalCount:
			return p.SignalCount, p.ID
		case dedupedLaunchedAt:
			return p.LaunchedAt, p.ID
		default:
			return p.TrendingScore, p.ID
		}
	}
}
