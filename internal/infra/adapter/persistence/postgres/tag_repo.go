package postgres

import (
	"context"
	"fmt"

	"signal-feed/internal/common/pagination"
	"signal-feed/internal/domain/entity"
	"signal-feed/internal/repository"
)

var tagLinks = map[repository.TagKind]tagLink{
	repository.TagKindBriefs:   briefTagLink,
	repository.TagKindPosts:    postTagLink,
	repository.TagKindProducts: productTagLink,
}

type TagRepo struct {
	db Querier
}

func NewTagRepo(db Querier) repository.TagRepository {
	return &TagRepo{db: db}
}

// ListAggregates pages tags by usage. The keyset applies to the outer
// grouped query so usage_count can be used as the sort value.
func (repo *TagRepo) ListAggregates(ctx context.Context, kind repository.TagKind, req pagination.Request) (pagination.Page[entity.TagAggregate], error) {
	link, ok := tagLinks[kind]
	if !ok {
		link = briefTagLink
	}
	sort := TagSorts.Resolve(req.Sort)
	cur := pagination.ParseKeysetCursor(req.Cursor, sort)
	where := NewPredicate().Keyset(sort, aggregateID, cur)

	query := fmt.Sprintf(`SELECT id, slug, name, usage_count
FROM (
    SELECT t.id, t.slug, t.name, COUNT(*) AS usage_count
    FROM tags t
    JOIN %s l ON l.tag_id = t.id
    GROUP BY t.id, t.slug, t.name
) agg
%s
%s`, link.Table, where.Where(), orderBy(sort, aggregateID))

	page, err := runPage(ctx, repo.db, pageQuery[entity.TagAggregate]{
		Entity: "tags",
		SQL:    query,
		Args:   where.Args(),
		Limit:  req.Limit,
		Scan: func(s rowScanner) (entity.TagAggregate, error) {
			var a entity.TagAggregate
			err := s.Scan(&a.ID, &a.Slug, &a.Name, &a.UsageCount)
			return a, err
		},
		Key: func(a entity.TagAggregate) (any, int64) { return a.UsageCount, a.ID },
	})
	if err != nil {
		return page, fmt.Errorf("ListTagAggregates: %w", err)
	}
	return page, nil
}
