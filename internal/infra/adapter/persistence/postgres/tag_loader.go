package postgres

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"signal-feed/internal/common/pagination"
	"signal-feed/internal/domain/entity"
)

// TagLoader attaches tags to a page of parents with one batched query.
type TagLoader struct {
	db   Querier
	link tagLink
}

// BriefTags, PostTags and ProductTags return loaders for the three link tables.
func BriefTags(db Querier) *TagLoader   { return &TagLoader{db: db, link: briefTagLink} }
func PostTags(db Querier) *TagLoader    { return &TagLoader{db: db, link: postTagLink} }
func ProductTags(db Querier) *TagLoader { return &TagLoader{db: db, link: productTagLink} }

// Load returns the tags of every id. Each requested id is present in the
// result; ids without tags map to an empty slice. No query is issued for
// an empty id list.
func (l *TagLoader) Load(ctx context.Context, ids []int64) (map[int64][]entity.Tag, error) {
	result := make(map[int64][]entity.Tag, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	for _, id := range ids {
		result[id] = []entity.Tag{}
	}

	query := fmt.Sprintf(`
SELECT l.%[2]s, t.id, t.slug, t.name
FROM %[1]s l
JOIN tags t ON t.id = l.tag_id
WHERE l.%[2]s = ANY($1)
ORDER BY l.%[2]s, t.name, t.id`, l.link.Table, l.link.ParentFK)

	pagination.RecordRelationBatch(l.link.Table, len(ids))
	rows, err := l.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("LoadTags: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var parent int64
		var tag entity.Tag
		if err := rows.Scan(&parent, &tag.ID, &tag.Slug, &tag.Name); err != nil {
			return nil, fmt.Errorf("LoadTags: Scan: %w", err)
		}
		result[parent] = append(result[parent], tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("LoadTags: rows.Err: %w", err)
	}
	return result, nil
}
