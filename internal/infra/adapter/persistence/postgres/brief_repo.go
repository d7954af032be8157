package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"signal-feed/internal/common/pagination"
	"signal-feed/internal/domain/entity"
	"signal-feed/internal/repository"
)

const briefColumns = `b.id, b.slug, b.title, b.summary, b.category, b.sentiment,
       b.source_count, b.upvote_count, b.downvote_count, b.published_at, b.created_at`

type BriefRepo struct {
	db   Querier
	tags *TagLoader
	now  func() time.Time
}

func NewBriefRepo(db Querier) repository.BriefRepository {
	return &BriefRepo{db: db, tags: BriefTags(db), now: time.Now}
}

func (repo *BriefRepo) List(ctx context.Context, f repository.BriefFilters, req pagination.Request) (pagination.Page[*entity.Brief], error) {
	sort := BriefSorts.Resolve(req.Sort)
	cur := pagination.ParseKeysetCursor(req.Cursor, sort)

	where := NewPredicate().
		TagSlugs(briefTagLink, briefID, f.TagSlugs).
		Equal(briefCategory, f.Category).
		Equal(briefSentiment, f.Sentiment).
		Search(f.Query, briefTitle, briefSummary).
		Within(briefPublishedAt, f.Period, repo.now()).
		Keyset(sort, briefID, cur)

	query := fmt.Sprintf("SELECT %s\nFROM briefs b\n%s\n%s", briefColumns, where.Where(), orderBy(sort, briefID))

	page, err := runPage(ctx, repo.db, pageQuery[*entity.Brief]{
		Entity: "briefs",
		SQL:    query,
		Args:   where.Args(),
		Limit:  req.Limit,
		Scan:   scanBrief,
		Key:    briefKey(sort),
	})
	if err != nil {
		return page, fmt.Errorf("ListBriefs: %w", err)
	}
	if err := repo.attachTags(ctx, page.Items); err != nil {
		return pagination.Page[*entity.Brief]{}, fmt.Errorf("ListBriefs: %w", err)
	}
	return page, nil
}

func (repo *BriefRepo) GetBySlug(ctx context.Context, slug string) (*entity.Brief, error) {
	query := "SELECT " + briefColumns + `
FROM briefs b
WHERE b.slug = $1
LIMIT 1`
	var b *entity.Brief
	err := queryOne(ctx, repo.db, func(s rowScanner) (err error) {
		b, err = scanBrief(s)
		return err
	}, query, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetBriefBySlug: %w", err)
	}
	if err := repo.attachTags(ctx, []*entity.Brief{b}); err != nil {
		return nil, fmt.Errorf("GetBriefBySlug: %w", err)
	}
	return b, nil
}

func (repo *BriefRepo) attachTags(ctx context.Context, briefs []*entity.Brief) error {
	ids := make([]int64, 0, len(briefs))
	for _, b := range briefs {
		ids = append(ids, b.ID)
	}
	tags, err := repo.tags.Load(ctx, ids)
	if err != nil {
		return err
	}
	for _, b := range briefs {
		b.Tags = tags[b.ID]
	}
	return nil
}

func scanBrief(s rowScanner) (*entity.Brief, error) {
	var b entity.Brief
	if err := s.Scan(&b.ID, &b.Slug, &b.Title, &b.Summary, &b.Category, &b.Sentiment,
		&b.SourceCount, &b.UpvoteCount, &b.DownvoteCount, &b.PublishedAt, &b.CreatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

func briefKey(sort pagination.SortColumn) pagination.KeyFunc[*entity.Brief] {
	return func(b *entity.Brief) (any, int64) {
		switch Column(sort.Column) {
		case briefUpvotes:
			return b.UpvoteCount, b.ID
		case briefSourceCount:
			return b.SourceCount, b.ID
		default:
			return b.PublishedAt, b.ID
		}
	}
}
