package postgres

import (
	"context"
	"fmt"
	"time"

	"signal-feed/internal/common/pagination"
	"signal-feed/internal/domain/entity"
	"signal-feed/internal/repository"
)

const postColumns = `p.id, p.external_id, p.source, p.post_type, p.title, p.url, p.author, p.body,
       p.score, p.num_comments, p.sentiment, p.external_created_at, p.created_at`

type PostRepo struct {
	db   Querier
	tags *TagLoader
	now  func() time.Time
}

func NewPostRepo(db Querier) repository.PostRepository {
	return &PostRepo{db: db, tags: PostTags(db), now: time.Now}
}

func (repo *PostRepo) List(ctx context.Context, f repository.PostFilters, req pagination.Request) (pagination.Page[*entity.Post], error) {
	sort := PostSorts.Resolve(req.Sort)
	cur := pagination.ParseKeysetCursor(req.Cursor, sort)

	where := NewPredicate().
		TagSlugs(postTagLink, postID, f.TagSlugs).
		Equal(postSource, f.Source).
		Equal(postType, f.PostType).
		Equal(postSentiment, f.Sentiment).
		Search(f.Query, postTitle, postBody).
		Within(postExternalCreatedAt, f.Period, repo.now()).
		Keyset(sort, postID, cur)

	query := fmt.Sprintf("SELECT %s\nFROM posts p\n%s\n%s", postColumns, where.Where(), orderBy(sort, postID))

	page, err := runPage(ctx, repo.db, pageQuery[*entity.Post]{
		Entity: "posts",
		SQL:    query,
		Args:   where.Args(),
		Limit:  req.Limit,
		Scan:   scanPost,
		Key:    postKey(sort),
	})
	if err != nil {
		return page, fmt.Errorf("ListPosts: %w", err)
	}

	ids := make([]int64, 0, len(page.Items))
	for _, p := range page.Items {
		ids = append(ids, p.ID)
	}
	tags, err := repo.tags.Load(ctx, ids)
	if err != nil {
		return pagination.Page[*entity.Post]{}, fmt.Errorf("ListPosts: %w", err)
	}
	for _, p := range page.Items {
		p.Tags = tags[p.ID]
	}
	return page, nil
}

func scanPost(s rowScanner) (*entity.Post, error) {
	var p entity.Post
	if err := s.Scan(&p.ID, &p.ExternalID, &p.Source, &p.PostType, &p.Title, &p.URL, &p.Author, &p.Body,
		&p.Score, &p.NumComments, &p.Sentiment, &p.ExternalCreatedAt, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func postKey(sort pagination.SortColumn) pagination.KeyFunc[*entity.Post] {
	return func(p *entity.Post) (any, int64) {
		switch Column(sort.Column) {
		case postScore:
			return p.Score, p.ID
		case postNumComments:
			return p.NumComments, p.ID
		default:
			return p.ExternalCreatedAt, p.ID
		}
	}
}
