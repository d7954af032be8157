package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signal-feed/internal/common/pagination"
	"signal-feed/internal/domain/entity"
	pg "signal-feed/internal/infra/adapter/persistence/postgres"
	"signal-feed/internal/repository"
)

/* ─────────────────────────── ヘルパ ─────────────────────────── */

var briefCols = []string{
	"id", "slug", "title", "summary", "category", "sentiment",
	"source_count", "upvote_count", "downvote_count", "published_at", "created_at",
}

var tagCols = []string{"parent_id", "id", "slug", "name"}

var base = time.Date(2025, 7, 19, 0, 0, 0, 0, time.UTC)

// makeBriefs returns n briefs with ids 1..n, newest first.
func makeBriefs(n int) []*entity.Brief {
	out := make([]*entity.Brief, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, &entity.Brief{
			ID: int64(i), Slug: "brief-" + string(rune('a'+i%26)), Title: "t", Summary: "s",
			Category: "tech", Sentiment: "neutral", SourceCount: int64(i % 4),
			UpvoteCount: int64(100 - i), PublishedAt: base.Add(-time.Duration(i) * time.Hour),
			CreatedAt: base,
		})
	}
	return out
}

func briefRows(briefs ...*entity.Brief) *sqlmock.Rows {
	rows := sqlmock.NewRows(briefCols)
	for _, b := range briefs {
		rows.AddRow(b.ID, b.Slug, b.Title, b.Summary, b.Category, b.Sentiment,
			b.SourceCount, b.UpvoteCount, b.DownvoteCount, b.PublishedAt, b.CreatedAt)
	}
	return rows
}

func ids(briefs []*entity.Brief) []int64 {
	out := make([]int64, 0, len(briefs))
	for _, b := range briefs {
		out = append(out, b.ID)
	}
	return out
}

/* ─────────────────────────── 1. 25件 / limit=20 ─────────────────────────── */

func TestBriefRepo_List_TwoPages(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	all := makeBriefs(25)
	repo := pg.NewBriefRepo(db)

	// page 1: no predicate, LIMIT 21
	mock.ExpectQuery(regexp.QuoteMeta("FROM briefs b\n\nORDER BY b.published_at DESC, b.id DESC\nLIMIT $1")).
		WithArgs(21).
		WillReturnRows(briefRows(all[:21]...))
	mock.ExpectQuery(regexp.QuoteMeta("FROM brief_tags l")).
		WithArgs(pq.Array(ids(all[:20]))).
		WillReturnRows(sqlmock.NewRows(tagCols))

	page1, err := repo.List(context.Background(), repository.BriefFilters{}, pagination.Request{Limit: 20})
	require.NoError(t, err)
	require.Len(t, page1.Items, 20)
	assert.True(t, page1.HasNext)
	require.NotNil(t, page1.NextCursor)
	assert.Equal(t, map[string]any{
		"v":  all[19].PublishedAt.Format(time.RFC3339Nano),
		"id": int64(20),
	}, pagination.DecodeCursor(*page1.NextCursor))

	// page 2: keyset from item 20
	mock.ExpectQuery(regexp.QuoteMeta("WHERE (b.published_at < $1 OR (b.published_at = $1 AND b.id < $2))\nORDER BY b.published_at DESC, b.id DESC\nLIMIT $3")).
		WithArgs(all[19].PublishedAt, int64(20), 21).
		WillReturnRows(briefRows(all[20:]...))
	mock.ExpectQuery(regexp.QuoteMeta("FROM brief_tags l")).
		WithArgs(pq.Array(ids(all[20:]))).
		WillReturnRows(sqlmock.NewRows(tagCols))

	page2, err := repo.List(context.Background(), repository.BriefFilters{},
		pagination.Request{Cursor: *page1.NextCursor, Limit: 20})
	require.NoError(t, err)
	assert.Len(t, page2.Items, 5)
	assert.False(t, page2.HasNext)
	assert.Nil(t, page2.NextCursor)

	got := append(ids(page1.Items), ids(page2.Items)...)
	if diff := cmp.Diff(ids(all), got); diff != "" {
		t.Fatalf("walk mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

/* ─────────────────────────── 2. 境界値 ─────────────────────────── */

func TestBriefRepo_List_ExactlyLimit(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	all := makeBriefs(20)
	mock.ExpectQuery("FROM briefs b").WithArgs(21).WillReturnRows(briefRows(all...))
	mock.ExpectQuery("FROM brief_tags l").WillReturnRows(sqlmock.NewRows(tagCols))

	page, err := pg.NewBriefRepo(db).List(context.Background(), repository.BriefFilters{}, pagination.Request{Limit: 20})
	require.NoError(t, err)
	assert.Len(t, page.Items, 20)
	assert.False(t, page.HasNext)
	assert.Nil(t, page.NextCursor)
}

func TestBriefRepo_List_EmptyIssuesNoTagQuery(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("FROM briefs b").WillReturnRows(sqlmock.NewRows(briefCols))

	page, err := pg.NewBriefRepo(db).List(context.Background(), repository.BriefFilters{}, pagination.Request{Limit: 20})
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.False(t, page.HasNext)
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

/* ─────────────────────────── 3. タグの一括取得 ─────────────────────────── */

func TestBriefRepo_List_TagsLoadedInOneQuery(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	all := makeBriefs(20)
	mock.ExpectQuery("FROM briefs b").WillReturnRows(briefRows(all...))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE l.brief_id = ANY($1)")).
		WithArgs(pq.Array(ids(all))).
		WillReturnRows(sqlmock.NewRows(tagCols).
			AddRow(int64(1), int64(10), "ai", "AI").
			AddRow(int64(1), int64(11), "go", "Go").
			AddRow(int64(7), int64(10), "ai", "AI"))

	page, err := pg.NewBriefRepo(db).List(context.Background(), repository.BriefFilters{}, pagination.Request{Limit: 20})
	require.NoError(t, err)

	assert.Equal(t, []entity.Tag{{ID: 10, Slug: "ai", Name: "AI"}, {ID: 11, Slug: "go", Name: "Go"}}, page.Items[0].Tags)
	assert.Equal(t, []entity.Tag{{ID: 10, Slug: "ai", Name: "AI"}}, page.Items[6].Tags)
	for _, b := range page.Items {
		assert.NotNil(t, b.Tags, "brief %d should have a non-nil tag list", b.ID)
	}
	assert.Empty(t, page.Items[19].Tags)
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

/* ─────────────────────────── 4. フィルタとソート ─────────────────────────── */

func TestBriefRepo_List_FiltersAndSort(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta(
		"AND b.category = $2 AND b.sentiment = $3 AND (b.title ILIKE $4 OR b.summary ILIKE $4) AND b.published_at >= $5\n" +
			"ORDER BY b.upvote_count DESC, b.id DESC\nLIMIT $6")).
		WithArgs(pq.Array([]string{"ai"}), "tech", "positive", "%llm%", sqlmock.AnyArg(), 11).
		WillReturnRows(sqlmock.NewRows(briefCols))

	_, err := pg.NewBriefRepo(db).List(context.Background(), repository.BriefFilters{
		TagSlugs: []string{"ai"}, Category: "tech", Sentiment: "positive", Query: "llm", Period: "30d",
	}, pagination.Request{Sort: "-upvote_count", Limit: 10})
	require.NoError(t, err)
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestBriefRepo_List_GarbageCursorRestarts(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("FROM briefs b\n\nORDER BY b.published_at DESC, b.id DESC\nLIMIT $1")).
		WithArgs(21).
		WillReturnRows(sqlmock.NewRows(briefCols))

	_, err := pg.NewBriefRepo(db).List(context.Background(), repository.BriefFilters{},
		pagination.Request{Cursor: "not-a-cursor!!", Limit: 20})
	require.NoError(t, err)
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestBriefRepo_List_TamperedCursorTypeRestarts(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	// numeric value on a timestamp sort
	token := pagination.NewCursor(int64(123), 5)
	mock.ExpectQuery(regexp.QuoteMeta("FROM briefs b\n\nORDER BY")).
		WithArgs(21).
		WillReturnRows(sqlmock.NewRows(briefCols))

	_, err := pg.NewBriefRepo(db).List(context.Background(), repository.BriefFilters{},
		pagination.Request{Cursor: token, Limit: 20})
	require.NoError(t, err)
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

/* ─────────────────────────── 5. エラー ─────────────────────────── */

func TestBriefRepo_List_StoreError(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	boom := errors.New("connection reset")
	mock.ExpectQuery("FROM briefs b").WillReturnError(boom)

	_, err := pg.NewBriefRepo(db).List(context.Background(), repository.BriefFilters{}, pagination.Request{Limit: 20})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestBriefRepo_List_TagQueryError(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	boom := errors.New("tags unavailable")
	mock.ExpectQuery("FROM briefs b").WillReturnRows(briefRows(makeBriefs(2)...))
	mock.ExpectQuery("FROM brief_tags l").WillReturnError(boom)

	_, err := pg.NewBriefRepo(db).List(context.Background(), repository.BriefFilters{}, pagination.Request{Limit: 20})
	assert.ErrorIs(t, err, boom)
}

/* ─────────────────────────── 6. GetBySlug ─────────────────────────── */

func TestBriefRepo_GetBySlug(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	want := makeBriefs(1)[0]
	want.Tags = []entity.Tag{{ID: 3, Slug: "go", Name: "Go"}}

	mock.ExpectQuery(regexp.QuoteMeta("WHERE b.slug = $1")).
		WithArgs(want.Slug).
		WillReturnRows(briefRows(want))
	mock.ExpectQuery("FROM brief_tags l").
		WithArgs(pq.Array([]int64{1})).
		WillReturnRows(sqlmock.NewRows(tagCols).AddRow(int64(1), int64(3), "go", "Go"))

	got, err := pg.NewBriefRepo(db).GetBySlug(context.Background(), want.Slug)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestBriefRepo_GetBySlug_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("WHERE b.slug").WillReturnRows(sqlmock.NewRows(briefCols))

	got, err := pg.NewBriefRepo(db).GetBySlug(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
