package postgres_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signal-feed/internal/common/pagination"
	pg "signal-feed/internal/infra/adapter/persistence/postgres"
	"signal-feed/internal/repository"
)

var productCols = []string{
	"id", "slug", "name", "tagline", "description", "category", "source", "url",
	"trending_score", "signal_count", "launched_at", "positive_mentions", "negative_mentions", "created_at", "sources",
}

func productRow(rows *sqlmock.Rows, id int64, score any, sources string) *sqlmock.Rows {
	created := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	return rows.AddRow(id, "p-slug", "Linear", "tagline", "desc", "dev-tools", "producthunt", "https://linear.app",
		score, int64(4), nil, int64(7), int64(3), created, sources)
}

/* ─────────────────────────── 1. 重複排除の外側でキーセット ─────────────────────────── */

func TestProductRepo_List_KeysetOnDedupedSet(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	rows := sqlmock.NewRows(productCols)
	productRow(rows, 4, 3.5, "{producthunt,hackernews}")
	productRow(rows, 2, nil, "{}")

	cursor := pagination.NewCursor(8.25, 10)
	mock.ExpectQuery(regexp.QuoteMeta(
		"ROW_NUMBER() OVER (PARTITION BY lower(pr.name) ORDER BY pr.trending_score DESC NULLS LAST, pr.id DESC) AS rn\n" +
			"    FROM products pr\n" +
			"    WHERE pr.category = $1\n")).
		WithArgs("dev-tools", 8.25, int64(10), 21).
		WillReturnRows(rows)
	mock.ExpectQuery("FROM product_tags l").WillReturnRows(sqlmock.NewRows(tagCols))

	page, err := pg.NewProductRepo(db).List(context.Background(),
		repository.ProductFilters{Category: "dev-tools"}, pagination.Request{Cursor: cursor, Limit: 20})
	require.NoError(t, err)

	require.Len(t, page.Items, 2)
	assert.False(t, page.HasNext)
	assert.Equal(t, []string{"producthunt", "hackernews"}, page.Items[0].Sources)
	assert.Equal(t, []string{"producthunt"}, page.Items[1].Sources, "own source is the fallback")
	require.NotNil(t, page.Items[0].TrendingScore)
	assert.Equal(t, 3.5, *page.Items[0].TrendingScore)
	assert.Nil(t, page.Items[1].TrendingScore)
	assert.Nil(t, page.Items[1].LaunchedAt)
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestProductRepo_List_OuterPredicateShape(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	cursor := pagination.NewCursor(8.25, 10)
	mock.ExpectQuery(regexp.QuoteMeta(
		"FROM deduped\n" +
			"WHERE (trending_score < $1 OR (trending_score = $1 AND id < $2) OR trending_score IS NULL)\n" +
			"ORDER BY trending_score DESC NULLS LAST, id DESC\n" +
			"LIMIT $3")).
		WithArgs(8.25, int64(10), 21).
		WillReturnRows(sqlmock.NewRows(productCols))

	_, err := pg.NewProductRepo(db).List(context.Background(),
		repository.ProductFilters{}, pagination.Request{Cursor: cursor, Limit: 20})
	require.NoError(t, err)
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

/* ─────────────────────────── 2. NULL の末尾 ─────────────────────────── */

func TestProductRepo_List_NullTailCursor(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	rows := sqlmock.NewRows(productCols)
	productRow(rows, 30, nil, "{}")
	productRow(rows, 29, nil, "{}")

	mock.ExpectQuery(regexp.QuoteMeta("FROM deduped\nWHERE (trending_score IS NULL AND id < $1)\n")).
		WithArgs(int64(31), 2).
		WillReturnRows(rows)
	mock.ExpectQuery("FROM product_tags l").WillReturnRows(sqlmock.NewRows(tagCols))

	page, err := pg.NewProductRepo(db).List(context.Background(), repository.ProductFilters{},
		pagination.Request{Cursor: pagination.NewCursor((*float64)(nil), 31), Limit: 1})
	require.NoError(t, err)

	require.Len(t, page.Items, 1)
	assert.True(t, page.HasNext)
	require.NotNil(t, page.NextCursor)
	assert.Equal(t, map[string]any{"v": nil, "id": int64(30)}, pagination.DecodeCursor(*page.NextCursor))
}

/* ─────────────────────────── 3. GetBySlug ─────────────────────────── */

func TestProductRepo_GetBySlug(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	rows := sqlmock.NewRows(productCols)
	productRow(rows, 4, 3.5, "{producthunt,github}")
	mock.ExpectQuery(regexp.QuoteMeta("WHERE pr.slug = $1")).WithArgs("linear").WillReturnRows(rows)
	mock.ExpectQuery("FROM product_tags l").WillReturnRows(sqlmock.NewRows(tagCols))

	got, err := pg.NewProductRepo(db).GetBySlug(context.Background(), "linear")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []string{"producthunt", "github"}, got.Sources)
	assert.Equal(t, int64(7), got.PositiveMentions)
	assert.Equal(t, int64(3), got.NegativeMentions)
	assert.NotNil(t, got.Tags)
}

func TestProductRepo_GetBySlug_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("WHERE pr.slug").WillReturnRows(sqlmock.NewRows(productCols))

	got, err := pg.NewProductRepo(db).GetBySlug(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}
