package postgres_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signal-feed/internal/common/pagination"
	"signal-feed/internal/domain/entity"
	pg "signal-feed/internal/infra/adapter/persistence/postgres"
	"signal-feed/internal/repository"
)

func TestTagRepo_ListAggregates(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("JOIN post_tags l ON l.tag_id = t.id")).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug", "name", "usage_count"}).
			AddRow(int64(4), "ai", "AI", int64(12)).
			AddRow(int64(9), "go", "Go", int64(7)).
			AddRow(int64(2), "db", "Databases", int64(7)))

	page, err := pg.NewTagRepo(db).ListAggregates(context.Background(), repository.TagKindPosts, pagination.Request{Limit: 2})
	require.NoError(t, err)

	assert.Equal(t, []entity.TagAggregate{
		{Tag: entity.Tag{ID: 4, Slug: "ai", Name: "AI"}, UsageCount: 12},
		{Tag: entity.Tag{ID: 9, Slug: "go", Name: "Go"}, UsageCount: 7},
	}, page.Items)
	assert.True(t, page.HasNext)
	require.NotNil(t, page.NextCursor)
	assert.Equal(t, map[string]any{"v": int64(7), "id": int64(9)}, pagination.DecodeCursor(*page.NextCursor))
}

func TestTagRepo_ListAggregates_Continuation(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta(
		") agg\nWHERE (usage_count < $1 OR (usage_count = $1 AND id < $2))\nORDER BY usage_count DESC, id DESC\nLIMIT $3")).
		WithArgs(int64(7), int64(9), 3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug", "name", "usage_count"}).
			AddRow(int64(2), "db", "Databases", int64(7)))

	page, err := pg.NewTagRepo(db).ListAggregates(context.Background(), repository.TagKindBriefs,
		pagination.Request{Cursor: pagination.NewCursor(int64(7), 9), Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.False(t, page.HasNext)
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
