package postgres_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signal-feed/internal/domain/entity"
	pg "signal-feed/internal/infra/adapter/persistence/postgres"
)

func TestTagLoader_EmptyIDsNoQuery(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	got, err := pg.PostTags(db).Load(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestTagLoader_GroupsByParent(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT l.product_id, t.id, t.slug, t.name
FROM product_tags l
JOIN tags t ON t.id = l.tag_id
WHERE l.product_id = ANY($1)
ORDER BY l.product_id, t.name, t.id`)).
		WithArgs(pq.Array([]int64{5, 6, 7})).
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "id", "slug", "name"}).
			AddRow(int64(5), int64(1), "ai", "AI").
			AddRow(int64(5), int64(2), "dev", "Dev").
			AddRow(int64(7), int64(2), "dev", "Dev"))

	got, err := pg.ProductTags(db).Load(context.Background(), []int64{5, 6, 7})
	require.NoError(t, err)

	assert.Equal(t, map[int64][]entity.Tag{
		5: {{ID: 1, Slug: "ai", Name: "AI"}, {ID: 2, Slug: "dev", Name: "Dev"}},
		6: {},
		7: {{ID: 2, Slug: "dev", Name: "Dev"}},
	}, got)
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestTagLoader_ScanError(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("FROM brief_tags l").
		WillReturnRows(sqlmock.NewRows([]string{"brief_id", "id", "slug", "name"}).
			AddRow("not-an-int", int64(1), "ai", "AI"))

	_, err := pg.BriefTags(db).Load(context.Background(), []int64{1})
	assert.Error(t, err)
}
