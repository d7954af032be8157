package post_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signal-feed/internal/common/pagination"
	"signal-feed/internal/domain/entity"
	"signal-feed/internal/handler/http/post"
	"signal-feed/internal/repository"
	postUC "signal-feed/internal/usecase/post"
)

/* ───────── スタブ実装 ───────── */

type stubPostRepo struct {
	page       pagination.Page[*entity.Post]
	err        error
	gotFilters repository.PostFilters
	gotReq     pagination.Request
}

func (s *stubPostRepo) List(_ context.Context, f repository.PostFilters, req pagination.Request) (pagination.Page[*entity.Post], error) {
	s.gotFilters, s.gotReq = f, req
	return s.page, s.err
}

func serve(repo *stubPostRepo, url string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	cfg := pagination.DefaultConfig()
	post.Register(r, &postUC.Service{Repo: repo, Pagination: cfg}, cfg, nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	return rec
}

/* ───────── テストケース ───────── */

func TestListHandler_Success(t *testing.T) {
	created := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	next := pagination.NewCursor(int64(50), 8)
	repo := &stubPostRepo{page: pagination.Page[*entity.Post]{
		Items: []*entity.Post{{
			ID:                9,
			ExternalID:        "hn-1",
			Source:            "hackernews",
			PostType:          "story",
			Title:             "Show HN",
			Score:             50,
			NumComments:       3,
			ExternalCreatedAt: created,
		}},
		HasNext:    true,
		NextCursor: &next,
	}}

	rec := serve(repo, "/posts?sort=-score&limit=1&source=hackernews&post_type=story&sentiment=neutral&q=show&period=30d&tag=go")

	require.Equal(t, http.StatusOK, rec.Code)

	var got pagination.Response[post.DTO]
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got.Data, 1)
	assert.Equal(t, "hn-1", got.Data[0].ExternalID)
	assert.Equal(t, int64(50), got.Data[0].Score)
	assert.Empty(t, got.Data[0].Tags)
	assert.Equal(t, next, *got.Meta.NextCursor)

	want := repository.PostFilters{
		TagSlugs:  []string{"go"},
		Source:    "hackernews",
		PostType:  "story",
		Sentiment: "neutral",
		Query:     "show",
		Period:    "30d",
	}
	if diff := cmp.Diff(want, repo.gotFilters); diff != "" {
		t.Errorf("filters mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "-score", repo.gotReq.Sort)
}

func TestListHandler_TagsEncodeAsEmptyArray(t *testing.T) {
	repo := &stubPostRepo{page: pagination.Page[*entity.Post]{Items: []*entity.Post{{ID: 1}}}}

	rec := serve(repo, "/posts")

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data []map[string]json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "[]", string(body.Data[0]["tags"]))
}

func TestListHandler_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, serve(&stubPostRepo{}, "/posts?limit=-1").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&stubPostRepo{err: errors.New("down")}, "/posts").Code)
}
