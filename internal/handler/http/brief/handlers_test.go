package brief_test

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
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signal-feed/internal/common/pagination"
	"signal-feed/internal/domain/entity"
	"signal-feed/internal/handler/http/brief"
	"signal-feed/internal/handler/http/tag"
	"signal-feed/internal/repository"
	briefUC "signal-feed/internal/usecase/brief"
)

/* ───────── スタブ実装 ───────── */

type stubBriefRepo struct {
	page       pagination.Page[*entity.Brief]
	listErr    error
	bySlug     map[string]*entity.Brief
	getErr     error
	gotFilters repository.BriefFilters
	gotReq     pagination.Request
	gotSlug    string
}

func (s *stubBriefRepo) List(_ context.Context, f repository.BriefFilters, req pagination.Request) (pagination.Page[*entity.Brief], error) {
	s.gotFilters, s.gotReq = f, req
	return s.page, s.listErr
}

func (s *stubBriefRepo) GetBySlug(_ context.Context, slug string) (*entity.Brief, error) {
	s.gotSlug = slug
	return s.bySlug[slug], s.getErr
}

func newRouter(repo *stubBriefRepo) http.Handler {
	r := chi.NewRouter()
	cfg := pagination.DefaultConfig()
	brief.Register(r, &briefUC.Service{Repo: repo, Pagination: cfg}, cfg, nil)
	return r
}

var published = time.Date(2025, 7, 19, 8, 0, 0, 0, time.UTC)

func sampleBrief(id int64, slug string) *entity.Brief {
	return &entity.Brief{
		ID:          id,
		Slug:        slug,
		Title:       "Title " + slug,
		Summary:     "Summary",
		Category:    "ai",
		Sentiment:   "positive",
		SourceCount: 3,
		UpvoteCount: 7,
		PublishedAt: published,
		CreatedAt:   published,
		Tags:        []entity.Tag{{ID: 1, Slug: "llm", Name: "LLM"}},
	}
}

/* ───────── テストケース ───────── */

func TestListHandler_Success(t *testing.T) {
	next := pagination.NewCursor(published, 2)
	repo := &stubBriefRepo{page: pagination.Page[*entity.Brief]{
		Items:      []*entity.Brief{sampleBrief(3, "c"), sampleBrief(2, "b")},
		HasNext:    true,
		NextCursor: &next,
	}}

	req := httptest.NewRequest(http.MethodGet,
		"/briefs?sort=-upvote_count&limit=2&tag=llm,agents&category=ai&sentiment=positive&q=model&period=7d", nil)
	rec := httptest.NewRecorder()
	newRouter(repo).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got pagination.Response[brief.DTO]
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got.Data, 2)
	assert.Equal(t, "c", got.Data[0].Slug)
	assert.Equal(t, []tag.DTO{{ID: 1, Slug: "llm", Name: "LLM"}}, got.Data[0].Tags)
	require.NotNil(t, got.Meta)
	assert.True(t, got.Meta.HasNext)
	assert.Equal(t, next, *got.Meta.NextCursor)

	want := repository.BriefFilters{
		TagSlugs:  []string{"llm", "agents"},
		Category:  "ai",
		Sentiment: "positive",
		Query:     "model",
		Period:    "7d",
	}
	if diff := cmp.Diff(want, repo.gotFilters); diff != "" {
		t.Errorf("filters mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, pagination.Request{Sort: "-upvote_count", Limit: 2}, repo.gotReq)
}

func TestListHandler_LastPage(t *testing.T) {
	repo := &stubBriefRepo{page: pagination.Page[*entity.Brief]{Items: []*entity.Brief{sampleBrief(1, "a")}}}

	rec := httptest.NewRecorder()
	newRouter(repo).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/briefs?cursor=garbage", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	meta := body["meta"].(map[string]any)
	assert.Equal(t, false, meta["has_next"])
	assert.Nil(t, meta["next_cursor"])
	assert.Equal(t, "garbage", repo.gotReq.Cursor)
	assert.Equal(t, 20, repo.gotReq.Limit)
}

func TestListHandler_Errors(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		err      error
		wantCode int
	}{
		{name: "limit too large", url: "/briefs?limit=500", wantCode: http.StatusBadRequest},
		{name: "limit not a number", url: "/briefs?limit=abc", wantCode: http.StatusBadRequest},
		{name: "store error", url: "/briefs", err: errors.New("pq: password=secret"), wantCode: http.StatusInternalServerError},
		{name: "circuit open", url: "/briefs", err: gobreaker.ErrOpenState, wantCode: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newRouter(&stubBriefRepo{listErr: tt.err}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.url, nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.NotContains(t, rec.Body.String(), "secret")
		})
	}
}

func TestGetHandler(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		repo     *stubBriefRepo
		wantCode int
		wantSlug string
	}{
		{
			name:     "found",
			path:     "/briefs/Hello-World",
			repo:     &stubBriefRepo{bySlug: map[string]*entity.Brief{"hello-world": sampleBrief(1, "hello-world")}},
			wantCode: http.StatusOK,
			wantSlug: "hello-world",
		},
		{
			name:     "not found",
			path:     "/briefs/missing",
			repo:     &stubBriefRepo{},
			wantCode: http.StatusNotFound,
		},
		{
			name:     "malformed slug",
			path:     "/briefs/bad%20slug%21",
			repo:     &stubBriefRepo{},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "store error",
			path:     "/briefs/x",
			repo:     &stubBriefRepo{getErr: errors.New("boom")},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newRouter(tt.repo).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			require.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode != http.StatusOK {
				return
			}
			var got pagination.Single[brief.DTO]
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, tt.wantSlug, got.Data.Slug)
			assert.Equal(t, int64(7), got.Data.UpvoteCount)
			assert.True(t, published.Equal(got.Data.PublishedAt))
		})
	}
}
