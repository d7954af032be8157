package post

import (
	"log/slog"
	"net/http"
	"time"

	"signal-feed/internal/common/pagination"
	"signal-feed/internal/handler/http/requestid"
	"signal-feed/internal/handler/http/respond"
	"signal-feed/internal/handler/http/tag"
	"signal-feed/internal/observability/logging"
	"signal-feed/internal/repository"
	postUC "signal-feed/internal/usecase/post"
)

type ListHandler struct {
	Svc           *postUC.Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

// ServeHTTP 投稿一覧取得
// @Summary      投稿一覧取得（カーソルページネーション）
// @Tags         posts
// @Produce      json
// @Param        sort      query  string  false  "ソート" Enums(-external_created_at, -score, -num_comments) default(-external_created_at)
// @Param        cursor    query  string  false  "継続トークン"
// @Param        limit     query  int     false  "1ページあたりの件数" default(20) minimum(1) maximum(100)
// @Param        tag       query  string  false  "タグ slug（複数指定可）"
// @Param        source    query  string  false  "取得元"
// @Param        post_type query  string  false  "投稿種別"
// @Param        sentiment query  string  false  "センチメント"
// @Param        q         query  string  false  "タイトル・本文の部分一致"
// @Param        period    query  string  false  "期間" Enums(7d, 30d, 90d)
// @Success      200 {object} pagination.Response[DTO]
// @Failure      400 {string} string "Invalid query parameters"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /posts [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	reqID := requestid.FromContext(ctx)
	logger := logging.WithRequestID(ctx, h.Logger)

	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		logger.Warn("Invalid pagination parameters", "error", err.Error())
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	pagination.LogRequest(logger, reqID, "posts", params)

	q := r.URL.Query()
	filters := repository.PostFilters{
		TagSlugs:  tag.SlugsFromQuery(r),
		Source:    q.Get("source"),
		PostType:  q.Get("post_type"),
		Sentiment: q.Get("sentiment"),
		Query:     q.Get("q"),
		Period:    q.Get("period"),
	}

	page, err := h.Svc.List(ctx, filters, params)
	if err != nil {
		pagination.LogError(logger, reqID, "posts", params, err)
		respond.Fail(w, err)
		return
	}

	pagination.LogResponse(logger, reqID, "posts", page, time.Since(startTime), http.StatusOK)
	respond.JSON(w, http.StatusOK, pagination.FromPage(page, ToDTO))
}
