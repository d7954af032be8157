package brief

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
	briefUC "signal-feed/internal/usecase/brief"
)

type ListHandler struct {
	Svc           *briefUC.Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

// ServeHTTP ブリーフ一覧取得
// @Summary      ブリーフ一覧取得（カーソルページネーション）
// @Description  ブリーフを新しい順（または指定したソート順）に返します。next_cursor を cursor に渡すと次のページを取得できます。
// @Tags         briefs
// @Produce      json
// @Param        sort      query  string  false  "ソート" Enums(-published_at, -upvote_count, -source_count) default(-published_at)
// @Param        cursor    query  string  false  "継続トークン"
// @Param        limit     query  int     false  "1ページあたりの件数" default(20) minimum(1) maximum(100)
// @Param        tag       query  string  false  "タグ slug（複数指定可）"
// @Param        category  query  string  false  "カテゴリ"
// @Param        sentiment query  string  false  "センチメント"
// @Param        q         query  string  false  "タイトル・要約の部分一致"
// @Param        period    query  string  false  "期間" Enums(7d, 30d, 90d)
// @Success      200 {object} pagination.Response[DTO]
// @Failure      400 {string} string "Invalid query parameters"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /briefs [get]
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
	pagination.LogRequest(logger, reqID, "briefs", params)

	q := r.URL.Query()
	filters := repository.BriefFilters{
		TagSlugs:  tag.SlugsFromQuery(r),
		Category:  q.Get("category"),
		Sentiment: q.Get("sentiment"),
		Query:     q.Get("q"),
		Period:    q.Get("period"),
	}

	page, err := h.Svc.List(ctx, filters, params)
	if err != nil {
		pagination.LogError(logger, reqID, "briefs", params, err)
		respond.Fail(w, err)
		return
	}

	pagination.LogResponse(logger, reqID, "briefs", page, time.Since(startTime), http.StatusOK)
	respond.JSON(w, http.StatusOK, pagination.FromPage(page, ToDTO))
}
