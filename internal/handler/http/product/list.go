package product

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
	productUC "signal-feed/internal/usecase/product"
)

type ListHandler struct {
	Svc           *productUC.Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

// ServeHTTP プロダクト一覧取得
// @Summary      プロダクト一覧取得（名前で重複排除）
// @Tags         products
// @Produce      json
// @Param        sort     query  string  false  "ソート" Enums(-trending_score, -signal_count, -launched_at) default(-trending_score)
// @Param        cursor   query  string  false  "継続トークン"
// @Param        limit    query  int     false  "1ページあたりの件数" default(20) minimum(1) maximum(100)
// @Param        tag      query  string  false  "タグ slug（複数指定可）"
// @Param        category query  string  false  "カテゴリ"
// @Param        source   query  string  false  "取得元"
// @Param        q        query  string  false  "名前・タグライン・説明の部分一致"
// @Param        period   query  string  false  "期間" Enums(7d, 30d, 90d)
// @Success      200 {object} pagination.Response[DTO]
// @Failure      400 {string} string "Invalid query parameters"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /products [get]
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
	pagination.LogRequest(logger, reqID, "products", params)

	q := r.URL.Query()
	filters := repository.ProductFilters{
		TagSlugs: tag.SlugsFromQuery(r),
		Category: q.Get("category"),
		Source:   q.Get("source"),
		Query:    q.Get("q"),
		Period:   q.Get("period"),
	}

	page, err := h.Svc.List(ctx, filters, params)
	if err != nil {
		pagination.LogError(logger, reqID, "products", params, err)
		respond.Fail(w, err)
		return
	}

	pagination.LogResponse(logger, reqID, "products", page, time.Since(startTime), http.StatusOK)
	respond.JSON(w, http.StatusOK, pagination.FromPage(page, ToDTO))
}
