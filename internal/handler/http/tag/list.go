package tag

import (
	"log/slog"
	"net/http"
	"time"

	"signal-feed/internal/common/pagination"
	"signal-feed/internal/handler/http/requestid"
	"signal-feed/internal/handler/http/respond"
	"signal-feed/internal/observability/logging"
	tagUC "signal-feed/internal/usecase/tag"
)

type ListHandler struct {
	Svc           *tagUC.Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

// ServeHTTP タグ一覧取得
// @Summary      タグ一覧取得（使用数順）
// @Description  指定した種別（briefs / posts / products）での使用数が多い順にタグを返します。
// @Tags         tags
// @Produce      json
// @Param        kind   query    string  false  "集計対象" Enums(briefs, posts, products) default(briefs)
// @Param        cursor query    string  false  "継続トークン"
// @Param        limit  query    int     false  "1ページあたりの件数" default(20) minimum(1) maximum(100)
// @Success      200 {object} pagination.Response[AggregateDTO]
// @Failure      400 {string} string "Invalid query parameters"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /tags [get]
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
	pagination.LogRequest(logger, reqID, "tags", params)

	page, err := h.Svc.List(ctx, r.URL.Query().Get("kind"), params)
	if err != nil {
		code := respond.Fail(w, err)
		if code >= 500 {
			pagination.LogError(logger, reqID, "tags", params, err)
		}
		return
	}

	pagination.LogResponse(logger, reqID, "tags", page, time.Since(startTime), http.StatusOK)
	respond.JSON(w, http.StatusOK, pagination.FromPage(page, aggregateDTO))
}
