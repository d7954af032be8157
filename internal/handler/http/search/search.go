// Package search provides the cross-entity search endpoint.
package search

import (
	"log/slog"
	"net/http"
	"time"

	"signal-feed/internal/common/pagination"
	"signal-feed/internal/handler/http/brief"
	"signal-feed/internal/handler/http/post"
	"signal-feed/internal/handler/http/product"
	"signal-feed/internal/handler/http/requestid"
	"signal-feed/internal/handler/http/respond"
	"signal-feed/internal/observability/logging"
	"signal-feed/internal/observability/metrics"
	"signal-feed/internal/repository"
	searchUC "signal-feed/internal/usecase/search"
)

// Cursor query parameters, one per result section.
const (
	ParamCursorBriefs   = "cursor_briefs"
	ParamCursorPosts    = "cursor_posts"
	ParamCursorProducts = "cursor_products"
)

// Response holds one independently paginated section per entity.
type Response struct {
	Briefs   pagination.Response[brief.DTO]   `json:"briefs"`
	Posts    pagination.Response[post.DTO]    `json:"posts"`
	Products pagination.Response[product.DTO] `json:"products"`
}

type Handler struct {
	Svc           *searchUC.Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

// ServeHTTP 横断検索
// @Summary      ブリーフ・投稿・プロダクト横断検索
// @Description  各セクションは独立したカーソルでページングします。
// @Tags         search
// @Produce      json
// @Param        q               query  string  false  "検索語（最大200文字）"
// @Param        cursor_briefs   query  string  false  "ブリーフの継続トークン"
// @Param        cursor_posts    query  string  false  "投稿の継続トークン"
// @Param        cursor_products query  string  false  "プロダクトの継続トークン"
// @Param        limit           query  int     false  "セクションごとの件数" default(20) minimum(1) maximum(100)
// @Success      200 {object} Response
// @Failure      400 {string} string "Invalid query parameters"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /search [get]
func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	q := r.URL.Query()
	query := q.Get("q")
	cursors := repository.SearchCursors{
		Briefs:   q.Get(ParamCursorBriefs),
		Posts:    q.Get(ParamCursorPosts),
		Products: q.Get(ParamCursorProducts),
	}
	logger.Info("Search request",
		"request_id", reqID,
		"query_length", len(query),
		"limit", params.Limit)

	result, err := h.Svc.Search(ctx, query, cursors, params.Limit)
	if err != nil {
		if code := respond.Fail(w, err); code >= 500 {
			pagination.LogError(logger, reqID, "search", params, err)
		}
		return
	}

	metrics.RecordSearch(query, map[string]int{
		"briefs":   len(result.Briefs.Items),
		"posts":    len(result.Posts.Items),
		"products": len(result.Products.Items),
	})
	logger.Info("Search response",
		"request_id", reqID,
		"briefs", len(result.Briefs.Items),
		"posts", len(result.Posts.Items),
		"products", len(result.Products.Items),
		"duration_ms", time.Since(startTime).Milliseconds())

	respond.JSON(w, http.StatusOK, Response{
		Briefs:   pagination.FromPage(result.Briefs, brief.ToDTO),
		Posts:    pagination.FromPage(result.Posts, post.ToDTO),
		Products: pagination.FromPage(result.Products, product.ToDTO),
	})
}
