package product

import (
	"errors"
	"log/slog"
	"net/http"

	"signal-feed/internal/common/pagination"
	"signal-feed/internal/handler/http/pathutil"
	"signal-feed/internal/handler/http/respond"
	"signal-feed/internal/observability/logging"
	productUC "signal-feed/internal/usecase/product"
)

type GetHandler struct {
	Svc    *productUC.Service
	Logger *slog.Logger
}

// ServeHTTP プロダクト詳細取得
// @Summary      プロダクト詳細取得（センチメントスコア付き）
// @Tags         products
// @Produce      json
// @Param        slug path string true "プロダクト slug"
// @Success      200 {object} pagination.Single[DetailDTO]
// @Failure      400 {string} string "invalid slug"
// @Failure      404 {string} string "not found"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /products/{slug} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.WithRequestID(ctx, h.Logger)

	slug, err := pathutil.Slug(r, "slug")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	d, err := h.Svc.Get(ctx, slug)
	if errors.Is(err, productUC.ErrInvalidSlug) {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		if code := respond.Fail(w, err, productUC.ErrProductNotFound); code >= 500 {
			logger.Error("Failed to get product", "slug", slug, "error", err.Error())
		}
		return
	}

	respond.JSON(w, http.StatusOK, pagination.Single[DetailDTO]{Data: toDetailDTO(d)})
}
