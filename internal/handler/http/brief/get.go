package brief

import (
	"errors"
	"log/slog"
	"net/http"

	"signal-feed/internal/common/pagination"
	"signal-feed/internal/handler/http/pathutil"
	"signal-feed/internal/handler/http/respond"
	"signal-feed/internal/observability/logging"
	briefUC "signal-feed/internal/usecase/brief"
)

type GetHandler struct {
	Svc    *briefUC.Service
	Logger *slog.Logger
}

// ServeHTTP ブリーフ詳細取得
// @Summary      ブリーフ詳細取得
// @Tags         briefs
// @Produce      json
// @Param        slug path string true "ブリーフ slug"
// @Success      200 {object} pagination.Single[DTO]
// @Failure      400 {string} string "invalid slug"
// @Failure      404 {string} string "not found"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /briefs/{slug} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.WithRequestID(ctx, h.Logger)

	slug, err := pathutil.Slug(r, "slug")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	b, err := h.Svc.Get(ctx, slug)
	if errors.Is(err, briefUC.ErrInvalidSlug) {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		if code := respond.Fail(w, err, briefUC.ErrBriefNotFound); code >= 500 {
			logger.Error("Failed to get brief", "slug", slug, "error", err.Error())
		}
		return
	}

	respond.JSON(w, http.StatusOK, pagination.Single[DTO]{Data: ToDTO(b)})
}
