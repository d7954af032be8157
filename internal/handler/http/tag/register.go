package tag

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"signal-feed/internal/common/pagination"
	tagUC "signal-feed/internal/usecase/tag"
)

// Register mounts GET /tags.
func Register(r chi.Router, svc *tagUC.Service, paginationCfg pagination.Config, logger *slog.Logger) {
	r.Method("GET", "/tags", ListHandler{
		Svc:           svc,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	})
}
