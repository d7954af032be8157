package brief

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"signal-feed/internal/common/pagination"
	briefUC "signal-feed/internal/usecase/brief"
)

// Register mounts the brief read endpoints. Rating routes under
// /briefs/{id}/ratings are mounted by the rating package.
func Register(r chi.Router, svc *briefUC.Service, paginationCfg pagination.Config, logger *slog.Logger) {
	r.Method("GET", "/briefs", ListHandler{
		Svc:           svc,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	})
	r.Method("GET", "/briefs/{slug}", GetHandler{Svc: svc, Logger: logger})
}
