package search

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"signal-feed/internal/common/pagination"
	searchUC "signal-feed/internal/usecase/search"
)

// Register mounts GET /search.
func Register(r chi.Router, svc *searchUC.Service, paginationCfg pagination.Config, logger *slog.Logger) {
	r.Method("GET", "/search", Handler{
		Svc:           svc,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	})
}
