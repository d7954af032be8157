package product

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"signal-feed/internal/common/pagination"
	productUC "signal-feed/internal/usecase/product"
)

// Register mounts the product read endpoints.
func Register(r chi.Router, svc *productUC.Service, paginationCfg pagination.Config, logger *slog.Logger) {
	r.Method("GET", "/products", ListHandler{
		Svc:           svc,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	})
	r.Method("GET", "/products/{slug}", GetHandler{Svc: svc, Logger: logger})
}
