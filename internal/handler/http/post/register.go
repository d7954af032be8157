package post

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"signal-feed/internal/common/pagination"
	postUC "signal-feed/internal/usecase/post"
)

// Register mounts GET /posts.
func Register(r chi.Router, svc *postUC.Service, paginationCfg pagination.Config, logger *slog.Logger) {
	r.Method("GET", "/posts", ListHandler{
		Svc:           svc,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	})
}
