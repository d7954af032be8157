package rating

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	ratingUC "signal-feed/internal/usecase/rating"
)

// SessionKey returns the session id used to key rate limiting.
func SessionKey(r *http.Request) string {
	return r.Header.Get(SessionHeader)
}

// Register mounts the rating endpoints under /briefs/{id}/ratings. limit,
// when non-nil, wraps the mutating routes.
func Register(r chi.Router, svc *ratingUC.Service, limit func(http.Handler) http.Handler, logger *slog.Logger) {
	const path = "/briefs/{id}/ratings"

	r.Method("GET", path, GetHandler{Svc: svc, Logger: logger})

	mutate := r
	if limit != nil {
		mutate = r.With(limit)
	}
	mutate.Method("POST", path, SubmitHandler{Svc: svc, Logger: logger})
	mutate.Method("PUT", path, UpdateHandler{Svc: svc, Logger: logger})
}
