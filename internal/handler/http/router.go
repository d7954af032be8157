package http

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"signal-feed/internal/common/pagination"
	"signal-feed/internal/handler/http/brief"
	"signal-feed/internal/handler/http/post"
	"signal-feed/internal/handler/http/product"
	"signal-feed/internal/handler/http/rating"
	"signal-feed/internal/handler/http/requestid"
	"signal-feed/internal/handler/http/respond"
	"signal-feed/internal/handler/http/search"
	"signal-feed/internal/handler/http/tag"
	"signal-feed/internal/observability/tracing"
	briefUC "signal-feed/internal/usecase/brief"
	postUC "signal-feed/internal/usecase/post"
	productUC "signal-feed/internal/usecase/product"
	ratingUC "signal-feed/internal/usecase/rating"
	searchUC "signal-feed/internal/usecase/search"
	tagUC "signal-feed/internal/usecase/tag"
)

// Services are the usecases behind the public routes.
type Services struct {
	Briefs   *briefUC.Service
	Posts    *postUC.Service
	Products *productUC.Service
	Tags     *tagUC.Service
	Search   *searchUC.Service
	Ratings  *ratingUC.Service
}

// RouterConfig carries everything NewRouter needs besides the services.
type RouterConfig struct {
	Logger         *slog.Logger
	DB             *sql.DB
	Breaker        BreakerState // optional
	Version        string
	Pagination     pagination.Config
	RequestTimeout time.Duration
	MaxBodyBytes   int64
	RatingLimit    int // per session per minute; 0 disables the limiter
	RatingBurst    int
}

// NewRouter builds the chi router.
// Middleware order: Request ID → Real IP → Tracing → Metrics → Logging → Recovery → Timeout → Body Limit
func NewRouter(cfg RouterConfig, svcs Services) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		middleware.RealIP,
		tracing.Middleware,
		MetricsMiddleware,
		Logging(logger),
		Recover(logger),
	)
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}
	if cfg.MaxBodyBytes > 0 {
		r.Use(LimitRequestBody(cfg.MaxBodyBytes))
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respond.SafeError(w, http.StatusNotFound, errors.New("not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respond.JSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	})

	r.Method("GET", "/health", &HealthHandler{DB: cfg.DB, Breaker: cfg.Breaker, Version: cfg.Version})
	r.Method("GET", "/ready", &ReadyHandler{DB: cfg.DB})
	r.Method("GET", "/live", &LiveHandler{})
	r.Method("GET", "/metrics", MetricsHandler())

	brief.Register(r, svcs.Briefs, cfg.Pagination, logger)
	post.Register(r, svcs.Posts, cfg.Pagination, logger)
	product.Register(r, svcs.Products, cfg.Pagination, logger)
	tag.Register(r, svcs.Tags, cfg.Pagination, logger)
	search.Register(r, svcs.Search, cfg.Pagination, logger)

	var limit func(http.Handler) http.Handler
	if cfg.RatingLimit > 0 {
		limit = NewSessionRateLimiter(cfg.RatingLimit, cfg.RatingBurst, rating.SessionKey).Limit
	}
	rating.Register(r, svcs.Ratings, limit, logger)

	return r
}
