package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"signal-feed/internal/config"
	hhttp "signal-feed/internal/handler/http"
	pgRepo "signal-feed/internal/infra/adapter/persistence/postgres"
	"signal-feed/internal/infra/db"
	"signal-feed/internal/observability/logging"
	"signal-feed/internal/resilience/circuitbreaker"

	briefUC "signal-feed/internal/usecase/brief"
	postUC "signal-feed/internal/usecase/post"
	productUC "signal-feed/internal/usecase/product"
	ratingUC "signal-feed/internal/usecase/rating"
	searchUC "signal-feed/internal/usecase/search"
	tagUC "signal-feed/internal/usecase/tag"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	shutdownTracing := initTracing()

	database, err := db.Open(context.Background(), cfg.Database.URL, cfg.Database.Pool)
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	handler := setupServer(logger, cfg, database)
	runServer(logger, cfg, handler)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracing(ctx); err != nil {
		logger.Warn("tracer provider shutdown failed", slog.Any("error", err))
	}
}

// initTracing installs an SDK tracer provider so request spans carry real
// trace ids for log correlation, and W3C trace context propagation.
func initTracing() func(context.Context) error {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return tp.Shutdown
}

// setupServer wires repositories, usecases and routes. With the breaker
// enabled every repository query goes through it.
func setupServer(logger *slog.Logger, cfg config.Config, database *sql.DB) http.Handler {
	var (
		store   pgRepo.Querier = database
		breaker hhttp.BreakerState
	)
	if cfg.Database.BreakerEnabled {
		dcb := circuitbreaker.NewDBCircuitBreaker(database)
		store, breaker = dcb, dcb
		logger.Info("database circuit breaker enabled")
	} else {
		logger.Warn("database circuit breaker is DISABLED")
	}

	briefs := pgRepo.NewBriefRepo(store)
	posts := pgRepo.NewPostRepo(store)
	products := pgRepo.NewProductRepo(store)

	svcs := hhttp.Services{
		Briefs:   &briefUC.Service{Repo: briefs, Pagination: cfg.Pagination},
		Posts:    &postUC.Service{Repo: posts, Pagination: cfg.Pagination},
		Products: &productUC.Service{Repo: products, Pagination: cfg.Pagination},
		Tags:     &tagUC.Service{Repo: pgRepo.NewTagRepo(store), Pagination: cfg.Pagination},
		Search:   &searchUC.Service{Repo: pgRepo.NewSearchRepo(briefs, posts, products), Pagination: cfg.Pagination},
		Ratings:  &ratingUC.Service{Repo: pgRepo.NewRatingRepo(store)},
	}

	return hhttp.NewRouter(hhttp.RouterConfig{
		Logger:         logger,
		DB:             database,
		Breaker:        breaker,
		Version:        cfg.Version,
		Pagination:     cfg.Pagination,
		RequestTimeout: cfg.HTTP.RequestTimeout,
		MaxBodyBytes:   cfg.HTTP.MaxBodyBytes,
		RatingLimit:    cfg.Ratings.RateLimit,
		RatingBurst:    cfg.Ratings.Burst,
	}, svcs)
}

// runServer starts the HTTP server and blocks until SIGINT/SIGTERM, then
// drains in-flight requests for up to the shutdown timeout.
func runServer(logger *slog.Logger, cfg config.Config, handler http.Handler) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.HTTP.Addr),
			slog.String("version", cfg.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
		logger.Info("shutting down server...")
	case err := <-errCh:
		logger.Error("server failed", slog.Any("error", err))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	cancel()
	logger.Info("server stopped")
}
