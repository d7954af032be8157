package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"signal-feed/internal/handler/http/pathutil"
	"signal-feed/internal/observability/metrics"
)

// MetricsMiddleware records HTTP request metrics including duration, size, and status codes.
// Requests are labelled by chi route pattern (/briefs/{slug}), never by raw path,
// so slugs and ids do not multiply series.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		start := time.Now()
		next.ServeHTTP(ww, r)

		metrics.RecordHTTPRequest(
			r.Method,
			pathutil.RoutePattern(r),
			strconv.Itoa(statusOf(ww)),
			time.Since(start),
			int(r.ContentLength),
			ww.BytesWritten(),
		)
	})
}

// MetricsHandler returns an HTTP handler for the Prometheus metrics endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
