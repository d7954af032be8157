// Package http wires the chi router, middleware, health and metrics endpoints
// around the brief, post, product, tag, search and rating handlers.
package http

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"signal-feed/internal/handler/http/respond"
	"signal-feed/internal/observability/metrics"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // ISO 8601 format
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string         `json:"status"` // "healthy", "degraded" or "unhealthy"
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// BreakerState reports the store circuit breaker state.
type BreakerState interface {
	State() gobreaker.State
}

// HealthHandler checks database connectivity, pool utilisation and the store
// circuit breaker. Pool statistics are also copied into the DB gauges.
type HealthHandler struct {
	DB      *sql.DB
	Breaker BreakerState // optional
	Version string
}

// ServeHTTP returns 200 when every check is healthy or degraded, 503 otherwise.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]CheckStatus)

	if h.DB != nil {
		checks["database"] = h.checkDatabase(ctx)
	} else {
		checks["database"] = CheckStatus{Status: "unhealthy", Message: "not configured"}
	}

	if h.Breaker != nil {
		checks["circuit_breaker"] = h.checkBreaker()
	}

	status := "healthy"
	statusCode := http.StatusOK
	for _, c := range checks {
		if c.Status == "unhealthy" {
			status = "unhealthy"
			statusCode = http.StatusServiceUnavailable
			break
		}
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, statusCode, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}

// checkDatabase pings the database and reports connection pool statistics.
func (h *HealthHandler) checkDatabase(ctx context.Context) CheckStatus {
	if err := h.DB.PingContext(ctx); err != nil {
		slog.Default().Warn("health: database ping failed", slog.Any("error", respond.SanitizeError(err)))
		return CheckStatus{Status: "unhealthy", Message: "database unreachable"}
	}

	stats := h.DB.Stats()
	metrics.UpdateDBConnectionStats(stats)

	details := map[string]any{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,
		"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
	}

	// MaxOpenConnections 0 は無制限
	if stats.MaxOpenConnections == 0 {
		return CheckStatus{
			Status:  "degraded",
			Message: "connection pool max connections not configured",
			Details: details,
		}
	}

	utilizationPercent := float64(stats.InUse) / float64(stats.MaxOpenConnections) * 100
	details["utilization_percent"] = utilizationPercent

	if utilizationPercent >= 80.0 {
		return CheckStatus{
			Status:  "degraded",
			Message: "connection pool utilization above 80%",
			Details: details,
		}
	}

	return CheckStatus{Status: "healthy", Details: details}
}

// checkBreaker is unhealthy while the circuit is open: every store call is
// being shed.
func (h *HealthHandler) checkBreaker() CheckStatus {
	state := h.Breaker.State()
	details := map[string]any{"state": state.String()}
	switch state {
	case gobreaker.StateOpen:
		return CheckStatus{Status: "unhealthy", Message: "store circuit open", Details: details}
	case gobreaker.StateHalfOpen:
		return CheckStatus{Status: "degraded", Message: "store circuit probing", Details: details}
	default:
		return CheckStatus{Status: "healthy", Details: details}
	}
}

// ReadyHandler answers readiness probes: 200 once the database answers a ping.
type ReadyHandler struct {
	DB *sql.DB
}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.DB == nil {
		http.Error(w, "database not configured", http.StatusServiceUnavailable)
		return
	}
	if err := h.DB.PingContext(ctx); err != nil {
		http.Error(w, "database not ready", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// LiveHandler answers liveness probes and always returns 200.
type LiveHandler struct{}

func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("alive"))
}
