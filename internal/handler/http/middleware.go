package http

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"signal-feed/internal/handler/http/pathutil"
	"signal-feed/internal/handler/http/requestid"
	"signal-feed/internal/handler/http/respond"
	"signal-feed/internal/observability/metrics"
)

// Logging returns middleware that logs HTTP requests with structured logging.
// It captures request details, response status, size, processing duration and
// the OpenTelemetry trace ID for log/trace correlation.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(wrapped, r)

			reqID := requestid.FromContext(r.Context())
			traceID := trace.SpanFromContext(r.Context()).SpanContext().TraceID().String()
			duration := time.Since(start)

			logger.Info("request completed",
				slog.String("request_id", reqID),
				slog.String("trace_id", traceID),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("route", pathutil.RoutePattern(r)),
				slog.String("query", r.URL.RawQuery),
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("user_agent", r.Header.Get("User-Agent")),
				slog.Int("status", statusOf(wrapped)),
				slog.Int("bytes", wrapped.BytesWritten()),
				slog.Duration("duration", duration),
				slog.String("duration_ms", fmt.Sprintf("%.2f", duration.Seconds()*1000)),
			)
		})
	}
}

// Recover returns middleware that catches panics and logs them with structured logging.
// It prevents the server from crashing and returns a 500 Internal Server Error response.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				respond.SafeError(w, http.StatusInternalServerError, fmt.Errorf("internal error"))

				logger.Error("panic recovered",
					slog.String("request_id", requestid.FromContext(r.Context())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Any("panic", rec),
					slog.String("stack", string(debug.Stack())),
				)
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// LimitRequestBody returns middleware that limits the size of request bodies.
func LimitRequestBody(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// sessionLimiter is one token bucket and the last time it was used.
type sessionLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// SessionRateLimiter limits requests per key (the session id, or the client
// IP when the request carries none) with a token bucket per key.
type SessionRateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*sessionLimiter
	limit     rate.Limit
	burst     int
	idle      time.Duration
	lastClean time.Time
	key       func(*http.Request) string
	now       func() time.Time
}

// NewSessionRateLimiter allows perMinute requests per key with the given burst.
// key extracts the session id; an empty result falls back to the client IP.
func NewSessionRateLimiter(perMinute, burst int, key func(*http.Request) string) *SessionRateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &SessionRateLimiter{
		limiters:  make(map[string]*sessionLimiter),
		limit:     rate.Limit(float64(perMinute) / 60),
		burst:     burst,
		idle:      10 * time.Minute,
		lastClean: time.Now(),
		key:       key,
		now:       time.Now,
	}
}

// Limit answers 429 with Retry-After once a key has used up its bucket.
func (rl *SessionRateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		k := ""
		if rl.key != nil {
			k = rl.key(r)
		}
		if k == "" {
			k = "ip:" + extractIP(r)
		}

		lim := rl.get(k)
		if res := lim.Reserve(); !res.OK() || res.Delay() > 0 {
			delay := res.Delay()
			res.Cancel()
			metrics.RecordRatingRateLimited()
			w.Header().Set("Retry-After", strconv.Itoa(int(delay.Seconds())+1))
			respond.SafeError(w, http.StatusTooManyRequests, fmt.Errorf("rate limit exceeded"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// get returns the bucket for k, creating it, and drops buckets idle for
// longer than rl.idle at most once per idle period.
func (rl *SessionRateLimiter) get(k string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastClean) >= rl.idle {
		for key, sl := range rl.limiters {
			if now.Sub(sl.lastSeen) >= rl.idle {
				delete(rl.limiters, key)
			}
		}
		rl.lastClean = now
	}

	sl, ok := rl.limiters[k]
	if !ok {
		sl = &sessionLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.limiters[k] = sl
	}
	sl.lastSeen = now
	return sl.limiter
}

// Len reports the number of tracked keys.
func (rl *SessionRateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}

// extractIP returns the host part of RemoteAddr. chi's RealIP middleware has
// already replaced RemoteAddr from X-Forwarded-For / X-Real-IP.
func extractIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func statusOf(ww middleware.WrapResponseWriter) int {
	if s := ww.Status(); s != 0 {
		return s
	}
	return http.StatusOK
}
