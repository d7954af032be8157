// Package requestid generates or propagates X-Request-ID for every request.
package requestid

import (
	"context"
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// RequestIDKey is the context key for storing request IDs.
	RequestIDKey contextKey = "request_id"
	// RequestIDHeader is the HTTP header name for request IDs.
	RequestIDHeader = "X-Request-ID"
)

// validID bounds what a client may send us as a request id: it ends up in
// log lines and response headers verbatim.
var validID = regexp.MustCompile(`^[A-Za-z0-9._:-]{1,128}$`)

// FromContext retrieves the request ID from the context.
// Returns an empty string if no request ID is found.
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

// WithRequestID adds a request ID to the context.
// The id is also stored under chi's request id key so chi middleware sees the same value.
func WithRequestID(ctx context.Context, id string) context.Context {
	ctx = context.WithValue(ctx, middleware.RequestIDKey, id)
	return context.WithValue(ctx, RequestIDKey, id)
}

// Middleware keeps a well-formed incoming X-Request-ID or generates a UUID v4,
// and sets it on the response header and the request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if !validID.MatchString(requestID) {
			requestID = uuid.New().String()
		}

		w.Header().Set(RequestIDHeader, requestID)
		next.ServeHTTP(w, r.WithContext(WithRequestID(r.Context(), requestID)))
	})
}
