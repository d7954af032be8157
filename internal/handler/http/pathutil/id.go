// Package pathutil reads chi path parameters and route patterns.
package pathutil

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// ErrInvalidID is returned when the ID in the URL path is invalid.
var ErrInvalidID = errors.New("invalid id")

// ErrInvalidSlug is returned when the slug in the URL path is empty or malformed.
var ErrInvalidSlug = errors.New("invalid slug")

// UnmatchedRoute labels requests chi could not route, so that 404 scans do
// not create one metrics series per probed path.
const UnmatchedRoute = "unmatched"

// ParseID parses the positive integer path parameter name.
//
//	r.Post("/briefs/{id}/ratings", h)
//	id, err := pathutil.ParseID(r, "id") // "/briefs/42/ratings" -> 42
func ParseID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

// Slug returns the path parameter name, lower-cased. Slugs are limited to
// letters, digits, '-' and '_' up to 200 bytes.
func Slug(r *http.Request, name string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(chi.URLParam(r, name)))
	if s == "" || len(s) > 200 {
		return "", ErrInvalidSlug
	}
	for _, c := range s {
		if !(c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '-' || c == '_') {
			return "", ErrInvalidSlug
		}
	}
	return s, nil
}

// RoutePattern returns the matched chi route pattern (e.g. "/briefs/{slug}")
// or UnmatchedRoute. Call it after the router has served the request.
func RoutePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return UnmatchedRoute
}
