package pagination

import (
	"fmt"
	"net/http"
	"strconv"
)

// Query parameter names shared by all list endpoints.
const (
	ParamSort   = "sort"
	ParamCursor = "cursor"
	ParamLimit  = "limit"
)

// ParseQueryParams parses pagination parameters from HTTP request query string.
// Returns Request with defaults if parameters are missing.
//
// Query parameters:
//   - sort: Public sort token (unknown values fall back to the entity default)
//   - cursor: Opaque continuation token (malformed values restart pagination)
//   - limit: Items per page (must be between 1 and config.MaxLimit)
//
// Returns an error only if limit is invalid.
func ParseQueryParams(r *http.Request, config Config) (Request, error) {
	return ParseQueryParamsWithCursor(r, config, ParamCursor)
}

// ParseQueryParamsWithCursor is ParseQueryParams reading the cursor from cursorParam.
// Endpoints returning several independent pages use one cursor parameter per page.
func ParseQueryParamsWithCursor(r *http.Request, config Config, cursorParam string) (Request, error) {
	q := r.URL.Query()
	req := Request{
		Sort:   q.Get(ParamSort),
		Cursor: q.Get(cursorParam),
		Limit:  config.DefaultLimit,
	}

	if limitStr := q.Get(ParamLimit); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > config.MaxLimit {
			return req, fmt.Errorf("invalid query parameter: limit must be between 1 and %d", config.MaxLimit)
		}
		req.Limit = limit
	}

	return req, nil
}
