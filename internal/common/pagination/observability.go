package pagination

import (
	"log/slog"
	"time"
)

// LogRequest logs a paginated list request with structured fields.
func LogRequest(logger *slog.Logger, requestID, entity string, req Request) {
	logger.Info("Paginated request",
		"request_id", requestID,
		"entity", entity,
		"sort", req.Sort,
		"limit", req.Limit,
		"has_cursor", req.Cursor != "")
}

// LogResponse logs a paginated list response with duration and status.
func LogResponse[T any](logger *slog.Logger, requestID, entity string, page Page[T], duration time.Duration, statusCode int) {
	logger.Info("Paginated response",
		"request_id", requestID,
		"entity", entity,
		"returned_count", len(page.Items),
		"has_next", page.HasNext,
		"duration_ms", duration.Milliseconds(),
		"status", statusCode)
}

// LogError logs a pagination error with structured fields.
func LogError(logger *slog.Logger, requestID, entity string, req Request, err error) {
	logger.Error("Pagination error",
		"request_id", requestID,
		"entity", entity,
		"sort", req.Sort,
		"limit", req.Limit,
		"error", err.Error())
}
