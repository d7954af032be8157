// Package respond writes JSON responses and maps errors to sanitized HTTP errors.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sony/gobreaker"

	"signal-feed/internal/domain/entity"
)

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// Log the error but cannot send error response as headers already sent
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// safeErrors are message fragments that may be shown to clients as-is.
var safeErrors = []string{
	"required",
	"invalid",
	"not found",
	"already exists",
	"must be",
	"must not",
	"cannot be",
	"too long",
	"too short",
	"validation error",
	"rate limit exceeded",
}

// SafeError sanitizes error messages before returning them to users.
// 5xx errors are logged (with secrets masked) and answered with a generic message.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	msg := err.Error()

	isSafe := false
	lowerMsg := strings.ToLower(msg)
	for _, safe := range safeErrors {
		if strings.Contains(lowerMsg, safe) {
			isSafe = true
			break
		}
	}

	// 500系は常に内部エラー扱い
	if code >= 500 {
		isSafe = false
	}

	if isSafe {
		JSON(w, code, map[string]string{"error": msg})
		return
	}

	slog.Default().Error("internal server error",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.Any("error", SanitizeError(err)))

	generic := "internal server error"
	if code == http.StatusServiceUnavailable {
		generic = "service temporarily unavailable"
	}
	JSON(w, code, map[string]string{"error": generic})
}

// StatusOf maps an error to its HTTP status. Validation failures are 400,
// the given not-found sentinels 404, an open store circuit 503, and
// anything else 500.
func StatusOf(err error, notFound ...error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, entity.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return http.StatusServiceUnavailable
	}
	for _, nf := range notFound {
		if errors.Is(err, nf) {
			return http.StatusNotFound
		}
	}
	return http.StatusInternalServerError
}

// Fail writes err with the status chosen by StatusOf.
func Fail(w http.ResponseWriter, err error, notFound ...error) int {
	code := StatusOf(err, notFound...)
	SafeError(w, code, err)
	return code
}
