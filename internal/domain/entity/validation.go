package entity

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// MaxFeedbackLength is the longest rating feedback accepted, in characters.
	MaxFeedbackLength = 1000
	// maxSessionIDLength bounds the opaque session identifier.
	maxSessionIDLength = 128
)

// ValidateRating checks the caller-supplied fields of a rating.
// Session ids are opaque; only presence and length are checked.
func ValidateRating(briefID int64, sessionID string, feedback *string) error {
	if briefID <= 0 {
		return &ValidationError{Field: "brief_id", Message: "must be a positive integer"}
	}
	if strings.TrimSpace(sessionID) == "" {
		return &ValidationError{Field: "session_id", Message: "session id is required"}
	}
	if len(sessionID) > maxSessionIDLength {
		return &ValidationError{
			Field:   "session_id",
			Message: fmt.Sprintf("session id must not exceed %d characters", maxSessionIDLength),
		}
	}
	if feedback != nil && utf8.RuneCountInString(*feedback) > MaxFeedbackLength {
		return &ValidationError{
			Field:   "feedback",
			Message: fmt.Sprintf("feedback must not exceed %d characters", MaxFeedbackLength),
		}
	}
	return nil
}

// NormalizeFeedback trims feedback and maps blank text to nil.
func NormalizeFeedback(feedback *string) *string {
	if feedback == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*feedback)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
