// Package rating provides use cases for submitting brief ratings.
package rating

import "errors"

var (
	// ErrRatingNotFound indicates that the session has not rated the brief.
	ErrRatingNotFound = errors.New("rating not found")

	// ErrBriefNotFound indicates that the rated brief does not exist.
	ErrBriefNotFound = errors.New("brief not found")
)
