// Package brief provides use cases for listing and reading briefs.
package brief

import "errors"

// Sentinel errors for brief use case operations.
var (
	// ErrBriefNotFound indicates that no brief has the requested slug.
	ErrBriefNotFound = errors.New("brief not found")

	// ErrInvalidSlug indicates that the slug is empty.
	ErrInvalidSlug = errors.New("invalid brief slug")
)
