package repository

import (
	"context"
	"errors"

	"signal-feed/internal/domain/entity"
)

// ErrRatingExists is returned by Create when the session already rated the brief.
var ErrRatingExists = errors.New("rating already exists")

// RatingInput is a rating write for (BriefID, SessionID).
type RatingInput struct {
	BriefID    int64
	SessionID  string
	IsPositive bool
	Feedback   *string
}

// RatingRepository writes ratings and keeps the brief's vote counters in step.
// Counter adjustments are separate statements and may under-count under
// concurrent writes to the same brief.
type RatingRepository interface {
	// Create inserts the rating and increments the matching brief counter.
	Create(ctx context.Context, in RatingInput) (*entity.Rating, error)
	// Update rewrites polarity and feedback; entity.ErrNotFound if no rating exists.
	// When polarity flips the old counter is decremented and the new one incremented.
	Update(ctx context.Context, in RatingInput) (*entity.Rating, error)
	// Find returns (nil, nil) if the session has not rated the brief.
	Find(ctx context.Context, briefID int64, sessionID string) (*entity.Rating, error)
}
