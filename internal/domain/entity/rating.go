package entity

import "time"

// Rating is one session's vote on a brief. A session has at most one rating
// per brief; ratings are created and updated, never deleted.
type Rating struct {
	ID         int64
	BriefID    int64
	SessionID  string
	IsPositive bool
	Feedback   *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
