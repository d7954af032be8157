// Package rating provides the brief rating endpoints. Ratings are keyed by
// the brief id in the path and the session id in the X-Session-ID header.
package rating

import (
	"time"

	"signal-feed/internal/domain/entity"
)

// SessionHeader carries the caller's session id.
const SessionHeader = "X-Session-ID"

// Request is the JSON body of a rating write.
type Request struct {
	IsPositive *bool   `json:"is_positive"`
	Feedback   *string `json:"feedback,omitempty"`
}

// DTO represents the JSON structure of a stored rating.
type DTO struct {
	ID         int64     `json:"id" example:"1"`
	BriefID    int64     `json:"brief_id" example:"42"`
	IsPositive bool      `json:"is_positive" example:"true"`
	Feedback   *string   `json:"feedback"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toDTO(r *entity.Rating) DTO {
	return DTO{
		ID:         r.ID,
		BriefID:    r.BriefID,
		IsPositive: r.IsPositive,
		Feedback:   r.Feedback,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}
