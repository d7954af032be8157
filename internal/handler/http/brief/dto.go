// Package brief provides HTTP handlers for listing briefs and reading one brief by slug.
package brief

import (
	"time"

	"signal-feed/internal/domain/entity"
	"signal-feed/internal/handler/http/tag"
)

// DTO represents the JSON structure for brief data transfer.
type DTO struct {
	ID            int64     `json:"id" example:"1"`
	Slug          string    `json:"slug" example:"go-1-23-release"`
	Title         string    `json:"title" example:"Go 1.23 リリース"`
	Summary       string    `json:"summary" example:"Go 1.23 がリリースされました。"`
	Category      string    `json:"category" example:"languages"`
	Sentiment     string    `json:"sentiment" example:"positive"`
	SourceCount   int64     `json:"source_count" example:"4"`
	UpvoteCount   int64     `json:"upvote_count" example:"12"`
	DownvoteCount int64     `json:"downvote_count" example:"1"`
	PublishedAt   time.Time `json:"published_at" example:"2025-10-26T10:00:00Z"`
	CreatedAt     time.Time `json:"created_at" example:"2025-10-26T12:00:00Z"`
	Tags          []tag.DTO `json:"tags"`
}

// ToDTO maps a brief entity to its JSON form.
func ToDTO(b *entity.Brief) DTO {
	return DTO{
		ID:            b.ID,
		Slug:          b.Slug,
		Title:         b.Title,
		Summary:       b.Summary,
		Category:      b.Category,
		Sentiment:     b.Sentiment,
		SourceCount:   b.SourceCount,
		UpvoteCount:   b.UpvoteCount,
		DownvoteCount: b.DownvoteCount,
		PublishedAt:   b.PublishedAt,
		CreatedAt:     b.CreatedAt,
		Tags:          tag.DTOs(b.Tags),
	}
}
