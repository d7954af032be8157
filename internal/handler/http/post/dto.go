// Package post provides the HTTP handler for listing posts.
package post

import (
	"time"

	"signal-feed/internal/domain/entity"
	"signal-feed/internal/handler/http/tag"
)

// DTO represents the JSON structure for post data transfer.
type DTO struct {
	ID                int64     `json:"id" example:"10"`
	ExternalID        string    `json:"external_id" example:"t3_abc123"`
	Source            string    `json:"source" example:"reddit"`
	PostType          string    `json:"post_type" example:"discussion"`
	Title             string    `json:"title"`
	URL               string    `json:"url" example:"https://example.com/p/10"`
	Author            string    `json:"author"`
	Body              string    `json:"body"`
	Score             int64     `json:"score" example:"120"`
	NumComments       int64     `json:"num_comments" example:"34"`
	Sentiment         string    `json:"sentiment" example:"neutral"`
	ExternalCreatedAt time.Time `json:"external_created_at"`
	CreatedAt         time.Time `json:"created_at"`
	Tags              []tag.DTO `json:"tags"`
}

// ToDTO maps a post entity to its JSON form.
func ToDTO(p *entity.Post) DTO {
	return DTO{
		ID:                p.ID,
		ExternalID:        p.ExternalID,
		Source:            p.Source,
		PostType:          p.PostType,
		Title:             p.Title,
		URL:               p.URL,
		Author:            p.Author,
		Body:              p.Body,
		Score:             p.Score,
		NumComments:       p.NumComments,
		Sentiment:         p.Sentiment,
		ExternalCreatedAt: p.ExternalCreatedAt,
		CreatedAt:         p.CreatedAt,
		Tags:              tag.DTOs(p.Tags),
	}
}
