// Package product provides HTTP handlers for listing products and reading
// one product with its sentiment score.
package product

import (
	"time"

	"signal-feed/internal/domain/entity"
	"signal-feed/internal/handler/http/tag"
)

// DTO represents the JSON structure for product data transfer.
// trending_score and launched_at are null when unknown.
type DTO struct {
	ID               int64      `json:"id" example:"5"`
	Slug             string     `json:"slug" example:"cursor-ide"`
	Name             string     `json:"name" example:"Cursor"`
	Tagline          string     `json:"tagline"`
	Description      string     `json:"description"`
	Category         string     `json:"category" example:"developer-tools"`
	Source           string     `json:"source" example:"producthunt"`
	URL              string     `json:"url"`
	TrendingScore    *float64   `json:"trending_score" example:"87.5"`
	SignalCount      int64      `json:"signal_count" example:"14"`
	LaunchedAt       *time.Time `json:"launched_at"`
	PositiveMentions int64      `json:"positive_mentions"`
	NegativeMentions int64      `json:"negative_mentions"`
	CreatedAt        time.Time  `json:"created_at"`
	Sources          []string   `json:"sources"`
	Tags             []tag.DTO  `json:"tags"`
}

// DetailDTO is a product with its derived sentiment score (0-100).
type DetailDTO struct {
	DTO
	SentimentScore int `json:"sentiment_score" example:"70"`
}

// ToDTO maps a product entity to its JSON form.
func ToDTO(p *entity.Product) DTO {
	sources := p.Sources
	if sources == nil {
		sources = []string{}
	}
	return DTO{
		ID:               p.ID,
		Slug:             p.Slug,
		Name:             p.Name,
		Tagline:          p.Tagline,
		Description:      p.Description,
		Category:         p.Category,
		Source:           p.Source,
		URL:              p.URL,
		TrendingScore:    p.TrendingScore,
		SignalCount:      p.SignalCount,
		LaunchedAt:       p.LaunchedAt,
		PositiveMentions: p.PositiveMentions,
		NegativeMentions: p.NegativeMentions,
		CreatedAt:        p.CreatedAt,
		Sources:          sources,
		Tags:             tag.DTOs(p.Tags),
	}
}

func toDetailDTO(d *entity.ProductDetail) DetailDTO {
	return DetailDTO{DTO: ToDTO(&d.Product), SentimentScore: d.SentimentScore}
}
