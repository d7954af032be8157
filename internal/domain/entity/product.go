package entity

import (
	"math"
	"time"
)

// Product is one logical product. Rows sharing a case-insensitive name are
// merged; Sources then lists every source the product was seen on.
type Product struct {
	ID               int64
	Slug             string
	Name             string
	Tagline          string
	Description      string
	Category         string
	Source           string
	URL              string
	TrendingScore    *float64
	SignalCount      int64
	LaunchedAt       *time.Time
	PositiveMentions int64
	NegativeMentions int64
	CreatedAt        time.Time
	Sources          []string
	Tags             []Tag
}

// ProductDetail is a product with its derived sentiment score.
type ProductDetail struct {
	Product
	SentimentScore int
}

// SentimentScore returns the share of positive mentions as a 0-100 integer.
// With no mentions at all the score is 0.
func SentimentScore(positive, negative int64) int {
	total := positive + negative
	if total < 1 {
		total = 1
	}
	return int(math.Round(float64(positive) / float64(total) * 100))
}

// MergeSources returns the distinct union of aggregated, in first-seen order.
// Empty names are skipped. When nothing remains, own is used as the single source.
func MergeSources(aggregated []string, own string) []string {
	seen := make(map[string]struct{}, len(aggregated))
	out := make([]string, 0, len(aggregated))
	for _, s := range aggregated {
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	if len(out) == 0 && own != "" {
		out = append(out, own)
	}
	return out
}

// NewProductDetail derives the detail view of p.
func NewProductDetail(p Product) ProductDetail {
	return ProductDetail{
		Product:        p,
		SentimentScore: SentimentScore(p.PositiveMentions, p.NegativeMentions),
	}
}
