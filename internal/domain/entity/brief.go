// Package entity defines the domain objects served by the listing API:
// briefs, posts, products, their tags and brief ratings, together with the
// domain errors and input validation shared by the other layers.
package entity

import "time"

// Brief is an editorial summary aggregated from one or more sources.
// UpvoteCount and DownvoteCount are denormalized from brief_ratings.
type Brief struct {
	ID            int64
	Slug          string
	Title         string
	Summary       string
	Category      string
	Sentiment     string
	SourceCount   int64
	UpvoteCount   int64
	DownvoteCount int64
	PublishedAt   time.Time
	CreatedAt     time.Time
	Tags          []Tag
}
