package entity

import "time"

// Post is a community post collected from an external source (forum, social feed).
type Post struct {
	ID                int64
	ExternalID        string
	Source            string
	PostType          string
	Title             string
	URL               string
	Author            string
	Body              string
	Score             int64
	NumComments       int64
	Sentiment         string
	ExternalCreatedAt time.Time
	CreatedAt         time.Time
	Tags              []Tag
}
