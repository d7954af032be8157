package entity

// Tag labels briefs, posts and products through the *_tags link tables.
type Tag struct {
	ID   int64
	Slug string
	Name string
}

// TagAggregate is a tag with the number of entities of one kind carrying it.
type TagAggregate struct {
	Tag
	UsageCount int64
}
