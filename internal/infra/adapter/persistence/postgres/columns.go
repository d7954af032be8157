package postgres

import "signal-feed/internal/common/pagination"

// Column is a qualified SQL column reference.
// Only the constants below are ever concatenated into query text.
type Column string

// briefs b
const (
	briefID          Column = "b.id"
	briefTitle       Column = "b.title"
	briefSummary     Column = "b.summary"
	briefCategory    Column = "b.category"
	briefSentiment   Column = "b.sentiment"
	briefSourceCount Column = "b.source_count"
	briefUpvotes     Column = "b.upvote_count"
	briefPublishedAt Column = "b.published_at"
)

// posts p
const (
	postID                Column = "p.id"
	postSource            Column = "p.source"
	postType              Column = "p.post_type"
	postTitle             Column = "p.title"
	postBody              Column = "p.body"
	postScore             Column = "p.score"
	postNumComments       Column = "p.num_comments"
	postSentiment         Column = "p.sentiment"
	postExternalCreatedAt Column = "p.external_created_at"
)

// products pr, before dedup
const (
	productID          Column = "pr.id"
	productName        Column = "pr.name"
	productTagline     Column = "pr.tagline"
	productDescription Column = "pr.description"
	productCategory    Column = "pr.category"
	productSource      Column = "pr.source"
	productCreatedAt   Column = "pr.created_at"
)

// deduped products; the outer query reads unqualified columns
const (
	dedupedID            Column = "id"
	dedupedTrendingScore Column = "trending_score"
	dedupedSignalCount   Column = "signal_count"
	dedupedLaunchedAt    Column = "launched_at"
)

// tag aggregates
const (
	aggregateID         Column = "id"
	aggregateUsageCount Column = "usage_count"
)

// BriefSorts is the allow-list of brief sort tokens. Default -published_at.
var BriefSorts = pagination.NewSortSpec(
	pagination.SortColumn{Token: "-published_at", Column: string(briefPublishedAt), Kind: pagination.KindTimestamp},
	pagination.SortColumn{Token: "-upvote_count", Column: string(briefUpvotes), Kind: pagination.KindNumeric},
	pagination.SortColumn{Token: "-source_count", Column: string(briefSourceCount), Kind: pagination.KindNumeric},
)

// PostSorts is the allow-list of post sort tokens. Default -external_created_at.
var PostSorts = pagination.NewSortSpec(
	pagination.SortColumn{Token: "-external_created_at", Column: string(postExternalCreatedAt), Kind: pagination.KindTimestamp},
	pagination.SortColumn{Token: "-score", Column: string(postScore), Kind: pagination.KindNumeric},
	pagination.SortColumn{Token: "-num_comments", Column: string(postNumComments), Kind: pagination.KindNumeric},
)

// ProductSorts is the allow-list of product sort tokens. Default -trending_score.
var ProductSorts = pagination.NewSortSpec(
	pagination.SortColumn{Token: "-trending_score", Column: string(dedupedTrendingScore), Kind: pagination.KindNumeric, Nullable: true},
	pagination.SortColumn{Token: "-signal_count", Column: string(dedupedSignalCount), Kind: pagination.KindNumeric},
	pagination.SortColumn{Token: "-launched_at", Column: string(dedupedLaunchedAt), Kind: pagination.KindTimestamp, Nullable: true},
)

// TagSorts is the allow-list of tag aggregate sort tokens.
var TagSorts = pagination.NewSortSpec(
	pagination.SortColumn{Token: "-usage_count", Column: string(aggregateUsageCount), Kind: pagination.KindNumeric},
)

// tagLink describes a many-to-many link table between an entity and tags.
type tagLink struct {
	Table    string // link table
	ParentFK string // column referencing the entity
}

var (
	briefTagLink   = tagLink{Table: "brief_tags", ParentFK: "brief_id"}
	postTagLink    = tagLink{Table: "post_tags", ParentFK: "post_id"}
	productTagLink = tagLink{Table: "product_tags", ParentFK: "product_id"}
)
