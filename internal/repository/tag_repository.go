package repository

import (
	"context"
	"fmt"

	"signal-feed/internal/common/pagination"
	"signal-feed/internal/domain/entity"
)

// TagKind selects which entity's link table tag usage is counted over.
type TagKind string

const (
	TagKindBriefs   TagKind = "briefs"
	TagKindPosts    TagKind = "posts"
	TagKindProducts TagKind = "products"
)

// ParseTagKind maps a public kind token to a TagKind. Empty means briefs.
func ParseTagKind(s string) (TagKind, error) {
	switch TagKind(s) {
	case "":
		return TagKindBriefs, nil
	case TagKindBriefs, TagKindPosts, TagKindProducts:
		return TagKind(s), nil
	default:
		return "", &entity.ValidationError{
			Field:   "kind",
			Message: fmt.Sprintf("kind must be one of %s, %s, %s", TagKindBriefs, TagKindPosts, TagKindProducts),
		}
	}
}

type TagRepository interface {
	// ListAggregates pages tags by how many entities of kind use them.
	ListAggregates(ctx context.Context, kind TagKind, req pagination.Request) (pagination.Page[entity.TagAggregate], error)
}
