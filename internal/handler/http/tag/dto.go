// Package tag provides the tag aggregate listing endpoint and the tag DTO
// embedded by the brief, post and product endpoints.
package tag

import (
	"net/http"
	"strings"

	"signal-feed/internal/domain/entity"
)

// DTO represents the JSON structure of a tag attached to an entity.
type DTO struct {
	ID   int64  `json:"id" example:"3"`
	Slug string `json:"slug" example:"golang"`
	Name string `json:"name" example:"Go"`
}

// AggregateDTO is a tag with its usage count.
type AggregateDTO struct {
	DTO
	UsageCount int64 `json:"usage_count" example:"42"`
}

// DTOs converts tags to DTOs. The result is never nil.
func DTOs(tags []entity.Tag) []DTO {
	out := make([]DTO, 0, len(tags))
	for _, t := range tags {
		out = append(out, DTO{ID: t.ID, Slug: t.Slug, Name: t.Name})
	}
	return out
}

func aggregateDTO(a entity.TagAggregate) AggregateDTO {
	return AggregateDTO{
		DTO:        DTO{ID: a.ID, Slug: a.Slug, Name: a.Name},
		UsageCount: a.UsageCount,
	}
}

// SlugsFromQuery collects tag filters from repeated ?tag= parameters and
// comma separated lists (?tag=go,rust). Blank entries and duplicates are dropped.
func SlugsFromQuery(r *http.Request) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, raw := range r.URL.Query()["tag"] {
		for _, s := range strings.Split(raw, ",") {
			s = strings.ToLower(strings.TrimSpace(s))
			if s == "" {
				continue
			}
			if _, dup := seen[s]; dup {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}
