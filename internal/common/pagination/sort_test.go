package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"signal-feed/internal/common/pagination"
)

func TestSortSpec_Resolve(t *testing.T) {
	t.Parallel()

	published := pagination.SortColumn{Token: "-published_at", Column: "b.published_at", Kind: pagination.KindTimestamp}
	upvotes := pagination.SortColumn{Token: "-upvote_count", Column: "b.upvote_count", Kind: pagination.KindNumeric}
	spec := pagination.NewSortSpec(published, upvotes, published)

	assert.Equal(t, published, spec.Default())
	assert.Equal(t, upvotes, spec.Resolve("-upvote_count"))
	assert.Equal(t, published, spec.Resolve(""))
	assert.Equal(t, published, spec.Resolve("upvote_count"))
	assert.Equal(t, published, spec.Resolve("b.upvote_count; DROP TABLE briefs"))
	assert.Equal(t, []string{"-published_at", "-upvote_count"}, spec.Tokens())
}

func TestSortSpec_TokensIsCopy(t *testing.T) {
	t.Parallel()

	spec := pagination.NewSortSpec(pagination.SortColumn{Token: "-a", Column: "a"})
	tokens := spec.Tokens()
	tokens[0] = "mutated"

	assert.Equal(t, []string{"-a"}, spec.Tokens())
}

func TestSortKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "numeric", pagination.KindNumeric.String())
	assert.Equal(t, "text", pagination.KindText.String())
	assert.Equal(t, "timestamp", pagination.KindTimestamp.String())
	assert.Equal(t, "unknown", pagination.SortKind(42).String())
}
