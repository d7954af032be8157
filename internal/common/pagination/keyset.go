package pagination

// Request carries the pagination part of a list call.
type Request struct {
	Sort   string // Public sort token; unknown tokens resolve to the entity default
	Cursor string // Opaque continuation token from a previous page
	Limit  int    // Items per page
}

// Page is one keyset page of items.
// NextCursor is non-nil exactly when HasNext is true and Items is not empty.
type Page[T any] struct {
	Items      []T
	HasNext    bool
	NextCursor *string
}

// KeyFunc returns the sort value and tie-break id of an item.
type KeyFunc[T any] func(item T) (value any, id int64)

// FetchLimit is the number of rows to request for a page of limit items.
// The extra row detects a following page without a COUNT query.
func FetchLimit(limit int) int {
	return limit + 1
}

// Trim turns up to limit+1 fetched rows into a page.
// When more than limit rows were fetched the page is cut to limit items and the
// next cursor is built from the last returned item.
func Trim[T any](rows []T, limit int, key KeyFunc[T]) Page[T] {
	if limit < 0 {
		limit = 0
	}
	hasNext := len(rows) > limit
	if hasNext {
		rows = rows[:limit]
	}
	if rows == nil {
		rows = []T{}
	}

	page := Page[T]{Items: rows, HasNext: hasNext}
	if hasNext && len(rows) > 0 {
		value, id := key(rows[len(rows)-1])
		next := NewCursor(value, id)
		page.NextCursor = &next
	}
	return page
}

// MapPage converts the items of a page while keeping its continuation state.
func MapPage[T, U any](p Page[T], f func(T) U) Page[U] {
	items := make([]U, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, f(item))
	}
	return Page[U]{Items: items, HasNext: p.HasNext, NextCursor: p.NextCursor}
}
