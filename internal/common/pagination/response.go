package pagination

// Meta is the continuation block of a list response.
type Meta struct {
	HasNext    bool    `json:"has_next"`
	NextCursor *string `json:"next_cursor"`
}

// Response is the list endpoint envelope.
// T is the type of data items (e.g., BriefDTO, PostDTO, ProductDTO).
//
// Example usage:
//
//	page, _ := svc.List(ctx, filter, req)
//	response := pagination.NewResponse(toDTOs(page.Items), pagination.MetaOf(page))
//	// {"data":[...],"meta":{"has_next":true,"next_cursor":"eyJpZCI6..."}}
type Response[T any] struct {
	Data []T   `json:"data"`
	Meta *Meta `json:"meta,omitempty"`
}

// Single is the envelope of a detail endpoint.
type Single[T any] struct {
	Data T `json:"data"`
}

// NewResponse creates a new list response with data and metadata.
func NewResponse[T any](data []T, meta *Meta) Response[T] {
	if data == nil {
		data = []T{}
	}
	return Response[T]{
		Data: data,
		Meta: meta,
	}
}

// MetaOf returns the continuation metadata of a page.
func MetaOf[T any](p Page[T]) *Meta {
	return &Meta{HasNext: p.HasNext, NextCursor: p.NextCursor}
}

// FromPage converts a page with f and wraps it in a response envelope.
func FromPage[T, U any](p Page[T], f func(T) U) Response[U] {
	mapped := MapPage(p, f)
	return NewResponse(mapped.Items, MetaOf(mapped))
}
