// Package product provides use cases for listing products and reading product details.
package product

import "errors"

var (
	// ErrProductNotFound indicates that no product has the requested slug.
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidSlug indicates that the slug is empty.
	ErrInvalidSlug = errors.New("invalid product slug")
)
