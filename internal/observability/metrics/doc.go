// Package metrics holds the Prometheus collectors for HTTP traffic, ratings,
// search and the database pool. Pagination collectors live with the
// pagination package.
//
// All collectors register with the default registry and are served on /metrics.
package metrics
