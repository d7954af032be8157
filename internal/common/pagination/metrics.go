package pagination

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PagesTotal counts the pages served.
	// Labels: entity (briefs, posts, products, tags), has_next (true/false)
	PagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pagination_pages_total",
			Help: "Total number of keyset pages served",
		},
		[]string{"entity", "has_next"},
	)

	// PageSize tracks the number of items returned per page.
	PageSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pagination_page_size",
			Help:    "Number of items returned per page",
			Buckets: []float64{0, 1, 5, 10, 20, 50, 100},
		},
		[]string{"entity"},
	)

	// QueryDuration tracks the duration of the page query.
	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pagination_query_duration_seconds",
			Help:    "Keyset page query duration distribution",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.2, 0.5, 1.0, 2.0},
		},
		[]string{"entity"},
	)

	// CursorRejectedTotal counts cursors that were ignored and restarted pagination.
	// Labels: reason (oversized, base64, json, not_object, type_mismatch)
	CursorRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pagination_cursor_rejected_total",
			Help: "Total number of malformed cursors that restarted pagination",
		},
		[]string{"reason"},
	)

	// RelationBatchSize tracks how many parents one relation batch query covers.
	RelationBatchSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pagination_relation_batch_size",
			Help:    "Number of parent ids per relation batch query",
			Buckets: []float64{1, 5, 10, 20, 50, 100},
		},
		[]string{"relation"},
	)
)

// RecordPage records a served page.
func RecordPage(entity string, size int, hasNext bool) {
	PagesTotal.WithLabelValues(entity, strconv.FormatBool(hasNext)).Inc()
	PageSize.WithLabelValues(entity).Observe(float64(size))
}

// RecordQueryDuration records the page query duration.
func RecordQueryDuration(entity string, duration time.Duration) {
	QueryDuration.WithLabelValues(entity).Observe(duration.Seconds())
}

// RecordCursorRejected records a cursor that was ignored.
func RecordCursorRejected(reason string) {
	CursorRejectedTotal.WithLabelValues(reason).Inc()
}

// RecordRelationBatch records the size of a relation batch query.
func RecordRelationBatch(relation string, parents int) {
	RelationBatchSize.WithLabelValues(relation).Observe(float64(parents))
}
