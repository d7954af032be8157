package metrics

import (
	"database/sql"
	"strings"
)

// Rating outcomes.
const (
	RatingCreated  = "created"
	RatingUpdated  = "updated"
	RatingRejected = "rejected" // validation or unknown brief
	RatingFailed   = "failed"   // store error
)

// RecordRating counts one rating write by outcome.
func RecordRating(outcome string) {
	RatingsSubmittedTotal.WithLabelValues(outcome).Inc()
}

// RecordRatingRateLimited counts one rating request refused by the session limiter.
func RecordRatingRateLimited() {
	RatingsRateLimitedTotal.Inc()
}

// RecordSearch counts a search request and the size of each returned section.
func RecordSearch(query string, sections map[string]int) {
	kind := "text"
	if strings.TrimSpace(query) == "" {
		kind = "blank"
	}
	SearchQueriesTotal.WithLabelValues(kind).Inc()
	for section, n := range sections {
		SearchResultsReturned.WithLabelValues(section).Observe(float64(n))
	}
}

// UpdateDBConnectionStats copies connection pool statistics into the gauges.
func UpdateDBConnectionStats(stats sql.DBStats) {
	DBConnectionsActive.Set(float64(stats.InUse))
	DBConnectionsIdle.Set(float64(stats.Idle))
	DBConnectionsWaitTotal.Set(float64(stats.WaitCount))
}
