// Package metrics provides Prometheus metrics for notion-mcp.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PagesRead counts read page operations by outcome.
	PagesRead = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "notion_mcp",
			Name:      "pages_read_total",
			Help:      "Total number of read page operations",
		},
		[]string{"outcome"},
	)

	// APIRequests counts Notion API requests by operation and outcome.
	APIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "notion_mcp",
			Name:      "api_requests_total",
			Help:      "Total number of Notion API requests",
		},
		[]string{"operation", "outcome"},
	)

	// CacheEvents counts page cache lookups by event.
	CacheEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "notion_mcp",
			Name:      "cache_events_total",
			Help:      "Total number of page cache events",
		},
		[]string{"event"},
	)

	// Ingests counts book ingestions by outcome.
	Ingests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "notion_mcp",
			Name:      "ingests_total",
			Help:      "Total number of book ingestions",
		},
		[]string{"outcome"},
	)
)

// RecordPageRead records a read page operation.
func RecordPageRead(outcome string) {
	PagesRead.WithLabelValues(outcome).Inc()
}

// RecordAPIRequest records a Notion API request.
func RecordAPIRequest(operation, outcome string) {
	APIRequests.WithLabelValues(operation, outcome).Inc()
}

// RecordCacheEvent records a page cache event.
func RecordCacheEvent(event string) {
	CacheEvents.WithLabelValues(event).Inc()
}

// RecordIngest records a book ingestion.
func RecordIngest(outcome string) {
	Ingests.WithLabelValues(outcome).Inc()
}
