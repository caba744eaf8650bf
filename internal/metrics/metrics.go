// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics defines the Prometheus collectors for provider traffic,
// circuit breakers, enrichment and recommendations.
//
// The CLI has no HTTP endpoint; collectors are exported on exit with
// WriteTextfile for a node_exporter textfile collector.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProviderRequests counts logical provider calls by outcome
	// (success, exhausted, rejected, provider_error, decode_error).
	ProviderRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_engine_provider_requests_total",
			Help: "Logical provider calls by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	// ProviderAttempts counts individual HTTP attempts, including retries.
	ProviderAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_engine_provider_attempts_total",
			Help: "HTTP attempts made against providers",
		},
		[]string{"provider", "result"},
	)

	ProviderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_engine_provider_request_duration_seconds",
			Help:    "Duration of logical provider calls including retries",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"provider"},
	)

	// CircuitBreakerState is 0 closed, 1 half-open, 2 open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "media_engine_circuit_breaker_state",
			Help: "Circuit breaker state per provider (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_engine_circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// EnrichmentOutcomes counts per-item enrichment results
	// (detail, search_level, skipped, recovered_panic).
	EnrichmentOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_engine_enrichment_items_total",
			Help: "Enrichment outcomes per item",
		},
		[]string{"kind", "outcome"},
	)

	FallbackServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_engine_fallback_served_total",
			Help: "Requests answered from the static fallback dataset",
		},
		[]string{"kind", "operation"},
	)

	RecommendationSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_engine_recommendation_size",
			Help:    "Number of titles returned per recommendation request",
			Buckets: []float64{0, 1, 5, 10, 20, 30},
		},
		[]string{"kind"},
	)
)

// WriteTextfile writes every registered collector to path in Prometheus text
// exposition format.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
