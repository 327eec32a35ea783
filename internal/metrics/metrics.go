// Package metrics holds the Prometheus collectors of the matching service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "carpool"

var (
	RidesCreatedTotal     = promauto.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "rides_created_total", Help: "Ride requests created"})
	MatchesCreatedTotal   = promauto.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "matches_created_total", Help: "Matches created"})
	ConfirmationsTotal    = promauto.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "match_confirmations_total", Help: "Confirmations recorded, including repeats"})
	MatchesConfirmedTotal = promauto.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "matches_confirmed_total", Help: "Matches finalized by both participants"})

	RankLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "rank_latency_seconds",
		Help:      "Time to load and rank a candidate pool",
		Buckets:   prometheus.DefBuckets,
	})
	RankCandidates = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "rank_candidates",
		Help:      "Candidates returned per ranking",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
	})

	LifecycleFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "lifecycle_failures_total", Help: "Failed match lifecycle operations"},
		[]string{"operation", "reason"},
	)
	EventPublishFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "event_publish_failures_total", Help: "Lifecycle events that could not be published"},
		[]string{"type"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
