// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpstreamRequests counts calls to the shortening service by operation and outcome.
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "surl",
		Name:      "upstream_requests_total",
		Help:      "Calls made to the shortening service.",
	}, []string{"operation", "outcome"})

	// UpstreamDuration observes the latency of calls to the shortening service.
	UpstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "surl",
		Name:      "upstream_request_duration_seconds",
		Help:      "Latency of calls to the shortening service.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})

	// HTTPRequests counts requests served by the front-end.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "surl",
		Name:      "http_requests_total",
		Help:      "Requests served by the front-end.",
	}, []string{"method", "route", "status"})

	// HistoryEvents counts shorten events by what happened to them.
	HistoryEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "surl",
		Name:      "history_events_total",
		Help:      "Shorten events queued, dropped, recorded or failed.",
	}, []string{"result"})
)

// Outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)
