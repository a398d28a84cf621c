package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "intake_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "path"},
	)

	// Business metrics
	TokensIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "intake_tokens_issued_total",
			Help: "Total LiveKit access tokens issued",
		},
	)

	SessionsStarted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_sessions_started_total",
			Help: "Total agent sessions started",
		},
		[]string{"mode"}, // "fresh" or "resumed"
	)

	MessagesQueued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "intake_messages_queued_total",
			Help: "Total messages enqueued for persistence",
		},
	)

	MessagesFlushed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "intake_messages_flushed_total",
			Help: "Total messages persisted by the flusher",
		},
	)

	MessagesDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "intake_messages_dropped_total",
			Help: "Total messages dropped after a failed flush",
		},
	)

	BroadcastFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "intake_broadcast_failures_total",
			Help: "Total failed room data broadcasts",
		},
	)

	QueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "intake_queue_depth",
			Help: "Messages currently awaiting persistence",
		},
	)

	// Rate limit metrics
	RateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_rate_limit_hits_total",
			Help: "Total rate limit hits",
		},
		[]string{"endpoint"},
	)

	// Infrastructure metrics
	FlushLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "intake_flush_latency_seconds",
			Help:    "Store upsert latency per flushed message",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25},
		},
	)
)
