package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "irys_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// CommentsCreated counts comments added to threads, by "comment" or "reply".
	CommentsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "irys_comments_created_total",
		Help: "Total number of comments created by kind",
	}, []string{"kind"})

	// PollVotes counts vote attempts by outcome: accepted, ignored or rejected.
	PollVotes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "irys_poll_votes_total",
		Help: "Total number of poll vote attempts by outcome",
	}, []string{"outcome"})

	// ContentCreated counts feed items and stories by kind.
	ContentCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "irys_content_created_total",
		Help: "Total number of posts, polls and stories created",
	}, []string{"kind"})

	// Suggestions counts text suggestion requests by outcome.
	Suggestions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "irys_suggestions_total",
		Help: "Total number of post suggestion requests by outcome",
	}, []string{"outcome"})

	// SuggestionLatency records upstream generation latency.
	SuggestionLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "irys_suggestion_latency_seconds",
		Help:    "Latency of upstream text generation in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// WebSocketConnectionsTotal is the gauge of total WebSocket connections.
	WebSocketConnectionsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "irys_websocket_connections_total",
		Help: "Total number of active WebSocket connections",
	})

	// WebSocketEventsTotal counts WebSocket events by type.
	WebSocketEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "irys_websocket_events_total",
		Help: "Total WebSocket events by type",
	}, []string{"event_type"})

	// WebSocketBackpressureDrops counts messages dropped due to backpressure by hub and reason.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "irys_websocket_backpressure_drops_total",
		Help: "Total number of WebSocket messages dropped due to backpressure",
	}, []string{"hub", "reason"})
)
