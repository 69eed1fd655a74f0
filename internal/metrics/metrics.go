package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "board_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "board_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ModerationActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "board_moderation_actions_total",
			Help: "Moderation actions created, by action type",
		},
		[]string{"action_type"},
	)

	AppealTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "board_appeal_transitions_total",
			Help: "Appeal status transitions, by target status and outcome",
		},
		[]string{"to_status", "outcome"},
	)
)
