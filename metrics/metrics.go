// Package metrics exposes the Prometheus gauges/counters this module's
// WebSocket sessions and REST clients report through: connection
// lifecycle, message throughput, and exchange API call latency.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// WebSocket session metrics, labeled by venue/topic/market.
var (
	WSConnectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketfeed_ws_connections_total",
			Help: "Total number of WebSocket connection attempts",
		},
		[]string{"venue", "topic", "market", "status"},
	)

	WSReconnectsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketfeed_ws_reconnects_total",
			Help: "Total number of WebSocket reconnection attempts",
		},
		[]string{"venue", "topic", "market"},
	)

	WSMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketfeed_ws_messages_total",
			Help: "Total number of WebSocket messages received",
		},
		[]string{"venue", "topic", "market"},
	)

	WSActiveConnections = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "marketfeed_ws_active_connections",
			Help: "Number of active WebSocket connections",
		},
		[]string{"venue", "topic", "market"},
	)

	WSQueueOverflowTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketfeed_ws_queue_overflow_total",
			Help: "Total number of inbound queue overflow events",
		},
		[]string{"venue", "topic", "market"},
	)
)

// Exchange REST API metrics.
var (
	ExchangeAPIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketfeed_exchange_api_requests_total",
			Help: "Total number of exchange API requests",
		},
		[]string{"venue", "endpoint", "status"},
	)

	ExchangeAPIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marketfeed_exchange_api_request_duration_seconds",
			Help:    "Exchange API request duration in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0},
		},
		[]string{"venue", "endpoint"},
	)

	ExchangeRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketfeed_exchange_rate_limit_hits_total",
			Help: "Total number of exchange API rate limit hits",
		},
		[]string{"venue"},
	)
)

// App info.
var (
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "marketfeed_app_info",
			Help: "Application information",
		},
		[]string{"version", "go_version"},
	)

	AppStartTime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "marketfeed_app_start_timestamp_seconds",
			Help: "Application start timestamp in seconds",
		},
	)
)
