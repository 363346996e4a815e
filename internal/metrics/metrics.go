// Package metrics exposes prometheus collectors for the engine, the delivery
// hub, and the HTTP gateway.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	EngineOps = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "chatter_engine_ops_total",
		Help: "Engine operations by verb and outcome",
	}, []string{"op", "outcome"})
	NotificationsEmitted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "chatter_notifications_emitted_total",
		Help: "Notifications handed to the delivery boundary",
	})
	NotificationsDropped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "chatter_notifications_dropped_total",
		Help: "Notifications dropped for lack of a live subscriber or a full buffer",
	})
	StreamConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "chatter_stream_connections",
		Help: "Currently open notification stream subscriptions",
	})
	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "chatter_http_request_duration_seconds",
		Help:    "HTTP request duration seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)

func init() {
	prometheus.MustRegister(EngineOps, NotificationsEmitted, NotificationsDropped, StreamConnections, HTTPDuration)
}

// IncOp increments the engine operation counter for op with the given outcome.
func IncOp(op, outcome string) { EngineOps.WithLabelValues(op, outcome).Inc() }

// Handler returns the /metrics HTTP handler.
func Handler() http.Handler { return promhttp.Handler() }
