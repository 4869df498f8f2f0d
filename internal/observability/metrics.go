// Package observability exposes Prometheus metrics for the sync cache.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	syncPullsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_client_sync_pulls_total",
			Help: "Total number of pull operations against the backend, by collection and result.",
		},
		[]string{"collection", "result"},
	)
	pushEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_client_push_events_total",
			Help: "Total number of decoded push events, by type.",
		},
		[]string{"event"},
	)
	pushConnected = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "chat_client_push_connected",
			Help: "Whether the push websocket is currently connected.",
		},
	)
	pushReconnectsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_client_push_reconnects_total",
			Help: "Total number of push websocket reconnect attempts after a lost connection.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		syncPullsTotal,
		pushEventsTotal,
		pushConnected,
		pushReconnectsTotal,
	)
}

// IncPull records one pull against a collection with result "ok" or "error".
func IncPull(collection string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	syncPullsTotal.WithLabelValues(collection, result).Inc()
}

// IncPushEvent records one decoded push event.
func IncPushEvent(event string) {
	pushEventsTotal.WithLabelValues(event).Inc()
}

// SetPushConnected flips the websocket connection gauge.
func SetPushConnected(up bool) {
	if up {
		pushConnected.Set(1)
		return
	}
	pushConnected.Set(0)
}

// IncPushReconnect counts a reconnect attempt.
func IncPushReconnect() {
	pushReconnectsTotal.Inc()
}
