// Package metrics holds the Prometheus collectors for the API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "delipucash",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "delipucash",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "delipucash",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "path"},
	)

	reactions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "delipucash",
			Subsystem: "responses",
			Name:      "reactions_total",
			Help:      "Reaction mutations by kind (like/dislike) and action (set/unset).",
		},
		[]string{"kind", "action"},
	)

	reactionConflicts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "delipucash",
			Subsystem: "responses",
			Name:      "reaction_conflicts_total",
			Help:      "Unique-constraint races absorbed as no-ops.",
		},
		[]string{"kind"},
	)

	replies = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "delipucash",
			Subsystem: "responses",
			Name:      "replies_total",
			Help:      "Replies posted.",
		},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		reactions,
		reactionConflicts,
		replies,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Handler exposes the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func IncInFlight() { httpInFlight.Inc() }
func DecInFlight() { httpInFlight.Dec() }

// RecordHTTPRequest records one finished request. path should be the route template.
func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordReaction counts a like/dislike set or unset.
func RecordReaction(kind string, set bool) {
	action := "unset"
	if set {
		action = "set"
	}
	reactions.WithLabelValues(kind, action).Inc()
}

func RecordReactionConflict(kind string) {
	reactionConflicts.WithLabelValues(kind).Inc()
}

func RecordReply() {
	replies.Inc()
}
