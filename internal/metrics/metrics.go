// Package metrics provides Prometheus metrics for the trigger worker and API.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "token_launcher"

// Step results
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Bridge message results
const (
	MessageAcked      = "acked"
	MessageTerminated = "terminated"
	MessageSkipped    = "skipped"
	MessageNacked     = "nacked"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	registry *prometheus.Registry

	// Trigger metrics
	TriggerSteps    *prometheus.CounterVec
	TriggerDuration *prometheus.HistogramVec

	// Notification metrics
	Notifications *prometheus.CounterVec

	// Milestone metrics
	AchievementsUnlocked *prometheus.CounterVec

	// Leaderboard metrics
	LeaderboardSize prometheus.Gauge

	// Bridge metrics
	BridgeMessages *prometheus.CounterVec

	// Document recording metrics
	DocumentsRecorded *prometheus.CounterVec
	EventsPublished   *prometheus.CounterVec
}

// NewRegistry returns a registry with the Go runtime and process collectors registered
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// New creates all metrics and registers them on reg
func New(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		TriggerSteps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "trigger",
			Name:      "steps_total",
			Help:      "Total trigger steps executed, by trigger, step and result",
		}, []string{"trigger", "step", "result"}),
		TriggerDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "trigger",
			Name:      "duration_seconds",
			Help:      "Trigger entrypoint duration",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"trigger"}),

		Notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notifications",
			Name:      "dispatched_total",
			Help:      "Push notification dispatch outcomes, by type and outcome",
		}, []string{"type", "outcome"}),

		AchievementsUnlocked: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "milestones",
			Name:      "achievements_unlocked_total",
			Help:      "Total achievements recorded, by milestone threshold",
		}, []string{"milestone"}),

		LeaderboardSize: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "leaderboard",
			Name:      "entries",
			Help:      "Number of entries in the top creators leaderboard after the last update",
		}),

		BridgeMessages: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bridge",
			Name:      "messages_total",
			Help:      "Change-event messages handled by the bridge, by subject and result",
		}, []string{"subject", "result"}),

		DocumentsRecorded: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "documents_recorded_total",
			Help:      "Documents written through the API, by collection",
		}, []string{"collection"}),
		EventsPublished: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "events_published_total",
			Help:      "Change events published, by subject and result",
		}, []string{"subject", "result"}),
	}
}

// NewNop creates metrics on a private registry, for callers that do not export them
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
