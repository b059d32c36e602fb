package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// SchedulerSweeps counts notification sweep passes.
	SchedulerSweeps = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "health_bot",
		Subsystem: "scheduler",
		Name:      "sweeps_total",
		Help:      "Number of notification sweep passes executed.",
	})
	// SchedulerUserErrors counts per-user failures inside a sweep.
	SchedulerUserErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "health_bot",
		Subsystem: "scheduler",
		Name:      "user_errors_total",
		Help:      "Number of per-user failures during notification sweeps.",
	})
	// NotificationsSent counts delivered notifications by kind.
	NotificationsSent = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "health_bot",
		Subsystem: "scheduler",
		Name:      "notifications_sent_total",
		Help:      "Number of notifications delivered, labelled by kind.",
	}, []string{"kind"})

	// RecognitionRequests counts AI recognition calls by kind and outcome.
	RecognitionRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "health_bot",
		Subsystem: "recognition",
		Name:      "requests_total",
		Help:      "Number of recognition API calls, labelled by kind and outcome.",
	}, []string{"kind", "outcome"})
	// RecognitionDuration observes recognition call latency.
	RecognitionDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "health_bot",
		Subsystem: "recognition",
		Name:      "request_duration_seconds",
		Help:      "Latency of recognition API calls.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"kind"})

	// EventsDispatched counts outbox events handed to the broker.
	EventsDispatched = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "health_bot",
		Subsystem: "outbox",
		Name:      "events_dispatched_total",
		Help:      "Number of outbox events published, labelled by event type.",
	}, []string{"event_type"})

	// UpdatesHandled counts incoming chat updates by handler outcome.
	UpdatesHandled = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "health_bot",
		Subsystem: "transport",
		Name:      "updates_handled_total",
		Help:      "Number of chat updates processed, labelled by outcome.",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(
		SchedulerSweeps,
		SchedulerUserErrors,
		NotificationsSent,
		RecognitionRequests,
		RecognitionDuration,
		EventsDispatched,
		UpdatesHandled,
	)
}
