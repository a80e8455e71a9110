package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emvibook_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "emvibook_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emvibook_bookings_total",
			Help: "Total number of booking lifecycle transitions",
		},
		[]string{"status"},
	)

	ReserveConflictsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "emvibook_reserve_conflicts_total",
			Help: "Total number of reserve attempts rejected due to overlap",
		},
	)

	ExpiredHoldsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "emvibook_expired_holds_total",
			Help: "Total number of pending bookings released by TTL expiry",
		},
	)

	ResolveDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "emvibook_resolve_duration_seconds",
			Help:    "Availability resolution duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	EventsEmittedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emvibook_events_emitted_total",
			Help: "Total number of lifecycle events emitted",
		},
		[]string{"event", "status"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordBooking(status string) {
	BookingsTotal.WithLabelValues(status).Inc()
}

func RecordReserveConflict() {
	ReserveConflictsTotal.Inc()
}

func RecordExpiredHolds(n int) {
	ExpiredHoldsTotal.Add(float64(n))
}

func RecordResolve(duration float64) {
	ResolveDuration.Observe(duration)
}

func RecordEvent(event, status string) {
	EventsEmittedTotal.WithLabelValues(event, status).Inc()
}
