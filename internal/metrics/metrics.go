package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "estudio",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	bookingsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "estudio",
			Name:      "bookings_created_total",
			Help:      "Bookings created, by origin (member or admin).",
		},
		[]string{"origin"},
	)

	bookingRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "estudio",
			Name:      "booking_rejections_total",
			Help:      "Self-service bookings rejected, by reason.",
		},
		[]string{"reason"},
	)

	radioLive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "estudio",
			Name:      "radio_live",
			Help:      "1 while a live radio session is on air.",
		},
	)

	exportRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "estudio",
			Name:      "schedule_export_runs_total",
			Help:      "Schedule export worker runs, by result.",
		},
		[]string{"result"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			httpRequests,
			bookingsCreated,
			bookingRejections,
			radioLive,
			exportRuns,
		)
	})
}

// IncHTTP increments the counter for an endpoint label.
func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

// IncBookingCreated records a created booking by origin.
func IncBookingCreated(origin string) {
	bookingsCreated.WithLabelValues(origin).Inc()
}

// IncBookingRejected records a rejected self-service booking by reason.
func IncBookingRejected(reason string) {
	bookingRejections.WithLabelValues(reason).Inc()
}

// SetRadioLive flips the live gauge.
func SetRadioLive(live bool) {
	if live {
		radioLive.Set(1)
		return
	}
	radioLive.Set(0)
}

// IncExportRun records a worker run outcome ("success" or "failure").
func IncExportRun(result string) {
	exportRuns.WithLabelValues(result).Inc()
}
