package monitoring

import (
	"context"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"imagique/utils"
)

var (
	backendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backend_requests_total",
			Help: "Requests sent to the booking backend",
		},
		[]string{"operation", "status"},
	)

	backendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backend_request_duration_seconds",
			Help:    "Latency of booking backend requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	eventSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "event_submissions_total",
			Help: "Event wizard submissions by mode and outcome",
		},
		[]string{"mode", "outcome"},
	)

	fanoutRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "submission_fanout_requests_total",
			Help: "Sponsor, ticket price and venue requests issued after an event save",
		},
		[]string{"kind", "outcome"},
	)

	bookings = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookings_total",
			Help: "Booking and cancellation attempts",
		},
		[]string{"action", "outcome"},
	)

	breakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
		[]string{"name"},
	)

	goroutineCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_goroutines_total",
			Help: "Current number of active goroutines",
		},
	)
)

// Monitor records client-side metrics. A nil *Monitor is valid and records
// nothing, so callers never have to check.
type Monitor struct {
	breakers []*utils.CircuitBreaker
	interval time.Duration
}

func NewMonitor(breakers ...*utils.CircuitBreaker) *Monitor {
	return &Monitor{breakers: breakers, interval: 15 * time.Second}
}

// Run samples breaker state and goroutines until ctx is done.
func (m *Monitor) Run(ctx context.Context) {
	if m == nil {
		return
	}
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.collectMetrics()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.collectMetrics()
		}
	}
}

func (m *Monitor) collectMetrics() {
	for _, cb := range m.breakers {
		breakerState.WithLabelValues(cb.Name()).Set(float64(cb.State()))
	}
	goroutineCount.Set(float64(runtime.NumGoroutine()))
}

func (m *Monitor) TrackBackendRequest(operation, status string, d time.Duration) {
	if m == nil {
		return
	}
	backendRequests.WithLabelValues(operation, status).Inc()
	backendDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// TrackSubmission counts one wizard submit. mode is "create" or "update".
func (m *Monitor) TrackSubmission(mode, outcome string) {
	if m == nil {
		return
	}
	eventSubmissions.WithLabelValues(mode, outcome).Inc()
}

func (m *Monitor) TrackFanout(kind, outcome string) {
	if m == nil {
		return
	}
	fanoutRequests.WithLabelValues(kind, outcome).Inc()
}

func (m *Monitor) TrackBooking(action, outcome string) {
	if m == nil {
		return
	}
	bookings.WithLabelValues(action, outcome).Inc()
}

// Outcome maps an error to the outcome label used by the counters.
func Outcome(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
