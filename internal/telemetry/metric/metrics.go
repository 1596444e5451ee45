// Package metric provides Prometheus metrics for kkokko.
//
// All metrics live in a private registry owned by Metrics, so tests
// can create isolated instances without default-registry collisions.
package metric

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the application metric instruments.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	registrations prometheus.Counter
	submissions   prometheus.Counter
	matchRuns     *prometheus.CounterVec

	snapshotSaves *prometheus.CounterVec

	relayRooms   prometheus.Gauge
	relayClients prometheus.Gauge
	relayFrames  prometheus.Counter
}

// New creates a Metrics with its own registry, including the standard
// Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kkokko",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "kkokko",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kkokko",
			Name:      "registrations_total",
			Help:      "Participant registrations.",
		}),
		submissions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kkokko",
			Name:      "answer_submissions_total",
			Help:      "Answer set submissions.",
		}),
		matchRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kkokko",
			Name:      "match_runs_total",
			Help:      "Matching runs by outcome.",
		}, []string{"outcome"}),
		snapshotSaves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kkokko",
			Subsystem: "snapshot",
			Name:      "saves_total",
			Help:      "Snapshot save attempts by result.",
		}, []string{"result"}),
		relayRooms: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "kkokko",
			Subsystem: "relay",
			Name:      "rooms",
			Help:      "Open chat rooms.",
		}),
		relayClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "kkokko",
			Subsystem: "relay",
			Name:      "clients",
			Help:      "Connected relay clients.",
		}),
		relayFrames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kkokko",
			Subsystem: "relay",
			Name:      "frames_total",
			Help:      "Relay frames delivered.",
		}),
	}

	reg.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.registrations,
		m.submissions,
		m.matchRuns,
		m.snapshotSaves,
		m.relayRooms,
		m.relayClients,
		m.relayFrames,
	)
	return m
}

// Handler returns the HTTP handler serving the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for test gathering.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveHTTP records one completed HTTP request.
func (m *Metrics) ObserveHTTP(method, route string, code int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// ParticipantRegistered counts one registration.
func (m *Metrics) ParticipantRegistered() {
	m.registrations.Inc()
}

// AnswersSubmitted counts one answer set submission.
func (m *Metrics) AnswersSubmitted() {
	m.submissions.Inc()
}

// MatchRun counts one matching run with its outcome
// ("matched", "empty" or "failed").
func (m *Metrics) MatchRun(outcome string) {
	m.matchRuns.WithLabelValues(outcome).Inc()
}

// SnapshotSave counts one save attempt.
func (m *Metrics) SnapshotSave(err error) {
	if err != nil {
		m.snapshotSaves.WithLabelValues("error").Inc()
		return
	}
	m.snapshotSaves.WithLabelValues("ok").Inc()
}

// RelayRoomOpened increments the open room gauge.
func (m *Metrics) RelayRoomOpened() { m.relayRooms.Inc() }

// RelayRoomClosed decrements the open room gauge.
func (m *Metrics) RelayRoomClosed() { m.relayRooms.Dec() }

// RelayClientConnected increments the connected client gauge.
func (m *Metrics) RelayClientConnected() { m.relayClients.Inc() }

// RelayClientDisconnected decrements the connected client gauge.
func (m *Metrics) RelayClientDisconnected() { m.relayClients.Dec() }

// RelayFrameDelivered counts one delivered relay frame.
func (m *Metrics) RelayFrameDelivered() { m.relayFrames.Inc() }
