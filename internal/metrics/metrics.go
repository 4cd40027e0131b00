// Package metrics holds the Prometheus collectors for tool invocations and
// outbound tracker calls.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "jira_mcp"

// Tool outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Metrics groups every collector the server exports.
type Metrics struct {
	ToolCallsTotal   *prometheus.CounterVec
	ToolCallDuration *prometheus.HistogramVec

	TrackerRequestsTotal   *prometheus.CounterVec
	TrackerRequestDuration *prometheus.HistogramVec
}

// New registers all collectors with reg. Pass prometheus.DefaultRegisterer
// in production and a fresh prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ToolCallsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tool_calls_total",
				Help:      "Total number of tool invocations",
			},
			[]string{"tool_name", "outcome"},
		),
		// 10ms .. 30s; a tracker call is capped at 20s.
		ToolCallDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "tool_call_duration_seconds",
				Help:      "Duration of tool invocations in seconds",
				Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 20, 30},
			},
			[]string{"tool_name"},
		),
		TrackerRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tracker_requests_total",
				Help:      "Total number of requests sent to the tracker API",
			},
			[]string{"method", "status_class"},
		),
		TrackerRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "tracker_request_duration_seconds",
				Help:      "Duration of tracker API requests in seconds",
				Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 20},
			},
			[]string{"method"},
		),
	}
}

// ObserveToolCall records one finished tool invocation. It is a no-op on a
// nil receiver.
func (m *Metrics) ObserveToolCall(tool, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.ToolCallsTotal.WithLabelValues(tool, outcome).Inc()
	m.ToolCallDuration.WithLabelValues(tool).Observe(d.Seconds())
}

// ObserveTrackerRequest records one finished tracker request. A status of 0
// means no response was received.
func (m *Metrics) ObserveTrackerRequest(method string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.TrackerRequestsTotal.WithLabelValues(method, StatusClass(status)).Inc()
	m.TrackerRequestDuration.WithLabelValues(method).Observe(d.Seconds())
}

// StatusClass collapses an HTTP status into "2xx", "4xx", ... or "error".
func StatusClass(status int) string {
	if status < 100 || status > 599 {
		return "error"
	}
	return strconv.Itoa(status/100) + "xx"
}
