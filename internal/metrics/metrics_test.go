package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	m := New(prometheus.NewRegistry())

	assert.NotNil(t, m.ToolCallsTotal)
	assert.NotNil(t, m.ToolCallDuration)
	assert.NotNil(t, m.TrackerRequestsTotal)
	assert.NotNil(t, m.TrackerRequestDuration)
}

func TestObserveToolCall(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveToolCall("jira_close_issue", OutcomeSuccess, 120*time.Millisecond)
	m.ObserveToolCall("jira_close_issue", OutcomeSuccess, 80*time.Millisecond)
	m.ObserveToolCall("jira_close_issue", OutcomeError, time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ToolCallsTotal.WithLabelValues("jira_close_issue", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ToolCallsTotal.WithLabelValues("jira_close_issue", OutcomeError)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.ToolCallDuration))
}

func TestObserveTrackerRequest(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveTrackerRequest("GET", 200, 10*time.Millisecond)
	m.ObserveTrackerRequest("GET", 404, 10*time.Millisecond)
	m.ObserveTrackerRequest("POST", 0, 10*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.TrackerRequestsTotal.WithLabelValues("GET", "2xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TrackerRequestsTotal.WithLabelValues("GET", "4xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TrackerRequestsTotal.WithLabelValues("POST", "error")))
}

func TestStatusClass(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{200, "2xx"},
		{204, "2xx"},
		{301, "3xx"},
		{401, "4xx"},
		{503, "5xx"},
		{0, "error"},
		{42, "error"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusClass(tt.status), "status %d", tt.status)
	}
}

func TestNew_SeparateRegistries(t *testing.T) {
	// Registering twice on distinct registries must not panic.
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveToolCall("jira_get_issues", OutcomeSuccess, time.Second)
	m.ObserveTrackerRequest("GET", 200, time.Second)
}
