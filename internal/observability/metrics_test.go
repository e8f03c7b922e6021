package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetrics_Snapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/api/tickets", "GET", 200, 2*time.Millisecond)
	m.RecordRequest("/api/tickets", "GET", 200, 4*time.Millisecond)
	m.RecordError("/api/tickets/:id", "PATCH", "NOT_FOUND")

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.Requests["/api/tickets|GET|200"])
	assert.InDelta(t, 3.0, snap.AverageLatencyMs["/api/tickets|GET|200"], 0.001)
	assert.Equal(t, int64(1), snap.Errors["/api/tickets/:id|PATCH|NOT_FOUND"])
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, time.Millisecond)
	m.RecordError("/", "GET", "X")
	snap := m.Snapshot()
	assert.Empty(t, snap.Requests)
}
