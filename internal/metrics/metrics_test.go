package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordHTTPRequest(t *testing.T) {
	m := New()

	m.RecordHTTPRequest(http.MethodGet, "/cars/:id", http.StatusNotFound, 10*time.Millisecond)
	m.RecordHTTPRequest(http.MethodGet, "/cars/:id", http.StatusNotFound, 20*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/cars/:id", "404")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.httpDuration))
}

func TestQueueCounters(t *testing.T) {
	m := New()

	m.RecordPublish("POST", nil)
	m.RecordPublish("POST", errors.New("broker down"))
	m.RecordConsumed("PUT", ResultSuccess)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.queuePublished.WithLabelValues("POST", ResultSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.queuePublished.WithLabelValues("POST", ResultFailure)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.queueConsumed.WithLabelValues("PUT", ResultSuccess)))
}

func TestActivationRun(t *testing.T) {
	m := New()

	m.RecordActivationRun(time.Second, 3, 1, nil)
	m.RecordActivationSkipped()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.activationRuns.WithLabelValues(ResultSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.activationRuns.WithLabelValues(ResultSkipped)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.activationCars.WithLabelValues(ResultSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.activationCars.WithLabelValues(ResultFailure)))
}

func TestHandlerServesExposition(t *testing.T) {
	m := New()
	m.RecordPublish("DELETE", nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `cars_queue_published_total{action="DELETE",result="success"} 1`)
}
