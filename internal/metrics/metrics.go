package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cars"

// Result labels
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultSkipped = "skipped"
)

// Metrics holds the service collectors on a private registry
type Metrics struct {
	registry *prometheus.Registry

	httpInFlight   prometheus.Gauge
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	queuePublished *prometheus.CounterVec
	queueConsumed  *prometheus.CounterVec
	activationRuns *prometheus.CounterVec
	activationCars *prometheus.CounterVec
	activationTime prometheus.Histogram
}

// New creates and registers every collector
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		}, []string{"method", "path"}),
		queuePublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "queue",
			Name:      "published_total",
			Help:      "Car messages handed to the broker.",
		}, []string{"action", "result"}),
		queueConsumed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "queue",
			Name:      "consumed_total",
			Help:      "Car messages taken off the queue, by outcome.",
		}, []string{"action", "result"}),
		activationRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "activation",
			Name:      "runs_total",
			Help:      "Activation job runs.",
		}, []string{"result"}),
		activationCars: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "activation",
			Name:      "cars_total",
			Help:      "Cars the activation job tried to promote.",
		}, []string{"result"}),
		activationTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "activation",
			Name:      "run_duration_seconds",
			Help:      "Duration of activation job runs.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
	}

	m.registry.MustRegister(
		m.httpInFlight,
		m.httpRequests,
		m.httpDuration,
		m.queuePublished,
		m.queueConsumed,
		m.activationRuns,
		m.activationCars,
		m.activationTime,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return m
}

// Registry is the private registry every collector is registered on
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) IncInFlight() { m.httpInFlight.Inc() }
func (m *Metrics) DecInFlight() { m.httpInFlight.Dec() }

// RecordHTTPRequest records one served request. path must be the route template.
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	m.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func (m *Metrics) RecordPublish(action string, err error) {
	m.queuePublished.WithLabelValues(action, resultOf(err)).Inc()
}

// RecordConsumed records the outcome of one consumed message
func (m *Metrics) RecordConsumed(action, result string) {
	m.queueConsumed.WithLabelValues(action, result).Inc()
}

// RecordActivationRun records a finished run and how many cars it touched
func (m *Metrics) RecordActivationRun(duration time.Duration, activated, failed int, err error) {
	m.activationRuns.WithLabelValues(resultOf(err)).Inc()
	m.activationTime.Observe(duration.Seconds())
	m.activationCars.WithLabelValues(ResultSuccess).Add(float64(activated))
	m.activationCars.WithLabelValues(ResultFailure).Add(float64(failed))
}

// RecordActivationSkipped records a tick dropped because a run was in flight
func (m *Metrics) RecordActivationSkipped() {
	m.activationRuns.WithLabelValues(ResultSkipped).Inc()
}

func resultOf(err error) string {
	if err != nil {
		return ResultFailure
	}
	return ResultSuccess
}
