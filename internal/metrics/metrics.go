// Package metrics exposes device counters and gauges in Prometheus format.
package metrics

import (
	"net/http"
	"strconv"

	"greenstack/internal/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "greenstack"

// Metrics holds every collector of the device. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry *prometheus.Registry

	PumpActivations prometheus.Counter
	PumpRejected    prometheus.Counter
	PumpRunning     prometheus.Gauge
	WifiState       *prometheus.GaugeVec
	ConnectAttempts *prometheus.CounterVec
	SensorErrors    *prometheus.CounterVec
	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
}

// New builds the collectors on a private registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		PumpActivations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "pump", Name: "activations_total",
			Help: "Pump runs started.",
		}),
		PumpRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "pump", Name: "rejected_total",
			Help: "Pump triggers ignored because a run was already active.",
		}),
		PumpRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "pump", Name: "running",
			Help: "1 while the pump output is high.",
		}),
		WifiState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "wifi", Name: "state",
			Help: "Current connectivity state, one-hot.",
		}, []string{"state"}),
		ConnectAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "wifi", Name: "connect_attempts_total",
			Help: "Station connect attempts by result.",
		}, []string{"result"}),
		SensorErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "sensor", Name: "errors_total",
			Help: "Failed sensor reads by sensor.",
		}, []string{"sensor"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "http", Name: "requests_total",
			Help: "HTTP requests by route and status code.",
		}, []string{"method", "route", "code"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "http", Name: "request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: []float64{0.005, 0.025, 0.1, 0.5, 1, 5, 20, 40},
		}, []string{"method", "route"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.PumpActivations, m.PumpRejected, m.PumpRunning,
		m.WifiState, m.ConnectAttempts, m.SensorErrors,
		m.HTTPRequests, m.HTTPDuration,
	)
	return m
}

// Handler serves the registry.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry is exposed for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) PumpStarted() {
	if m == nil {
		return
	}
	m.PumpActivations.Inc()
	m.PumpRunning.Set(1)
}

func (m *Metrics) PumpStopped() {
	if m == nil {
		return
	}
	m.PumpRunning.Set(0)
}

func (m *Metrics) PumpTriggerRejected() {
	if m == nil {
		return
	}
	m.PumpRejected.Inc()
}

// SetWifiState marks st as the only active state.
func (m *Metrics) SetWifiState(st models.ConnectivityState) {
	if m == nil {
		return
	}
	for _, s := range models.AllConnectivityStates {
		v := 0.0
		if s == st {
			v = 1
		}
		m.WifiState.WithLabelValues(string(s)).Set(v)
	}
}

func (m *Metrics) ConnectAttempt(ok bool) {
	if m == nil {
		return
	}
	result := "timeout"
	if ok {
		result = "connected"
	}
	m.ConnectAttempts.WithLabelValues(result).Inc()
}

func (m *Metrics) SensorError(sensor string) {
	if m == nil {
		return
	}
	m.SensorErrors.WithLabelValues(sensor).Inc()
}

func (m *Metrics) ObserveHTTP(method, route string, code int, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(seconds)
}
