package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Tool metrics
	ToolExecutions *prometheus.CounterVec
	ToolDuration   *prometheus.HistogramVec

	// Vision backend metrics
	VisionCalls    *prometheus.CounterVec
	VisionDuration *prometheus.HistogramVec

	// Component store metrics
	SandboxCalls *prometheus.CounterVec

	// Session metrics
	SessionsActive prometheus.Gauge

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time

	registry *prometheus.Registry
}

// NewMetrics creates a metrics collector backed by its own registry so
// multiple collectors can coexist in one process.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		startTime: time.Now(),
		registry:  registry,

		// HTTP metrics
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "backend_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "backend_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),

		// Tool metrics
		ToolExecutions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "backend_tool_executions_total",
				Help: "Total number of tool executions",
			},
			[]string{"tool", "status"},
		),
		ToolDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "backend_tool_duration_seconds",
				Help:    "Tool execution duration in seconds",
				Buckets: []float64{.01, .05, .1, .5, 1, 5, 15, 30, 60, 120},
			},
			[]string{"tool"},
		),

		// Vision backend metrics
		VisionCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "backend_vision_calls_total",
				Help: "Total number of vision backend calls",
			},
			[]string{"model", "status"},
		),
		VisionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "backend_vision_duration_seconds",
				Help:    "Vision backend call duration in seconds",
				Buckets: []float64{.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
			[]string{"model"},
		),

		// Component store metrics
		SandboxCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "backend_sandbox_calls_total",
				Help: "Total number of component store calls",
			},
			[]string{"operation", "status"},
		),

		// Session metrics
		SessionsActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "backend_sessions_active",
				Help: "Number of live design sessions",
			},
		),

		// WebSocket metrics
		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "backend_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "backend_ws_messages_total",
				Help: "Total number of WebSocket messages",
			},
			[]string{"direction"},
		),

		// System metrics
		Uptime: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "backend_uptime_seconds",
				Help: "Backend uptime in seconds",
			},
		),
	}
}

// Registry returns the Prometheus registry for exposition.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordToolExecution records a tool execution outcome
func (m *Metrics) RecordToolExecution(tool string, success bool, duration time.Duration) {
	m.ToolExecutions.WithLabelValues(tool, statusLabel(success)).Inc()
	m.ToolDuration.WithLabelValues(tool).Observe(duration.Seconds())
}

// RecordVisionCall records a vision backend call
func (m *Metrics) RecordVisionCall(model string, success bool, duration time.Duration) {
	m.VisionCalls.WithLabelValues(model, statusLabel(success)).Inc()
	m.VisionDuration.WithLabelValues(model).Observe(duration.Seconds())
}

// RecordSandboxCall records a component store call
func (m *Metrics) RecordSandboxCall(operation string, success bool) {
	m.SandboxCalls.WithLabelValues(operation, statusLabel(success)).Inc()
}

// SetActiveSessions updates the live session gauge
func (m *Metrics) SetActiveSessions(count int) {
	m.SessionsActive.Set(float64(count))
}

// WSConnected increments the connection gauge
func (m *Metrics) WSConnected() {
	m.WSConnections.Inc()
}

// WSDisconnected decrements the connection gauge
func (m *Metrics) WSDisconnected() {
	m.WSConnections.Dec()
}

// RecordWSMessage records a WebSocket message
func (m *Metrics) RecordWSMessage(direction string) {
	m.WSMessages.WithLabelValues(direction).Inc()
}

// UpdateUptime refreshes the uptime gauge
func (m *Metrics) UpdateUptime() {
	m.Uptime.Set(time.Since(m.startTime).Seconds())
}

func statusLabel(success bool) string {
	if success {
		return "success"
	}
	return "error"
}
