package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics owns a private registry so several helper instances (and tests)
// never collide on the default one.
type Metrics struct {
	Registry *prometheus.Registry

	fetches       *prometheus.CounterVec
	fetchDelay    prometheus.Histogram
	fetchInFlight prometheus.Gauge
	renders       *prometheus.CounterVec
	renderRejects prometheus.Counter
	logLines      prometheus.Counter
}

func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mockui",
			Name:      "fetch_completed_total",
			Help:      "Simulated fetches by outcome.",
		}, []string{"outcome"}),
		fetchDelay: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mockui",
			Name:      "fetch_delay_seconds",
			Help:      "Scheduled delay of simulated fetches.",
			Buckets:   prometheus.LinearBuckets(0.3, 0.1, 11),
		}),
		fetchInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "mockui",
			Name:      "fetch_in_flight",
			Help:      "Simulated fetches waiting for completion.",
		}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mockui",
			Name:      "render_blocks_total",
			Help:      "Blueprint entries recorded by block type.",
		}, []string{"type"}),
		renderRejects: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mockui",
			Name:      "render_rejected_total",
			Help:      "Render calls rejected for invalid payloads.",
		}),
		logLines: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mockui",
			Name:      "log_lines_total",
			Help:      "Diagnostic lines appended to the log list.",
		}),
	}
	m.Registry.MustRegister(
		m.fetches,
		m.fetchDelay,
		m.fetchInFlight,
		m.renders,
		m.renderRejects,
		m.logLines,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) FetchScheduled(delay time.Duration) {
	m.fetchInFlight.Inc()
	m.fetchDelay.Observe(delay.Seconds())
}

func (m *Metrics) FetchCompleted(outcome string) {
	m.fetchInFlight.Dec()
	m.fetches.WithLabelValues(outcome).Inc()
}

func (m *Metrics) BlockRendered(blockType string) {
	m.renders.WithLabelValues(blockType).Inc()
}

func (m *Metrics) RenderRejected() {
	m.renderRejects.Inc()
}

func (m *Metrics) LogAppended() {
	m.logLines.Inc()
}

// Counters exposed for assertions.
func (m *Metrics) Fetches() *prometheus.CounterVec { return m.fetches }
func (m *Metrics) InFlight() prometheus.Gauge { return m.fetchInFlight }
func (m *Metrics) Renders() *prometheus.CounterVec { return m.renders }
func (m *Metrics) RenderRejects() prometheus.Counter { return m.renderRejects }
func (m *Metrics) LogLines() prometheus.Counter { return m.logLines }
