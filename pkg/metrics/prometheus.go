// Package metrics provides Prometheus metrics for a scrape run.
//
// A run is a short-lived batch job, so metrics live on a private registry and
// are exported once at the end with WriteTextfile (node_exporter textfile
// collector format). All Manager methods are safe on a nil receiver.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Request outcomes used as label values.
const (
	OutcomeOK        = "ok"
	OutcomeHTTPError = "http_error"
	OutcomeNetwork   = "network_error"
	OutcomeDecode    = "decode_error"
)

// Manager owns every metric of one run.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         *prometheus.Registry

	// API round trips
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	// Pipeline
	segmentsSeen     prometheus.Counter
	segmentsSelected prometheus.Counter
	segmentFailures  prometheus.Counter
	deathsFetched    prometheus.Counter
	deathsRecorded   prometheus.Counter
	dataQuality      *prometheus.CounterVec

	// Workers
	workerActive prometheus.Gauge

	// Output
	documentsWritten *prometheus.CounterVec
	sinkErrors       *prometheus.CounterVec

	// Run
	runDuration    prometheus.Gauge
	lastRunSuccess prometheus.Gauge
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "wcl",
		subsystem:        "scrape",
		histogramBuckets: prometheus.DefBuckets,
		constLabels:      map[string]string{},
	}

	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	})
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) initializeMetrics() {
	m.requests = m.counterVec("api_requests_total", "API round trips by operation and outcome", "operation", "outcome")
	m.requestDuration = promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "api_request_duration_seconds",
		Help:        "API round trip latency in seconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"operation"})

	m.segmentsSeen = m.counter("segments_total", "Fights returned for the report")
	m.segmentsSelected = m.counter("segments_selected_total", "Fights tied to an encounter")
	m.segmentFailures = m.counter("segment_failures_total", "Fights whose death feed could not be fetched")
	m.deathsFetched = m.counter("deaths_fetched_total", "Death events received from the feed")
	m.deathsRecorded = m.counter("deaths_recorded_total", "Death summaries written to the document")
	m.dataQuality = m.counterVec("data_quality_warnings_total", "Non-fatal data quality conditions by kind", "kind")

	m.workerActive = m.gauge("worker_active_count", "Per-fight jobs currently in flight")

	m.documentsWritten = m.counterVec("documents_written_total", "Documents persisted by sink", "sink")
	m.sinkErrors = m.counterVec("sink_errors_total", "Document persistence failures by sink", "sink")

	m.runDuration = m.gauge("run_duration_seconds", "Wall time of the last run")
	m.lastRunSuccess = m.gauge("last_run_success", "1 when the last run finished without a fatal error")
}

// RecordRequest counts one API round trip.
func (m *Manager) RecordRequest(operation, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(operation, outcome).Inc()
	m.requestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// RecordSegments records the fight totals before and after selection.
func (m *Manager) RecordSegments(seen, selected int) {
	if m == nil {
		return
	}
	m.segmentsSeen.Add(float64(seen))
	m.segmentsSelected.Add(float64(selected))
}

// RecordSegmentFailure counts a fight whose enrichment degraded to empty.
func (m *Manager) RecordSegmentFailure() {
	if m == nil {
		return
	}
	m.segmentFailures.Inc()
}

// RecordDeaths counts fetched events and kept summaries for one fight.
func (m *Manager) RecordDeaths(fetched, recorded int) {
	if m == nil {
		return
	}
	m.deathsFetched.Add(float64(fetched))
	m.deathsRecorded.Add(float64(recorded))
}

// RecordDataQuality counts a non-fatal data condition.
func (m *Manager) RecordDataQuality(kind string) {
	if m == nil {
		return
	}
	m.dataQuality.WithLabelValues(kind).Inc()
}

// AddWorkerActive moves the in-flight job gauge by delta.
func (m *Manager) AddWorkerActive(delta int) {
	if m == nil {
		return
	}
	m.workerActive.Add(float64(delta))
}

// RecordDocumentWritten counts a successful write by sink name.
func (m *Manager) RecordDocumentWritten(sink string) {
	if m == nil {
		return
	}
	m.documentsWritten.WithLabelValues(sink).Inc()
}

// RecordSinkError counts a failed write by sink name.
func (m *Manager) RecordSinkError(sink string) {
	if m == nil {
		return
	}
	m.sinkErrors.WithLabelValues(sink).Inc()
}

// RecordRun stores the run duration and whether it succeeded.
func (m *Manager) RecordRun(d time.Duration, success bool) {
	if m == nil {
		return
	}
	m.runDuration.Set(d.Seconds())
	if success {
		m.lastRunSuccess.Set(1)
	} else {
		m.lastRunSuccess.Set(0)
	}
}

// Registry returns the registry holding this manager's metrics.
func (m *Manager) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// WriteTextfile writes every metric to path in the text exposition format.
func (m *Manager) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	return nil
}
