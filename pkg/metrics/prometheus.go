// Package metrics provides Prometheus metrics for the salary analytics service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager manages all Prometheus metrics for the salary service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Record store
	recordsFetched *prometheus.CounterVec
	storePages     *prometheus.CounterVec
	storeLatency   *prometheus.HistogramVec
	storeErrors    *prometheus.CounterVec
	storeRetries   *prometheus.CounterVec

	// Core analytics
	recordsNormalized   prometheus.Counter
	dashboardsBuilt     prometheus.Counter
	dashboardLatency    prometheus.Histogram
	comparisons         *prometheus.CounterVec
	insufficientCohorts prometheus.Counter
	invalidInputs       *prometheus.CounterVec
	takeHomeCalcs       *prometheus.CounterVec
	datasetSize         prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // keeps default Go collectors out of /metrics

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "salary",
		subsystem:        "",
		histogramBuckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      name,
		Help:      help,
	}, labels)
}

func (m *Manager) histogramVec(name, help string, labels ...string) *prometheus.HistogramVec {
	return promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      name,
		Help:      help,
		Buckets:   m.histogramBuckets,
	}, labels)
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.recordsFetched = m.counterVec("store_records_fetched_total", "Raw records fetched from the record store", "store")
	m.storePages = m.counterVec("store_pages_total", "Pages requested from the record store", "store")
	m.storeLatency = m.histogramVec("store_request_duration_milliseconds", "Record store request latency in milliseconds", "store", "op")
	m.storeErrors = m.counterVec("store_errors_total", "Failed record store requests", "store", "op")
	m.storeRetries = m.counterVec("store_retries_total", "Retried record store requests", "store")

	m.recordsNormalized = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "records_normalized_total",
		Help:      "Raw submissions converted to canonical records",
	})
	m.dashboardsBuilt = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dashboards_built_total",
		Help:      "Dashboard models built",
	})
	m.dashboardLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dashboard_duration_milliseconds",
		Help:      "Time to fetch and aggregate a dashboard in milliseconds",
		Buckets:   m.histogramBuckets,
	})
	m.comparisons = m.counterVec("comparisons_total", "Completed salary comparisons by cohort tier and grade", "tier", "grade")
	m.insufficientCohorts = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "insufficient_cohorts_total",
		Help:      "Comparisons rejected because no tier had enough peers",
	})
	m.invalidInputs = m.counterVec("invalid_inputs_total", "Rejected user input by operation", "operation")
	m.takeHomeCalcs = m.counterVec("take_home_calculations_total", "Take-home pay calculations by filing status", "filing_status")
	m.datasetSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_records",
		Help:      "Records in the most recently fetched batch",
	})

	m.httpRequests = m.counterVec("http_requests_total", "HTTP requests by endpoint and method", "endpoint", "method", "status_code")
	m.httpRequestDuration = m.histogramVec("http_request_duration_milliseconds", "HTTP request duration in milliseconds",
		"endpoint", "method", "status_code")
	m.errorsByEndpoint = m.counterVec("errors_by_endpoint_total", "Errors by endpoint and error kind", "endpoint", "method", "kind")
}

func ms(d time.Duration) float64 { return float64(d.Nanoseconds()) / 1e6 }

// RecordStoreRequest records one record-store request and its outcome.
func RecordStoreRequest(store, op string, d time.Duration, err error) {
	if !globalManager.enabled {
		return
	}
	globalManager.storeLatency.WithLabelValues(store, op).Observe(ms(d))
	if err != nil {
		globalManager.storeErrors.WithLabelValues(store, op).Inc()
	}
}

// RecordStoreRetry increments the retry counter for store.
func RecordStoreRetry(store string) {
	if globalManager.enabled {
		globalManager.storeRetries.WithLabelValues(store).Inc()
	}
}

// RecordPageFetched records one fetched page and its row count.
func RecordPageFetched(store string, rows int) {
	if !globalManager.enabled {
		return
	}
	globalManager.storePages.WithLabelValues(store).Inc()
	globalManager.recordsFetched.WithLabelValues(store).Add(float64(rows))
}

// RecordNormalized adds n to the normalized records counter.
func RecordNormalized(n int) {
	if globalManager.enabled {
		globalManager.recordsNormalized.Add(float64(n))
	}
}

// UpdateDatasetSize sets the size of the latest fetched batch.
func UpdateDatasetSize(n int) {
	if globalManager.enabled {
		globalManager.datasetSize.Set(float64(n))
	}
}

// RecordDashboard records a built dashboard and its latency.
func RecordDashboard(d time.Duration) {
	if !globalManager.enabled {
		return
	}
	globalManager.dashboardsBuilt.Inc()
	globalManager.dashboardLatency.Observe(ms(d))
}

// RecordComparison records a completed comparison.
func RecordComparison(tier, grade string) {
	if globalManager.enabled {
		globalManager.comparisons.WithLabelValues(tier, grade).Inc()
	}
}

// RecordInsufficientCohort increments the insufficient cohort counter.
func RecordInsufficientCohort() {
	if globalManager.enabled {
		globalManager.insufficientCohorts.Inc()
	}
}

// RecordInvalidInput records rejected user input for operation.
func RecordInvalidInput(operation string) {
	if globalManager.enabled {
		globalManager.invalidInputs.WithLabelValues(operation).Inc()
	}
}

// RecordTakeHome records a take-home calculation.
func RecordTakeHome(filingStatus string) {
	if globalManager.enabled {
		globalManager.takeHomeCalcs.WithLabelValues(filingStatus).Inc()
	}
}

// RecordHTTPRequest records a served request and its duration.
func RecordHTTPRequest(endpoint, method string, status int, d time.Duration) {
	if !globalManager.enabled {
		return
	}
	code := strconv.Itoa(status)
	globalManager.httpRequests.WithLabelValues(endpoint, method, code).Inc()
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, code).Observe(ms(d))
}

// RecordErrorByEndpoint records an error returned by endpoint.
func RecordErrorByEndpoint(endpoint, method, kind string) {
	if globalManager.enabled {
		globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, kind).Inc()
	}
}

// GetRegistry returns the registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Handler serves the global registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(customRegistry, promhttp.HandlerOpts{})
}
