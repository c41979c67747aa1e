// Package metrics provides Prometheus metrics for the meet scoring
// service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns every Prometheus metric the service emits.
type Manager struct {
	namespace string
	subsystem string
	registry  *prometheus.Registry

	// Business metrics
	scoresRecorded  prometheus.Counter
	parseFailures   prometheus.Counter
	eventsCompleted prometheus.Counter
	meetsStarted    prometheus.Counter
	meetsCompleted  prometheus.Counter
	meetsCancelled  prometheus.Counter

	// State gauges
	groupCount prometheus.Gauge

	// Persistence health
	persistErrors prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global manager on a private registry so default Go collectors do
// not leak into the scrape.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager()
}

// NewManager creates a metrics manager with its own registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "palaestra",
		subsystem: "meet",
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.scoresRecorded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scores_recorded_total",
		Help:      "Total number of scores recorded or replaced",
	})
	m.parseFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "score_parse_failures_total",
		Help:      "Total number of rejected raw score inputs",
	})
	m.eventsCompleted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_completed_total",
		Help:      "Total number of apparatus events marked complete",
	})
	m.meetsStarted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "meets_started_total",
		Help:      "Total number of meets started",
	})
	m.meetsCompleted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "meets_completed_total",
		Help:      "Total number of meets completed and archived",
	})
	m.meetsCancelled = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "meets_cancelled_total",
		Help:      "Total number of meets discarded without archiving",
	})
	m.groupCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "groups",
		Help:      "Number of groups currently configured",
	})
	m.persistErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "persist_errors_total",
		Help:      "Total number of best-effort storage writes that failed",
	})
	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by endpoint, method and status",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint", "method"})
}

// Handler exposes the manager's registry for scraping.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Package-level helpers against the global manager.

// Handler returns the scrape handler for the global registry.
func Handler() http.Handler { return globalManager.Handler() }

// RecordScoreRecorded counts an accepted score write.
func RecordScoreRecorded() { globalManager.scoresRecorded.Inc() }

// RecordParseFailure counts a rejected raw score input.
func RecordParseFailure() { globalManager.parseFailures.Inc() }

// RecordEventCompleted counts an apparatus marked complete.
func RecordEventCompleted() { globalManager.eventsCompleted.Inc() }

// RecordMeetStarted counts a meet moving to in-progress.
func RecordMeetStarted() { globalManager.meetsStarted.Inc() }

// RecordMeetCompleted counts a meet archived to history.
func RecordMeetCompleted() { globalManager.meetsCompleted.Inc() }

// RecordMeetCancelled counts a meet discarded without archive.
func RecordMeetCancelled() { globalManager.meetsCancelled.Inc() }

// SetGroupCount publishes the current number of groups.
func SetGroupCount(n int) { globalManager.groupCount.Set(float64(n)) }

// RecordPersistError counts a failed best-effort storage write.
func RecordPersistError() { globalManager.persistErrors.Inc() }

// RecordHTTPRequest counts one request against an endpoint.
func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration observes one request's duration.
func RecordHTTPRequestDuration(endpoint, method string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method).Observe(durationMs)
}
