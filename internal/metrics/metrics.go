// Package metrics exposes Prometheus collectors for the ingestion service.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	feedFetchesTotal     *prometheus.CounterVec
	feedFetchDuration    prometheus.Histogram
	articlesIngestedTot  *prometheus.CounterVec
	crawlFailuresTotal   *prometheus.CounterVec
	tasksTotal           *prometheus.CounterVec
	taskRetriesTotal     *prometheus.CounterVec
	supplementalEnqueues *prometheus.CounterVec
	activeWorkers        prometheus.Gauge

	httpRequestsTotal          *prometheus.CounterVec
	httpRequestDurationSeconds *prometheus.HistogramVec

	once sync.Once
)

// Init initializes the Prometheus metrics collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		feedFetchesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crawler_feed_fetches_total",
				Help: "Total feed fetch attempts, labeled by outcome.",
			},
			[]string{"outcome"},
		)

		feedFetchDuration = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "crawler_feed_fetch_duration_seconds",
				Help:    "Histogram of feed fetch-and-parse latencies.",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
		)

		articlesIngestedTot = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crawler_articles_ingested_total",
				Help: "Total articles written, labeled created or updated.",
			},
			[]string{"op"},
		)

		crawlFailuresTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crawler_crawl_failures_total",
				Help: "Total exhausted feed fetch chains, labeled by reason.",
			},
			[]string{"reason"},
		)

		tasksTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crawler_tasks_total",
				Help: "Total tasks processed, labeled by name and status.",
			},
			[]string{"name", "status"},
		)

		taskRetriesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crawler_task_retries_total",
				Help: "Total task retry attempts, labeled by name.",
			},
			[]string{"name"},
		)

		supplementalEnqueues = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crawler_supplemental_enqueues_total",
				Help: "Supplemental feeds enqueued by the quota balancer, labeled by group.",
			},
			[]string{"group"},
		)

		activeWorkers = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "crawler_active_workers",
				Help: "Number of workers currently processing a task.",
			},
		)

		httpRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests, labeled by method and code.",
			},
			[]string{"method", "code"},
		)

		httpRequestDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Histogram of HTTP request latencies, labeled by method and route.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			},
			[]string{"method", "route"},
		)
	})
}

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveFeedFetch records one feed fetch attempt and its latency.
func ObserveFeedFetch(outcome string, duration time.Duration) {
	feedFetchesTotal.WithLabelValues(outcome).Inc()
	feedFetchDuration.Observe(duration.Seconds())
}

// ObserveIngest records a batch's created and updated counts.
func ObserveIngest(created, updated int) {
	if created > 0 {
		articlesIngestedTot.WithLabelValues("created").Add(float64(created))
	}
	if updated > 0 {
		articlesIngestedTot.WithLabelValues("updated").Add(float64(updated))
	}
}

// ObserveCrawlFailure increments the failure counter for the given reason.
func ObserveCrawlFailure(reason string) {
	crawlFailuresTotal.WithLabelValues(reason).Inc()
}

// ObserveTask increments the task counter for the given name and status.
func ObserveTask(name, status string) {
	tasksTotal.WithLabelValues(name, status).Inc()
}

// ObserveTaskRetry increments the retry counter for the given task name.
func ObserveTaskRetry(name string) {
	taskRetriesTotal.WithLabelValues(name).Inc()
}

// ObserveSupplementalEnqueue increments the quota balancer counter for the
// given supplemental group key.
func ObserveSupplementalEnqueue(group string) {
	supplementalEnqueues.WithLabelValues(group).Inc()
}

// IncActiveWorkers increments the active workers gauge.
func IncActiveWorkers() {
	activeWorkers.Inc()
}

// DecActiveWorkers decrements the active workers gauge.
func DecActiveWorkers() {
	activeWorkers.Dec()
}

// ObserveHTTPRequest increments the HTTP request metrics.
func ObserveHTTPRequest(method, route string, code int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, strconv.Itoa(code)).Inc()
	httpRequestDurationSeconds.WithLabelValues(method, route).Observe(duration.Seconds())
}
