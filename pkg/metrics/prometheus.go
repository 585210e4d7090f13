// Package metrics provides Prometheus metrics for the debate rating engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector the engine exposes.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Lifecycle counters, one per debate transition.
	debatesCreated   prometheus.Counter
	debatesStarted   prometheus.Counter
	debatesCompleted prometheus.Counter
	debatesCancelled prometheus.Counter

	// Judgment intake quality.
	judgmentsRejected  *prometheus.CounterVec
	judgmentsDuplicate prometheus.Counter

	// Commit path: conflict retries on the five-effect transaction.
	commitConflicts prometheus.Counter
	commitRetries   prometheus.Counter

	// Rating and progression outcomes.
	ratingDelta          prometheus.Histogram
	achievementsUnlocked *prometheus.CounterVec

	// Derived leaderboard maintenance.
	leaderboardRebuildDuration prometheus.Histogram
	leaderboardSize            prometheus.Gauge
	totalUsers                 prometheus.Gauge

	// Refresh queue health.
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueUtilization   prometheus.Gauge
	queueEnqueues      prometheus.Counter
	queueDequeues      prometheus.Counter
	queueEnqueueErrors prometheus.Counter

	// Worker pool.
	workerCount             prometheus.Gauge
	workerProcessingLatency prometheus.Histogram
	workerErrors            prometheus.Counter

	// HTTP surface.
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpRateLimited     *prometheus.CounterVec

	// Document store.
	storeUpdateLatency prometheus.Histogram
	storeConflicts     prometheus.Counter
	storeDocuments     prometheus.Gauge

	// Process health.
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid the default Go collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "debattle",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // registers every collector in one place
	auto := promauto.With(m.registry)

	m.debatesCreated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "debates_created_total",
		Help: "Debates created",
	})
	m.debatesStarted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "debates_started_total",
		Help: "Debates moved from created to active",
	})
	m.debatesCompleted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "debates_completed_total",
		Help: "Debates completed by an applied judgment",
	})
	m.debatesCancelled = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "debates_cancelled_total",
		Help: "Debates cancelled before completion",
	})

	m.judgmentsRejected = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "judgments_rejected_total",
		Help: "Judgments rejected before any state change",
	}, []string{"reason"})
	m.judgmentsDuplicate = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "judgments_duplicate_total",
		Help: "Judgment deliveries short-circuited by the idempotency cache",
	})

	m.commitConflicts = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "commit_conflicts_total",
		Help: "Judgment commits rejected by the store's version check",
	})
	m.commitRetries = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "commit_retries_total",
		Help: "Judgment commit re-attempts after a conflict",
	})

	m.ratingDelta = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "rating_delta_abs",
		Help:    "Absolute applied rating change per participant",
		Buckets: []float64{1, 2, 4, 8, 16, 32, 64, 128},
	})
	m.achievementsUnlocked = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "achievements_unlocked_total",
		Help: "Achievements unlocked, by achievement id",
	}, []string{"achievement"})

	m.leaderboardRebuildDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "leaderboard_rebuild_duration_milliseconds",
		Help:    "Full leaderboard recomputation duration",
		Buckets: m.histogramBuckets,
	})
	m.leaderboardSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "leaderboard_size",
		Help: "Entries in the derived leaderboard",
	})
	m.totalUsers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "users_total",
		Help: "User records tracked by the engine",
	})

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "refresh_queue_size",
		Help: "Pending leaderboard refresh events",
	})
	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "refresh_queue_capacity",
		Help: "Refresh queue capacity",
	})
	m.queueUtilization = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "refresh_queue_utilization",
		Help: "Refresh queue fill ratio",
	})
	m.queueEnqueues = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "refresh_queue_enqueues_total",
		Help: "Refresh events enqueued",
	})
	m.queueDequeues = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "refresh_queue_dequeues_total",
		Help: "Refresh events dequeued",
	})
	m.queueEnqueueErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "refresh_queue_enqueue_errors_total",
		Help: "Refresh events dropped at enqueue",
	})

	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "worker_count",
		Help: "Leaderboard refresh workers",
	})
	m.workerProcessingLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "worker_processing_latency_milliseconds",
		Help:    "Per-event worker processing latency",
		Buckets: m.histogramBuckets,
	})
	m.workerErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "worker_errors_total",
		Help: "Worker processing failures",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "http_requests_total",
		Help: "HTTP requests by endpoint, method and status",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "http_request_duration_milliseconds",
		Help:    "HTTP request duration",
		Buckets: m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})
	m.httpRateLimited = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "http_rate_limited_total",
		Help: "Requests rejected by the rate limiter",
	}, []string{"endpoint"})

	m.storeUpdateLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "store_update_latency_milliseconds",
		Help:    "Transactional update duration",
		Buckets: m.histogramBuckets,
	})
	m.storeConflicts = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "store_conflicts_total",
		Help: "Transactions rejected by the version check",
	})
	m.storeDocuments = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "store_documents",
		Help: "Documents held by the store",
	})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "system_memory_bytes",
		Help: "Heap bytes in use",
	})
	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "system_goroutine_count",
		Help: "Number of goroutines",
	})
	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "system_gc_pause_time_milliseconds",
		Help:    "GC pause time in milliseconds",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	})
}

// RecordDebateCreated increments the created-debates counter.
func RecordDebateCreated() { globalManager.debatesCreated.Inc() }

// RecordDebateStarted increments the started-debates counter.
func RecordDebateStarted() { globalManager.debatesStarted.Inc() }

// RecordDebateCompleted increments the completed-debates counter.
func RecordDebateCompleted() { globalManager.debatesCompleted.Inc() }

// RecordDebateCancelled increments the cancelled-debates counter.
func RecordDebateCancelled() { globalManager.debatesCancelled.Inc() }

// RecordJudgmentRejected counts a rejected judgment by reason.
func RecordJudgmentRejected(reason string) {
	globalManager.judgmentsRejected.WithLabelValues(reason).Inc()
}

// RecordJudgmentDuplicate counts a duplicate judgment delivery.
func RecordJudgmentDuplicate() { globalManager.judgmentsDuplicate.Inc() }

// RecordCommitConflict counts a judgment commit rejected by the store.
func RecordCommitConflict() { globalManager.commitConflicts.Inc() }

// RecordCommitRetry counts a judgment commit re-attempt.
func RecordCommitRetry() { globalManager.commitRetries.Inc() }

// RecordRatingDelta records one participant's absolute applied delta.
func RecordRatingDelta(absDelta float64) { globalManager.ratingDelta.Observe(absDelta) }

// RecordAchievementUnlocked counts an unlock by achievement id.
func RecordAchievementUnlocked(id string) {
	globalManager.achievementsUnlocked.WithLabelValues(id).Inc()
}

// RecordLeaderboardRebuild records a full recomputation duration.
func RecordLeaderboardRebuild(durationMs float64) {
	globalManager.leaderboardRebuildDuration.Observe(durationMs)
}

// UpdateLeaderboardSize sets the derived board's entry count.
func UpdateLeaderboardSize(n int) { globalManager.leaderboardSize.Set(float64(n)) }

// UpdateTotalUsers sets the tracked user count.
func UpdateTotalUsers(n int) { globalManager.totalUsers.Set(float64(n)) }

// UpdateQueueSize sets the refresh queue depth.
func UpdateQueueSize(n int) { globalManager.queueSize.Set(float64(n)) }

// UpdateQueueCapacity sets the refresh queue capacity.
func UpdateQueueCapacity(n int) { globalManager.queueCapacity.Set(float64(n)) }

// UpdateQueueUtilization sets the refresh queue fill ratio.
func UpdateQueueUtilization(ratio float64) { globalManager.queueUtilization.Set(ratio) }

// RecordQueueEnqueue counts one enqueued refresh event.
func RecordQueueEnqueue() { globalManager.queueEnqueues.Inc() }

// RecordQueueDequeue counts one dequeued refresh event.
func RecordQueueDequeue() { globalManager.queueDequeues.Inc() }

// RecordQueueEnqueueError counts one refresh event dropped at enqueue.
func RecordQueueEnqueueError() { globalManager.queueEnqueueErrors.Inc() }

// UpdateWorkerCount sets the refresh worker count.
func UpdateWorkerCount(n int) { globalManager.workerCount.Set(float64(n)) }

// RecordWorkerProcessingLatency records one worker event's latency.
func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.workerProcessingLatency.Observe(latencyMs)
}

// RecordWorkerError counts a worker processing failure.
func RecordWorkerError() { globalManager.workerErrors.Inc() }

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records one HTTP request's duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordRateLimited counts a request rejected by the rate limiter.
func RecordRateLimited(endpoint string) {
	globalManager.httpRateLimited.WithLabelValues(endpoint).Inc()
}

// RecordStoreUpdateLatency records a transactional update's duration.
func RecordStoreUpdateLatency(latencyMs float64) {
	globalManager.storeUpdateLatency.Observe(latencyMs)
}

// RecordStoreConflict counts a version-check rejection.
func RecordStoreConflict() { globalManager.storeConflicts.Inc() }

// UpdateStoreDocuments sets the stored document count.
func UpdateStoreDocuments(n int) { globalManager.storeDocuments.Set(float64(n)) }

// UpdateSystemMemoryUsage sets heap usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records an average GC pause.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the registry backing the global manager, for promhttp.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
