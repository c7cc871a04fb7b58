package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the reconciliation service

var (
	// Reconciliation metrics
	RecordsProcessedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nflgames_records_processed_total",
			Help: "Total number of player performance records processed",
		},
	)

	RecordsMatchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nflgames_records_matched_total",
			Help: "Total number of records joined to game context",
		},
		[]string{"tier"},
	)

	RecordsUnmatchedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nflgames_records_unmatched_total",
			Help: "Total number of records that found no game context",
		},
	)

	UnknownIdentitiesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nflgames_unknown_identities_total",
			Help: "Total number of team tokens the alias tables could not resolve",
		},
	)

	MalformedKeysTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nflgames_malformed_keys_total",
			Help: "Total number of records whose join key could not be built",
		},
	)

	AmbiguousLinesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nflgames_ambiguous_lines_total",
			Help: "Total number of line entries whose favorite matched neither side",
		},
	)

	LinesFilledTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nflgames_lines_filled_total",
			Help: "Total number of betting lines filled onto game records",
		},
		[]string{"source"},
	)

	RunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "nflgames_run_duration_seconds",
			Help:    "Duration of reconciliation runs in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
	)

	MatchRate = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "nflgames_match_rate",
			Help: "Fraction of processed records joined to game context in the last run",
		},
	)

	// Feed metrics
	FeedFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nflgames_feed_fetches_total",
			Help: "Total number of feed fetches",
		},
		[]string{"feed", "status"},
	)

	FeedFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nflgames_feed_fetch_duration_seconds",
			Help:    "Duration of feed fetches in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"feed"},
	)

	// Database metrics
	DBQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nflgames_db_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"operation", "table", "status"},
	)

	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "nflgames_db_connections_active",
			Help: "Number of active database connections",
		},
	)

	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "nflgames_db_connections_idle",
			Help: "Number of idle database connections",
		},
	)

	// Cache metrics
	CacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nflgames_cache_hits_total",
			Help: "Total number of cache hits",
		},
	)

	CacheMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nflgames_cache_misses_total",
			Help: "Total number of cache misses",
		},
	)

	// Error metrics
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nflgames_errors_total",
			Help: "Total number of errors",
		},
		[]string{"component", "error_type"},
	)

	// System metrics
	SystemUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "nflgames_system_uptime_seconds",
			Help: "System uptime in seconds",
		},
	)

	LastSuccessfulRun = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "nflgames_last_successful_run_timestamp",
			Help: "Timestamp of last successful reconciliation run",
		},
	)
)

// RecordMatch records one joined record at its confidence tier
func RecordMatch(tier string) {
	RecordsProcessedTotal.Inc()
	RecordsMatchedTotal.WithLabelValues(tier).Inc()
}

// RecordUnmatched records one record that found no game context
func RecordUnmatched() {
	RecordsProcessedTotal.Inc()
	RecordsUnmatchedTotal.Inc()
}

// RecordRun records a completed reconciliation run
func RecordRun(duration, matchRate float64, success bool) {
	RunDuration.Observe(duration)
	MatchRate.Set(matchRate)
	if success {
		LastSuccessfulRun.SetToCurrentTime()
	}
}

// RecordFeedFetch records a feed fetch metric
func RecordFeedFetch(feed, status string, duration float64) {
	FeedFetchesTotal.WithLabelValues(feed, status).Inc()
	FeedFetchDuration.WithLabelValues(feed).Observe(duration)
}

// RecordLineFill records filled lines from one source
func RecordLineFill(source string, count int) {
	LinesFilledTotal.WithLabelValues(source).Add(float64(count))
}

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table, status string) {
	DBQueriesTotal.WithLabelValues(operation, table, status).Inc()
}

// RecordCacheHit records a cache hit
func RecordCacheHit() {
	CacheHitsTotal.Inc()
}

// RecordCacheMiss records a cache miss
func RecordCacheMiss() {
	CacheMissesTotal.Inc()
}

// RecordError records an error
func RecordError(component, errorType string) {
	ErrorsTotal.WithLabelValues(component, errorType).Inc()
}

// UpdateDBConnectionStats updates database connection pool statistics
func UpdateDBConnectionStats(active, idle int32) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}
