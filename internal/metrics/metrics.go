package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/kleinsmk/Pode/internal/core"
)

// Ensure Metrics implements core.Recorder at compile time
var _ core.Recorder = (*Metrics)(nil)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// Authentication Metrics
	AuthAttemptsTotal      *prometheus.CounterVec
	AuthParseFailuresTotal *prometheus.CounterVec
	AuthLoginTotal         *prometheus.CounterVec
	AuthLogoutTotal        prometheus.Counter
	AuthAttemptDuration    *prometheus.HistogramVec
	ExternalAPIDuration    *prometheus.HistogramVec

	// Session Metrics
	SessionsActive       prometheus.Gauge
	SessionsCreatedTotal prometheus.Counter
	SessionsResumedTotal *prometheus.CounterVec
	SessionsExpiredTotal *prometheus.CounterVec
	SessionDuration      prometheus.Histogram

	// User Metrics
	RegisteredUsers prometheus.Gauge

	// HTTP Request Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Database Query Metrics
	DatabaseQueryErrorsTotal *prometheus.CounterVec
}

var (
	defaultMetrics *Metrics
	once           sync.Once
)

// Init returns the process-wide Recorder. enabled=false yields a
// zero-overhead no-op recorder; otherwise Prometheus metrics are
// registered exactly once, no matter how often Init runs.
func Init(enabled bool) core.Recorder {
	if !enabled {
		return NewNoop()
	}

	once.Do(func() {
		defaultMetrics = initMetrics()
	})
	return defaultMetrics
}

// initMetrics creates and registers all Prometheus metrics
func initMetrics() *Metrics {
	m := &Metrics{
		// Authentication Metrics
		AuthAttemptsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_attempts_total",
				Help: "Total number of authentication attempts",
			},
			[]string{
				"method",
				"result",
			}, // method: basic, form, api_key; result: success, failure
		),
		AuthParseFailuresTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_parse_failures_total",
				Help: "Total number of malformed credential submissions",
			},
			[]string{"method", "code"}, // code: HTTP status of the rejection
		),
		AuthLoginTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_login_total",
				Help: "Total number of login attempts",
			},
			[]string{
				"auth_source",
				"result",
			}, // auth_source: local, http_api, api_key; result: success, failure
		),
		AuthLogoutTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "auth_logout_total",
				Help: "Total number of logouts",
			},
		),
		AuthAttemptDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "auth_attempt_duration_seconds",
				Help:    "Time taken to parse and validate credentials",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		ExternalAPIDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "auth_external_api_duration_seconds",
				Help:    "Time taken for external API authentication calls",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider"},
		),

		// Session Metrics
		SessionsActive: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "sessions_active",
				Help: "Current number of active sessions",
			},
		),
		SessionsCreatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "sessions_created_total",
				Help: "Total number of sessions created",
			},
		),
		SessionsResumedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sessions_resumed_total",
				Help: "Total number of requests authenticated from an existing session",
			},
			[]string{"method"},
		),
		SessionsExpiredTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sessions_expired_total",
				Help: "Total number of sessions ended",
			},
			[]string{"reason"}, // logout, idle_timeout, fingerprint_mismatch
		),
		SessionDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name: "session_duration_seconds",
				Help: "Duration of user sessions",
				Buckets: []float64{
					60,
					300,
					600,
					1800,
					3600,
					7200,
					14400,
					28800,
				}, // 1m, 5m, 10m, 30m, 1h, 2h, 4h, 8h
			},
		),

		// User Metrics
		RegisteredUsers: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "registered_users",
				Help: "Current number of registered users",
			},
		),

		// HTTP Request Metrics
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "http_request_duration_seconds",
				Help: "HTTP request latency in seconds",
				Buckets: []float64{
					0.001,
					0.005,
					0.010,
					0.025,
					0.050,
					0.100,
					0.250,
					0.500,
					1.0,
					2.5,
					5.0,
					10.0,
				},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Current number of HTTP requests being served",
			},
		),

		// Database Query Metrics
		DatabaseQueryErrorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "database_query_errors_total",
				Help: "Total number of database query errors during metric collection",
			},
			[]string{"operation"}, // count_users, audit_flush
		),
	}

	return m
}
