package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Registry holds every collector exposed on /api/metrics
	Registry = prometheus.NewRegistry()

	factory = promauto.With(Registry)

	// Buckets for API response times ranging from milliseconds to a few seconds
	CustomAPIBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 8}

	// HTTP Metrics
	HTTPRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_server_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	HTTPRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_request_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	ActiveRequests = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_server_active_requests",
			Help: "Number of active HTTP requests",
		},
		[]string{"http_request_method"},
	)

	// Database Client Metrics
	DBOperationDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_client_operation_duration_seconds",
			Help:    "Database client operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"operation", "status"},
	)

	DBOperationTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_client_operation_total",
			Help: "Total number of database client operations",
		},
		[]string{"operation", "status"},
	)

	// Cache Metrics
	CacheHits = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_name"},
	)

	CacheMisses = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_name"},
	)

	CacheSize = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Number of entries in cache",
		},
		[]string{"cache_name"},
	)

	// Auth Metrics
	AuthAttempts = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentoapp_auth_attempts_total",
			Help: "Registration and login attempts",
		},
		[]string{"operation", "status"},
	)

	TokenRejections = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentoapp_token_rejections_total",
			Help: "Requests rejected by the authorization gate",
		},
		[]string{"reason"},
	)

	// Workflow Metrics
	MentorshipRequestsSubmitted = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "mentoapp_mentorship_requests_submitted_total",
			Help: "Total number of mentorship requests submitted",
		},
	)

	MentorshipRequestResponses = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentoapp_mentorship_request_responses_total",
			Help: "Mentor responses to mentorship requests by outcome",
		},
		[]string{"status", "result"},
	)

	MentorshipRequestsListDuration = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mentoapp_mentorship_requests_list_duration_seconds",
			Help:    "Duration of listing incoming mentorship requests",
			Buckets: CustomAPIBuckets,
		},
	)

	SessionsBooked = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentoapp_sessions_booked_total",
			Help: "Sessions created, by origin",
		},
		[]string{"origin"},
	)

	AdminUserChanges = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentoapp_admin_user_changes_total",
			Help: "User management operations performed by admins",
		},
		[]string{"operation"},
	)

	// Infrastructure Metrics
	GoRoutines = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_goroutines",
			Help: "Number of goroutines",
		},
	)

	HeapAlloc = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_mem_heap_alloc_bytes",
			Help: "Heap allocated bytes",
		},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// RecordInfrastructureMetrics collects infrastructure metrics periodically until stop is closed
func RecordInfrastructureMetrics(stop <-chan struct{}) {
	ticker := time.NewTicker(15 * time.Second)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				var m runtime.MemStats
				runtime.ReadMemStats(&m)

				GoRoutines.Set(float64(runtime.NumGoroutine()))
				HeapAlloc.Set(float64(m.HeapAlloc))
			}
		}
	}()
}

// MeasureDuration measures the duration of an operation
func MeasureDuration(start time.Time) float64 {
	return time.Since(start).Seconds()
}
