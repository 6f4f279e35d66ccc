package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds the service's Prometheus collectors.
var Registry = prometheus.NewRegistry()

var (
	submissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scholarship",
			Subsystem: "applications",
			Name:      "submissions_total",
			Help:      "Applications decided, by status.",
		},
		[]string{"status"},
	)

	finalScore = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "scholarship",
			Subsystem: "applications",
			Name:      "final_score",
			Help:      "Distribution of combined final scores.",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		},
	)

	storeErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scholarship",
			Subsystem: "store",
			Name:      "errors_total",
			Help:      "Record store failures, by operation.",
		},
		[]string{"op"},
	)

	notificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scholarship",
			Subsystem: "notify",
			Name:      "notifications_total",
			Help:      "Decision notifications, by result.",
		},
		[]string{"result"},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scholarship",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "scholarship",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "route"},
	)
)

func init() {
	Registry.MustRegister(
		submissionsTotal,
		finalScore,
		storeErrorsTotal,
		notificationsTotal,
		httpRequests,
		httpDuration,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// ObserveDecision records one decided application.
func ObserveDecision(status string, score float64) {
	submissionsTotal.WithLabelValues(status).Inc()
	finalScore.Observe(score)
}

// IncStoreError counts a failed record store operation ("append", "list").
func IncStoreError(op string) {
	storeErrorsTotal.WithLabelValues(op).Inc()
}

// IncNotification counts a notification outcome ("sent", "failed", "skipped").
func IncNotification(result string) {
	notificationsTotal.WithLabelValues(result).Inc()
}

// ObserveHTTP records a completed request. route should be the matched
// route template, not the raw path.
func ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))
}
