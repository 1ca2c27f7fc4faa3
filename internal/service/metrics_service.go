package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the API and
// the directory core. All methods are nil-safe so instrumentation can be
// disabled by passing a nil service.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	searchTotal     prometheus.Counter
	reviewTotal     prometheus.Counter
	voteTotal       *prometheus.CounterVec
}

// NewMetricsService registers the core collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	searchTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "directory_searches_total",
		Help: "Total ranked searches executed",
	})

	reviewTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "directory_reviews_total",
		Help: "Total reviews accepted",
	})

	voteTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "directory_votes_total",
		Help: "Total vote transitions applied",
	}, []string{"intent"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, searchTotal, reviewTotal, voteTotal, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		searchTotal:     searchTotal,
		reviewTotal:     reviewTotal,
		voteTotal:       voteTotal,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// RecordSearch counts one ranked search.
func (m *MetricsService) RecordSearch() {
	if m == nil {
		return
	}
	m.searchTotal.Inc()
}

// RecordReview counts one accepted review.
func (m *MetricsService) RecordReview() {
	if m == nil {
		return
	}
	m.reviewTotal.Inc()
}

// RecordVote counts one vote transition by intent.
func (m *MetricsService) RecordVote(intent string) {
	if m == nil {
		return
	}
	m.voteTotal.WithLabelValues(intent).Inc()
}
