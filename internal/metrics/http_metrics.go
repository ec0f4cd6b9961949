package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// HTTPMetrics интерфейс для метрик входящих HTTP-запросов
type HTTPMetrics interface {
	ObserveRequest(method, path string, status int, duration time.Duration)
}

type httpMetrics struct {
	log              *zap.Logger
	requestsTotal    *prometheus.CounterVec
	requestDurations *prometheus.HistogramVec
}

// NewHTTPMetrics создает новые метрики HTTP-запросов
func NewHTTPMetrics(registry *prometheus.Registry, log *zap.Logger) HTTPMetrics {
	requestsTotal := promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "The total number of handled HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	requestDurations := promauto.With(registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency distribution",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	return &httpMetrics{
		log:              log,
		requestsTotal:    requestsTotal,
		requestDurations: requestDurations,
	}
}

// ObserveRequest записывает обработанный HTTP-запрос
func (m *httpMetrics) ObserveRequest(method, path string, status int, duration time.Duration) {
	m.requestsTotal.WithLabelValues(method, path, statusLabel(status)).Inc()
	m.requestDurations.WithLabelValues(method, path).Observe(duration.Seconds())
}

// statusLabel сворачивает код статуса в класс (2xx, 4xx, ...)
func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
