package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the Prometheus metrics of the service. Methods are safe on
// a nil receiver so components can run without metrics.
type Collector struct {
	registry *prometheus.Registry

	HTTPRequests  *prometheus.CounterVec
	HTTPDuration  *prometheus.HistogramVec
	StoreOps      *prometheus.CounterVec
	QueueMessages *prometheus.CounterVec
}

// NewCollector creates a collector with its own registry
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		StoreOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "store_operations_total",
				Help:      "Total number of data store calls",
			},
			[]string{"operation", "result"},
		),
		QueueMessages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "queue_messages_total",
				Help:      "Total number of queue messages handled",
			},
			[]string{"operation", "result"},
		),
	}

	registry.MustRegister(c.HTTPRequests, c.HTTPDuration, c.StoreOps, c.QueueMessages)
	return c
}

// Registry exposes the underlying registry
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus text format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// ObserveHTTPRequest records a served request
func (c *Collector) ObserveHTTPRequest(method string, status int, duration time.Duration) {
	if c == nil {
		return
	}
	c.HTTPRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// ObserveStoreOperation records a data store call
func (c *Collector) ObserveStoreOperation(operation string, err error) {
	if c == nil {
		return
	}
	c.StoreOps.WithLabelValues(operation, result(err)).Inc()
}

// ObserveQueueMessage records a processed queue message
func (c *Collector) ObserveQueueMessage(operation string, err error) {
	if c == nil {
		return
	}
	c.QueueMessages.WithLabelValues(operation, result(err)).Inc()
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
