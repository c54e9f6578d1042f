package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds the HTTP instrumentation for the API server.
type Registry struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New builds a registry with the process and Go collectors plus the request
// counter and latency histogram.
func New(serviceName string) *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	requestsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   "storefront",
		Subsystem:   "http",
		Name:        "requests_total",
		Help:        "Count of HTTP requests by method, route and status code.",
		ConstLabels: prometheus.Labels{"service": serviceName},
	}, []string{"method", "route", "status"})

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   "storefront",
		Subsystem:   "http",
		Name:        "request_duration_seconds",
		Help:        "HTTP request latency by method and route.",
		ConstLabels: prometheus.Labels{"service": serviceName},
		Buckets:     prometheus.DefBuckets,
	}, []string{"method", "route"})

	reg.MustRegister(requestsTotal, requestDuration)

	return &Registry{
		registry:        reg,
		requestsTotal:   requestsTotal,
		requestDuration: requestDuration,
	}
}

// ObserveRequest records one completed request.
func (r *Registry) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	r.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Gather exposes the underlying gatherer, primarily for tests.
func (r *Registry) Gather() prometheus.Gatherer {
	return r.registry
}

// Handler serves the scrape endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
