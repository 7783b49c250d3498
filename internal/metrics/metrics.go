// Package metrics exposes newsroom run and publish counters to Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/newsroom/internal/core/domain"
	"github.com/custodia-labs/newsroom/internal/core/ports/driven"
)

// Ensure Collector implements the interface.
var _ driven.Metrics = (*Collector)(nil)

// Namespace prefixes every metric name.
const Namespace = "newsroom"

// Collector holds all Prometheus metrics for the newsroom.
type Collector struct {
	// Registry for this collector instance
	registry *prometheus.Registry

	// Pipeline metrics
	RoundsSkipped    prometheus.Counter
	EventsNormalised *prometheus.CounterVec
	ArticlesWritten  *prometheus.CounterVec

	// Publish metrics
	FilesCommittedTotal prometheus.Counter
	Publishes           *prometheus.CounterVec

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// NewCollector creates a collector registered on its own registry.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		RoundsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "rounds_skipped_total",
			Help:      "Transaction rounds that could not be fetched",
		}),
		EventsNormalised: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "events_normalised_total",
			Help:      "Events produced by normalisation",
		}, []string{"kind"}),
		ArticlesWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "articles_written_total",
			Help:      "Article files written",
		}, []string{"kind"}),
		FilesCommittedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "files_committed_total",
			Help:      "Files committed to the content repository",
		}),
		Publishes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "publishes_total",
			Help:      "Publish attempts by outcome",
		}, []string{"status"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	registry.MustRegister(
		c.RoundsSkipped,
		c.EventsNormalised,
		c.ArticlesWritten,
		c.FilesCommittedTotal,
		c.Publishes,
		c.HTTPRequests,
		c.HTTPDuration,
	)

	return c
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// RoundSkipped implements driven.Metrics.
func (c *Collector) RoundSkipped(int) {
	c.RoundsSkipped.Inc()
}

// EventNormalised implements driven.Metrics.
func (c *Collector) EventNormalised(kind domain.EventKind) {
	c.EventsNormalised.WithLabelValues(kind.Tag()).Inc()
}

// ArticleWritten implements driven.Metrics.
func (c *Collector) ArticleWritten(kind domain.EventKind) {
	c.ArticlesWritten.WithLabelValues(kind.Tag()).Inc()
}

// FilesCommitted implements driven.Metrics.
func (c *Collector) FilesCommitted(n int) {
	c.FilesCommittedTotal.Add(float64(n))
}

// PublishCompleted implements driven.Metrics.
func (c *Collector) PublishCompleted(ok bool) {
	status := "error"
	if ok {
		status = "ok"
	}
	c.Publishes.WithLabelValues(status).Inc()
}

// RecordHTTPRequest records one served request.
func (c *Collector) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
