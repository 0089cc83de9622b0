// Package metrics exposes Prometheus counters and histograms for upstream Sonarr
// requests, tool calls and resource reads.
// file: internal/metrics/metrics.go
package metrics

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/dkoosis/sonarr-mcp/internal/mcp"
	"github.com/dkoosis/sonarr-mcp/internal/sonarr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sonarr_mcp"

// Outcome label values.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

var (
	_ sonarr.Observer = (*Collector)(nil)
	_ mcp.Observer    = (*Collector)(nil)
)

// Collector records metrics into its own registry. It implements both
// sonarr.Observer and mcp.Observer.
type Collector struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	retries         *prometheus.CounterVec
	toolCalls       *prometheus.CounterVec
	toolDuration    *prometheus.HistogramVec
	resourceReads   *prometheus.CounterVec
	buildInfo       *prometheus.GaugeVec
}

// NewCollector creates a collector with a fresh registry. The Go runtime and
// process collectors are registered alongside the application metrics.
func NewCollector(version string) *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	c := &Collector{
		registry: reg,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Sonarr API requests by method, route and HTTP status (0 when no response was received).",
		}, []string{"method", "route", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Duration of Sonarr API requests in seconds, including retries.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"method", "route"}),
		retries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_retries_total",
			Help:      "Sonarr API retry attempts by route.",
		}, []string{"route"}),
		toolCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tool_calls_total",
			Help:      "Tool invocations by tool name and outcome.",
		}, []string{"tool", "outcome"}),
		toolDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tool_call_duration_seconds",
			Help:      "Duration of tool invocations in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"tool"}),
		resourceReads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resource_reads_total",
			Help:      "Resource reads by URI and outcome.",
		}, []string{"uri", "outcome"}),
		buildInfo: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "build_info",
			Help:      "Always 1; labelled with the server version and Go version.",
		}, []string{"version", "goversion"}),
	}
	c.buildInfo.WithLabelValues(version, runtime.Version()).Set(1)
	return c
}

// Registry returns the registry metrics are recorded into.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// ObserveRequest implements sonarr.Observer.
func (c *Collector) ObserveRequest(method, route string, status int, duration time.Duration, _ error) {
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveRetry implements sonarr.Observer.
func (c *Collector) ObserveRetry(route string, _ int, _ error) {
	c.retries.WithLabelValues(route).Inc()
}

// ObserveToolCall implements mcp.Observer. Error results count as errors even
// though they are not protocol failures.
func (c *Collector) ObserveToolCall(name string, duration time.Duration, isError bool, err error) {
	c.toolCalls.WithLabelValues(name, outcome(isError || err != nil)).Inc()
	c.toolDuration.WithLabelValues(name).Observe(duration.Seconds())
}

// ObserveResourceRead implements mcp.Observer.
func (c *Collector) ObserveResourceRead(uri string, _ time.Duration, err error) {
	c.resourceReads.WithLabelValues(uri, outcome(err != nil)).Inc()
}

func outcome(failed bool) string {
	if failed {
		return OutcomeError
	}
	return OutcomeOK
}
