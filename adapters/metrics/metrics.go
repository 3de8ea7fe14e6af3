// Package metrics provides Prometheus metrics collection for x402dash.
package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "x402dash"

// Side labels the ledger an observation belongs to.
const (
	SideSeller = "seller"
	SideBuyer  = "buyer"
)

// Collector holds all Prometheus metrics for x402dash.
// A nil *Collector is valid and records nothing.
type Collector struct {
	// HTTP metrics
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge

	// Ledger metrics
	EventsLogged  *prometheus.CounterVec
	AmountLogged  *prometheus.CounterVec
	LogFailures   *prometheus.CounterVec
	QueryDuration *prometheus.HistogramVec
	PublishErrors *prometheus.CounterVec
	AuthFailures  prometheus.Counter

	// Config metrics
	ConfigReloads      prometheus.Counter
	ConfigReloadErrors prometheus.Counter
	ConfigLastReload   prometheus.Gauge
}

// New creates a collector registered with the default Prometheus registry.
func New() *Collector {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates a new metrics collector with a custom registry.
// Useful for testing to avoid global state.
func NewWithRegistry(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of dashboard API requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Dashboard API request duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "route"},
		),
		RequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_requests_in_flight",
				Help:      "Number of dashboard API requests currently being served",
			},
		),

		EventsLogged: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "events_logged_total",
				Help:      "Events written to the ledger by side and status",
			},
			[]string{"side", "status"},
		),
		AmountLogged: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "amount_atomic_total",
				Help:      "Sum of atomic amounts of successful events",
			},
			[]string{"side", "network", "asset"},
		),
		LogFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "log_failures_total",
				Help:      "Logging calls that did not produce a stored event",
			},
			[]string{"side", "reason"},
		),
		QueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "query_duration_seconds",
				Help:      "Analytics query duration in seconds",
				Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5},
			},
			[]string{"side", "op"},
		),
		PublishErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "publish_errors_total",
				Help:      "Failed event fan-out publishes",
			},
			[]string{"subject"},
		),
		AuthFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "auth_failures_total",
				Help:      "Rejected dashboard credentials",
			},
		),

		ConfigReloads: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "config_reloads_total",
				Help:      "Total number of successful config reloads",
			},
		),
		ConfigReloadErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "config_reload_errors_total",
				Help:      "Total number of config reload errors",
			},
		),
		ConfigLastReload: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "config_last_reload_timestamp",
				Help:      "Unix timestamp of last successful config reload",
			},
		),
	}
}

// ObserveLogged records a stored event.
func (c *Collector) ObserveLogged(side, status, network, asset string, amount int64, succeeded bool) {
	if c == nil {
		return
	}
	c.EventsLogged.WithLabelValues(side, status).Inc()
	if succeeded && amount > 0 {
		c.AmountLogged.WithLabelValues(side, network, asset).Add(float64(amount))
	}
}

// ObserveLogFailure records a rejected or failed logging call.
func (c *Collector) ObserveLogFailure(side, reason string) {
	if c == nil {
		return
	}
	c.LogFailures.WithLabelValues(side, reason).Inc()
}

// ObserveQuery records how long an analytics query took.
func (c *Collector) ObserveQuery(side, op string, d time.Duration) {
	if c == nil {
		return
	}
	c.QueryDuration.WithLabelValues(side, op).Observe(d.Seconds())
}

// ObservePublishError counts a failed fan-out publish.
func (c *Collector) ObservePublishError(subject string) {
	if c == nil {
		return
	}
	c.PublishErrors.WithLabelValues(subject).Inc()
}

// ObserveAuthFailure counts a rejected dashboard login.
func (c *Collector) ObserveAuthFailure() {
	if c == nil {
		return
	}
	c.AuthFailures.Inc()
}

// ObserveRequest records a served HTTP request.
func (c *Collector) ObserveRequest(method, route string, status int, d time.Duration) {
	if c == nil {
		return
	}
	c.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.RequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveReload records the outcome of a config reload.
func (c *Collector) ObserveReload(err error, at time.Time) {
	if c == nil {
		return
	}
	if err != nil {
		c.ConfigReloadErrors.Inc()
		return
	}
	c.ConfigReloads.Inc()
	c.ConfigLastReload.Set(float64(at.Unix()))
}

// NormalizePath reduces label cardinality when no route pattern is known.
// Numeric and UUID segments become ":id" and long paths are truncated.
// e.g., /x402-dashboard/api/events/42 -> /x402-dashboard/api/events/:id
func NormalizePath(path string) string {
	segs := strings.Split(path, "/")
	for i, s := range segs {
		if s == "" {
			continue
		}
		if _, err := strconv.ParseInt(s, 10, 64); err == nil {
			segs[i] = ":id"
			continue
		}
		if _, err := uuid.Parse(s); err == nil {
			segs[i] = ":id"
		}
	}
	path = strings.Join(segs, "/")
	if len(path) > 80 {
		return path[:80] + "..."
	}
	return path
}
