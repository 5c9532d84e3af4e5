package middlewares

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/hxforge/internal"
	"github.com/dmitrymomot/hxforge/pkg/htmx"
)

// MetricsConfig configures the metrics middleware.
type MetricsConfig struct {
	Registerer prometheus.Registerer // Defaults to prometheus.DefaultRegisterer
	Namespace  string                // Metric name prefix (default: "hxforge")
	Buckets    []float64             // Duration histogram buckets
}

// MetricsOption configures MetricsConfig.
type MetricsOption func(*MetricsConfig)

// WithMetricsRegisterer sets the registry the collectors are registered with.
func WithMetricsRegisterer(r prometheus.Registerer) MetricsOption {
	return func(cfg *MetricsConfig) {
		if r != nil {
			cfg.Registerer = r
		}
	}
}

// WithMetricsNamespace sets the metric name prefix.
func WithMetricsNamespace(ns string) MetricsOption {
	return func(cfg *MetricsConfig) {
		cfg.Namespace = ns
	}
}

// WithMetricsBuckets sets the request duration buckets.
func WithMetricsBuckets(buckets ...float64) MetricsOption {
	return func(cfg *MetricsConfig) {
		cfg.Buckets = buckets
	}
}

// Metrics returns middleware recording Prometheus metrics per request kind:
//
//	<ns>_http_requests_total{kind,method,code}
//	<ns>_http_request_duration_seconds{kind}
//	<ns>_htmx_triggers_total{phase}
//
// Kind is the htmx classification of the request. Triggers are only sent
// to htmx requests, so page requests never add to the trigger counter.
func Metrics(opts ...MetricsOption) internal.Middleware {
	cfg := &MetricsConfig{
		Registerer: prometheus.DefaultRegisterer,
		Namespace:  "hxforge",
		Buckets:    prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	requests := register(cfg.Registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: cfg.Namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by htmx request kind, method and status code.",
	}, []string{"kind", "method", "code"}))

	duration := register(cfg.Registerer, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: cfg.Namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request duration by htmx request kind.",
		Buckets:   cfg.Buckets,
	}, []string{"kind"}))

	triggers := register(cfg.Registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: cfg.Namespace,
		Subsystem: "htmx",
		Name:      "triggers_total",
		Help:      "Client events sent in HX-Trigger headers by phase.",
	}, []string{"phase"}))

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			start := time.Now()
			err := next(c)

			facts := GetFacts(c)
			composer := c.HTMX()

			requests.WithLabelValues(facts.Kind(), c.Request().Method, strconv.Itoa(statusOf(c, composer, err))).Inc()
			duration.WithLabelValues(facts.Kind()).Observe(time.Since(start).Seconds())

			if composer != nil && facts.IsHTMX() {
				for _, p := range htmx.Phases {
					if n := composer.Triggers(p).Len(); n > 0 {
						triggers.WithLabelValues(p.String()).Add(float64(n))
					}
				}
			}
			return err
		}
	}
}

// statusOf returns the status sent, or the one the request will most
// likely finish with when nothing was written yet.
func statusOf(c internal.Context, composer *htmx.Composer, err error) int {
	if rw := c.ResponseWriter(); rw != nil && rw.Written() {
		return rw.Status()
	}
	if composer != nil && composer.Status() != 0 {
		return composer.Status()
	}
	if err != nil {
		if httpErr := internal.AsHTTPError(err); httpErr != nil {
			return httpErr.Code
		}
		return http.StatusInternalServerError
	}
	return http.StatusOK
}

// register registers c, reusing an identical collector that is already
// registered so the middleware can be built more than once per registry.
func register[C prometheus.Collector](r prometheus.Registerer, c C) C {
	if err := r.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}
