package middleware

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetricsOptions configures the HTTP metrics middleware.
type HTTPMetricsOptions struct {
	Registerer prometheus.Registerer
	Namespace  string
	Buckets    []float64
}

// HTTPMetrics exposes Prometheus collectors for request instrumentation.
type HTTPMetrics struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
	InFlight prometheus.Gauge
}

// NewHTTPMetrics registers request collectors, reusing any that are already registered.
func NewHTTPMetrics(opts HTTPMetricsOptions) (*HTTPMetrics, error) {
	namespace := opts.Namespace
	if namespace == "" {
		namespace = "feedformly"
	}
	reg := opts.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	buckets := opts.Buckets
	if len(buckets) == 0 {
		buckets = prometheus.DefBuckets
	}

	labels := []string{"method", "route", "status"}

	requests, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests partitioned by method, route and status code.",
	}, labels))
	if err != nil {
		return nil, err
	}

	duration, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latencies in seconds partitioned by method, route and status code.",
		Buckets:   buckets,
	}, labels))
	if err != nil {
		return nil, err
	}

	inFlight, err := register[prometheus.Gauge](reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "in_flight_requests",
		Help:      "Current number of in-flight HTTP requests.",
	}))
	if err != nil {
		return nil, err
	}

	return &HTTPMetrics{Requests: requests, Duration: duration, InFlight: inFlight}, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			return c, fmt.Errorf("register http collector: %w", err)
		}
		existing, ok := already.ExistingCollector.(T)
		if !ok {
			return c, fmt.Errorf("existing http collector has unexpected type %T", already.ExistingCollector)
		}
		return existing, nil
	}
	return c, nil
}

// Handler returns a Gin middleware that records the HTTP metrics. Unmatched routes share one
// label value so scanners cannot blow up cardinality.
func (m *HTTPMetrics) Handler() gin.HandlerFunc {
	if m == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		start := time.Now()
		m.InFlight.Inc()
		defer m.InFlight.Dec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		labels := prometheus.Labels{
			"method": c.Request.Method,
			"route":  route,
			"status": strconv.Itoa(c.Writer.Status()),
		}
		m.Requests.With(labels).Inc()
		m.Duration.With(labels).Observe(time.Since(start).Seconds())
	}
}
