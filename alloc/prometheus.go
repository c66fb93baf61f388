package alloc

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusConfig is a config of the Prometheus metrics provided by [InstrumentedAllocator].
//
// An instance can be created only by the [Prometheus] function. The zero value is invalid.
type PrometheusConfig struct {
	// Namespace of the metrics.
	Namespace string
	// Subsystem of the metrics.
	Subsystem string
	// Options for the successful allocations counter.
	Allocations prometheus.CounterOpts
	// Options for the frees counter.
	Frees prometheus.CounterOpts
	// Options for the failed allocations counter.
	Failures prometheus.CounterOpts
	// Options for the requested bytes counter.
	RequestedBytes prometheus.CounterOpts
	// Options for the live bytes gauge.
	LiveBytes prometheus.GaugeOpts
	// Options for the request size histogram.
	RequestSize prometheus.HistogramOpts

	registerer prometheus.Registerer
}

// Prometheus returns a [PrometheusConfig] with the provided registerer. If registerer is nil,
// metrics will not be registered. Many default parameters can be configured by passing
// configuration functions.
func Prometheus(
	registerer prometheus.Registerer,
	configFuncs ...func(c *PrometheusConfig),
) *PrometheusConfig {
	const (
		namespace = "flat"
		subsystem = "alloc"
	)

	c := PrometheusConfig{
		registerer: registerer,
		Namespace:  namespace,
		Subsystem:  subsystem,
		Allocations: prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "allocations",
			Help:      "Number of successful allocation requests",
		},
		Frees: prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "frees",
			Help:      "Number of released storages",
		},
		Failures: prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "failures",
			Help:      "Number of failed allocation requests",
		},
		RequestedBytes: prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "requested_bytes",
			Help:      "Number of bytes requested, successfully or not",
		},
		LiveBytes: prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "live_bytes",
			Help:      "Number of bytes allocated and not released yet",
		},
		RequestSize: prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "request_bytes",
			Help:      "Size of allocation requests in bytes",
			Buckets:   prometheus.ExponentialBuckets(64, 4, 10),
		},
	}

	for _, cf := range configFuncs {
		if cf != nil {
			cf(&c)
		}
	}

	return &c
}

// Metrics creates the collectors described by the config and registers them if the config has a
// registerer. It must be called once per registerer.
func (c *PrometheusConfig) Metrics() *Metrics {
	m := Metrics{
		allocations:    prometheus.NewCounter(c.Allocations),
		frees:          prometheus.NewCounter(c.Frees),
		failures:       prometheus.NewCounter(c.Failures),
		requestedBytes: prometheus.NewCounter(c.RequestedBytes),
		liveBytes:      prometheus.NewGauge(c.LiveBytes),
		requestSize:    prometheus.NewHistogram(c.RequestSize),
	}

	if c.registerer != nil {
		c.registerer.MustRegister(
			m.allocations,
			m.frees,
			m.failures,
			m.requestedBytes,
			m.liveBytes,
			m.requestSize,
		)
	}

	return &m
}

// Metrics is a set of collectors shared by any number of [InstrumentedAllocator].
type Metrics struct {
	allocations    prometheus.Counter
	frees          prometheus.Counter
	failures       prometheus.Counter
	requestedBytes prometheus.Counter
	liveBytes      prometheus.Gauge
	requestSize    prometheus.Histogram
}

// InstrumentedAllocator reports every request passing through it to [Metrics].
type InstrumentedAllocator[Item any] struct {
	next    Allocator[Item]
	metrics *Metrics
}

var _ Allocator[any] = (*InstrumentedAllocator[any])(nil)

func Instrumented[Item any](next Allocator[Item], metrics *Metrics) *InstrumentedAllocator[Item] {
	if next == nil {
		panic("allocator can't be nil")
	}
	if metrics == nil {
		panic("metrics can't be nil")
	}
	return &InstrumentedAllocator[Item]{
		next:    next,
		metrics: metrics,
	}
}

func (a *InstrumentedAllocator[Item]) Reallocate(items []Item, n int) ([]Item, error) {
	size := bytesOf[Item](n)
	a.metrics.requestedBytes.Add(float64(size))
	a.metrics.requestSize.Observe(float64(size))

	grown, err := a.next.Reallocate(items, n)
	if err != nil {
		a.metrics.failures.Inc()
		return nil, err
	}

	a.metrics.allocations.Inc()
	a.metrics.liveBytes.Add(float64(size - bytesOf[Item](len(items))))

	return grown, nil
}

func (a *InstrumentedAllocator[Item]) Free(items []Item) {
	a.metrics.frees.Inc()
	a.metrics.liveBytes.Sub(float64(bytesOf[Item](len(items))))
	a.next.Free(items)
}
