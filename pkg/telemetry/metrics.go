package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/vango-lite/pkg/reactive"
)

// TracerName is the instrumentation name of engine spans.
const TracerName = "vango-lite"

// Config configures Metrics.
type Config struct {
	// Namespace is the metrics namespace (default: "vango_lite").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for durations.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures Metrics.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "vango_lite",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the engine's Prometheus collectors.
type Metrics struct {
	mounts        *prometheus.CounterVec
	patches       prometheus.Counter
	patchDuration prometheus.Histogram
	replaces      prometheus.Counter
	renders       *prometheus.CounterVec
	hostOps       *prometheus.CounterVec
	hostErrors    *prometheus.CounterVec
	triggers      prometheus.Counter
	subscribers   prometheus.Histogram
	runs          prometheus.Counter
	runErrors     prometheus.Counter
	runDuration   prometheus.Histogram
}

var _ reactive.Observer = (*Metrics)(nil)

// NewMetrics creates and registers the collectors.
func NewMetrics(opts ...Option) *Metrics {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	counter := func(name, help string) prometheus.Counter {
		return factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		})
	}
	counterVec := func(name, help string, labels ...string) *prometheus.CounterVec {
		return factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		}, labels)
	}
	histogram := func(name, help string, buckets []float64) prometheus.Histogram {
		return factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
			Buckets:     buckets,
		})
	}

	return &Metrics{
		mounts:        counterVec("mounts_total", "Virtual nodes mounted, by kind", "kind"),
		patches:       counter("patches_total", "Tree patches applied"),
		patchDuration: histogram("patch_duration_seconds", "Tree patch duration in seconds", config.Buckets),
		replaces:      counter("replaces_total", "Nodes replaced because their tag or component changed"),
		renders:       counterVec("component_renders_total", "Stateful component renders", "component", "status"),
		hostOps:       counterVec("host_ops_total", "Host operations issued, by operation", "op"),
		hostErrors:    counterVec("host_errors_total", "Host operations rejected, by operation", "op"),
		triggers:      counter("triggers_total", "Dependency triggers"),
		subscribers:   histogram("trigger_subscribers", "Subscribers notified per trigger", prometheus.ExponentialBuckets(1, 2, 8)),
		runs:          counter("computation_runs_total", "Tracked computation runs"),
		runErrors:     counter("computation_errors_total", "Tracked computation runs that failed"),
		runDuration:   histogram("computation_duration_seconds", "Tracked computation run duration in seconds", config.Buckets),
	}
}

// ObserveMount counts a mounted node of the given kind.
func (m *Metrics) ObserveMount(kind string) {
	if m == nil {
		return
	}
	m.mounts.WithLabelValues(kind).Inc()
}

// ObservePatch records one patch and its duration.
func (m *Metrics) ObservePatch(d time.Duration) {
	if m == nil {
		return
	}
	m.patches.Inc()
	m.patchDuration.Observe(d.Seconds())
}

// ObserveReplace counts a replaced node.
func (m *Metrics) ObserveReplace() {
	if m == nil {
		return
	}
	m.replaces.Inc()
}

// ObserveRender counts a stateful component render.
func (m *Metrics) ObserveRender(component string, err error) {
	if m == nil {
		return
	}
	m.renders.WithLabelValues(component, status(err)).Inc()
}

// ObserveHostOp counts a host operation and whether it failed.
func (m *Metrics) ObserveHostOp(op string, err error) {
	if m == nil {
		return
	}
	m.hostOps.WithLabelValues(op).Inc()
	if err != nil {
		m.hostErrors.WithLabelValues(op).Inc()
	}
}

// ObserveTrigger implements reactive.Observer.
func (m *Metrics) ObserveTrigger(key string, subscribers int) {
	if m == nil {
		return
	}
	m.triggers.Inc()
	m.subscribers.Observe(float64(subscribers))
}

// ObserveRun implements reactive.Observer.
func (m *Metrics) ObserveRun(c *reactive.Computation, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.runs.Inc()
	m.runDuration.Observe(elapsed.Seconds())
	if err != nil {
		m.runErrors.Inc()
	}
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
