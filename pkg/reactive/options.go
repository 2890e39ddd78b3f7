package reactive

import "log/slog"

// Option configures refs, computed values, containers and computations.
type Option func(*options)

type options struct {
	tracker *Tracker
	name    string
}

// WithTracker binds the value to t instead of the process-wide default.
func WithTracker(t *Tracker) Option {
	return func(o *options) {
		o.tracker = t
	}
}

// WithName labels a computation for logs and metrics.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.tracker == nil {
		o.tracker = Default()
	}
	return o
}

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithLogger sets the tracker's logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) TrackerOption {
	return func(t *Tracker) {
		t.logger = l
	}
}

// WithObserver installs an Observer notified of triggers and runs.
func WithObserver(o Observer) TrackerOption {
	return func(t *Tracker) {
		t.observer = o
	}
}

// WithErrorHandler sets the function that receives errors from re-runs
// started by Trigger or Batch. The default logs them at error level.
func WithErrorHandler(fn func(c *Computation, err error)) TrackerOption {
	return func(t *Tracker) {
		t.onError = fn
	}
}
