package reactive

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	vlerrors "github.com/vango-dev/vango-lite/internal/errors"
)

// Observer receives tracker activity, typically for metrics.
type Observer interface {
	ObserveTrigger(key string, subscribers int)
	ObserveRun(c *Computation, elapsed time.Duration, err error)
}

// Tracker is a registry of (target, key) -> subscribed computations.
type Tracker struct {
	mu sync.Mutex

	// subs holds subscribers per pair in subscription order.
	subs map[depKey][]*Computation

	// stack holds running computations; nil entries suspend tracking.
	stack []*Computation

	batchDepth int
	pending    []*Computation

	logger   *slog.Logger
	observer Observer
	onError  func(c *Computation, err error)
}

// NewTracker creates an empty tracker.
func NewTracker(opts ...TrackerOption) *Tracker {
	t := &Tracker{
		subs: make(map[depKey][]*Computation),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.logger == nil {
		t.logger = slog.Default()
	}
	return t
}

var defaultTracker = NewTracker()

// Default returns the process-wide tracker.
func Default() *Tracker { return defaultTracker }

// Track records that the active computation read key of target.
// It is a no-op outside a computation. target must be comparable,
// typically a pointer.
func (t *Tracker) Track(target any, key string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	c := t.activeLocked()
	if c == nil || c.disposed {
		return
	}
	k := depKey{target: target, key: key}
	if !c.seen.Add(k) {
		return
	}
	// Still subscribed from an earlier run: keep the original position.
	if c.deps.Contains(k) {
		return
	}
	t.subs[k] = append(t.subs[k], c)
}

// Trigger re-runs every computation subscribed to key of target, in
// subscription order. Inside Batch the re-runs are deferred.
func (t *Tracker) Trigger(target any, key string) {
	t.mu.Lock()
	subs := slices.Clone(t.subs[depKey{target: target, key: key}])
	batching := t.batchDepth > 0
	if batching {
		for _, c := range subs {
			if !slices.Contains(t.pending, c) {
				t.pending = append(t.pending, c)
			}
		}
	}
	t.mu.Unlock()

	if t.observer != nil {
		t.observer.ObserveTrigger(key, len(subs))
	}
	if batching {
		return
	}
	for _, c := range subs {
		t.rerun(c)
	}
}

// Run makes c the active computation, calls its body once, and restores the
// previous active computation even if the body panics. A panic is returned
// as an error matching ErrComputationFailed.
func (t *Tracker) Run(c *Computation) (err error) {
	t.mu.Lock()
	if c.disposed {
		t.mu.Unlock()
		return nil
	}
	if c.running {
		t.mu.Unlock()
		return vlerrors.New(vlerrors.CodeReentrantTrigger).WithDetail(c.label())
	}
	c.running = true
	c.seen = mapset.NewThreadUnsafeSet[depKey]()
	t.stack = append(t.stack, c)
	t.mu.Unlock()

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = vlerrors.New(vlerrors.CodeComputationFailed).
				WithDetailf("%s panicked: %v", c.label(), r)
		}

		t.mu.Lock()
		t.stack = t.stack[:len(t.stack)-1]
		c.running = false
		t.sweepLocked(c)
		t.mu.Unlock()

		if t.observer != nil {
			t.observer.ObserveRun(c, time.Since(start), err)
		}
	}()

	return c.fn()
}

// Dispose removes every subscription of c.
func (t *Tracker) Dispose(c *Computation) {
	t.mu.Lock()
	defer t.mu.Unlock()

	c.disposed = true
	for _, k := range c.deps.Union(c.seen).ToSlice() {
		t.unsubscribeLocked(k, c)
	}
	c.deps.Clear()
	c.seen.Clear()
	if i := slices.Index(t.pending, c); i >= 0 {
		t.pending = slices.Delete(t.pending, i, i+1)
	}
}

// Batch runs fn and defers triggered re-runs until the outermost Batch
// returns. Each pending computation then runs once, in first-queued order.
func (t *Tracker) Batch(fn func()) {
	t.mu.Lock()
	t.batchDepth++
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.batchDepth--
		done := t.batchDepth == 0
		t.mu.Unlock()
		if done {
			t.flush()
		}
	}()

	fn()
}

// Untrack runs fn with tracking suspended.
func (t *Tracker) Untrack(fn func()) {
	t.mu.Lock()
	t.stack = append(t.stack, nil)
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.stack = t.stack[:len(t.stack)-1]
		t.mu.Unlock()
	}()

	fn()
}

// Active returns the computation currently recording reads, or nil.
func (t *Tracker) Active() *Computation {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.activeLocked()
}

// SubscriberCount returns how many computations observe key of target.
func (t *Tracker) SubscriberCount(target any, key string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.subs[depKey{target: target, key: key}])
}

func (t *Tracker) activeLocked() *Computation {
	if len(t.stack) == 0 {
		return nil
	}
	return t.stack[len(t.stack)-1]
}

// sweepLocked drops subscriptions the last run of c no longer read.
func (t *Tracker) sweepLocked(c *Computation) {
	if c.disposed {
		for _, k := range c.deps.Union(c.seen).ToSlice() {
			t.unsubscribeLocked(k, c)
		}
		c.deps.Clear()
		c.seen.Clear()
		return
	}
	for _, k := range c.deps.Difference(c.seen).ToSlice() {
		t.unsubscribeLocked(k, c)
	}
	c.deps = c.seen
	c.seen = mapset.NewThreadUnsafeSet[depKey]()
}

func (t *Tracker) unsubscribeLocked(k depKey, c *Computation) {
	subs := t.subs[k]
	i := slices.Index(subs, c)
	if i < 0 {
		return
	}
	subs = slices.Delete(subs, i, i+1)
	if len(subs) == 0 {
		delete(t.subs, k)
		return
	}
	t.subs[k] = subs
}

func (t *Tracker) flush() {
	for {
		t.mu.Lock()
		if len(t.pending) == 0 {
			t.mu.Unlock()
			return
		}
		c := t.pending[0]
		t.pending = t.pending[1:]
		t.mu.Unlock()

		t.rerun(c)
	}
}

func (t *Tracker) rerun(c *Computation) {
	t.mu.Lock()
	disposed, running := c.disposed, c.running
	t.mu.Unlock()

	if disposed {
		return
	}
	if running {
		t.logger.Warn("reactive: skipping re-entrant trigger",
			"code", vlerrors.CodeReentrantTrigger,
			"computation", c.label())
		return
	}
	if err := t.Run(c); err != nil {
		t.handleError(c, err)
	}
}

func (t *Tracker) handleError(c *Computation, err error) {
	if !errors.Is(err, ErrComputationFailed) {
		err = vlerrors.New(vlerrors.CodeComputationFailed).WithDetail(c.label()).Wrap(err)
	}
	if t.onError != nil {
		t.onError(c, err)
		return
	}
	t.logger.Error("reactive: computation failed",
		"computation", c.label(),
		"error", err)
}

func (c *Computation) label() string {
	if c.name != "" {
		return fmt.Sprintf("%s#%d", c.name, c.id)
	}
	return fmt.Sprintf("computation#%d", c.id)
}

// Track records a read on the default tracker.
func Track(target any, key string) { defaultTracker.Track(target, key) }

// Trigger notifies subscribers on the default tracker.
func Trigger(target any, key string) { defaultTracker.Trigger(target, key) }

// Run runs c on the tracker it is bound to.
func Run(c *Computation) error { return c.tracker.Run(c) }

// Batch defers re-runs on the default tracker.
func Batch(fn func()) { defaultTracker.Batch(fn) }

// Untrack suspends tracking on the default tracker.
func Untrack(fn func()) { defaultTracker.Untrack(fn) }
