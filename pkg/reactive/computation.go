package reactive

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// depKey identifies one observed (target, key) pair.
type depKey struct {
	target any
	key    string
}

// Computation is a re-runnable unit of work whose tracked reads become its
// dependencies. Its identity is stable across runs.
type Computation struct {
	id      uint64
	name    string
	fn      func() error
	tracker *Tracker

	// deps are the pairs the computation is subscribed to.
	deps mapset.Set[depKey]

	// seen collects the pairs read during the current run.
	seen mapset.Set[depKey]

	running  bool
	disposed bool
}

// NewComputation returns a computation for fn. It does not run until passed
// to Run.
func NewComputation(fn func() error, opts ...Option) *Computation {
	o := applyOptions(opts)
	return newComputation(o, fn)
}

func newComputation(o options, fn func() error) *Computation {
	return &Computation{
		id:      nextID(),
		name:    o.name,
		fn:      fn,
		tracker: o.tracker,
		deps:    mapset.NewThreadUnsafeSet[depKey](),
		seen:    mapset.NewThreadUnsafeSet[depKey](),
	}
}

// ID returns the computation's unique identifier.
func (c *Computation) ID() uint64 { return c.id }

// Name returns the label given with WithName, or "".
func (c *Computation) Name() string { return c.name }

// Tracker returns the tracker the computation is bound to.
func (c *Computation) Tracker() *Tracker { return c.tracker }

// DependencyCount returns how many (target, key) pairs c is subscribed to.
func (c *Computation) DependencyCount() int {
	c.tracker.mu.Lock()
	defer c.tracker.mu.Unlock()
	return c.deps.Cardinality()
}

// Dispose unsubscribes c from everything; later triggers never run it.
func (c *Computation) Dispose() {
	c.tracker.Dispose(c)
}

// Disposed reports whether Dispose has been called.
func (c *Computation) Disposed() bool {
	c.tracker.mu.Lock()
	defer c.tracker.mu.Unlock()
	return c.disposed
}
