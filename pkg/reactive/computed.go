package reactive

// Computed is a derived value that recomputes eagerly whenever one of the
// values its getter read changes.
type Computed[T any] struct {
	ref  *Ref[T]
	comp *Computation
}

// NewComputed evaluates getter immediately inside a tracked computation and
// stores the result. Errors (a panicking getter) go to the tracker's error
// handler and leave the previous value in place.
func NewComputed[T any](getter func() T, opts ...Option) *Computed[T] {
	o := applyOptions(opts)
	if o.name == "" {
		o.name = "computed"
	}

	c := &Computed[T]{
		ref: &Ref[T]{tracker: o.tracker},
	}
	c.comp = newComputation(o, func() error {
		c.ref.Set(getter())
		return nil
	})
	if err := o.tracker.Run(c.comp); err != nil {
		o.tracker.handleError(c.comp, err)
	}
	return c
}

// Get returns the current value and subscribes the active computation.
func (c *Computed[T]) Get() T {
	return c.ref.Get()
}

// Peek returns the current value without subscribing.
func (c *Computed[T]) Peek() T {
	return c.ref.Peek()
}

// WithEquals replaces the equality deciding whether a recomputed value is
// propagated to subscribers.
func (c *Computed[T]) WithEquals(fn func(T, T) bool) *Computed[T] {
	c.ref.WithEquals(fn)
	return c
}

// Computation returns the computation that evaluates the getter.
func (c *Computed[T]) Computation() *Computation {
	return c.comp
}

// Dispose stops recomputation. The last value stays readable.
func (c *Computed[T]) Dispose() {
	c.comp.Dispose()
}
