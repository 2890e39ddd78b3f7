package reactive

// valueKey is the key a Ref tracks its single slot under.
const valueKey = "value"

// Ref is a tracked single-value cell.
type Ref[T any] struct {
	tracker *Tracker
	value   T
	equal   func(T, T) bool
}

// NewRef creates a ref holding initial.
func NewRef[T any](initial T, opts ...Option) *Ref[T] {
	o := applyOptions(opts)
	return &Ref[T]{
		tracker: o.tracker,
		value:   initial,
	}
}

// Get returns the value and subscribes the active computation.
func (r *Ref[T]) Get() T {
	r.tracker.Track(r, valueKey)
	return r.value
}

// Peek returns the value without subscribing.
func (r *Ref[T]) Peek() T {
	return r.value
}

// Set stores v and, when it differs from the current value, re-runs
// subscribers synchronously before returning.
func (r *Ref[T]) Set(v T) {
	if r.equals(r.value, v) {
		return
	}
	r.value = v
	r.tracker.Trigger(r, valueKey)
}

// Update sets the value to fn(current).
func (r *Ref[T]) Update(fn func(T) T) {
	r.Set(fn(r.value))
}

// WithEquals replaces the equality used by Set.
func (r *Ref[T]) WithEquals(fn func(T, T) bool) *Ref[T] {
	r.equal = fn
	return r
}

func (r *Ref[T]) equals(a, b T) bool {
	if r.equal != nil {
		return r.equal(a, b)
	}
	return defaultEquals(a, b)
}
