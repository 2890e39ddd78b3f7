package reactive

// Reactive is a tracked key/value container. Every Get records a dependency
// on that key; Set re-runs dependents only when the stored value changes.
// Values are compared with == or, for slices, maps and pointers, by
// reference, so mutating a nested value in place is not observed.
type Reactive struct {
	tracker *Tracker
	values  map[string]any
}

// NewReactive copies initial into a new container.
func NewReactive(initial map[string]any, opts ...Option) *Reactive {
	o := applyOptions(opts)
	values := make(map[string]any, len(initial))
	for k, v := range initial {
		values[k] = v
	}
	return &Reactive{tracker: o.tracker, values: values}
}

// Get returns the value stored under key (nil when absent) and subscribes
// the active computation to key.
func (r *Reactive) Get(key string) any {
	r.tracker.Track(r, key)
	return r.values[key]
}

// Lookup is Get that also reports whether key is present.
func (r *Reactive) Lookup(key string) (any, bool) {
	r.tracker.Track(r, key)
	v, ok := r.values[key]
	return v, ok
}

// Peek returns the value under key without subscribing.
func (r *Reactive) Peek(key string) any {
	return r.values[key]
}

// Set stores v under key and triggers key's subscribers if it changed.
// Setting a missing key always counts as a change.
func (r *Reactive) Set(key string, v any) {
	old, ok := r.values[key]
	if ok && sameValue(old, v) {
		return
	}
	r.values[key] = v
	r.tracker.Trigger(r, key)
}

// Delete removes key and triggers its subscribers if it was present.
func (r *Reactive) Delete(key string) {
	if _, ok := r.values[key]; !ok {
		return
	}
	delete(r.values, key)
	r.tracker.Trigger(r, key)
}
