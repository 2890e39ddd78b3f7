package reactive

// Effect creates a computation for fn and runs it once. The returned
// computation re-runs whenever a value fn read changes, until disposed.
func Effect(fn func() error, opts ...Option) (*Computation, error) {
	o := applyOptions(opts)
	c := newComputation(o, fn)
	if err := o.tracker.Run(c); err != nil {
		return c, err
	}
	return c, nil
}
