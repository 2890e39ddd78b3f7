// Package reactive provides the dependency tracker behind vango-lite's
// stateful components.
//
// A Tracker records which Computation read which (target, key) pair while
// the computation was running, and re-runs exactly those computations when
// the pair is written. Subscribers of one pair always re-run in the order
// they first subscribed.
//
// # Core Types
//
// Ref[T] is a single tracked slot:
//
//	count := reactive.NewRef(0)
//	count.Get()   // tracks the current computation
//	count.Set(5)  // re-runs dependents, only if the value changed
//
// Computed[T] is a push-based derived value:
//
//	doubled := reactive.NewComputed(func() int { return count.Get() * 2 })
//	count.Set(3)  // doubled.Peek() == 6 without any explicit read
//
// Reactive is an untyped container with explicit Get/Set accessors:
//
//	user := reactive.NewReactive(map[string]any{"name": "Bob"})
//	user.Set("name", "Alice")
//
// Effect runs a function once and again whenever something it read changes:
//
//	c, _ := reactive.Effect(func() error {
//	    fmt.Println("count is", count.Get())
//	    return nil
//	})
//	defer c.Dispose()
//
// # Tracking Rules
//
// Running computations form a stack, so a computation started inside another
// one tracks its own reads and hands tracking back when it returns. Each run
// re-collects dependencies from scratch: pairs the previous run read but this
// one did not are unsubscribed.
//
// # Batching
//
// Batch defers re-runs until the outermost batch returns; each affected
// computation then runs once:
//
//	reactive.Batch(func() {
//	    a.Set(1)
//	    b.Set(2)
//	})
//
// # Thread Safety
//
// The registry is guarded by a mutex, but the engine is synchronous and
// single-threaded: callers must not run tracked work for one Tracker from
// several goroutines at once.
package reactive
