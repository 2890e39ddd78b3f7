package reactive

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type target struct{ name string }

func TestTrackWithoutComputationIsNoop(t *testing.T) {
	tr := NewTracker()
	obj := &target{}

	tr.Track(obj, "x")
	assert.Equal(t, 0, tr.SubscriberCount(obj, "x"))
	assert.Nil(t, tr.Active())
}

func TestTrackDeduplicates(t *testing.T) {
	tr := NewTracker()
	obj := &target{}

	c := NewComputation(func() error {
		tr.Track(obj, "x")
		tr.Track(obj, "x")
		tr.Track(obj, "y")
		return nil
	}, WithTracker(tr))
	require.NoError(t, tr.Run(c))

	assert.Equal(t, 1, tr.SubscriberCount(obj, "x"))
	assert.Equal(t, 1, tr.SubscriberCount(obj, "y"))
	assert.Equal(t, 2, c.DependencyCount())

	// Re-running does not duplicate entries either.
	require.NoError(t, tr.Run(c))
	assert.Equal(t, 1, tr.SubscriberCount(obj, "x"))
}

func TestTriggerRunsSubscribersInInsertionOrder(t *testing.T) {
	tr := NewTracker()
	obj := &target{}
	var order []string

	names := []string{"first", "second", "third"}
	comps := make([]*Computation, len(names))
	for i, name := range names {
		name := name
		comps[i] = NewComputation(func() error {
			order = append(order, name)
			tr.Track(obj, "k")
			return nil
		}, WithTracker(tr), WithName(name))
		require.NoError(t, tr.Run(comps[i]))
	}

	order = nil
	tr.Trigger(obj, "k")
	assert.Equal(t, names, order)

	// Re-runs keep the original positions.
	order = nil
	tr.Trigger(obj, "k")
	assert.Equal(t, names, order)
}

func TestTriggerUnknownPairIsNoop(t *testing.T) {
	tr := NewTracker()
	assert.NotPanics(t, func() { tr.Trigger(&target{}, "missing") })
}

func TestRunRestoresActiveComputation(t *testing.T) {
	tr := NewTracker()
	outer := NewComputation(func() error { return nil }, WithTracker(tr))
	var seenInside *Computation

	inner := NewComputation(func() error {
		seenInside = tr.Active()
		return nil
	}, WithTracker(tr))

	outer.fn = func() error {
		require.Equal(t, outer, tr.Active())
		require.NoError(t, tr.Run(inner))
		assert.Equal(t, outer, tr.Active(), "outer must be active again after nested run")
		return nil
	}

	require.NoError(t, tr.Run(outer))
	assert.Equal(t, inner, seenInside)
	assert.Nil(t, tr.Active())
}

func TestRunRecoversPanic(t *testing.T) {
	tr := NewTracker()
	c := NewComputation(func() error {
		panic("boom")
	}, WithTracker(tr), WithName("exploding"))

	err := tr.Run(c)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrComputationFailed)
	assert.Contains(t, err.Error(), "boom")
	assert.Nil(t, tr.Active(), "active computation must be restored after a panic")

	// The computation can run again.
	c.fn = func() error { return nil }
	assert.NoError(t, tr.Run(c))
}

func TestRunReturnsBodyError(t *testing.T) {
	tr := NewTracker()
	want := errors.New("render failed")
	c := NewComputation(func() error { return want }, WithTracker(tr))

	assert.ErrorIs(t, tr.Run(c), want)
}

func TestNestedTrackingAttributesReads(t *testing.T) {
	tr := NewTracker()
	x := NewRef(1, WithTracker(tr))
	y := NewRef(1, WithTracker(tr))
	z := NewRef(1, WithTracker(tr))

	var outerRuns, innerRuns int
	inner := NewComputation(func() error {
		innerRuns++
		_ = y.Get()
		return nil
	}, WithTracker(tr))
	outer := NewComputation(func() error {
		outerRuns++
		_ = x.Get()
		if err := tr.Run(inner); err != nil {
			return err
		}
		_ = z.Get()
		return nil
	}, WithTracker(tr))

	require.NoError(t, tr.Run(outer))
	assert.Equal(t, 1, outerRuns)
	assert.Equal(t, 1, innerRuns)

	y.Set(2)
	assert.Equal(t, 1, outerRuns, "outer must not observe the inner read")
	assert.Equal(t, 2, innerRuns)

	z.Set(2)
	assert.Equal(t, 2, outerRuns, "read after nested run belongs to outer")
	assert.Equal(t, 3, innerRuns)
}

func TestStaleDependenciesAreDropped(t *testing.T) {
	tr := NewTracker()
	useA := NewRef(true, WithTracker(tr))
	a := NewRef("a", WithTracker(tr))
	b := NewRef("b", WithTracker(tr))

	runs := 0
	c, err := Effect(func() error {
		runs++
		if useA.Get() {
			_ = a.Get()
		} else {
			_ = b.Get()
		}
		return nil
	}, WithTracker(tr))
	require.NoError(t, err)
	assert.Equal(t, 2, c.DependencyCount())

	useA.Set(false)
	assert.Equal(t, 2, runs)

	a.Set("a2")
	assert.Equal(t, 2, runs, "branch no longer read must not re-run")
	assert.Equal(t, 0, tr.SubscriberCount(a, valueKey))

	b.Set("b2")
	assert.Equal(t, 3, runs)
}

func TestReentrantTriggerIsSkipped(t *testing.T) {
	tr := NewTracker()
	count := NewRef(0, WithTracker(tr))

	runs := 0
	_, err := Effect(func() error {
		runs++
		count.Set(count.Get() + 1)
		return nil
	}, WithTracker(tr))
	require.NoError(t, err)

	assert.Equal(t, 1, runs)
	assert.Equal(t, 1, count.Peek())
}

func TestRunRejectsRunningComputation(t *testing.T) {
	tr := NewTracker()
	var c *Computation
	var nestedErr error
	c = NewComputation(func() error {
		nestedErr = tr.Run(c)
		return nil
	}, WithTracker(tr))

	require.NoError(t, tr.Run(c))
	assert.ErrorIs(t, nestedErr, ErrReentrant)
}

func TestDispose(t *testing.T) {
	tr := NewTracker()
	r := NewRef(0, WithTracker(tr))

	runs := 0
	c, err := Effect(func() error {
		runs++
		_ = r.Get()
		return nil
	}, WithTracker(tr))
	require.NoError(t, err)

	c.Dispose()
	assert.True(t, c.Disposed())
	assert.Equal(t, 0, tr.SubscriberCount(r, valueKey))

	r.Set(1)
	assert.Equal(t, 1, runs)
	assert.NoError(t, tr.Run(c), "running a disposed computation is a no-op")
	assert.Equal(t, 1, runs)
}

func TestDisposeDuringTriggerSkipsLaterSubscriber(t *testing.T) {
	tr := NewTracker()
	r := NewRef(0, WithTracker(tr))

	var second *Computation
	secondRuns := 0
	_, err := Effect(func() error {
		if r.Get() > 0 && second != nil {
			second.Dispose()
		}
		return nil
	}, WithTracker(tr))
	require.NoError(t, err)

	second, err = Effect(func() error {
		secondRuns++
		_ = r.Get()
		return nil
	}, WithTracker(tr))
	require.NoError(t, err)

	r.Set(1)
	assert.Equal(t, 1, secondRuns)
}

func TestBatch(t *testing.T) {
	tr := NewTracker()
	a := NewRef(1, WithTracker(tr))
	b := NewRef(1, WithTracker(tr))

	runs := 0
	sum := 0
	_, err := Effect(func() error {
		runs++
		sum = a.Get() + b.Get()
		return nil
	}, WithTracker(tr))
	require.NoError(t, err)

	tr.Batch(func() {
		a.Set(10)
		b.Set(20)
		tr.Batch(func() { a.Set(11) })
		assert.Equal(t, 1, runs, "no re-run inside a batch")
	})

	assert.Equal(t, 2, runs)
	assert.Equal(t, 31, sum)
}

func TestUntrack(t *testing.T) {
	tr := NewTracker()
	r := NewRef(0, WithTracker(tr))

	runs := 0
	_, err := Effect(func() error {
		runs++
		tr.Untrack(func() { _ = r.Get() })
		return nil
	}, WithTracker(tr))
	require.NoError(t, err)

	r.Set(1)
	assert.Equal(t, 1, runs)
}

func TestErrorHandlerReceivesRerunErrors(t *testing.T) {
	var got []error
	tr := NewTracker(WithErrorHandler(func(c *Computation, err error) {
		got = append(got, err)
	}))
	r := NewRef(0, WithTracker(tr))
	cause := errors.New("bad value")

	_, err := Effect(func() error {
		if r.Get() > 0 {
			return cause
		}
		return nil
	}, WithTracker(tr))
	require.NoError(t, err)

	r.Set(1)
	require.Len(t, got, 1)
	assert.ErrorIs(t, got[0], ErrComputationFailed)
	assert.ErrorIs(t, got[0], cause)
}

type recordingObserver struct {
	mu       sync.Mutex
	triggers map[string]int
	runs     int
	errs     int
}

func (o *recordingObserver) ObserveTrigger(key string, subscribers int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.triggers[key] += subscribers
}

func (o *recordingObserver) ObserveRun(c *Computation, elapsed time.Duration, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.runs++
	if err != nil {
		o.errs++
	}
}

func TestObserver(t *testing.T) {
	obs := &recordingObserver{triggers: map[string]int{}}
	tr := NewTracker(WithObserver(obs), WithErrorHandler(func(*Computation, error) {}))
	r := NewRef(0, WithTracker(tr))

	_, err := Effect(func() error {
		if r.Get() == 2 {
			return errors.New("two")
		}
		return nil
	}, WithTracker(tr))
	require.NoError(t, err)

	r.Set(1)
	r.Set(2)

	assert.Equal(t, 2, obs.triggers[valueKey])
	assert.Equal(t, 3, obs.runs)
	assert.Equal(t, 1, obs.errs)
}

func TestDefaultTrackerFunctions(t *testing.T) {
	obj := &target{name: "default"}
	runs := 0
	c := NewComputation(func() error {
		runs++
		Track(obj, "k")
		return nil
	})
	require.Equal(t, Default(), c.Tracker())
	require.NoError(t, Run(c))
	defer c.Dispose()

	Trigger(obj, "k")
	assert.Equal(t, 2, runs)

	Batch(func() {
		Trigger(obj, "k")
		Trigger(obj, "k")
	})
	assert.Equal(t, 3, runs)

	Untrack(func() { assert.Nil(t, Default().Active()) })
}
