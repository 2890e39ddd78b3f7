package vdom

import (
	"context"
	"time"

	"github.com/vango-dev/vango-lite/pkg/host"
	"github.com/vango-dev/vango-lite/pkg/reactive"
)

// componentInstance is the mounted state of a StatefulComponent: the
// computation that renders it and the subtree it rendered last.
type componentInstance struct {
	r       *Renderer
	comp    StatefulComponent
	vnode   *VNode
	subTree *VNode
	effect  *reactive.Computation

	// container and anchor locate the first mount only.
	container host.Node
	anchor    host.Node

	active bool
}

func (r *Renderer) mountStateful(v *VNode, container, anchor host.Node) error {
	if inst, ok := r.kept[v.component]; ok {
		delete(r.kept, v.component)
		return inst.activate(v, container, anchor)
	}

	inst := &componentInstance{
		r:         r,
		comp:      v.component,
		vnode:     v,
		container: container,
		anchor:    anchor,
		active:    true,
	}
	v.instance = inst
	inst.effect = reactive.NewComputation(inst.render,
		reactive.WithTracker(r.tracker),
		reactive.WithName(v.name()),
	)
	if err := r.tracker.Run(inst.effect); err != nil {
		inst.effect.Dispose()
		return err
	}
	v.live = v.Live()
	return nil
}

// render is the body of the instance's computation. The first run mounts the
// rendered tree; later runs patch the previous tree into the new one.
func (inst *componentInstance) render() (err error) {
	if !inst.active {
		return nil
	}
	r := inst.r
	name := inst.vnode.name()
	first := inst.subTree == nil

	if !first {
		_, span := r.startSpan(context.Background(), "vdom.Rerender", inst.vnode)
		defer func() { endSpan(span, err) }()
	}

	start := time.Now()
	next := inst.comp.Render()
	if next == nil {
		err = nilRender(name)
		r.metrics.ObserveRender(name, err)
		return err
	}

	if first {
		err = r.mount(next, inst.container, inst.anchor)
		inst.container, inst.anchor = nil, nil
	} else {
		err = r.patch(inst.subTree, next)
		r.metrics.ObservePatch(time.Since(start))
	}
	r.metrics.ObserveRender(name, err)
	if err != nil {
		return err
	}

	inst.subTree = next
	inst.vnode.live = next.Live()
	if !first {
		r.logger.Debug("vdom: component re-rendered", "component", name,
			"elapsed", time.Since(start))
	}
	return nil
}

// activate re-inserts a cached instance and re-runs it once so that state
// written while it was detached shows up.
func (inst *componentInstance) activate(v *VNode, container, anchor host.Node) error {
	r := inst.r
	inst.vnode = v
	inst.active = true
	v.instance = inst
	v.keptAlive = true

	if live := inst.subTree.Live(); live != nil {
		if err := r.insert(container, live, anchor); err != nil {
			return err
		}
	}
	r.logger.Debug("vdom: component restored", "component", v.name())
	if err := r.tracker.Run(inst.effect); err != nil {
		return err
	}
	if err := inst.resumeNested(); err != nil {
		return err
	}
	v.live = v.Live()
	return nil
}

// resumeNested reactivates the components inside the subtree, outermost
// first, and re-runs each so that writes made while cached show up.
// Components the parent's run mounted afresh are already active.
func (inst *componentInstance) resumeNested() error {
	for _, child := range childInstances(inst.subTree) {
		if child.active || child.effect.Disposed() {
			continue
		}
		child.active = true
		if err := inst.r.tracker.Run(child.effect); err != nil {
			return err
		}
		if err := child.resumeNested(); err != nil {
			return err
		}
	}
	return nil
}

// deactivate stops rendering, for this instance and every component inside
// its subtree, until the instance is mounted again.
func (inst *componentInstance) deactivate() {
	inst.active = false
	for _, child := range childInstances(inst.subTree) {
		child.deactivate()
	}
}

// childInstances returns the instances of the stateful components directly
// under v, without descending into their own subtrees.
func childInstances(v *VNode) []*componentInstance {
	var out []*componentInstance
	var walk func(n *VNode)
	walk = func(n *VNode) {
		switch n.kind {
		case KindElement:
			for _, c := range n.childNodes() {
				walk(c)
			}
		case KindFunctional:
			if n.rendered != nil {
				walk(n.rendered)
			}
		case KindStateful:
			if inst := n.instance; inst != nil && inst.vnode == n {
				out = append(out, inst)
			}
		}
	}
	if v != nil {
		walk(v)
	}
	return out
}

// dispose stops the computation and tears down the rendered tree.
func (inst *componentInstance) dispose() {
	inst.active = false
	inst.effect.Dispose()
	if inst.subTree != nil {
		inst.r.teardown(inst.subTree)
	}
}

// Evict disposes the keep-alive cache entry for c, if any, and reports
// whether one existed.
func (r *Renderer) Evict(c StatefulComponent) bool {
	inst, ok := r.kept[c]
	if !ok {
		return false
	}
	delete(r.kept, c)
	inst.dispose()
	return true
}

// Cached reports whether c is held in the keep-alive cache.
func (r *Renderer) Cached(c StatefulComponent) bool {
	_, ok := r.kept[c]
	return ok
}
