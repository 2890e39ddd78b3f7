package vdom

import (
	"github.com/vango-dev/vango-lite/pkg/host"
)

// mount creates live nodes for v and inserts them into container before
// anchor, or at the end when anchor is nil.
func (r *Renderer) mount(v *VNode, container, anchor host.Node) error {
	r.metrics.ObserveMount(v.kind.String())
	switch v.kind {
	case KindText:
		return r.mountText(v, container, anchor)
	case KindElement:
		return r.mountElement(v, container, anchor)
	case KindStateful:
		return r.mountStateful(v, container, anchor)
	case KindFunctional:
		return r.mountFunctional(v, container, anchor)
	}
	return invalidKind("cannot mount node of kind %s", v.kind)
}

func (r *Renderer) mountText(v *VNode, container, anchor host.Node) error {
	n, err := r.host.CreateText(v.children.text)
	if err != nil {
		return host.Wrap(host.OpCreateText, err)
	}
	if err := r.insert(container, n, anchor); err != nil {
		return err
	}
	v.live = n
	return nil
}

func (r *Renderer) mountElement(v *VNode, container, anchor host.Node) error {
	el, err := r.host.CreateElement(v.tag)
	if err != nil {
		return host.Wrap(host.OpCreateElement, err)
	}
	v.live = el

	for _, a := range v.props.Attrs() {
		if err := r.setProp(v, el, a.Key, a.Value); err != nil {
			return err
		}
	}

	switch v.children.kind {
	case ChildrenText:
		if v.children.text != "" {
			if err := r.host.SetTextContent(el, v.children.text); err != nil {
				return host.Wrap(host.OpSetTextContent, err)
			}
		}
	case ChildrenSequence, ChildrenSlots:
		for _, c := range v.childNodes() {
			if err := r.mount(c, el, nil); err != nil {
				return err
			}
		}
	}

	return r.insert(container, el, anchor)
}

func (r *Renderer) mountFunctional(v *VNode, container, anchor host.Node) error {
	out := v.fn(v.props, v.children)
	if out == nil {
		return nilRender(v.name())
	}
	if err := r.mount(out, container, anchor); err != nil {
		return err
	}
	v.rendered = out
	v.live = out.Live()
	return nil
}

// insert places child into parent before anchor, or appends it.
func (r *Renderer) insert(parent, child, anchor host.Node) error {
	if anchor == nil {
		if err := r.host.AppendChild(parent, child); err != nil {
			return host.Wrap(host.OpAppendChild, err)
		}
		return nil
	}
	if err := r.host.InsertBefore(parent, child, anchor); err != nil {
		return host.Wrap(host.OpInsertBefore, err)
	}
	return nil
}

// remove tears down v and detaches its live node from parent.
func (r *Renderer) remove(v *VNode, parent host.Node) error {
	live := v.Live()
	r.teardown(v)
	if live == nil {
		return nil
	}
	if err := r.host.RemoveChild(parent, live); err != nil {
		return host.Wrap(host.OpRemoveChild, err)
	}
	return nil
}

// teardown disposes component computations in the subtree of v. Keep-alive
// instances are cached instead. Live nodes are left in place.
func (r *Renderer) teardown(v *VNode) {
	switch v.kind {
	case KindElement:
		for _, c := range v.childNodes() {
			r.teardown(c)
		}
	case KindFunctional:
		if v.rendered != nil {
			r.teardown(v.rendered)
		}
	case KindStateful:
		inst := v.instance
		if inst == nil || inst.vnode != v {
			return
		}
		if v.keepAlive {
			inst.deactivate()
			r.kept[inst.comp] = inst
			r.logger.Debug("vdom: component cached", "component", v.name())
			return
		}
		inst.dispose()
	}
}
