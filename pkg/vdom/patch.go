package vdom

import (
	"github.com/vango-dev/vango-lite/pkg/host"
)

// patch reconciles the mounted prev into next. next takes over prev's live
// nodes when both denote the same logical node, and replaces them otherwise.
func (r *Renderer) patch(prev, next *VNode) error {
	if prev == next {
		return nil
	}
	if !sameNode(prev, next) {
		return r.replace(prev, next)
	}

	switch next.kind {
	case KindText:
		next.live = prev.live
		if prev.children.text != next.children.text {
			if err := r.host.SetTextContent(next.live, next.children.text); err != nil {
				return host.Wrap(host.OpSetTextContent, err)
			}
		}
		return nil

	case KindElement:
		next.live = prev.live
		next.invokers = prev.invokers
		if err := r.patchProps(prev, next, next.live); err != nil {
			return err
		}
		return r.patchChildren(prev, next, next.live)

	case KindStateful:
		// Re-renders come from dependency triggers only. The instance
		// moves to next along with its live nodes.
		inst := prev.instance
		next.instance = inst
		next.keptAlive = prev.keptAlive
		if inst != nil {
			inst.vnode = next
		}
		next.live = next.Live()
		return nil

	case KindFunctional:
		out := next.fn(next.props, next.children)
		if out == nil {
			return nilRender(next.name())
		}
		if prev.rendered == nil {
			return invalidKind("functional component was never mounted")
		}
		if err := r.patch(prev.rendered, out); err != nil {
			return err
		}
		next.rendered = out
		next.live = out.Live()
		return nil
	}
	return invalidKind("cannot patch node of kind %s", next.kind)
}

// replace mounts next in front of prev's live node, then unmounts prev.
func (r *Renderer) replace(prev, next *VNode) error {
	r.metrics.ObserveReplace()
	anchor := prev.Live()
	if anchor == nil {
		return invalidKind("replace of unmounted %s", prev.name())
	}
	parent, err := r.host.ParentNode(anchor)
	if err != nil {
		return host.Wrap(host.OpParentNode, err)
	}
	if parent == nil {
		return host.Wrap(host.OpParentNode, errDetached)
	}
	r.logger.Debug("vdom: replacing node", "prev", prev.name(), "next", next.name())
	if err := r.mount(next, parent, anchor); err != nil {
		return err
	}
	return r.remove(prev, parent)
}

// patchChildren reconciles el's children, branching on next's shape.
func (r *Renderer) patchChildren(prev, next *VNode, el host.Node) error {
	prevKind := prev.children.kind
	if prevKind == ChildrenSlots {
		prevKind = ChildrenSequence
	}

	switch next.children.kind {
	case ChildrenText:
		if prevKind == ChildrenText && prev.children.text == next.children.text {
			return nil
		}
		if prevKind == ChildrenSequence {
			for _, c := range prev.childNodes() {
				r.teardown(c)
			}
		}
		if err := r.host.SetTextContent(el, next.children.text); err != nil {
			return host.Wrap(host.OpSetTextContent, err)
		}
		return nil

	case ChildrenSequence, ChildrenSlots:
		nodes := next.childNodes()
		switch prevKind {
		case ChildrenText:
			if err := r.host.SetTextContent(el, ""); err != nil {
				return host.Wrap(host.OpSetTextContent, err)
			}
			return r.mountAll(nodes, el)
		case ChildrenNone:
			return r.mountAll(nodes, el)
		}
		old := prev.childNodes()
		if len(nodes) > 0 && nodes[0].hasKey {
			return r.patchKeyed(el, old, nodes)
		}
		return r.patchUnkeyed(el, old, nodes)

	default:
		switch prevKind {
		case ChildrenText:
			if prev.children.text == "" {
				return nil
			}
			if err := r.host.SetTextContent(el, ""); err != nil {
				return host.Wrap(host.OpSetTextContent, err)
			}
		case ChildrenSequence:
			for _, c := range prev.childNodes() {
				if err := r.remove(c, el); err != nil {
					return err
				}
			}
		}
		return nil
	}
}

func (r *Renderer) mountAll(nodes []*VNode, el host.Node) error {
	for _, c := range nodes {
		if err := r.mount(c, el, nil); err != nil {
			return err
		}
	}
	return nil
}

// patchUnkeyed patches by position, then mounts the surplus new tail or
// removes the surplus old tail.
func (r *Renderer) patchUnkeyed(el host.Node, old, nodes []*VNode) error {
	common := min(len(old), len(nodes))
	for i := 0; i < common; i++ {
		if err := r.patch(old[i], nodes[i]); err != nil {
			return err
		}
	}
	for i := common; i < len(nodes); i++ {
		if err := r.mount(nodes[i], el, nil); err != nil {
			return err
		}
	}
	for i := common; i < len(old); i++ {
		if err := r.remove(old[i], el); err != nil {
			return err
		}
	}
	return nil
}
