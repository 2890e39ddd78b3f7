package vdom

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/vango-dev/vango-lite/pkg/host"
)

// Kind is the node type discriminator.
type Kind uint8

const (
	KindText       Kind = iota // text node
	KindElement                // <div>, <li>, etc.
	KindStateful               // StatefulComponent instance
	KindFunctional             // FunctionalComponent
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindElement:
		return "Element"
	case KindStateful:
		return "Stateful"
	case KindFunctional:
		return "Functional"
	default:
		return "Unknown"
	}
}

// StatefulComponent is a component instance that carries its own state and
// renders it. Reading reactive state inside Render subscribes the instance.
// Implementations must be comparable; pointer receivers are the usual form.
type StatefulComponent interface {
	Render() *VNode
}

// FunctionalComponent renders props and children without keeping state.
type FunctionalComponent func(props *Props, children Children) *VNode

// VNode is a virtual node. Kind, props and children are fixed when the node
// is built; the renderer only attaches live state to it.
type VNode struct {
	kind      Kind
	tag       string
	component StatefulComponent
	fn        FunctionalComponent
	fnID      uintptr
	props     *Props
	children  Children
	key       any
	hasKey    bool
	keepAlive bool

	// Live state, owned by the Renderer.
	live      host.Node
	keptAlive bool
	resolved  []*VNode
	rendered  *VNode
	instance  *componentInstance
	invokers  map[string]*invoker
}

// Kind returns the node kind.
func (v *VNode) Kind() Kind { return v.kind }

// Tag returns the element tag, or "" for other kinds.
func (v *VNode) Tag() string { return v.tag }

// Component returns the stateful component instance, or nil.
func (v *VNode) Component() StatefulComponent { return v.component }

// Func returns the functional component, or nil.
func (v *VNode) Func() FunctionalComponent { return v.fn }

// Props returns the node's properties. Nil means the node has none.
func (v *VNode) Props() *Props { return v.props }

// Children returns the node's content.
func (v *VNode) Children() Children { return v.children }

// Text returns the content of a text node or of Text children.
func (v *VNode) Text() string { return v.children.text }

// Key returns the key taken from the "key" property.
func (v *VNode) Key() any { return v.key }

// HasKey reports whether the node carries a key.
func (v *VNode) HasKey() bool { return v.hasKey }

// KeepAlive marks a stateful component node so that unmounting it caches
// the instance and its live subtree instead of tearing them down. It returns
// v for chaining and has no effect on other kinds.
func (v *VNode) KeepAlive() *VNode {
	if v.kind == KindStateful {
		v.keepAlive = true
	}
	return v
}

// KeptAlive reports whether this node was mounted from the keep-alive cache.
func (v *VNode) KeptAlive() bool { return v.keptAlive }

// Live returns the host node this virtual node is mounted to, or nil.
// Component nodes resolve to their current rendered root.
func (v *VNode) Live() host.Node {
	switch v.kind {
	case KindStateful:
		if v.instance != nil && v.instance.subTree != nil {
			return v.instance.subTree.Live()
		}
	case KindFunctional:
		if v.rendered != nil {
			return v.rendered.Live()
		}
	}
	return v.live
}

// Rendered returns the subtree last rendered by a component node.
func (v *VNode) Rendered() *VNode {
	switch v.kind {
	case KindStateful:
		if v.instance != nil {
			return v.instance.subTree
		}
	case KindFunctional:
		return v.rendered
	}
	return nil
}

// ShapeFlags returns the classification bitmask of the node.
func (v *VNode) ShapeFlags() ShapeFlags {
	var f ShapeFlags
	switch v.kind {
	case KindElement:
		f |= FlagElement
	case KindStateful:
		f |= FlagStatefulComponent
	case KindFunctional:
		f |= FlagFunctionalComponent
	}
	switch v.children.kind {
	case ChildrenText:
		f |= FlagTextChildren
	case ChildrenSequence:
		f |= FlagArrayChildren
	case ChildrenSlots:
		f |= FlagSlotsChildren
	}
	if v.keepAlive {
		f |= FlagShouldKeepAlive
	}
	if v.keptAlive {
		f |= FlagKeptAlive
	}
	return f
}

// sameNode reports whether prev and next denote the same logical node.
func sameNode(prev, next *VNode) bool {
	if prev.kind != next.kind {
		return false
	}
	switch prev.kind {
	case KindElement:
		return prev.tag == next.tag
	case KindStateful:
		return prev.component == next.component
	case KindFunctional:
		return prev.fnID == next.fnID
	}
	return true
}

// childNodes returns the node's child sequence, resolving slots once.
func (v *VNode) childNodes() []*VNode {
	if v.children.kind == ChildrenSlots {
		if v.resolved == nil {
			v.resolved = v.children.resolve()
		}
		return v.resolved
	}
	return v.children.nodes
}

// name is a short label used in logs and error details.
func (v *VNode) name() string {
	switch v.kind {
	case KindElement:
		return v.tag
	case KindStateful:
		t := reflect.TypeOf(v.component)
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		return t.Name()
	case KindFunctional:
		return "func"
	}
	return "#text"
}

// String returns a compact description of the tree rooted at v.
func (v *VNode) String() string {
	if v == nil {
		return "<nil>"
	}
	var b strings.Builder
	v.format(&b)
	return b.String()
}

func (v *VNode) format(b *strings.Builder) {
	if v.kind == KindText {
		fmt.Fprintf(b, "%q", v.children.text)
		return
	}
	b.WriteString(v.name())
	if v.hasKey {
		fmt.Fprintf(b, "#%v", v.key)
	}
	if v.props.Len() > 0 {
		b.WriteString(v.props.String())
	}
	switch v.children.kind {
	case ChildrenText:
		fmt.Fprintf(b, "(%q)", v.children.text)
	case ChildrenSequence:
		b.WriteByte('(')
		for i, c := range v.children.nodes {
			if i > 0 {
				b.WriteString(" ")
			}
			c.format(b)
		}
		b.WriteByte(')')
	case ChildrenSlots:
		fmt.Fprintf(b, "[%s]", strings.Join(v.children.SlotNames(), " "))
	}
}
