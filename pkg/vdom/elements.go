package vdom

import "strings"

// El creates an element node. Arguments can be:
//   - nil (ignored, allows conditional arguments)
//   - Attr or []Attr: properties, in argument order
//   - *VNode or []*VNode: children
//   - string or number: a text child; a lone one becomes text content
//   - Slots: named slot content
//
// El panics on arguments H rejects.
func El(tag string, args ...any) *VNode {
	return build(tag, args)
}

// Component creates a node for a stateful or functional component using the
// same argument rules as El.
func Component(c any, args ...any) *VNode {
	return build(c, args)
}

func build(tag any, args []any) *VNode {
	var props *Props
	var items []any
	var slots Slots
	for _, arg := range args {
		switch a := arg.(type) {
		case nil:
			continue
		case Attr:
			if props == nil {
				props = NewProps()
			}
			props.Set(a.Key, a.Value)
		case []Attr:
			if props == nil {
				props = NewProps()
			}
			for _, at := range a {
				props.Set(at.Key, at.Value)
			}
		case []*VNode:
			for _, n := range a {
				items = append(items, n)
			}
		case Slots:
			slots = a
		default:
			items = append(items, a)
		}
	}

	var children any
	switch {
	case slots != nil:
		children = slots
	case len(items) == 1:
		if s, ok := scalarText(items[0]); ok {
			children = s
		} else {
			children = items
		}
	case len(items) > 1:
		children = items
	}
	return MustH(tag, props, children)
}

func Div(args ...any) *VNode    { return El("div", args...) }
func Span(args ...any) *VNode   { return El("span", args...) }
func P(args ...any) *VNode      { return El("p", args...) }
func Ul(args ...any) *VNode     { return El("ul", args...) }
func Li(args ...any) *VNode     { return El("li", args...) }
func Button(args ...any) *VNode { return El("button", args...) }
func H1(args ...any) *VNode     { return El("h1", args...) }

// Prop creates an arbitrary property.
func Prop(key string, value any) Attr { return Attr{Key: key, Value: value} }

// Key sets the node key used by keyed reconciliation.
func Key(key any) Attr { return Attr{Key: "key", Value: key} }

// On binds handler to event. Handlers may be func(), func(host.Event) or
// func(host.Event) error.
func On(event string, handler any) Attr { return Attr{Key: "on" + event, Value: handler} }

// ID sets the id attribute.
func ID(id string) Attr { return Attr{Key: "id", Value: id} }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return Attr{Key: "class", Value: strings.Join(classes, " ")} }
