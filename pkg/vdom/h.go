package vdom

import (
	"reflect"
	"strconv"
)

// H builds a VNode, classifying tag and children.
//
// tag may be an element name, a StatefulComponent, a FunctionalComponent,
// a func() *VNode, or nil for a text node with text or number children.
// children may be nil, a string or number, a *VNode, []*VNode, []any,
// Children, Slots, map[string]Slot or map[string]func() *VNode.
//
// The "key" property becomes the node key and must be comparable.
// H has no side effects.
func H(tag any, props *Props, children any) (*VNode, error) {
	ch, err := normalizeChildren(children)
	if err != nil {
		return nil, err
	}
	v := &VNode{props: props, children: ch}

	switch t := tag.(type) {
	case string:
		if t == "" {
			return nil, invalidKind("empty element tag")
		}
		v.kind = KindElement
		v.tag = t
	case nil:
		if ch.kind != ChildrenText {
			return nil, invalidKind("text node needs text children, got %s", ch.kind)
		}
		v.kind = KindText
	case StatefulComponent:
		if rv := reflect.ValueOf(t); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return nil, invalidKind("nil component %T", t)
		}
		if !reflect.TypeOf(t).Comparable() {
			return nil, invalidKind("component %T is not comparable", t)
		}
		v.kind = KindStateful
		v.component = t
	case FunctionalComponent:
		if t == nil {
			return nil, invalidKind("nil functional component")
		}
		v.kind = KindFunctional
		v.fn = t
		v.fnID = reflect.ValueOf(t).Pointer()
	case func(*Props, Children) *VNode:
		if t == nil {
			return nil, invalidKind("nil functional component")
		}
		v.kind = KindFunctional
		v.fn = t
		v.fnID = reflect.ValueOf(t).Pointer()
	case func() *VNode:
		if t == nil {
			return nil, invalidKind("nil functional component")
		}
		v.kind = KindFunctional
		v.fn = func(*Props, Children) *VNode { return t() }
		v.fnID = reflect.ValueOf(t).Pointer()
	default:
		return nil, invalidKind("unsupported tag type %T", tag)
	}

	if k, ok := props.Get("key"); ok && k != nil {
		if !reflect.TypeOf(k).Comparable() {
			return nil, invalidKind("key of type %T is not comparable", k)
		}
		v.key = k
		v.hasKey = true
	}
	return v, nil
}

// MustH is like H but panics on error.
func MustH(tag any, props *Props, children any) *VNode {
	v, err := H(tag, props, children)
	if err != nil {
		panic(err)
	}
	return v
}

// Text returns a text node.
func Text(text string) *VNode {
	return &VNode{kind: KindText, children: TextChildren(text)}
}

func normalizeChildren(children any) (Children, error) {
	switch c := children.(type) {
	case nil:
		return Children{}, nil
	case Children:
		return c, nil
	case string:
		return TextChildren(c), nil
	case *VNode:
		return SequenceChildren(c), nil
	case []*VNode:
		return SequenceChildren(c...), nil
	case []any:
		nodes := make([]*VNode, 0, len(c))
		for i, item := range c {
			switch it := item.(type) {
			case nil:
				continue
			case *VNode:
				if it != nil {
					nodes = append(nodes, it)
				}
			default:
				s, ok := scalarText(item)
				if !ok {
					return Children{}, invalidKind("child %d has unsupported type %T", i, item)
				}
				nodes = append(nodes, Text(s))
			}
		}
		return Children{kind: ChildrenSequence, nodes: nodes}, nil
	case Slots:
		return SlotChildren(c), nil
	case map[string]Slot:
		return SlotChildren(Slots(c)), nil
	case map[string]func() *VNode:
		slots := make(Slots, len(c))
		for name, fn := range c {
			slots[name] = Slot(fn)
		}
		return SlotChildren(slots), nil
	}
	if s, ok := scalarText(children); ok {
		return TextChildren(s), nil
	}
	return Children{}, invalidKind("unsupported children type %T", children)
}

// scalarText formats strings and numbers as text content.
func scalarText(v any) (string, bool) {
	switch n := v.(type) {
	case string:
		return n, true
	case int:
		return strconv.Itoa(n), true
	case int8:
		return strconv.FormatInt(int64(n), 10), true
	case int16:
		return strconv.FormatInt(int64(n), 10), true
	case int32:
		return strconv.FormatInt(int64(n), 10), true
	case int64:
		return strconv.FormatInt(n, 10), true
	case uint:
		return strconv.FormatUint(uint64(n), 10), true
	case uint8:
		return strconv.FormatUint(uint64(n), 10), true
	case uint16:
		return strconv.FormatUint(uint64(n), 10), true
	case uint32:
		return strconv.FormatUint(uint64(n), 10), true
	case uint64:
		return strconv.FormatUint(n, 10), true
	case float32:
		return strconv.FormatFloat(float64(n), 'g', -1, 32), true
	case float64:
		return strconv.FormatFloat(n, 'g', -1, 64), true
	}
	return "", false
}
