package vdom

import "sort"

// ChildrenKind discriminates the Children variant.
type ChildrenKind uint8

const (
	ChildrenNone ChildrenKind = iota
	ChildrenText
	ChildrenSequence
	ChildrenSlots
)

// String returns the name of the variant.
func (k ChildrenKind) String() string {
	switch k {
	case ChildrenNone:
		return "None"
	case ChildrenText:
		return "Text"
	case ChildrenSequence:
		return "Sequence"
	case ChildrenSlots:
		return "Slots"
	default:
		return "Unknown"
	}
}

// Slot produces the content of a named slot.
type Slot func() *VNode

// Slots maps slot names to their producers.
type Slots map[string]Slot

// Children is the content of a node. The zero value has no children.
type Children struct {
	kind  ChildrenKind
	text  string
	nodes []*VNode
	slots Slots
}

// TextChildren returns text content.
func TextChildren(text string) Children {
	return Children{kind: ChildrenText, text: text}
}

// SequenceChildren returns an ordered child list. Nil entries are dropped.
func SequenceChildren(nodes ...*VNode) Children {
	out := make([]*VNode, 0, len(nodes))
	for _, n := range nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	return Children{kind: ChildrenSequence, nodes: out}
}

// SlotChildren returns named slot content.
func SlotChildren(slots Slots) Children {
	return Children{kind: ChildrenSlots, slots: slots}
}

// Kind returns the variant.
func (c Children) Kind() ChildrenKind { return c.kind }

// Text returns the text content of a Text variant.
func (c Children) Text() string { return c.text }

// Nodes returns a copy of a Sequence variant's nodes.
func (c Children) Nodes() []*VNode {
	if c.nodes == nil {
		return nil
	}
	out := make([]*VNode, len(c.nodes))
	copy(out, c.nodes)
	return out
}

// Slots returns the slot producers of a Slots variant.
func (c Children) Slots() Slots { return c.slots }

// SlotNames returns the slot names in the order they are resolved.
func (c Children) SlotNames() []string {
	names := make([]string, 0, len(c.slots))
	for name := range c.slots {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// resolve evaluates slot producers in sorted name order.
func (c Children) resolve() []*VNode {
	switch c.kind {
	case ChildrenSequence:
		return c.nodes
	case ChildrenSlots:
		var out []*VNode
		for _, name := range c.SlotNames() {
			fn := c.slots[name]
			if fn == nil {
				continue
			}
			if n := fn(); n != nil {
				out = append(out, n)
			}
		}
		return out
	}
	return nil
}
