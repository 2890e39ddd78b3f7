package memhost

import (
	"strconv"
	"strings"

	"github.com/vango-dev/vango-lite/pkg/host"
)

type attr struct {
	name  string
	value string
}

type listener struct {
	event   string
	handler host.EventHandler
}

// Node is a live node in a Document.
type Node struct {
	id        int
	tag       string // empty for text nodes
	data      string // text node content
	attrs     []attr
	listeners []listener
	children  []*Node
	parent    *Node
}

// ID returns the node's creation sequence number within its document.
func (n *Node) ID() int { return n.id }

// Tag returns the element tag, or "" for text nodes.
func (n *Node) Tag() string { return n.tag }

// IsText reports whether n is a text node.
func (n *Node) IsText() bool { return n.tag == "" }

// Parent returns the parent node, or nil when detached.
func (n *Node) Parent() *Node { return n.parent }

// Children returns a copy of n's children.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.attrs {
		if a.name == name {
			return a.value, true
		}
	}
	return "", false
}

// AttrNames returns attribute names in the order they were first set.
func (n *Node) AttrNames() []string {
	names := make([]string, len(n.attrs))
	for i, a := range n.attrs {
		names[i] = a.name
	}
	return names
}

// ListenerCount returns how many handlers are registered for event.
func (n *Node) ListenerCount(event string) int {
	count := 0
	for _, l := range n.listeners {
		if l.event == event {
			count++
		}
	}
	return count
}

// TextContent returns the concatenated text of n and its descendants.
func (n *Node) TextContent() string {
	if n.IsText() {
		return n.data
	}
	var b strings.Builder
	for _, c := range n.children {
		b.WriteString(c.TextContent())
	}
	return b.String()
}

// String returns a short label such as "<li#4>" or "#text5".
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	if n.IsText() {
		return "#text" + strconv.Itoa(n.id)
	}
	return "<" + n.tag + "#" + strconv.Itoa(n.id) + ">"
}

func (n *Node) indexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

func (n *Node) setAttr(name, value string) {
	for i := range n.attrs {
		if n.attrs[i].name == name {
			n.attrs[i].value = value
			return
		}
	}
	n.attrs = append(n.attrs, attr{name: name, value: value})
}

func (n *Node) removeAttr(name string) bool {
	for i, a := range n.attrs {
		if a.name == name {
			n.attrs = append(n.attrs[:i], n.attrs[i+1:]...)
			return true
		}
	}
	return false
}

func (n *Node) detach() {
	if n.parent == nil {
		return
	}
	p := n.parent
	if i := p.indexOf(n); i >= 0 {
		p.children = append(p.children[:i], p.children[i+1:]...)
	}
	n.parent = nil
}

func (n *Node) insertAt(i int, child *Node) {
	n.children = append(n.children, nil)
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = child
	child.parent = n
}
