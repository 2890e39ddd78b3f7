package memhost

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/vango-dev/vango-lite/pkg/host"
)

var (
	// ErrInvalidTag is returned by CreateElement for malformed tag names.
	ErrInvalidTag = errors.New("memhost: invalid tag name")

	// ErrForeignNode is returned when a handle was not created by this document.
	ErrForeignNode = errors.New("memhost: node does not belong to document")

	// ErrNotChild is returned when a node is not a child of the given parent.
	ErrNotChild = errors.New("memhost: node is not a child of parent")

	// ErrTextNode is returned for element-only operations on text nodes.
	ErrTextNode = errors.New("memhost: operation not supported on text node")

	// ErrCycle is returned when inserting a node into its own subtree.
	ErrCycle = errors.New("memhost: insertion would create a cycle")
)

// Document is an in-memory host.Host.
type Document struct {
	nextID int
	body   *Node
	ops    []Op
}

var _ host.Host = (*Document)(nil)

// NewDocument returns a document with an empty <body> container.
func NewDocument() *Document {
	d := &Document{}
	d.body = d.newNode("body", "")
	return d
}

// Body returns the document's root container.
func (d *Document) Body() *Node { return d.body }

// Ops returns a copy of the recorded operation log.
func (d *Document) Ops() []Op {
	out := make([]Op, len(d.ops))
	copy(out, d.ops)
	return out
}

// ResetOps clears the operation log.
func (d *Document) ResetOps() { d.ops = d.ops[:0] }

// Mutations returns the recorded ops excluding node creation.
func (d *Document) Mutations() []Op {
	var out []Op
	for _, o := range d.ops {
		if o.IsMutation() {
			out = append(out, o)
		}
	}
	return out
}

func (d *Document) newNode(tag, data string) *Node {
	d.nextID++
	return &Node{id: d.nextID, tag: tag, data: data}
}

func (d *Document) record(op Op) { d.ops = append(d.ops, op) }

func (d *Document) node(n host.Node) (*Node, error) {
	mn, ok := n.(*Node)
	if !ok || mn == nil {
		return nil, fmt.Errorf("%w: %T", ErrForeignNode, n)
	}
	return mn, nil
}

func (d *Document) element(n host.Node) (*Node, error) {
	mn, err := d.node(n)
	if err != nil {
		return nil, err
	}
	if mn.IsText() {
		return nil, ErrTextNode
	}
	return mn, nil
}

// CreateElement implements host.Host.
func (d *Document) CreateElement(tag string) (host.Node, error) {
	if !validTag(tag) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTag, tag)
	}
	n := d.newNode(tag, "")
	d.record(Op{Kind: host.OpCreateElement, Target: n, Value: tag})
	return n, nil
}

// CreateText implements host.Host.
func (d *Document) CreateText(text string) (host.Node, error) {
	n := d.newNode("", text)
	d.record(Op{Kind: host.OpCreateText, Target: n, Value: text})
	return n, nil
}

// SetAttribute implements host.Host.
func (d *Document) SetAttribute(node host.Node, name, value string) error {
	n, err := d.element(node)
	if err != nil {
		return err
	}
	n.setAttr(name, value)
	d.record(Op{Kind: host.OpSetAttribute, Target: n, Name: name, Value: value})
	return nil
}

// RemoveAttribute implements host.Host.
func (d *Document) RemoveAttribute(node host.Node, name string) error {
	n, err := d.element(node)
	if err != nil {
		return err
	}
	n.removeAttr(name)
	d.record(Op{Kind: host.OpRemoveAttribute, Target: n, Name: name})
	return nil
}

// SetTextContent implements host.Host. On elements it replaces all children
// with a single text node, or with nothing when text is empty.
func (d *Document) SetTextContent(node host.Node, text string) error {
	n, err := d.node(node)
	if err != nil {
		return err
	}
	if n.IsText() {
		n.data = text
	} else {
		for _, c := range n.children {
			c.parent = nil
		}
		n.children = nil
		if text != "" {
			n.insertAt(0, d.newNode("", text))
		}
	}
	d.record(Op{Kind: host.OpSetTextContent, Target: n, Value: text})
	return nil
}

// AddEventListener implements host.Host.
func (d *Document) AddEventListener(node host.Node, event string, handler host.EventHandler) error {
	n, err := d.element(node)
	if err != nil {
		return err
	}
	n.listeners = append(n.listeners, listener{event: event, handler: handler})
	d.record(Op{Kind: host.OpAddEventListener, Target: n, Name: event})
	return nil
}

// RemoveEventListener implements host.Host. Handlers are matched by code
// pointer, so two closures of the same literal are indistinguishable and the
// first one registered for event is removed.
func (d *Document) RemoveEventListener(node host.Node, event string, handler host.EventHandler) error {
	n, err := d.element(node)
	if err != nil {
		return err
	}
	for i, l := range n.listeners {
		if l.event == event && sameHandler(l.handler, handler) {
			n.listeners = append(n.listeners[:i], n.listeners[i+1:]...)
			break
		}
	}
	d.record(Op{Kind: host.OpRemoveEventListener, Target: n, Name: event})
	return nil
}

// AppendChild implements host.Host.
func (d *Document) AppendChild(parent, child host.Node) error {
	p, err := d.element(parent)
	if err != nil {
		return err
	}
	c, err := d.node(child)
	if err != nil {
		return err
	}
	if err := checkCycle(p, c); err != nil {
		return err
	}
	c.detach()
	p.insertAt(len(p.children), c)
	d.record(Op{Kind: host.OpAppendChild, Target: p, Child: c})
	return nil
}

// InsertBefore implements host.Host.
func (d *Document) InsertBefore(parent, child, ref host.Node) error {
	p, err := d.element(parent)
	if err != nil {
		return err
	}
	c, err := d.node(child)
	if err != nil {
		return err
	}
	if err := checkCycle(p, c); err != nil {
		return err
	}
	var r *Node
	if ref != nil {
		if r, err = d.node(ref); err != nil {
			return err
		}
		if r.parent != p {
			return fmt.Errorf("%w: ref %s of %s", ErrNotChild, r, p)
		}
	}
	if c == r {
		d.record(Op{Kind: host.OpInsertBefore, Target: p, Child: c, Ref: r})
		return nil
	}
	c.detach()
	if r == nil {
		p.insertAt(len(p.children), c)
	} else {
		p.insertAt(p.indexOf(r), c)
	}
	d.record(Op{Kind: host.OpInsertBefore, Target: p, Child: c, Ref: r})
	return nil
}

// RemoveChild implements host.Host.
func (d *Document) RemoveChild(parent, child host.Node) error {
	p, err := d.element(parent)
	if err != nil {
		return err
	}
	c, err := d.node(child)
	if err != nil {
		return err
	}
	if c.parent != p {
		return fmt.Errorf("%w: %s of %s", ErrNotChild, c, p)
	}
	c.detach()
	d.record(Op{Kind: host.OpRemoveChild, Target: p, Child: c})
	return nil
}

// ChildNodes implements host.Host.
func (d *Document) ChildNodes(parent host.Node) ([]host.Node, error) {
	p, err := d.node(parent)
	if err != nil {
		return nil, err
	}
	out := make([]host.Node, len(p.children))
	for i, c := range p.children {
		out[i] = c
	}
	return out, nil
}

// ParentNode implements host.Host.
func (d *Document) ParentNode(node host.Node) (host.Node, error) {
	n, err := d.node(node)
	if err != nil {
		return nil, err
	}
	if n.parent == nil {
		return nil, nil
	}
	return n.parent, nil
}

// Dispatch calls every listener registered on node for event, in
// registration order, and returns how many were called.
func (d *Document) Dispatch(node *Node, event string, payload any) int {
	var handlers []host.EventHandler
	for _, l := range node.listeners {
		if l.event == event {
			handlers = append(handlers, l.handler)
		}
	}
	ev := host.Event{Type: event, Target: node, Payload: payload}
	for _, h := range handlers {
		h(ev)
	}
	return len(handlers)
}

func checkCycle(parent, child *Node) error {
	for p := parent; p != nil; p = p.parent {
		if p == child {
			return ErrCycle
		}
	}
	return nil
}

func sameHandler(a, b host.EventHandler) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

// validTag accepts names that start with an ASCII letter followed by
// letters, digits, '-' or ':'.
func validTag(tag string) bool {
	if tag == "" {
		return false
	}
	for i := 0; i < len(tag); i++ {
		c := tag[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '-' || c == ':'):
		default:
			return false
		}
	}
	return true
}
