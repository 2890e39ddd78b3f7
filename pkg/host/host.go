package host

import (
	vlerrors "github.com/vango-dev/vango-lite/internal/errors"
)

// Node is an opaque handle to a live display-tree node.
// Its concrete type is chosen by the Host implementation.
type Node any

// Event is delivered to listeners registered through Host.
type Event struct {
	Type    string
	Target  Node
	Payload any
}

// EventHandler receives events dispatched by the host.
type EventHandler func(Event)

// Host is the set of display-tree operations the engine depends on.
type Host interface {
	// CreateElement returns a new, detached element node for tag.
	CreateElement(tag string) (Node, error)

	// CreateText returns a new, detached text node.
	CreateText(text string) (Node, error)

	SetAttribute(node Node, name, value string) error
	RemoveAttribute(node Node, name string) error

	// SetTextContent replaces all content of node with text.
	SetTextContent(node Node, text string) error

	AddEventListener(node Node, event string, handler EventHandler) error
	RemoveEventListener(node Node, event string, handler EventHandler) error

	AppendChild(parent, child Node) error

	// InsertBefore inserts child into parent before ref. A nil ref appends.
	// A child that is already attached is moved.
	InsertBefore(parent, child, ref Node) error

	RemoveChild(parent, child Node) error

	// ChildNodes returns parent's current children in order.
	ChildNodes(parent Node) ([]Node, error)

	// ParentNode returns node's parent, or nil when detached.
	ParentNode(node Node) (Node, error)
}

// Operation names used in CapabilityError.Op and by instrumentation.
const (
	OpCreateElement       = "createElement"
	OpCreateText          = "createText"
	OpSetAttribute        = "setAttribute"
	OpRemoveAttribute     = "removeAttribute"
	OpSetTextContent      = "setTextContent"
	OpAddEventListener    = "addEventListener"
	OpRemoveEventListener = "removeEventListener"
	OpAppendChild         = "appendChild"
	OpInsertBefore        = "insertBefore"
	OpRemoveChild         = "removeChild"
	OpChildNodes          = "childNodes"
	OpParentNode          = "parentNode"
)

// ErrCapability matches any *CapabilityError via errors.Is.
var ErrCapability error = vlerrors.New(vlerrors.CodeHostCapability)

// CapabilityError reports an operation the host refused.
type CapabilityError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *CapabilityError) Error() string {
	return vlerrors.New(vlerrors.CodeHostCapability).WithDetail(e.Op).Wrap(e.Err).Error()
}

// Unwrap returns the host's original error.
func (e *CapabilityError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrCapability.
func (e *CapabilityError) Is(target error) bool {
	return target == ErrCapability
}

// Wrap returns err as a *CapabilityError for op, or nil when err is nil.
// An error that already is a *CapabilityError is returned unchanged.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if ce, ok := err.(*CapabilityError); ok {
		return ce
	}
	return &CapabilityError{Op: op, Err: err}
}
