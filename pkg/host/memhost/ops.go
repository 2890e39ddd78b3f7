package memhost

import (
	"fmt"

	"github.com/vango-dev/vango-lite/pkg/host"
)

// Op is one recorded host call.
type Op struct {
	// Kind is one of the host.Op* names.
	Kind string

	// Target is the node the call acted on (the parent for tree edits).
	Target *Node

	// Name is the attribute name or event type.
	Name string

	// Value is the attribute value, text content, or created tag.
	Value string

	// Child is the inserted, appended or removed node.
	Child *Node

	// Ref is the InsertBefore reference node, nil for append-like inserts.
	Ref *Node
}

// String renders the op in a compact, stable form used by tests and the CLI.
func (o Op) String() string {
	switch o.Kind {
	case host.OpCreateElement:
		return fmt.Sprintf("createElement %s", o.Value)
	case host.OpCreateText:
		return fmt.Sprintf("createText %q", o.Value)
	case host.OpSetAttribute:
		return fmt.Sprintf("setAttribute %s %s=%q", o.Target, o.Name, o.Value)
	case host.OpRemoveAttribute:
		return fmt.Sprintf("removeAttribute %s %s", o.Target, o.Name)
	case host.OpSetTextContent:
		return fmt.Sprintf("setTextContent %s %q", o.Target, o.Value)
	case host.OpAddEventListener:
		return fmt.Sprintf("addEventListener %s %s", o.Target, o.Name)
	case host.OpRemoveEventListener:
		return fmt.Sprintf("removeEventListener %s %s", o.Target, o.Name)
	case host.OpAppendChild:
		return fmt.Sprintf("appendChild %s %s", o.Target, o.Child)
	case host.OpInsertBefore:
		return fmt.Sprintf("insertBefore %s %s %s", o.Target, o.Child, o.Ref)
	case host.OpRemoveChild:
		return fmt.Sprintf("removeChild %s %s", o.Target, o.Child)
	default:
		return o.Kind
	}
}

// IsMutation reports whether the op changed an attached or detached node,
// as opposed to creating one.
func (o Op) IsMutation() bool {
	return o.Kind != host.OpCreateElement && o.Kind != host.OpCreateText
}

// Strings renders each op with Op.String.
func Strings(ops []Op) []string {
	out := make([]string, len(ops))
	for i, o := range ops {
		out[i] = o.String()
	}
	return out
}
