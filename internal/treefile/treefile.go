// Package treefile decodes JSON descriptions of virtual node trees.
//
// A node is an object:
//
//	{"tag": "ul", "props": {"class": "todos"}, "key": 1, "children": [...]}
//
// "text" gives text content, and a node without a tag is a text node.
// Children may be node objects or strings. "slots" maps slot names to
// nodes. Props keep the order they have in the file.
package treefile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/vango-dev/vango-lite/internal/errors"
	"github.com/vango-dev/vango-lite/pkg/vdom"
)

type node struct {
	Tag      string                     `json:"tag"`
	Text     *string                    `json:"text"`
	Props    *orderedProps              `json:"props"`
	Key      any                        `json:"key"`
	Children []json.RawMessage          `json:"children"`
	Slots    map[string]json.RawMessage `json:"slots"`
}

// Load decodes the tree stored at path.
func Load(path string) (*vdom.VNode, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New(errors.CodeInvalidTreeFile).WithDetail(path).Wrap(err)
	}
	defer f.Close()

	v, err := Decode(f)
	if err != nil {
		if e, ok := err.(*errors.Error); ok && e.Detail == "" {
			return nil, e.WithDetail(path)
		}
		return nil, err
	}
	return v, nil
}

// Decode reads one tree from r.
func Decode(r io.Reader) (*vdom.VNode, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.New(errors.CodeInvalidTreeFile).Wrap(err)
	}
	return Parse(data)
}

// Parse decodes one tree from data.
func Parse(data []byte) (*vdom.VNode, error) {
	v, err := parse(data, "$")
	if err != nil {
		return nil, errors.New(errors.CodeInvalidTreeFile).Wrap(err)
	}
	return v, nil
}

func parse(data []byte, path string) (*vdom.VNode, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return vdom.Text(s), nil
	}

	var n node
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var props *vdom.Props
	if n.Props != nil {
		props = vdom.NewProps(*n.Props...)
	}
	if n.Key != nil {
		if props == nil {
			props = vdom.NewProps()
		}
		props.Set("key", normalizeNumber(n.Key))
	}

	if n.Tag == "" {
		if n.Text == nil {
			return nil, fmt.Errorf("%s: node needs a tag or text", path)
		}
		return vdom.H(nil, props, *n.Text)
	}

	var children any
	switch {
	case n.Text != nil && (len(n.Children) > 0 || len(n.Slots) > 0):
		return nil, fmt.Errorf("%s: text cannot be combined with children or slots", path)
	case len(n.Children) > 0 && len(n.Slots) > 0:
		return nil, fmt.Errorf("%s: children cannot be combined with slots", path)
	case n.Text != nil:
		children = *n.Text
	case len(n.Children) > 0:
		nodes := make([]*vdom.VNode, len(n.Children))
		for i, raw := range n.Children {
			c, err := parse(raw, fmt.Sprintf("%s.children[%d]", path, i))
			if err != nil {
				return nil, err
			}
			nodes[i] = c
		}
		children = nodes
	case len(n.Slots) > 0:
		slots := make(vdom.Slots, len(n.Slots))
		for name, raw := range n.Slots {
			c, err := parse(raw, fmt.Sprintf("%s.slots.%s", path, name))
			if err != nil {
				return nil, err
			}
			slots[name] = func() *vdom.VNode { return c }
		}
		children = slots
	}

	v, err := vdom.H(n.Tag, props, children)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// orderedProps decodes a JSON object keeping member order.
type orderedProps []vdom.Attr

func (p *orderedProps) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("props must be an object")
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name := tok.(string)

		var value any
		if err := dec.Decode(&value); err != nil {
			return err
		}
		switch value.(type) {
		case map[string]any, []any:
			return fmt.Errorf("prop %q must be a string, number, boolean or null", name)
		}
		*p = append(*p, vdom.Attr{Key: name, Value: normalizeNumber(value)})
	}
	_, err = dec.Token()
	return err
}

// normalizeNumber turns JSON numbers into int when integral and float64
// otherwise, so keys and attribute values compare the way Go literals do.
func normalizeNumber(v any) any {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
		if f, err := n.Float64(); err == nil {
			return f
		}
		return n.String()
	case float64:
		if n == math.Trunc(n) && math.Abs(n) < 1<<53 {
			return int(n)
		}
		return n
	}
	return v
}
