package vdom

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Attr is a single property: an attribute or, when the name carries the
// event prefix, an event handler.
type Attr struct {
	Key   string
	Value any
}

// Props is an insertion-ordered property mapping. A nil *Props means the
// node has no properties; an empty non-nil value means present but empty.
type Props struct {
	attrs []Attr
	index map[string]int
}

// NewProps returns a Props holding attrs in order. A repeated key keeps its
// first position and takes the last value.
func NewProps(attrs ...Attr) *Props {
	p := &Props{index: make(map[string]int, len(attrs))}
	for _, a := range attrs {
		p.Set(a.Key, a.Value)
	}
	return p
}

// PropsFromMap returns a Props holding m's entries sorted by key.
func PropsFromMap(m map[string]any) *Props {
	if m == nil {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	p := &Props{index: make(map[string]int, len(m))}
	for _, k := range keys {
		p.Set(k, m[k])
	}
	return p
}

// Set stores value under key. Props are meant to be filled before the node
// that holds them is built.
func (p *Props) Set(key string, value any) {
	if p.index == nil {
		p.index = make(map[string]int)
	}
	if i, ok := p.index[key]; ok {
		p.attrs[i].Value = value
		return
	}
	p.index[key] = len(p.attrs)
	p.attrs = append(p.attrs, Attr{Key: key, Value: value})
}

// Get returns the value stored under key.
func (p *Props) Get(key string) (any, bool) {
	if p == nil {
		return nil, false
	}
	i, ok := p.index[key]
	if !ok {
		return nil, false
	}
	return p.attrs[i].Value, true
}

// Has reports whether key is present.
func (p *Props) Has(key string) bool {
	_, ok := p.Get(key)
	return ok
}

// Len returns the number of properties.
func (p *Props) Len() int {
	if p == nil {
		return 0
	}
	return len(p.attrs)
}

// Attrs returns a copy of the properties in insertion order.
func (p *Props) Attrs() []Attr {
	if p == nil {
		return nil
	}
	out := make([]Attr, len(p.attrs))
	copy(out, p.attrs)
	return out
}

// Keys returns the property names in insertion order.
func (p *Props) Keys() []string {
	if p == nil {
		return nil
	}
	out := make([]string, len(p.attrs))
	for i, a := range p.attrs {
		out[i] = a.Key
	}
	return out
}

// String formats the properties as {k=v, ...}.
func (p *Props) String() string {
	if p == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteByte('{')
	for i, a := range p.attrs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.Key)
		b.WriteByte('=')
		if isFunc(a.Value) {
			b.WriteString("func")
		} else {
			b.WriteString(propToString(a.Value))
		}
	}
	b.WriteByte('}')
	return b.String()
}

// isEventHandler reports whether key names an event binding for prefix.
// The match is case-insensitive so onclick, onClick and ONCLICK all bind.
func isEventHandler(key, prefix string) bool {
	return len(key) > len(prefix) && strings.EqualFold(key[:len(prefix)], prefix)
}

// eventType returns the lower-cased event name bound by key.
func eventType(key, prefix string) string {
	return strings.ToLower(key[len(prefix):])
}

// propsEqual compares two attribute values for equality.
func propsEqual(a, b any) bool {
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case int:
		bv, ok := b.(int)
		return ok && av == bv
	case int64:
		bv, ok := b.(int64)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case nil:
		return b == nil
	}
	return reflect.DeepEqual(a, b)
}

// propToString converts an attribute value to its live string form.
func propToString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

func isFunc(v any) bool {
	return v != nil && reflect.TypeOf(v).Kind() == reflect.Func
}
