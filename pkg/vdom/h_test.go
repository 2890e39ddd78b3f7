package vdom

import (
	"errors"
	"reflect"
	"testing"
)

type counter struct{ n int }

func (c *counter) Render() *VNode { return Span(c.n) }

type sliceComponent []int

func (s sliceComponent) Render() *VNode { return nil }

func header(props *Props, children Children) *VNode { return H1(children.Text()) }

func footer() *VNode { return P("footer") }

func TestHKinds(t *testing.T) {
	tests := []struct {
		name      string
		tag       any
		children  any
		wantKind  Kind
		wantFlags ShapeFlags
	}{
		{"element", "div", nil, KindElement, FlagElement},
		{"element text", "p", "hi", KindElement, FlagElement | FlagTextChildren},
		{"element number", "p", 42, KindElement, FlagElement | FlagTextChildren},
		{"element sequence", "ul", []*VNode{Li("a")}, KindElement, FlagElement | FlagArrayChildren},
		{"element mixed", "p", []any{"a", 1, nil, Span("b")}, KindElement, FlagElement | FlagArrayChildren},
		{"element slots", "div", Slots{"a": func() *VNode { return Span("a") }}, KindElement, FlagElement | FlagSlotsChildren},
		{"text", nil, "hello", KindText, FlagTextChildren},
		{"stateful", &counter{}, nil, KindStateful, FlagStatefulComponent},
		{"functional", FunctionalComponent(header), "title", KindFunctional, FlagFunctionalComponent | FlagTextChildren},
		{"plain functional", header, nil, KindFunctional, FlagFunctionalComponent},
		{"no-arg functional", footer, nil, KindFunctional, FlagFunctionalComponent},
		{"slot map", "div", map[string]func() *VNode{"x": footer}, KindElement, FlagElement | FlagSlotsChildren},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := H(tt.tag, nil, tt.children)
			if err != nil {
				t.Fatalf("H() error = %v", err)
			}
			if v.Kind() != tt.wantKind {
				t.Errorf("Kind() = %v, want %v", v.Kind(), tt.wantKind)
			}
			if got := v.ShapeFlags(); got != tt.wantFlags {
				t.Errorf("ShapeFlags() = %v, want %v", got, tt.wantFlags)
			}
		})
	}
}

func TestHRejects(t *testing.T) {
	tests := []struct {
		name     string
		tag      any
		props    *Props
		children any
	}{
		{"empty tag", "", nil, nil},
		{"unknown tag type", 42, nil, nil},
		{"text without text", nil, nil, []*VNode{}},
		{"non-comparable component", sliceComponent{1}, nil, nil},
		{"unknown children", "div", nil, struct{}{}},
		{"unknown child entry", "div", nil, []any{struct{}{}}},
		{"non-comparable key", "li", NewProps(Key([]int{1})), nil},
		{"nil functional", FunctionalComponent(nil), nil, nil},
		{"nil stateful pointer", (*counter)(nil), nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := H(tt.tag, tt.props, tt.children)
			if !errors.Is(err, ErrInvalidNodeKind) {
				t.Errorf("H() error = %v, want ErrInvalidNodeKind", err)
			}
		})
	}
}

func TestMustHPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustH did not panic")
		}
	}()
	MustH(3.5, nil, nil)
}

func TestHChildrenNormalization(t *testing.T) {
	v := MustH("p", nil, []any{"a", 2, nil, 1.5, Span("b"), (*VNode)(nil)})
	nodes := v.Children().Nodes()
	if len(nodes) != 4 {
		t.Fatalf("len(nodes) = %d, want 4", len(nodes))
	}
	var texts []string
	for _, n := range nodes[:3] {
		if n.Kind() != KindText {
			t.Fatalf("child kind = %v, want Text", n.Kind())
		}
		texts = append(texts, n.Text())
	}
	if want := []string{"a", "2", "1.5"}; !reflect.DeepEqual(texts, want) {
		t.Errorf("texts = %v, want %v", texts, want)
	}
	if nodes[3].Tag() != "span" {
		t.Errorf("last child = %v, want span", nodes[3])
	}
}

func TestHKey(t *testing.T) {
	v := MustH("li", NewProps(Key(7), ID("x")), nil)
	if !v.HasKey() || v.Key() != 7 {
		t.Errorf("Key() = %v, %v; want 7, true", v.Key(), v.HasKey())
	}
	if v := MustH("li", NewProps(ID("x")), nil); v.HasKey() {
		t.Error("HasKey() = true without key prop")
	}
	if v := MustH("li", NewProps(Key(nil)), nil); v.HasKey() {
		t.Error("HasKey() = true for nil key")
	}
}

func TestHPropsPresence(t *testing.T) {
	if v := MustH("div", nil, nil); v.Props() != nil {
		t.Errorf("Props() = %v, want nil", v.Props())
	}
	v := MustH("div", NewProps(), nil)
	if v.Props() == nil || v.Props().Len() != 0 {
		t.Errorf("Props() = %v, want empty non-nil", v.Props())
	}
}

func TestFunctionalIdentity(t *testing.T) {
	a := MustH(header, nil, nil)
	b := MustH(FunctionalComponent(header), nil, nil)
	c := MustH(footer, nil, nil)
	if !sameNode(a, b) {
		t.Error("same function should be the same logical node")
	}
	if sameNode(a, c) {
		t.Error("different functions should differ")
	}
}

func TestStatefulIdentity(t *testing.T) {
	c1, c2 := &counter{}, &counter{}
	if !sameNode(MustH(c1, nil, nil), MustH(c1, nil, nil)) {
		t.Error("same instance should be the same logical node")
	}
	if sameNode(MustH(c1, nil, nil), MustH(c2, nil, nil)) {
		t.Error("different instances should differ")
	}
}

func TestShapeFlags(t *testing.T) {
	v := Component(&counter{}).KeepAlive()
	f := v.ShapeFlags()
	if !f.Has(FlagComponent) || !f.Has(FlagStatefulComponent) || !f.Has(FlagShouldKeepAlive) {
		t.Errorf("ShapeFlags() = %v", f)
	}
	if f.Has(FlagKeptAlive) || f.Has(FlagPortal) || f.Has(FlagSuspense) {
		t.Errorf("ShapeFlags() = %v has unexpected bits", f)
	}
	if Div().KeepAlive().ShapeFlags().Has(FlagShouldKeepAlive) {
		t.Error("KeepAlive on an element should not set ShouldKeepAlive")
	}
	if got := (FlagElement | FlagTextChildren).String(); got != "Element|TextChildren" {
		t.Errorf("String() = %q", got)
	}
}

func TestElementHelpers(t *testing.T) {
	v := Ul(Class("list", "dark"), nil,
		Li(Key("a"), "first"),
		Li(Key("b"), On("click", func() {}), "second"),
	)
	if v.Tag() != "ul" {
		t.Fatalf("Tag() = %q", v.Tag())
	}
	if got, _ := v.Props().Get("class"); got != "list dark" {
		t.Errorf("class = %v", got)
	}
	nodes := v.Children().Nodes()
	if len(nodes) != 2 || nodes[0].Key() != "a" || nodes[1].Key() != "b" {
		t.Fatalf("children = %v", nodes)
	}
	if got := nodes[1].Props().Keys(); !reflect.DeepEqual(got, []string{"key", "onclick"}) {
		t.Errorf("Keys() = %v", got)
	}
	if nodes[0].Children().Kind() != ChildrenText || nodes[0].Text() != "first" {
		t.Errorf("lone string child should be text content, got %v", nodes[0].Children().Kind())
	}
	for _, v := range []*VNode{Div("5"), Div(5), Div(uint8(5))} {
		if v.Children().Kind() != ChildrenText || v.Text() != "5" {
			t.Errorf("lone scalar child: kind = %v text = %q, want Text \"5\"", v.Children().Kind(), v.Text())
		}
	}
	if p := P("a", Span("b")); p.Children().Kind() != ChildrenSequence {
		t.Errorf("mixed children kind = %v, want Sequence", p.Children().Kind())
	}
}

func TestPropsOrder(t *testing.T) {
	p := NewProps(Prop("b", 1), Prop("a", 2), Prop("b", 3))
	if got := p.Keys(); !reflect.DeepEqual(got, []string{"b", "a"}) {
		t.Errorf("Keys() = %v", got)
	}
	if v, _ := p.Get("b"); v != 3 {
		t.Errorf("Get(b) = %v, want 3", v)
	}
	if got := PropsFromMap(map[string]any{"z": 1, "a": 2}).Keys(); !reflect.DeepEqual(got, []string{"a", "z"}) {
		t.Errorf("PropsFromMap keys = %v", got)
	}
	var nilProps *Props
	if nilProps.Len() != 0 || nilProps.Has("x") || nilProps.Attrs() != nil {
		t.Error("nil Props should behave as empty")
	}
}

func TestIsEventHandler(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"onclick", true},
		{"onClick", true},
		{"ONCLICK", true},
		{"on", false},
		{"one", true},
		{"class", false},
		{"o", false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := isEventHandler(tt.key, "on"); got != tt.want {
				t.Errorf("isEventHandler(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
	if got := eventType("onClick", "on"); got != "click" {
		t.Errorf("eventType = %q", got)
	}
}

func TestVNodeString(t *testing.T) {
	v := Ul(Class("x"), Li(Key("a"), "one"), Li("two"))
	want := `ul{class=x}(li#a{key=a}("one") li("two"))`
	if got := v.String(); got != want {
		t.Errorf("String() = %s, want %s", got, want)
	}
}
