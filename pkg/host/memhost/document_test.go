package memhost

import (
	"errors"
	"reflect"
	"testing"

	"github.com/vango-dev/vango-lite/pkg/host"
)

func mustElement(t *testing.T, d *Document, tag string) *Node {
	t.Helper()
	n, err := d.CreateElement(tag)
	if err != nil {
		t.Fatalf("CreateElement(%q): %v", tag, err)
	}
	return n.(*Node)
}

func mustText(t *testing.T, d *Document, text string) *Node {
	t.Helper()
	n, err := d.CreateText(text)
	if err != nil {
		t.Fatalf("CreateText(%q): %v", text, err)
	}
	return n.(*Node)
}

func TestCreateElementValidatesTag(t *testing.T) {
	tests := []struct {
		tag     string
		wantErr bool
	}{
		{"div", false},
		{"my-widget", false},
		{"svg:rect", false},
		{"h1", false},
		{"", true},
		{"1div", true},
		{"di v", true},
		{"<div>", true},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			d := NewDocument()
			_, err := d.CreateElement(tt.tag)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CreateElement(%q) err = %v, wantErr %v", tt.tag, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrInvalidTag) {
				t.Errorf("err = %v, want ErrInvalidTag", err)
			}
		})
	}
}

func TestTreeEdits(t *testing.T) {
	d := NewDocument()
	ul := mustElement(t, d, "ul")
	a := mustElement(t, d, "li")
	b := mustElement(t, d, "li")
	c := mustElement(t, d, "li")

	if err := d.AppendChild(d.Body(), ul); err != nil {
		t.Fatal(err)
	}
	for _, n := range []*Node{a, b} {
		if err := d.AppendChild(ul, n); err != nil {
			t.Fatal(err)
		}
	}
	if err := d.InsertBefore(ul, c, a); err != nil {
		t.Fatal(err)
	}
	if got := ul.Children(); !reflect.DeepEqual(got, []*Node{c, a, b}) {
		t.Fatalf("children = %v, want [c a b]", got)
	}

	// Moving an attached node.
	if err := d.InsertBefore(ul, b, c); err != nil {
		t.Fatal(err)
	}
	if got := ul.Children(); !reflect.DeepEqual(got, []*Node{b, c, a}) {
		t.Fatalf("children = %v, want [b c a]", got)
	}

	if err := d.InsertBefore(ul, b, nil); err != nil {
		t.Fatal(err)
	}
	if got := ul.Children(); !reflect.DeepEqual(got, []*Node{c, a, b}) {
		t.Fatalf("children = %v, want [c a b]", got)
	}

	if err := d.RemoveChild(ul, a); err != nil {
		t.Fatal(err)
	}
	if a.Parent() != nil {
		t.Error("removed node should be detached")
	}
	if err := d.RemoveChild(ul, a); !errors.Is(err, ErrNotChild) {
		t.Errorf("second RemoveChild err = %v, want ErrNotChild", err)
	}

	parent, err := d.ParentNode(c)
	if err != nil || parent != host.Node(ul) {
		t.Errorf("ParentNode = %v, %v", parent, err)
	}
	kids, err := d.ChildNodes(ul)
	if err != nil || len(kids) != 2 {
		t.Errorf("ChildNodes = %v, %v", kids, err)
	}
}

func TestInsertBeforeRejectsForeignRef(t *testing.T) {
	d := NewDocument()
	ul := mustElement(t, d, "ul")
	li := mustElement(t, d, "li")
	stray := mustElement(t, d, "li")

	if err := d.InsertBefore(ul, li, stray); !errors.Is(err, ErrNotChild) {
		t.Errorf("err = %v, want ErrNotChild", err)
	}
	if err := d.AppendChild(ul, "not a node"); !errors.Is(err, ErrForeignNode) {
		t.Errorf("err = %v, want ErrForeignNode", err)
	}
}

func TestAppendRejectsCycle(t *testing.T) {
	d := NewDocument()
	outer := mustElement(t, d, "div")
	inner := mustElement(t, d, "div")
	if err := d.AppendChild(outer, inner); err != nil {
		t.Fatal(err)
	}
	if err := d.AppendChild(inner, outer); !errors.Is(err, ErrCycle) {
		t.Errorf("err = %v, want ErrCycle", err)
	}
}

func TestSetTextContent(t *testing.T) {
	d := NewDocument()
	p := mustElement(t, d, "p")
	span := mustElement(t, d, "span")
	_ = d.AppendChild(p, span)

	if err := d.SetTextContent(p, "hello"); err != nil {
		t.Fatal(err)
	}
	if span.Parent() != nil {
		t.Error("previous children should be detached")
	}
	if got := p.TextContent(); got != "hello" {
		t.Errorf("TextContent = %q", got)
	}

	if err := d.SetTextContent(p, ""); err != nil {
		t.Fatal(err)
	}
	if len(p.Children()) != 0 {
		t.Error("empty text should clear children")
	}

	txt := mustText(t, d, "a")
	if err := d.SetTextContent(txt, "b"); err != nil {
		t.Fatal(err)
	}
	if txt.TextContent() != "b" {
		t.Errorf("text node content = %q", txt.TextContent())
	}
	if err := d.SetAttribute(txt, "id", "x"); !errors.Is(err, ErrTextNode) {
		t.Errorf("SetAttribute on text err = %v, want ErrTextNode", err)
	}
}

func TestAttributes(t *testing.T) {
	d := NewDocument()
	div := mustElement(t, d, "div")
	_ = d.SetAttribute(div, "id", "x")
	_ = d.SetAttribute(div, "class", "a")
	_ = d.SetAttribute(div, "id", "y")
	_ = d.RemoveAttribute(div, "class")

	if got := div.AttrNames(); !reflect.DeepEqual(got, []string{"id"}) {
		t.Errorf("AttrNames = %v", got)
	}
	if v, ok := div.Attr("id"); !ok || v != "y" {
		t.Errorf("Attr(id) = %q, %v", v, ok)
	}
}

func TestListenersAndDispatch(t *testing.T) {
	d := NewDocument()
	btn := mustElement(t, d, "button")

	var calls []string
	first := func(e host.Event) { calls = append(calls, "first:"+e.Payload.(string)) }
	second := func(e host.Event) {
		if e.Target != host.Node(btn) {
			t.Errorf("Target = %v, want %v", e.Target, btn)
		}
		calls = append(calls, "second:"+e.Type)
	}

	_ = d.AddEventListener(btn, "click", first)
	_ = d.AddEventListener(btn, "click", second)
	_ = d.AddEventListener(btn, "input", first)

	if n := d.Dispatch(btn, "click", "x"); n != 2 {
		t.Errorf("Dispatch called %d handlers, want 2", n)
	}
	if !reflect.DeepEqual(calls, []string{"first:x", "second:click"}) {
		t.Errorf("calls = %v", calls)
	}

	_ = d.RemoveEventListener(btn, "click", first)
	if got := btn.ListenerCount("click"); got != 1 {
		t.Errorf("ListenerCount(click) = %d, want 1", got)
	}
	if got := btn.ListenerCount("input"); got != 1 {
		t.Errorf("ListenerCount(input) = %d, want 1", got)
	}
	if n := d.Dispatch(btn, "keydown", nil); n != 0 {
		t.Errorf("Dispatch(keydown) = %d, want 0", n)
	}
}

func TestOpLog(t *testing.T) {
	d := NewDocument()
	div := mustElement(t, d, "div")
	txt := mustText(t, d, "hi")
	_ = d.AppendChild(div, txt)
	_ = d.SetAttribute(div, "class", "c")
	_ = d.AppendChild(d.Body(), div)

	want := []string{
		`createElement div`,
		`createText "hi"`,
		`appendChild <div#2> #text3`,
		`setAttribute <div#2> class="c"`,
		`appendChild <body#1> <div#2>`,
	}
	if got := Strings(d.Ops()); !reflect.DeepEqual(got, want) {
		t.Errorf("ops =\n%v\nwant\n%v", got, want)
	}
	if got := len(d.Mutations()); got != 3 {
		t.Errorf("Mutations = %d, want 3", got)
	}

	d.ResetOps()
	if len(d.Ops()) != 0 {
		t.Error("ResetOps should clear the log")
	}
}

func TestHTML(t *testing.T) {
	d := NewDocument()
	div := mustElement(t, d, "div")
	_ = d.SetAttribute(div, "title", `a "quoted"
value`)
	br := mustElement(t, d, "br")
	txt := mustText(t, d, "1 < 2 & 3")
	_ = d.AppendChild(div, txt)
	_ = d.AppendChild(div, br)
	_ = d.AppendChild(d.Body(), div)

	want := `<body><div title="a &quot;quoted&quot;&#10;value">1 &lt; 2 &amp; 3<br></div></body>`
	if got := d.HTML(d.Body()); got != want {
		t.Errorf("HTML =\n%s\nwant\n%s", got, want)
	}
	if got := d.InnerHTML(div); got != `1 &lt; 2 &amp; 3<br>` {
		t.Errorf("InnerHTML = %s", got)
	}
}
