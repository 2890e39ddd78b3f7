package treefile

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/vango-dev/vango-lite/internal/errors"
	"github.com/vango-dev/vango-lite/pkg/vdom"
)

func TestParse(t *testing.T) {
	v, err := Parse([]byte(`{
		"tag": "ul",
		"props": {"id": "list", "class": "todos", "data-n": 3, "hidden": false, "ratio": 0.5},
		"children": [
			{"tag": "li", "key": 1, "text": "one"},
			{"tag": "li", "key": "two", "children": ["a", {"text": "b"}]},
			"tail"
		]
	}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if v.Tag() != "ul" {
		t.Errorf("Tag() = %q", v.Tag())
	}
	if got := v.Props().Keys(); !reflect.DeepEqual(got, []string{"id", "class", "data-n", "hidden", "ratio"}) {
		t.Errorf("prop order = %v", got)
	}
	if n, _ := v.Props().Get("data-n"); n != 3 {
		t.Errorf("data-n = %#v, want int 3", n)
	}
	if r, _ := v.Props().Get("ratio"); r != 0.5 {
		t.Errorf("ratio = %#v", r)
	}

	nodes := v.Children().Nodes()
	if len(nodes) != 3 {
		t.Fatalf("children = %d, want 3", len(nodes))
	}
	if nodes[0].Key() != 1 || nodes[0].Text() != "one" {
		t.Errorf("first = %v", nodes[0])
	}
	if nodes[1].Key() != "two" || len(nodes[1].Children().Nodes()) != 2 {
		t.Errorf("second = %v", nodes[1])
	}
	if nodes[2].Kind() != vdom.KindText || nodes[2].Text() != "tail" {
		t.Errorf("third = %v", nodes[2])
	}
}

func TestParseTextRoot(t *testing.T) {
	v, err := Parse([]byte(`{"text": "hello"}`))
	if err != nil {
		t.Fatal(err)
	}
	if v.Kind() != vdom.KindText || v.Text() != "hello" {
		t.Errorf("v = %v", v)
	}
}

func TestParseSlots(t *testing.T) {
	v, err := Parse([]byte(`{"tag": "div", "slots": {"b": {"tag": "span", "text": "B"}, "a": "A"}}`))
	if err != nil {
		t.Fatal(err)
	}
	if v.Children().Kind() != vdom.ChildrenSlots {
		t.Fatalf("children kind = %v", v.Children().Kind())
	}
	if got := v.Children().SlotNames(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("SlotNames() = %v", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{"malformed", `{"tag":`, "unexpected end"},
		{"no tag or text", `{}`, "needs a tag or text"},
		{"text and children", `{"tag": "p", "text": "x", "children": ["y"]}`, "cannot be combined"},
		{"children and slots", `{"tag": "p", "children": ["y"], "slots": {"a": "b"}}`, "cannot be combined"},
		{"nested error path", `{"tag": "ul", "children": [{"tag": "li"}, {}]}`, "$.children[1]"},
		{"object prop", `{"tag": "p", "props": {"style": {"a": 1}}}`, `prop "style"`},
		{"props not object", `{"tag": "p", "props": [1]}`, "props must be an object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.json))
			if err == nil {
				t.Fatal("Parse() error = nil")
			}
			if !stderrors.Is(err, errors.New(errors.CodeInvalidTreeFile)) {
				t.Errorf("error = %v, want E031", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestParseInvalidKey(t *testing.T) {
	_, err := Parse([]byte(`{"tag": "li", "key": {"a": 1}}`))
	if !stderrors.Is(err, vdom.ErrInvalidNodeKind) {
		t.Errorf("error = %v, want ErrInvalidNodeKind", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tree.json")
	if err := os.WriteFile(path, []byte(`{"tag": "p", "text": "hi"}`), 0644); err != nil {
		t.Fatal(err)
	}

	v, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if v.Tag() != "p" || v.Text() != "hi" {
		t.Errorf("v = %v", v)
	}

	_, err = Load(filepath.Join(dir, "missing.json"))
	if !stderrors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v", err)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil || !strings.Contains(err.Error(), bad) {
		t.Errorf("error = %v, want path in message", err)
	}
}
