package vdom

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/vango-dev/vango-lite/pkg/host/memhost"
	"github.com/vango-dev/vango-lite/pkg/reactive"
)

var ctx = context.Background()

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRenderer(t *testing.T) (*Renderer, *memhost.Document, *reactive.Tracker) {
	t.Helper()
	logger := newTestLogger()
	tr := reactive.NewTracker(reactive.WithLogger(logger))
	doc := memhost.NewDocument()
	return NewRenderer(doc, WithTracker(tr), WithLogger(logger)), doc, tr
}

func mustMount(t *testing.T, r *Renderer, v *VNode, container *memhost.Node) {
	t.Helper()
	if err := r.Mount(ctx, v, container); err != nil {
		t.Fatalf("Mount: %v", err)
	}
}

func mustPatch(t *testing.T, r *Renderer, prev, next *VNode) {
	t.Helper()
	if err := r.Patch(ctx, prev, next); err != nil {
		t.Fatalf("Patch: %v", err)
	}
}

func liveNode(t *testing.T, v *VNode) *memhost.Node {
	t.Helper()
	n, ok := v.Live().(*memhost.Node)
	if !ok || n == nil {
		t.Fatalf("Live() = %v, want *memhost.Node", v.Live())
	}
	return n
}

// keyedList builds <ul> with one <li key=k>k</li> per key.
func keyedList(keys ...string) *VNode {
	items := make([]*VNode, len(keys))
	for i, k := range keys {
		items[i] = Li(Key(k), k)
	}
	return Ul(items)
}

func plainList(texts ...string) *VNode {
	items := make([]*VNode, len(texts))
	for i, s := range texts {
		items[i] = Li(s)
	}
	return Ul(items)
}

func childTexts(n *memhost.Node) []string {
	var out []string
	for _, c := range n.Children() {
		out = append(out, c.TextContent())
	}
	return out
}

func opKinds(ops []memhost.Op) []string {
	out := make([]string, len(ops))
	for i, o := range ops {
		out[i] = o.Kind
	}
	return out
}
