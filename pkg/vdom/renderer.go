package vdom

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vango-lite/pkg/host"
	"github.com/vango-dev/vango-lite/pkg/reactive"
	"github.com/vango-dev/vango-lite/pkg/telemetry"
)

// DefaultEventPrefix marks property names that bind event handlers.
const DefaultEventPrefix = "on"

// Renderer mounts and reconciles VNode trees against a host.
//
// A Renderer is not safe for concurrent use. Callers that drive it from
// several goroutines, including reactive writes that re-render components,
// must serialize those calls.
type Renderer struct {
	host        host.Host
	tracker     *reactive.Tracker
	logger      *slog.Logger
	metrics     *telemetry.Metrics
	tracer      trace.Tracer
	eventPrefix string

	roots map[host.Node]*VNode
	kept  map[StatefulComponent]*componentInstance
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) RendererOption {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithTracker sets the tracker that runs component computations.
// Defaults to reactive.Default().
func WithTracker(t *reactive.Tracker) RendererOption {
	return func(r *Renderer) {
		if t != nil {
			r.tracker = t
		}
	}
}

// WithMetrics records renderer activity and host operations in m.
func WithMetrics(m *telemetry.Metrics) RendererOption {
	return func(r *Renderer) {
		r.metrics = m
	}
}

// WithTracer sets the tracer for Mount, Patch, Render and component
// re-render spans. Defaults to the global provider's tracer.
func WithTracer(t trace.Tracer) RendererOption {
	return func(r *Renderer) {
		if t != nil {
			r.tracer = t
		}
	}
}

// WithEventPrefix changes the property prefix that binds event handlers.
func WithEventPrefix(prefix string) RendererOption {
	return func(r *Renderer) {
		if prefix != "" {
			r.eventPrefix = prefix
		}
	}
}

// NewRenderer returns a Renderer that writes to h.
func NewRenderer(h host.Host, opts ...RendererOption) *Renderer {
	r := &Renderer{
		tracker:     reactive.Default(),
		logger:      slog.Default(),
		eventPrefix: DefaultEventPrefix,
		roots:       make(map[host.Node]*VNode),
		kept:        make(map[StatefulComponent]*componentInstance),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.tracer == nil {
		r.tracer = otel.Tracer(telemetry.TracerName)
	}
	if r.metrics != nil {
		h = telemetry.InstrumentHost(h, r.metrics)
	}
	r.host = h
	return r
}

// Host returns the host the renderer writes to.
func (r *Renderer) Host() host.Host { return r.host }

// Mount creates live nodes for v and appends them to container.
// Mounting the same tree twice duplicates its live nodes.
func (r *Renderer) Mount(ctx context.Context, v *VNode, container host.Node) error {
	if v == nil {
		return invalidKind("mount of nil node")
	}
	_, span := r.startSpan(ctx, "vdom.Mount", v)
	err := r.mount(v, container, nil)
	endSpan(span, err)
	return err
}

// Patch applies the edits that turn the mounted tree prev into next.
// next takes over prev's live nodes; prev must not be patched again.
func (r *Renderer) Patch(ctx context.Context, prev, next *VNode) error {
	if prev == nil || next == nil {
		return invalidKind("patch of nil node")
	}
	_, span := r.startSpan(ctx, "vdom.Patch", next)
	start := time.Now()
	err := r.patch(prev, next)
	r.metrics.ObservePatch(time.Since(start))
	endSpan(span, err)
	return err
}

// Unmount removes the live nodes of v from their parent and disposes the
// computations of components inside it.
func (r *Renderer) Unmount(ctx context.Context, v *VNode) error {
	if v == nil {
		return nil
	}
	_, span := r.startSpan(ctx, "vdom.Unmount", v)
	err := r.unmount(v)
	endSpan(span, err)
	return err
}

func (r *Renderer) unmount(v *VNode) error {
	live := v.Live()
	if live == nil {
		r.teardown(v)
		return nil
	}
	parent, err := r.host.ParentNode(live)
	if err != nil {
		return host.Wrap(host.OpParentNode, err)
	}
	if parent == nil {
		r.teardown(v)
		return nil
	}
	return r.remove(v, parent)
}

// Render makes v the content of container. The first call mounts v, later
// calls patch the previous root into v, and a nil v unmounts the root.
func (r *Renderer) Render(ctx context.Context, v *VNode, container host.Node) error {
	prev := r.roots[container]
	switch {
	case v == nil:
		if prev == nil {
			return nil
		}
		_, span := r.startSpan(ctx, "vdom.Render", prev)
		err := r.remove(prev, container)
		delete(r.roots, container)
		endSpan(span, err)
		return err
	case prev == nil:
		_, span := r.startSpan(ctx, "vdom.Render", v)
		err := r.mount(v, container, nil)
		if err == nil {
			r.roots[container] = v
		}
		endSpan(span, err)
		return err
	default:
		_, span := r.startSpan(ctx, "vdom.Render", v)
		start := time.Now()
		err := r.patch(prev, v)
		r.metrics.ObservePatch(time.Since(start))
		if err == nil {
			r.roots[container] = v
		}
		endSpan(span, err)
		return err
	}
}

// Root returns the tree last rendered into container.
func (r *Renderer) Root(container host.Node) *VNode {
	return r.roots[container]
}

func (r *Renderer) startSpan(ctx context.Context, name string, v *VNode) (context.Context, trace.Span) {
	return r.tracer.Start(ctx, name, trace.WithAttributes(
		attribute.String("vdom.kind", v.kind.String()),
		attribute.String("vdom.node", v.name()),
	))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
