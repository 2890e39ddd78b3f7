package vdom

import (
	"fmt"
	"log/slog"

	"github.com/vango-dev/vango-lite/pkg/host"
)

// invoker is the listener registered with the host for one event on one
// element. Patching retargets it to the current handler, so a handler that
// changes between renders costs no host calls.
type invoker struct {
	handler any
	logger  *slog.Logger
}

func (i *invoker) handle(e host.Event) {
	switch h := i.handler.(type) {
	case func():
		h()
	case func(host.Event):
		h(e)
	case func(host.Event) error:
		if err := h(e); err != nil {
			i.logger.Error("vdom: event handler failed", "event", e.Type, "error", err)
		}
	default:
		i.logger.Warn("vdom: unsupported event handler", "event", e.Type, "type", fmt.Sprintf("%T", i.handler))
	}
}

// setProp applies a property on mount.
func (r *Renderer) setProp(v *VNode, el host.Node, key string, value any) error {
	if key == "key" {
		return nil
	}
	if isEventHandler(key, r.eventPrefix) {
		if value == nil {
			return nil
		}
		return r.addListener(v, el, eventType(key, r.eventPrefix), value)
	}
	if value == nil {
		return nil
	}
	if err := r.host.SetAttribute(el, key, propToString(value)); err != nil {
		return host.Wrap(host.OpSetAttribute, err)
	}
	return nil
}

func (r *Renderer) addListener(v *VNode, el host.Node, event string, handler any) error {
	inv := &invoker{handler: handler, logger: r.logger}
	if err := r.host.AddEventListener(el, event, inv.handle); err != nil {
		return host.Wrap(host.OpAddEventListener, err)
	}
	if v.invokers == nil {
		v.invokers = make(map[string]*invoker)
	}
	v.invokers[event] = inv
	return nil
}

func (r *Renderer) removeListener(v *VNode, el host.Node, event string) error {
	inv, ok := v.invokers[event]
	if !ok {
		return nil
	}
	delete(v.invokers, event)
	if err := r.host.RemoveEventListener(el, event, inv.handle); err != nil {
		return host.Wrap(host.OpRemoveEventListener, err)
	}
	return nil
}

// patchProps sets keys that are new or changed in next, in next's order,
// then removes keys missing from next, in prev's order.
func (r *Renderer) patchProps(prev, next *VNode, el host.Node) error {
	for _, a := range next.props.Attrs() {
		if a.Key == "key" {
			continue
		}
		old, had := prev.props.Get(a.Key)

		if isEventHandler(a.Key, r.eventPrefix) {
			event := eventType(a.Key, r.eventPrefix)
			inv, bound := next.invokers[event]
			switch {
			case a.Value == nil:
				if err := r.removeListener(next, el, event); err != nil {
					return err
				}
			case bound:
				inv.handler = a.Value
			default:
				if err := r.addListener(next, el, event, a.Value); err != nil {
					return err
				}
			}
			continue
		}

		if had && propsEqual(old, a.Value) {
			continue
		}
		if a.Value == nil {
			if had && old != nil {
				if err := r.host.RemoveAttribute(el, a.Key); err != nil {
					return host.Wrap(host.OpRemoveAttribute, err)
				}
			}
			continue
		}
		if err := r.host.SetAttribute(el, a.Key, propToString(a.Value)); err != nil {
			return host.Wrap(host.OpSetAttribute, err)
		}
	}

	for _, a := range prev.props.Attrs() {
		if a.Key == "key" || next.props.Has(a.Key) {
			continue
		}
		if isEventHandler(a.Key, r.eventPrefix) {
			event := eventType(a.Key, r.eventPrefix)
			if r.boundEvent(next.props, event) {
				continue
			}
			if err := r.removeListener(next, el, event); err != nil {
				return err
			}
			continue
		}
		if a.Value == nil {
			continue
		}
		if err := r.host.RemoveAttribute(el, a.Key); err != nil {
			return host.Wrap(host.OpRemoveAttribute, err)
		}
	}
	return nil
}

// boundEvent reports whether any handler prop in props binds event, so a
// prop renamed only by case keeps its listener.
func (r *Renderer) boundEvent(props *Props, event string) bool {
	for _, a := range props.Attrs() {
		if a.Value != nil && isEventHandler(a.Key, r.eventPrefix) && eventType(a.Key, r.eventPrefix) == event {
			return true
		}
	}
	return false
}
