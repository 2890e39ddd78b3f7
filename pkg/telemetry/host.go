package telemetry

import (
	"github.com/vango-dev/vango-lite/pkg/host"
)

// InstrumentHost returns a host.Host that counts every operation forwarded
// to h. A nil m returns h unchanged.
func InstrumentHost(h host.Host, m *Metrics) host.Host {
	if m == nil {
		return h
	}
	return &instrumentedHost{next: h, m: m}
}

type instrumentedHost struct {
	next host.Host
	m    *Metrics
}

func (h *instrumentedHost) CreateElement(tag string) (host.Node, error) {
	n, err := h.next.CreateElement(tag)
	h.m.ObserveHostOp(host.OpCreateElement, err)
	return n, err
}

func (h *instrumentedHost) CreateText(text string) (host.Node, error) {
	n, err := h.next.CreateText(text)
	h.m.ObserveHostOp(host.OpCreateText, err)
	return n, err
}

func (h *instrumentedHost) SetAttribute(node host.Node, name, value string) error {
	err := h.next.SetAttribute(node, name, value)
	h.m.ObserveHostOp(host.OpSetAttribute, err)
	return err
}

func (h *instrumentedHost) RemoveAttribute(node host.Node, name string) error {
	err := h.next.RemoveAttribute(node, name)
	h.m.ObserveHostOp(host.OpRemoveAttribute, err)
	return err
}

func (h *instrumentedHost) SetTextContent(node host.Node, text string) error {
	err := h.next.SetTextContent(node, text)
	h.m.ObserveHostOp(host.OpSetTextContent, err)
	return err
}

func (h *instrumentedHost) AddEventListener(node host.Node, event string, handler host.EventHandler) error {
	err := h.next.AddEventListener(node, event, handler)
	h.m.ObserveHostOp(host.OpAddEventListener, err)
	return err
}

func (h *instrumentedHost) RemoveEventListener(node host.Node, event string, handler host.EventHandler) error {
	err := h.next.RemoveEventListener(node, event, handler)
	h.m.ObserveHostOp(host.OpRemoveEventListener, err)
	return err
}

func (h *instrumentedHost) AppendChild(parent, child host.Node) error {
	err := h.next.AppendChild(parent, child)
	h.m.ObserveHostOp(host.OpAppendChild, err)
	return err
}

func (h *instrumentedHost) InsertBefore(parent, child, ref host.Node) error {
	err := h.next.InsertBefore(parent, child, ref)
	h.m.ObserveHostOp(host.OpInsertBefore, err)
	return err
}

func (h *instrumentedHost) RemoveChild(parent, child host.Node) error {
	err := h.next.RemoveChild(parent, child)
	h.m.ObserveHostOp(host.OpRemoveChild, err)
	return err
}

func (h *instrumentedHost) ChildNodes(parent host.Node) ([]host.Node, error) {
	nodes, err := h.next.ChildNodes(parent)
	h.m.ObserveHostOp(host.OpChildNodes, err)
	return nodes, err
}

func (h *instrumentedHost) ParentNode(node host.Node) (host.Node, error) {
	p, err := h.next.ParentNode(node)
	h.m.ObserveHostOp(host.OpParentNode, err)
	return p, err
}
