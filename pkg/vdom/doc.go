// Package vdom provides the virtual node tree and the engine that mounts it
// into a host display tree and reconciles it on change.
//
// # Core Types
//
// VNode describes a desired node: a text node, an element, a stateful
// component or a functional component. Props holds attributes and event
// handlers in insertion order. Children is a closed variant over none, text,
// a node sequence and a set of named slots.
//
// # Element API
//
// Nodes are built with H, or with the variadic helpers:
//
//	Ul(Class("todos"),
//	    Li(Key("a"), "first"),
//	    Li(Key("b"), "second"),
//	)
//
// # Rendering
//
// A Renderer owns a host.Host. Mount creates live nodes for a tree, Patch
// applies the edits that turn one tree into another, and Render keeps track
// of the current root per container:
//
//	r := vdom.NewRenderer(doc)
//	err := r.Render(ctx, view(), doc.Body())
//
// Children whose first entry carries a key are reconciled by key, reusing
// live nodes across moves. Other sequences are patched by position.
//
// # Components
//
// A StatefulComponent renders inside a tracked computation. Reading reactive
// state in Render subscribes the component, and a later write patches the
// new output against the previous one. Functional components are plain
// functions that are invoked again on every patch.
package vdom
