// Package host defines the capability interface between the rendering
// engine and the live display tree.
//
// The engine never touches a platform directly. Everything it needs to build
// and mutate live nodes goes through Host: node creation, attributes, event
// listeners, text content and tree insertion/removal. A Host may be backed by
// a browser DOM, a terminal widget tree, or the in-memory document in
// package memhost.
//
// Hosts report refusals as plain errors. The engine wraps them in a
// *CapabilityError naming the failed operation, so callers can match them
// with errors.Is(err, host.ErrCapability).
package host
