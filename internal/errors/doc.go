// Package errors provides structured error values for vango-lite.
//
// Every error carries a short code (e.g. "E001") that maps to a registered
// template holding its category, message and a longer explanation:
//
//	err := errors.New("E001").
//	    WithDetail("tag of type int is not an element or component")
//
//	fmt.Println(err.Format())
//	// ERROR E001: Invalid node kind
//	//
//	//   tag of type int is not an element or component
//
// # Categories
//
//   - construction: malformed descriptors rejected by the factory
//   - host: operations refused by the display-tree host
//   - reactive: failures of tracked computations
//
// # Matching
//
// Errors compare by code, so a freshly built error matches the package
// sentinel that shares its code:
//
//	if errors.Is(err, vdom.ErrInvalidNodeKind) { ... }
package errors
