package vdom

import "strings"

// ShapeFlags classifies a node by kind, children shape and keep-alive state.
// Each bit can be queried independently.
type ShapeFlags uint16

const (
	FlagElement ShapeFlags = 1 << iota
	FlagFunctionalComponent
	FlagStatefulComponent
	FlagTextChildren
	FlagArrayChildren
	FlagSlotsChildren
	FlagPortal   // reserved, never set
	FlagSuspense // reserved, never set
	FlagShouldKeepAlive
	FlagKeptAlive

	FlagComponent = FlagStatefulComponent | FlagFunctionalComponent
)

var flagNames = []struct {
	flag ShapeFlags
	name string
}{
	{FlagElement, "Element"},
	{FlagFunctionalComponent, "FunctionalComponent"},
	{FlagStatefulComponent, "StatefulComponent"},
	{FlagTextChildren, "TextChildren"},
	{FlagArrayChildren, "ArrayChildren"},
	{FlagSlotsChildren, "SlotsChildren"},
	{FlagPortal, "Portal"},
	{FlagSuspense, "Suspense"},
	{FlagShouldKeepAlive, "ShouldKeepAlive"},
	{FlagKeptAlive, "KeptAlive"},
}

// Has reports whether any bit of flag is set.
func (f ShapeFlags) Has(flag ShapeFlags) bool {
	return f&flag != 0
}

// String lists the set flags joined by "|".
func (f ShapeFlags) String() string {
	if f == 0 {
		return "0"
	}
	var parts []string
	for _, fn := range flagNames {
		if f&fn.flag != 0 {
			parts = append(parts, fn.name)
		}
	}
	return strings.Join(parts, "|")
}
