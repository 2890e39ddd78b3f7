package vdom

import (
	"errors"

	vlerrors "github.com/vango-dev/vango-lite/internal/errors"
)

var (
	// ErrInvalidNodeKind matches errors for descriptors the factory cannot
	// classify: unknown tag or children types, non-comparable keys or
	// component values.
	ErrInvalidNodeKind error = vlerrors.New(vlerrors.CodeInvalidNodeKind)

	// ErrNilRender matches errors for components that rendered nil.
	ErrNilRender error = vlerrors.New(vlerrors.CodeNilRender)
)

var errDetached = errors.New("node has no parent")

func invalidKind(format string, args ...any) error {
	return vlerrors.New(vlerrors.CodeInvalidNodeKind).WithDetailf(format, args...)
}

func nilRender(name string) error {
	return vlerrors.New(vlerrors.CodeNilRender).WithDetail(name)
}
