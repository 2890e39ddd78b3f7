package reactive

import (
	vlerrors "github.com/vango-dev/vango-lite/internal/errors"
)

var (
	// ErrComputationFailed matches errors returned or panicked by a
	// computation body.
	ErrComputationFailed error = vlerrors.New(vlerrors.CodeComputationFailed)

	// ErrReentrant is returned by Run for a computation that is already
	// running.
	ErrReentrant error = vlerrors.New(vlerrors.CodeReentrantTrigger)
)
