package routing

import "errors"

var (
	ErrInvalidVertex = errors.New("invalid vertex id")
	// ErrCorruptHierarchy the precomputed hierarchy contradicts itself, e.g. a shortcut whose
	// bypassed path cannot be recomputed.
	ErrCorruptHierarchy = errors.New("corrupt highway hierarchy")
)
