package engine

import "errors"

var (
	// ErrOrderNotFound is returned when a cancel/modify references an order
	// id that is not resting on any book (spec.md §7 NotFound).
	ErrOrderNotFound = errors.New("engine: order not found")

	// ErrStopNotFound is returned when a cancel/modify references a stop
	// order id that is not pending on any symbol (spec.md §7 NotFound).
	ErrStopNotFound = errors.New("engine: stop order not found")

	// errInvariantViolation marks the unreachable defensive paths spec.md
	// §9 calls out (FOK pre-check and matching loop disagreeing). Logged
	// and the current submit is canceled without corrupting the book; it
	// is never propagated to the caller as a typed error value itself, so
	// it is unexported.
	errInvariantViolation = errors.New("engine: internal invariant violation")
)
