package engine

import "errors"

var (
	// ErrInvalidOrder rejects malformed submissions before any book
	// mutation: non-positive quantity, missing price on a LIMIT order.
	ErrInvalidOrder = errors.New("invalid order")

	// ErrOrderNotFound is returned by Cancel for unknown ids and for
	// orders already in a terminal state. Repeated cancellation is a
	// no-op failure, never a crash.
	ErrOrderNotFound = errors.New("order not found")
)
