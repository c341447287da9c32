package input

import "errors"

var (
	// ErrOverflow is returned when a capacity or byte-length computation
	// would overflow. The check always happens before any mutation, so
	// the queue is unchanged when this is returned.
	ErrOverflow = errors.New("input: size arithmetic overflow")

	// ErrOutOfMemory is returned when allocating a larger backing array
	// fails. The existing store remains valid and unchanged.
	ErrOutOfMemory = errors.New("input: allocation failed")

	// ErrInvalidArgument is returned for operations with out-of-contract
	// parameters, such as a resize that does not grow the queue.
	ErrInvalidArgument = errors.New("input: invalid argument")

	// ErrTooManyWaiters is returned when registering a blocked reader
	// would exceed the configured waiter limit. The blocked-reader count
	// is left unchanged.
	ErrTooManyWaiters = errors.New("input: blocked reader limit reached")
)
