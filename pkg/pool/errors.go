package pool

import "errors"

var (
	// ErrTypeMismatch is returned by As when a Result's value cannot be
	// asserted to the requested type.
	ErrTypeMismatch = errors.New("pool: value type mismatch")

	// ErrNotRunning is returned by Submit when the pool has not been
	// started yet, or is shutting down.
	ErrNotRunning = errors.New("pool: not running")

	// ErrAlreadyRunning is returned by Start when the pool has already
	// been started.
	ErrAlreadyRunning = errors.New("pool: already running")

	// ErrQueueFull marks a submission that was rejected because the task
	// queue stayed full for the whole submit timeout. Submit itself
	// returns an invalid Result and a nil error in this case; ErrQueueFull
	// only ever surfaces as the status recorded on that submission's
	// trace span.
	ErrQueueFull = errors.New("pool: queue full")

	// ErrTaskPanicked marks a Result whose task recovered from a panic
	// instead of returning normally. The value on such a Result is the
	// zero value of any.
	ErrTaskPanicked = errors.New("pool: task panicked")
)
