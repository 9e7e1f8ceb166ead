package memopool

import "context"

// Task is the canonical unit of work: a stable identity plus a body.
// The identity is an explicit caller-supplied contract: two tasks with equal
// IDs given equal inputs must be interchangeable, and refactoring a body
// without changing its behavior must not change its ID. The identity,
// combined with a structural hash of the input, forms the cache fingerprint.
type Task[R any] interface {
	// ID returns the task's stable identity.
	ID() string

	// Run executes the task body against input. The context is cancelled
	// when the scheduler shuts down.
	Run(ctx context.Context, input any) (R, error)
}

// TaskFunc adapts an identity and a function to Task[R].
func TaskFunc[R any](id string, fn func(ctx context.Context, input any) (R, error)) Task[R] {
	return &taskFunc[R]{id: id, fn: fn}
}

type taskFunc[R any] struct {
	id string
	fn func(ctx context.Context, input any) (R, error)
}

func (t *taskFunc[R]) ID() string { return t.id }

func (t *taskFunc[R]) Run(ctx context.Context, input any) (R, error) { return t.fn(ctx, input) }
