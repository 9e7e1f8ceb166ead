package memopool

import (
	"context"
	"sync"
)

// Future is the single-resolution handle for one submitted task.
// It resolves exactly once, with either a result or an error; subsequent
// resolution attempts are no-ops. Methods are safe for concurrent use.
type Future[R any] struct {
	once sync.Once
	done chan struct{}

	result R
	err    error
}

func newFuture[R any]() *Future[R] {
	return &Future[R]{done: make(chan struct{})}
}

// resolve records the outcome and unblocks waiters. Only the first call has
// an effect.
func (f *Future[R]) resolve(result R, err error) {
	f.once.Do(func() {
		f.result = result
		f.err = err
		close(f.done)
	})
}

// Done returns a channel closed when the future has resolved.
func (f *Future[R]) Done() <-chan struct{} { return f.done }

// Wait blocks until the future resolves or ctx is done, whichever comes
// first. On ctx expiry it returns ctx.Err(); the task itself keeps running.
func (f *Future[R]) Wait(ctx context.Context) (R, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		var zero R
		return zero, ctx.Err()
	}
}

// Result returns the outcome. It must only be called after Done is closed;
// before resolution it returns the zero value and a nil error.
func (f *Future[R]) Result() (R, error) {
	select {
	case <-f.done:
		return f.result, f.err
	default:
		var zero R
		return zero, nil
	}
}
