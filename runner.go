package memopool

import (
	"context"
	"fmt"
)

// Runner starts one isolated execution unit for a task body. Implementations
// must call report exactly once per Start: with the body's outcome, with an
// ErrSlotTerminated error if the body terminated without reporting one
// (panicked), or with an ErrTaskCancelled error if ctx was done first.
type Runner interface {
	Start(
		ctx context.Context,
		run func(ctx context.Context) (any, error),
		report func(result any, err error),
	)
}

type outcome struct {
	result any
	err    error
}

// goRunner is the default Runner: one goroutine per slot. Cancellation wins
// over a still-running body; the body's goroutine is left to unwind on its
// own and its late outcome is discarded.
type goRunner struct{}

func (goRunner) Start(
	ctx context.Context,
	run func(ctx context.Context) (any, error),
	report func(result any, err error),
) {
	// buffered so the body goroutine can always deliver and exit
	done := make(chan outcome, 1)

	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- outcome{err: fmt.Errorf("%w: %v", ErrSlotTerminated, p)}
			}
		}()
		result, err := run(ctx)
		done <- outcome{result: result, err: err}
	}()

	go func() {
		select {
		case <-ctx.Done():
			report(nil, fmt.Errorf("%w: %w", ErrTaskCancelled, ctx.Err()))
		case o := <-done:
			report(o.result, o.err)
		}
	}()
}

// SyncRunner executes task bodies inline on the dispatching goroutine.
// Execution is deterministic: by the time a submission returns, its task has
// either resolved or is queued behind an explicit slot limit. Intended for
// tests.
type SyncRunner struct{}

func (SyncRunner) Start(
	ctx context.Context,
	run func(ctx context.Context) (any, error),
	report func(result any, err error),
) {
	if err := ctx.Err(); err != nil {
		report(nil, fmt.Errorf("%w: %w", ErrTaskCancelled, err))
		return
	}

	reported := false
	defer func() {
		if p := recover(); p != nil && !reported {
			report(nil, fmt.Errorf("%w: %v", ErrSlotTerminated, p))
		}
	}()

	result, err := run(ctx)
	reported = true
	report(result, err)
}
