package memopool

import (
	"context"
	"errors"
)

const Namespace = "memopool"

var (
	ErrSchedulerClosed = errors.New(Namespace + ": scheduler is shut down")
	ErrTaskCancelled   = errors.New(Namespace + ": task execution cancelled")
	ErrSlotTerminated  = errors.New(
		Namespace + ": worker slot terminated without reporting an outcome",
	)
	ErrInvalidConfig = errors.New(Namespace + ": invalid configuration")
	ErrNilTask       = errors.New(Namespace + ": nil task")
)

// isCancellation treats both the runner's wrapped sentinel and a raw context
// error from a cooperative body as cancellation: when shutdown fires, either
// may win the race to report first.
func isCancellation(err error) bool {
	return errors.Is(err, ErrTaskCancelled) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

func isTermination(err error) bool { return errors.Is(err, ErrSlotTerminated) }
