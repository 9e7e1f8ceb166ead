package memopool

import (
	"context"
	"time"
)

// dispatch runs one pass over the pending queue: while the queue is
// non-empty and a slot is free, the head task is removed and started.
//
// The pass is non-reentrant: a second caller arriving while a pass is in
// progress only marks it for re-run and returns, so admission never blocks
// behind dispatch. The in-progress pass loops until no re-trigger is
// pending. Invoked after every enqueue and after every slot release.
func (s *Scheduler[R]) dispatch() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if s.dispatching {
		s.retrigger = true
		s.mu.Unlock()
		return
	}
	s.dispatching = true

	for {
		s.retrigger = false
		for len(s.queue) > 0 && !s.closed && s.slots.TryAcquire() {
			pt := s.queue[0]
			s.queue[0] = nil
			s.queue = s.queue[1:]

			// start outside the lock; with a synchronous runner the slot
			// completes here and its release re-enters dispatch, which only
			// sets retrigger
			s.mu.Unlock()
			s.start(pt)
			s.mu.Lock()
		}
		if !s.retrigger {
			break
		}
	}

	s.dispatching = false
	s.mu.Unlock()
}

// start hands one dispatched task to a worker slot. Fire-and-forget from the
// dispatcher's perspective: the outcome comes back through finish.
func (s *Scheduler[R]) start(pt *pendingTask[R]) {
	s.started.Add(1)
	s.active.Add(1)
	s.logger.Debug(
		"slot started",
		"slot_id", pt.slotID,
		"task_id", pt.task.ID(),
		"fingerprint", pt.fingerprint,
	)

	began := time.Now()
	s.inflight.Add(1)
	s.runner.Start(
		s.ctx,
		func(ctx context.Context) (any, error) {
			return pt.task.Run(ctx, pt.input)
		},
		func(result any, err error) {
			defer s.inflight.Done()
			s.finish(pt, result, err, time.Since(began))
		},
	)
}
