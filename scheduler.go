package memopool

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ygrebnov/memopool/metrics"
	"github.com/ygrebnov/memopool/slots"
)

// Scheduler executes independent tasks over a fixed set of worker slots and
// memoizes their results by fingerprint. Methods are safe for concurrent use.
//
// Submission consults the cache first: a hit resolves the returned Future
// immediately, without consuming a slot or entering the queue. A miss
// enqueues the task; the dispatcher starts queued tasks in submission order
// whenever a slot is free. Successful results are written through to the
// cache; failures never are.
type Scheduler[R any] struct {
	// noCopy prevents accidental copying of the controller.
	//go:nocopy
	nc noCopy

	config *config

	// internal lifecycle control
	ctx    context.Context
	cancel context.CancelFunc

	cache     *Cache
	ownsCache bool
	runner    Runner
	slots     *slots.Fixed
	logger    *slog.Logger

	// mu guards queue, dispatching/retrigger, and closed. The queue and the
	// slot set have a single logical owner; task bodies run outside the lock.
	mu          sync.Mutex
	queue       []*pendingTask[R]
	dispatching bool
	retrigger   bool
	closed      bool

	// inflight counts started slots whose outcome has not been handled yet
	inflight  sync.WaitGroup
	closeOnce sync.Once

	hits      metrics.Counter
	misses    metrics.Counter
	started   metrics.Counter
	succeeded metrics.Counter
	failed    metrics.Counter
	cancelled metrics.Counter
	active    metrics.UpDownCounter
	duration  metrics.Histogram
}

// noCopy is a vet-recognized marker to discourage copying types with this
// field embedded. It works with the "-copylocks" analyzer via the presence
// of Lock/Unlock methods.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// pendingTask is one queued unit of work: identity, input, fingerprint, and
// the future its outcome resolves. Owned by the scheduler until dispatched,
// then by the worker slot executing it.
type pendingTask[R any] struct {
	slotID      string
	fingerprint string
	task        Task[R]
	input       any
	future      *Future[R]
}

// New creates a Scheduler using functional options. The provided context is
// the parent of the scheduler's internal context; cancelling it has the same
// effect on running tasks as Shutdown, but does not resolve queued futures.
func New[R any](ctx context.Context, opts ...Option) (*Scheduler[R], error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	if cfg.MaxThreads == 0 {
		cfg.MaxThreads = uint(runtime.NumCPU())
	}
	if cfg.Runner == nil {
		cfg.Runner = goRunner{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewNoopProvider()
	}

	s := &Scheduler[R]{
		config: &cfg,
		runner: cfg.Runner,
		logger: cfg.Logger,
		slots:  slots.NewFixed(cfg.MaxThreads),

		hits:      cfg.Metrics.Counter("cache_hits"),
		misses:    cfg.Metrics.Counter("cache_misses"),
		started:   cfg.Metrics.Counter("tasks_started"),
		succeeded: cfg.Metrics.Counter("tasks_succeeded"),
		failed:    cfg.Metrics.Counter("tasks_failed"),
		cancelled: cfg.Metrics.Counter("tasks_cancelled"),
		active:    cfg.Metrics.UpDownCounter("slots_active"),
		duration:  cfg.Metrics.Histogram("task_duration_seconds"),
	}
	s.ctx, s.cancel = context.WithCancel(ctx)

	if cfg.SharedCache != nil {
		s.cache = cfg.SharedCache
	} else {
		cacheCfg := cfg.Cache
		cacheCfg.Metrics = cfg.Metrics
		s.cache = NewCache(cacheCfg)
		s.ownsCache = true
	}

	return s, nil
}

// Submit schedules (task, input) for execution and returns its Future.
//
// A cache hit for the pair's fingerprint resolves the future before Submit
// returns. Otherwise the task joins the tail of the pending queue; among
// cache misses, execution starts in submission order. Submit never blocks on
// queue capacity. After Shutdown it fails with ErrSchedulerClosed.
func (s *Scheduler[R]) Submit(task Task[R], input any) (*Future[R], error) {
	if task == nil {
		return nil, ErrNilTask
	}

	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return nil, ErrSchedulerClosed
	}

	fp := Fingerprint(task.ID(), input)
	f := newFuture[R]()

	if v, ok := s.cache.Get(fp); ok {
		if r, ok := toResult[R](v); ok {
			s.hits.Add(1)
			s.logger.Debug("cache hit", "task_id", task.ID(), "fingerprint", fp)
			f.resolve(r, nil)
			return f, nil
		}
		// cached value of a foreign result type: fall through and recompute
	}
	s.misses.Add(1)

	pt := &pendingTask[R]{
		slotID:      uuid.NewString(),
		fingerprint: fp,
		task:        task,
		input:       input,
		future:      f,
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrSchedulerClosed
	}
	s.queue = append(s.queue, pt)
	s.mu.Unlock()

	s.dispatch()

	return f, nil
}

// Execute schedules (task, input) and waits for its outcome. The ctx bounds
// the wait only; an expired ctx does not stop the task.
func (s *Scheduler[R]) Execute(ctx context.Context, task Task[R], input any) (R, error) {
	f, err := s.Submit(task, input)
	if err != nil {
		var zero R
		return zero, err
	}
	return f.Wait(ctx)
}

// finish handles one slot outcome: write-through on success, resolve the
// future, release the slot, and re-trigger dispatch.
func (s *Scheduler[R]) finish(pt *pendingTask[R], result any, err error, elapsed time.Duration) {
	s.duration.Record(elapsed.Seconds())
	s.active.Add(-1)

	switch {
	case err == nil:
		s.cache.Set(pt.fingerprint, result)
		s.succeeded.Add(1)
		s.logger.Debug(
			"task succeeded",
			"slot_id", pt.slotID,
			"task_id", pt.task.ID(),
			"fingerprint", pt.fingerprint,
		)
		r, _ := toResult[R](result)
		pt.future.resolve(r, nil)

	case isCancellation(err):
		s.cancelled.Add(1)
		s.logger.Debug("task cancelled", "slot_id", pt.slotID, "task_id", pt.task.ID())
		if !errors.Is(err, ErrTaskCancelled) {
			err = fmt.Errorf("%w: %w", ErrTaskCancelled, err)
		}
		var zero R
		pt.future.resolve(zero, newTaskTaggedError(err, pt.task.ID(), pt.fingerprint))

	default:
		// failures are terminal and never memoized
		s.failed.Add(1)
		if isTermination(err) {
			s.logger.Warn(
				"worker slot terminated unexpectedly",
				"slot_id", pt.slotID,
				"task_id", pt.task.ID(),
				"error", err,
			)
		} else {
			s.logger.Debug(
				"task failed",
				"slot_id", pt.slotID,
				"task_id", pt.task.ID(),
				"error", err,
			)
		}
		var zero R
		pt.future.resolve(zero, newTaskTaggedError(err, pt.task.ID(), pt.fingerprint))
	}

	s.slots.Release()
	s.dispatch()
}

// Shutdown terminates all active slots, resolves every queued task with
// ErrSchedulerClosed, and stops accepting submissions. A cache owned by the
// scheduler is closed; a shared one is left to its owner. Idempotent.
func (s *Scheduler[R]) Shutdown() {
	s.closeOnce.Do(func() {
		s.cancel()

		s.mu.Lock()
		s.closed = true
		pending := s.queue
		s.queue = nil
		s.mu.Unlock()

		for _, pt := range pending {
			s.cancelled.Add(1)
			var zero R
			pt.future.resolve(
				zero,
				newTaskTaggedError(ErrSchedulerClosed, pt.task.ID(), pt.fingerprint),
			)
		}

		// every started slot reports promptly once the context is cancelled
		s.inflight.Wait()

		if s.ownsCache {
			s.cache.Close()
		}

		s.logger.Debug("scheduler shut down", "discarded", len(pending))
	})
}

// Pending returns the number of queued tasks not yet dispatched.
func (s *Scheduler[R]) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Active returns the number of currently occupied worker slots.
func (s *Scheduler[R]) Active() int { return s.slots.Active() }

// toResult converts a cache/runner value back to R. A nil stored value maps
// to R's zero value so that legitimately cached nils round-trip.
func toResult[R any](v any) (R, bool) {
	if v == nil {
		var zero R
		return zero, true
	}
	r, ok := v.(R)
	return r, ok
}
