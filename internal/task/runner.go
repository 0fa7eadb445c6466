package task

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/bobocheung/Distributed-Web-Crawler/internal/metrics"
)

// Handler executes one task attempt.
type Handler func(ctx context.Context, t Task) error

// Runner consumes the queue with a pool of workers and dispatches tasks by
// name. A task whose retries are exhausted is logged, counted, and dropped;
// it never stops the pool.
type Runner struct {
	queue    Queue
	policy   RetryPolicy
	workers  int
	handlers map[string]Handler
	logger   *zap.Logger
}

func NewRunner(queue Queue, policy RetryPolicy, workers int, logger *zap.Logger) *Runner {
	if workers <= 0 {
		workers = 4
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		queue:    queue,
		policy:   policy,
		workers:  workers,
		handlers: make(map[string]Handler),
		logger:   logger,
	}
}

// Register binds a handler to a task name. Not safe to call after Run.
func (r *Runner) Register(name string, h Handler) {
	r.handlers[name] = h
}

// Run blocks, consuming tasks until the context finishes or the queue
// closes.
func (r *Runner) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.loop(ctx)
		}()
	}
	wg.Wait()
}

func (r *Runner) loop(ctx context.Context) {
	for {
		t, err := r.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, ErrClosed) {
				return
			}
			r.logger.Error("dequeue failed", zap.Error(err))
			continue
		}
		r.process(ctx, t)
	}
}

func (r *Runner) process(ctx context.Context, t Task) {
	metrics.IncActiveWorkers()
	defer metrics.DecActiveWorkers()

	h, ok := r.handlers[t.Name]
	if !ok {
		r.logger.Warn("no handler for task", zap.String("task", t.Name), zap.String("id", t.ID))
		metrics.ObserveTask(t.Name, "unhandled")
		return
	}

	maxAttempts := t.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = h(ctx, t)
		if err == nil {
			metrics.ObserveTask(t.Name, "ok")
			return
		}
		if !r.policy.ShouldRetry(err, attempt, maxAttempts) {
			break
		}
		metrics.ObserveTaskRetry(t.Name)
		r.logger.Debug("task attempt failed; backing off",
			zap.String("task", t.Name),
			zap.String("id", t.ID),
			zap.Int("attempt", attempt),
			zap.Error(err))
		if !sleep(ctx, r.policy.Backoff(attempt)) {
			metrics.ObserveTask(t.Name, "canceled")
			return
		}
	}

	r.logger.Warn("task dropped after exhausting retries",
		zap.String("task", t.Name),
		zap.String("id", t.ID),
		zap.Int("max_attempts", maxAttempts),
		zap.Error(err))
	metrics.ObserveTask(t.Name, "exhausted")
}

// sleep waits for d or until the context finishes, reporting whether the
// full wait elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
