package task

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobocheung/Distributed-Web-Crawler/internal/metrics"
)

func fastPolicy() RetryPolicy {
	return RetryPolicy{BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond}
}

func TestRunnerDispatchesByName(t *testing.T) {
	t.Parallel()
	metrics.Init()

	q := NewMemoryQueue(8)
	r := NewRunner(q, fastPolicy(), 2, nil)

	var fetches, enriches atomic.Int64
	r.Register(NameFetchFeed, func(ctx context.Context, tk Task) error {
		fetches.Add(1)
		return nil
	})
	r.Register(NameEnrichArticle, func(ctx context.Context, tk Task) error {
		enriches.Add(1)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		r.Run(ctx)
	}()

	require.NoError(t, q.Enqueue(ctx, Task{ID: "1", Name: NameFetchFeed, MaxAttempts: 1}))
	require.NoError(t, q.Enqueue(ctx, Task{ID: "2", Name: NameEnrichArticle, MaxAttempts: 1}))
	require.NoError(t, q.Enqueue(ctx, Task{ID: "3", Name: NameFetchFeed, MaxAttempts: 1}))

	require.Eventually(t, func() bool {
		return fetches.Load() == 2 && enriches.Load() == 1
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	wg.Wait()
}

func TestRunnerRetriesUntilSuccess(t *testing.T) {
	t.Parallel()
	metrics.Init()

	q := NewMemoryQueue(1)
	r := NewRunner(q, fastPolicy(), 1, nil)

	var calls atomic.Int64
	r.Register(NameFetchFeed, func(ctx context.Context, tk Task) error {
		if calls.Add(1) < 3 {
			return errors.New("transient")
		}
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	require.NoError(t, q.Enqueue(ctx, Task{ID: "1", Name: NameFetchFeed, MaxAttempts: 5}))
	require.Eventually(t, func() bool { return calls.Load() == 3 }, 2*time.Second, 5*time.Millisecond)
}

func TestRunnerDropsExhaustedTaskAndKeepsGoing(t *testing.T) {
	t.Parallel()
	metrics.Init()

	q := NewMemoryQueue(4)
	r := NewRunner(q, fastPolicy(), 1, nil)

	var failing, healthy atomic.Int64
	r.Register(NameFetchFeed, func(ctx context.Context, tk Task) error {
		failing.Add(1)
		return errors.New("always down")
	})
	r.Register(NameEnrichArticle, func(ctx context.Context, tk Task) error {
		healthy.Add(1)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	require.NoError(t, q.Enqueue(ctx, Task{ID: "1", Name: NameFetchFeed, MaxAttempts: 3}))
	require.NoError(t, q.Enqueue(ctx, Task{ID: "2", Name: NameEnrichArticle, MaxAttempts: 1}))

	require.Eventually(t, func() bool { return healthy.Load() == 1 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, int64(3), failing.Load(), "every attempt is spent before the drop")
}

func TestRunnerIgnoresUnknownTaskName(t *testing.T) {
	t.Parallel()
	metrics.Init()

	q := NewMemoryQueue(2)
	r := NewRunner(q, fastPolicy(), 1, nil)

	var handled atomic.Int64
	r.Register(NameFetchFeed, func(ctx context.Context, tk Task) error {
		handled.Add(1)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	require.NoError(t, q.Enqueue(ctx, Task{ID: "1", Name: "no_such_task", MaxAttempts: 1}))
	require.NoError(t, q.Enqueue(ctx, Task{ID: "2", Name: NameFetchFeed, MaxAttempts: 1}))

	require.Eventually(t, func() bool { return handled.Load() == 1 }, 2*time.Second, 5*time.Millisecond)
}

func TestRunnerStopsWhenQueueCloses(t *testing.T) {
	t.Parallel()
	metrics.Init()

	q := NewMemoryQueue(1)
	r := NewRunner(q, fastPolicy(), 2, nil)
	r.Register(NameFetchFeed, func(ctx context.Context, tk Task) error { return nil })

	done := make(chan struct{})
	go func() {
		r.Run(context.Background())
		close(done)
	}()

	q.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not stop after queue close")
	}
}
