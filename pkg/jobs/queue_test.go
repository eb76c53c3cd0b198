package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestQueueProcessesJobs(t *testing.T) {
	var processed int64
	queue := NewQueue("test", func(_ context.Context, _ Job) error {
		atomic.AddInt64(&processed, 1)
		return nil
	}, QueueConfig{Workers: 2})

	queue.Start(context.Background())
	defer queue.Stop()

	for i := 0; i < 5; i++ {
		require.NoError(t, queue.Enqueue(Job{ID: "j", Type: "noop"}))
	}
	waitFor(t, func() bool { return atomic.LoadInt64(&processed) == 5 })
}

func TestQueueRetriesFailedJobs(t *testing.T) {
	var attempts int64
	queue := NewQueue("test", func(_ context.Context, _ Job) error {
		if atomic.AddInt64(&attempts, 1) == 1 {
			return errors.New("transient")
		}
		return nil
	}, QueueConfig{Workers: 1, MaxRetries: 2, RetryDelay: 10 * time.Millisecond})

	queue.Start(context.Background())
	defer queue.Stop()

	require.NoError(t, queue.Enqueue(Job{ID: "j-1", Type: "flaky"}))
	waitFor(t, func() bool { return atomic.LoadInt64(&attempts) == 2 })
}

func TestQueueEnqueueBeforeStart(t *testing.T) {
	queue := NewQueue("test", func(_ context.Context, _ Job) error { return nil }, QueueConfig{})
	err := queue.Enqueue(Job{ID: "early"})
	assert.Error(t, err)
}

func TestQueueStopIsIdempotent(t *testing.T) {
	queue := NewQueue("test", func(_ context.Context, _ Job) error { return nil }, QueueConfig{})
	queue.Start(context.Background())
	queue.Stop()
	queue.Stop()
}
