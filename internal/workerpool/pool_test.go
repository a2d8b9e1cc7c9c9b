package workerpool

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cutstock/core/internal/apierr"
)

func testConfig() Config {
	return Config{
		MinWorkers:   1,
		MaxWorkers:   2,
		MaxQueue:     4,
		TaskTimeout:  2 * time.Second,
		IdleTimeout:  time.Second,
		DrainTimeout: time.Second,
	}
}

func TestPool_SubmitAndComplete(t *testing.T) {
	p := New(testConfig())
	defer p.Shutdown()

	resultC, _, err := p.Submit(Task{
		ID: "t1",
		Run: func(ctx context.Context) (any, error) {
			return 42, nil
		},
	})
	require.Nil(t, err)

	select {
	case out := <-resultC:
		require.Equalf(t, Completed, out.Status, "outcome err: %v", out.Err)
		assert.Equal(t, 42, out.Value)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for result")
	}
}

func TestPool_TaskError(t *testing.T) {
	p := New(testConfig())
	defer p.Shutdown()

	resultC, _, err := p.Submit(Task{
		ID: "t1",
		Run: func(ctx context.Context) (any, error) {
			return nil, errors.New("boom")
		},
	})
	require.Nil(t, err)
	out := <-resultC
	require.Equal(t, Failed, out.Status)
	assert.Equal(t, apierr.InternalError, out.Err.Code)
}

func TestPool_WorkerCrashIsRecovered(t *testing.T) {
	p := New(testConfig())
	defer p.Shutdown()

	resultC, _, err := p.Submit(Task{
		ID: "t1",
		Run: func(ctx context.Context) (any, error) {
			panic("simulated crash")
		},
	})
	require.Nil(t, err)
	out := <-resultC
	require.Equal(t, Failed, out.Status)
	assert.Equal(t, apierr.WorkerCrash, out.Err.Code)

	// pool must still accept work after a crash.
	resultC2, _, err := p.Submit(Task{
		ID: "t2",
		Run: func(ctx context.Context) (any, error) {
			return "ok", nil
		},
	})
	require.Nil(t, err)
	out2 := <-resultC2
	assert.Equalf(t, Completed, out2.Status, "expected pool to recover and complete next task")
}

func TestPool_TaskTimeout(t *testing.T) {
	cfg := testConfig()
	cfg.TaskTimeout = 50 * time.Millisecond
	p := New(cfg)
	defer p.Shutdown()

	resultC, _, err := p.Submit(Task{
		ID: "slow",
		Run: func(ctx context.Context) (any, error) {
			select {
			case <-time.After(time.Second):
				return "too slow", nil
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		},
	})
	require.Nil(t, err)
	out := <-resultC
	require.Equal(t, TimedOut, out.Status)
	assert.Equal(t, apierr.Timeout, out.Err.Code)
}

// A task whose body ignores ctx and never returns still has its slot
// reclaimed at the TaskTimeout boundary: the pool reports TimedOut and
// retires the worker that ran it, but the orphaned goroutine keeps the
// semaphore slot until it actually exits. A replacement worker pulling
// the next queued task must block behind that slot rather than run
// alongside the orphan — this is what keeps concurrent executions
// capped at MaxWorkers through a timeout leak.
func TestPool_TimeoutRetiresWorkerAndCapsConcurrency(t *testing.T) {
	cfg := testConfig()
	cfg.MinWorkers = 1
	cfg.MaxWorkers = 1
	cfg.TaskTimeout = 50 * time.Millisecond
	p := New(cfg)
	defer p.Shutdown()

	release := make(chan struct{})
	resultC1, _, err := p.Submit(Task{
		ID: "slow",
		Run: func(ctx context.Context) (any, error) {
			<-release
			return "late", nil
		},
	})
	require.Nil(t, err)

	select {
	case out := <-resultC1:
		assert.Equal(t, TimedOut, out.Status)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for TimedOut outcome")
	}

	startedC := make(chan struct{}, 1)
	resultC2, _, err := p.Submit(Task{
		ID: "fast",
		Run: func(ctx context.Context) (any, error) {
			startedC <- struct{}{}
			return "fast", nil
		},
	})
	require.Nil(t, err)

	select {
	case <-startedC:
		t.Fatal("expected the replacement worker to stay blocked on the semaphore while the orphaned execution is still running")
	case <-time.After(100 * time.Millisecond):
	}

	close(release)

	select {
	case out := <-resultC2:
		assert.Equal(t, Completed, out.Status)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for the replacement worker to run the queued task")
	}
}

func TestPool_QueueFullRejectsSubmission(t *testing.T) {
	cfg := testConfig()
	cfg.MinWorkers = 1
	cfg.MaxWorkers = 1
	cfg.MaxQueue = 1
	p := New(cfg)
	defer p.Shutdown()

	block := make(chan struct{})
	_, _, err := p.Submit(Task{
		ID: "blocker",
		Run: func(ctx context.Context) (any, error) {
			<-block
			return nil, nil
		},
	})
	require.Nil(t, err)
	// Give the worker a moment to dequeue the blocker so the queue slot
	// is free for q1 rather than racing against it.
	time.Sleep(20 * time.Millisecond)

	// Fill the one-slot queue behind the busy worker.
	_, _, err = p.Submit(Task{ID: "q1", Run: func(ctx context.Context) (any, error) { return nil, nil }})
	require.Nil(t, err)

	_, _, err = p.Submit(Task{ID: "q2", Run: func(ctx context.Context) (any, error) { return nil, nil }})
	if err == nil || err.Code != apierr.QueueFull {
		close(block)
		t.Fatalf("expected QUEUE_FULL, got %+v", err)
	}
	close(block)
}

func TestPool_CancelQueuedTask(t *testing.T) {
	cfg := testConfig()
	cfg.MinWorkers = 1
	cfg.MaxWorkers = 1
	p := New(cfg)
	defer p.Shutdown()

	block := make(chan struct{})
	_, _, err := p.Submit(Task{
		ID: "blocker",
		Run: func(ctx context.Context) (any, error) {
			<-block
			return nil, nil
		},
	})
	require.Nil(t, err)

	resultC, abort, err := p.Submit(Task{
		ID: "queued",
		Run: func(ctx context.Context) (any, error) {
			return "ran", nil
		},
	})
	require.Nil(t, err)
	abort()

	select {
	case out := <-resultC:
		assert.Equal(t, Cancelled, out.Status)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for cancellation")
	}
	close(block)
}

func TestPool_ShutdownRejectsNewSubmissions(t *testing.T) {
	p := New(testConfig())
	p.Shutdown()

	_, _, err := p.Submit(Task{ID: "late", Run: func(ctx context.Context) (any, error) { return nil, nil }})
	require.Error(t, err)
	assert.Equal(t, apierr.ShuttingDown, err.Code)
}

func TestPool_StatsReflectCompletedTasks(t *testing.T) {
	p := New(testConfig())
	defer p.Shutdown()

	resultC, _, err := p.Submit(Task{
		ID: "t1",
		Run: func(ctx context.Context) (any, error) {
			return "done", nil
		},
	})
	require.Nil(t, err)
	<-resultC

	// allow bookkeeping to settle after the result is delivered.
	time.Sleep(10 * time.Millisecond)
	stats := p.Stats()
	assert.GreaterOrEqual(t, stats.Completed, int64(1))
}
