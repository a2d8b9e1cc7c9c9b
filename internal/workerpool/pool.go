// Package workerpool implements a bounded, long-lived worker pool: a
// fixed-shape queue in front of a scaling set of goroutines, each
// executing at most one task at a time with no shared mutable state
// between them. Task payloads and results cross the queue by value,
// sharing memory only by communicating.
package workerpool

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/cutstock/core/internal/apierr"
	"github.com/cutstock/core/internal/metrics"
)

// Task is a unit of CPU-bound work submitted to the pool. Run must be a
// pure function of its argument: the pool makes no guarantee about which
// worker executes it, or whether it is retried inline on a fallback path.
type Task struct {
	ID      string
	Kind    string
	Run     func(ctx context.Context) (any, error)
	created time.Time
}

// Status is a task's position in its lifecycle.
type Status int

const (
	Queued Status = iota
	Dispatched
	Completed
	Failed
	TimedOut
	Cancelled
)

func (s Status) String() string {
	switch s {
	case Queued:
		return "queued"
	case Dispatched:
		return "dispatched"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	case TimedOut:
		return "timedOut"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Outcome is the terminal result delivered to a task's waiter.
type Outcome struct {
	Status Status
	Value  any
	Err    *apierr.Error
}

// Config shapes the pool's worker and queue limits.
type Config struct {
	MinWorkers     int
	MaxWorkers     int
	MaxQueue       int
	TaskTimeout    time.Duration
	IdleTimeout    time.Duration
	DrainTimeout   time.Duration
}

// DefaultConfig returns reasonable defaults for local development.
func DefaultConfig() Config {
	return Config{
		MinWorkers:   1,
		MaxWorkers:   4,
		MaxQueue:     256,
		TaskTimeout:  60 * time.Second,
		IdleTimeout:  30 * time.Second,
		DrainTimeout: 10 * time.Second,
	}
}

// job pairs a submitted Task with the channel its waiter listens on, plus
// a private abort channel so Cancel can reach it whether it is still
// queued or already dispatched.
type job struct {
	task    Task
	resultC chan Outcome
	abortC  chan struct{}
	aborted bool
}

// Pool is the pool controller: a single mutex-guarded component owning
// live-worker bookkeeping and the bounded queue.
type Pool struct {
	cfg Config

	mu       sync.Mutex
	jobs     chan *job
	inFlight map[string]*job
	live     int
	shutdown bool
	doneC    chan struct{}

	// sem bounds the number of task bodies actually executing at once to
	// MaxWorkers, independent of how many worker goroutines are alive.
	// It is acquired before a task body is launched and released from
	// inside that body's own goroutine, so an orphaned execution left
	// behind by a timeout or abort still holds its slot until it finally
	// returns — the replacement worker blocks on Acquire rather than
	// running alongside it.
	sem *semaphore.Weighted
	eg  errgroup.Group

	completed  int64
	runtimeSum time.Duration
	waitSum    time.Duration
}

// New constructs a pool and starts its minimum worker count.
func New(cfg Config) *Pool {
	if cfg.MinWorkers <= 0 {
		cfg.MinWorkers = 1
	}
	if cfg.MaxWorkers < cfg.MinWorkers {
		cfg.MaxWorkers = cfg.MinWorkers
	}
	if cfg.MaxQueue <= 0 {
		cfg.MaxQueue = 256
	}
	if cfg.TaskTimeout <= 0 {
		cfg.TaskTimeout = 60 * time.Second
	}

	p := &Pool{
		cfg:      cfg,
		jobs:     make(chan *job, cfg.MaxQueue),
		inFlight: make(map[string]*job),
		doneC:    make(chan struct{}),
		sem:      semaphore.NewWeighted(int64(cfg.MaxWorkers)),
	}
	for i := 0; i < cfg.MinWorkers; i++ {
		p.spawnWorker()
	}
	return p
}

// spawnWorker starts one worker goroutine and records it as live.
func (p *Pool) spawnWorker() {
	p.mu.Lock()
	p.live++
	p.mu.Unlock()

	p.eg.Go(func() error {
		p.workerLoop()
		return nil
	})
}

// Submit enqueues a task. It returns QUEUE_FULL immediately rather than
// blocking when the queue is saturated.
func (p *Pool) Submit(t Task) (<-chan Outcome, func(), *apierr.Error) {
	t.created = time.Now()

	p.mu.Lock()
	if p.shutdown {
		p.mu.Unlock()
		return nil, func() {}, apierr.New(apierr.ShuttingDown, "pool is shutting down")
	}
	if p.live < p.cfg.MaxWorkers && len(p.jobs) >= p.live {
		p.mu.Unlock()
		p.spawnWorker()
		p.mu.Lock()
	}
	p.mu.Unlock()

	j := &job{task: t, resultC: make(chan Outcome, 1), abortC: make(chan struct{})}

	select {
	case p.jobs <- j:
		metrics.WorkerPoolQueued.Inc()
		abort := func() { p.abort(j) }
		return j.resultC, abort, nil
	default:
		metrics.WorkerPoolQueueFull.Inc()
		return nil, func() {}, apierr.New(apierr.QueueFull, "task queue is at capacity")
	}
}

// abort cancels a job whether it is still queued or already dispatched.
// Queued jobs resolve with CANCELLED directly; dispatched jobs are
// signalled through abortC so the running worker can terminate the task.
func (p *Pool) abort(j *job) {
	p.mu.Lock()
	if j.aborted {
		p.mu.Unlock()
		return
	}
	j.aborted = true
	_, dispatched := p.inFlight[j.task.ID]
	p.mu.Unlock()

	close(j.abortC)
	if !dispatched {
		select {
		case j.resultC <- Outcome{Status: Cancelled, Err: apierr.New(apierr.Cancelled, "task cancelled before dispatch")}:
		default:
		}
	}
}

// workerLoop is a single worker's lifetime: pull a job, run it with a
// timeout and abort awareness, deliver the outcome, repeat until the pool
// shuts down or the worker idles out above MinWorkers.
func (p *Pool) workerLoop() {
	idle := p.cfg.IdleTimeout
	if idle <= 0 {
		idle = 30 * time.Second
	}
	timer := time.NewTimer(idle)
	defer timer.Stop()

	for {
		select {
		case j, ok := <-p.jobs:
			if !ok {
				return
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			if retire := p.runJob(j); retire {
				p.retireWorker()
				return
			}
			timer.Reset(idle)
		case <-timer.C:
			p.mu.Lock()
			if p.live > p.cfg.MinWorkers && !p.shutdown {
				p.live--
				p.mu.Unlock()
				return
			}
			p.mu.Unlock()
			timer.Reset(idle)
		case <-p.doneC:
			return
		}
	}
}

// runJob executes a single job to completion, crash-recovery included. It
// reports retire=true when the worker that ran it must be terminated —
// a crash, a timeout, or an abort that landed mid-execution — so the
// caller can free its slot and spawn a replacement.
func (p *Pool) runJob(j *job) (retire bool) {
	p.mu.Lock()
	p.inFlight[j.task.ID] = j
	waitTime := time.Since(j.task.created)
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		delete(p.inFlight, j.task.ID)
		p.mu.Unlock()
	}()

	select {
	case <-j.abortC:
		select {
		case j.resultC <- Outcome{Status: Cancelled, Err: apierr.New(apierr.Cancelled, "task aborted")}:
		default:
		}
		return false
	default:
	}

	start := time.Now()
	outcome, retire := p.executeWithRecovery(j)
	runtime := time.Since(start)

	p.mu.Lock()
	p.completed++
	p.runtimeSum += runtime
	p.waitSum += waitTime
	p.mu.Unlock()

	metrics.WorkerPoolCompleted.Inc()
	select {
	case j.resultC <- outcome:
	default:
	}
	return retire
}

// executeWithRecovery runs the task body, converting a panic into
// WORKER_CRASH and a context deadline into TIMEOUT. The task body runs in
// its own goroutine guarded by p.sem: on a timeout or abort that
// goroutine is abandoned (Run takes no context it can react to) but its
// semaphore slot isn't released until it actually returns, which is what
// keeps total concurrent executions capped at MaxWorkers even while an
// abandoned run is still using CPU. The TaskTimeout clock starts once the
// slot is acquired, so time spent waiting for it is not charged to the task.
func (p *Pool) executeWithRecovery(j *job) (outcome Outcome, retire bool) {
	if err := p.sem.Acquire(context.Background(), 1); err != nil {
		return Outcome{Status: Failed, Err: apierr.New(apierr.InternalError, err.Error())}, true
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.cfg.TaskTimeout)
	defer cancel()

	done := make(chan Outcome, 1)
	go func() {
		defer p.sem.Release(1)
		defer func() {
			if r := recover(); r != nil {
				metrics.WorkerPoolCrashes.Inc()
				done <- Outcome{Status: Failed, Err: apierr.Newf(apierr.WorkerCrash, "worker crashed: %v", r)}
			}
		}()
		value, err := j.task.Run(ctx)
		if err != nil {
			done <- Outcome{Status: Failed, Err: apierr.New(apierr.InternalError, err.Error())}
			return
		}
		done <- Outcome{Status: Completed, Value: value}
	}()

	select {
	case outcome = <-done:
		return outcome, outcome.Status == Failed && outcome.Err != nil && outcome.Err.Code == apierr.WorkerCrash
	case <-ctx.Done():
		return Outcome{Status: TimedOut, Err: apierr.New(apierr.Timeout, "task exceeded its timeout")}, true
	case <-j.abortC:
		return Outcome{Status: Cancelled, Err: apierr.New(apierr.Cancelled, "task aborted during execution")}, true
	}
}

// retireWorker terminates the calling worker's slot and, unless the pool
// is shutting down, spawns a replacement to keep live at its prior count.
func (p *Pool) retireWorker() {
	p.mu.Lock()
	p.live--
	shutdown := p.shutdown
	p.mu.Unlock()
	if !shutdown {
		p.spawnWorker()
	}
}

// Stats reports the observability surface outlined below
type Stats struct {
	Completed   int64
	Active      int
	Queued      int
	Utilization float64
	AvgRuntimeMs float64
	AvgWaitMs    float64
}

func (p *Pool) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	active := len(p.inFlight)
	queued := len(p.jobs)
	util := 0.0
	if p.live > 0 {
		util = float64(active) / float64(p.live)
	}
	avgRuntime, avgWait := 0.0, 0.0
	if p.completed > 0 {
		avgRuntime = float64(p.runtimeSum.Milliseconds()) / float64(p.completed)
		avgWait = float64(p.waitSum.Milliseconds()) / float64(p.completed)
	}
	return Stats{
		Completed:    p.completed,
		Active:       active,
		Queued:       queued,
		Utilization:  util,
		AvgRuntimeMs: avgRuntime,
		AvgWaitMs:    avgWait,
	}
}

// Healthy reports false when utilization or queue pressure cross a
// configured threshold.
func (p *Pool) Healthy() bool {
	s := p.Stats()
	if s.Utilization >= 0.95 {
		return false
	}
	if float64(s.Queued) >= float64(p.cfg.MaxQueue)*0.9 {
		return false
	}
	return true
}

// Shutdown stops accepting submissions, waits up to DrainTimeout for
// in-flight tasks to finish, then force-terminates remaining workers.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	if p.shutdown {
		p.mu.Unlock()
		return
	}
	p.shutdown = true
	close(p.jobs)
	p.mu.Unlock()

	drained := make(chan struct{})
	go func() {
		p.eg.Wait()
		close(drained)
	}()

	drainTimeout := p.cfg.DrainTimeout
	if drainTimeout <= 0 {
		drainTimeout = 10 * time.Second
	}
	select {
	case <-drained:
	case <-time.After(drainTimeout):
		close(p.doneC)
	}
}
