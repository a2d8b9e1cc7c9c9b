// Package metrics exposes the Prometheus collectors used to make the
// worker pool and optimization engine observable from outside the
// process, grounding this document's "Observability" contract in a real
// metrics backend rather than ad-hoc counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// WorkerPoolQueued counts successful task submissions.
	WorkerPoolQueued = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "cutstock",
		Subsystem: "workerpool",
		Name:      "tasks_queued_total",
		Help:      "Total number of tasks accepted onto the worker pool queue.",
	})

	// WorkerPoolQueueFull counts submissions rejected with QUEUE_FULL.
	WorkerPoolQueueFull = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "cutstock",
		Subsystem: "workerpool",
		Name:      "queue_full_total",
		Help:      "Total number of task submissions rejected because the queue was saturated.",
	})

	// WorkerPoolCompleted counts tasks that reached a terminal state.
	WorkerPoolCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "cutstock",
		Subsystem: "workerpool",
		Name:      "tasks_completed_total",
		Help:      "Total number of tasks that reached a terminal state (completed, failed, timed out, or cancelled).",
	})

	// WorkerPoolCrashes counts worker-ending panics.
	WorkerPoolCrashes = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "cutstock",
		Subsystem: "workerpool",
		Name:      "worker_crashes_total",
		Help:      "Total number of worker crashes recovered by the pool.",
	})

	// EngineRunsTotal counts optimization runs by outcome label.
	EngineRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cutstock",
		Subsystem: "engine",
		Name:      "runs_total",
		Help:      "Total number of optimization runs, labeled by outcome.",
	}, []string{"outcome"})

	// EngineRunDuration observes optimization run wall-clock duration.
	EngineRunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "cutstock",
		Subsystem: "engine",
		Name:      "run_duration_seconds",
		Help:      "Wall-clock duration of optimization runs.",
		Buckets:   prometheus.DefBuckets,
	})

	// EngineWastePercentage observes the waste percentage of completed runs.
	EngineWastePercentage = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "cutstock",
		Subsystem: "engine",
		Name:      "waste_percentage",
		Help:      "Total waste percentage of completed optimization runs.",
		Buckets:   []float64{1, 5, 10, 15, 20, 30, 40, 50, 75, 100},
	})
)
