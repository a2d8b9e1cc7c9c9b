// Package engine implements the optimization engine orchestrator: it
// loads a job and compatible stock, classifies the job as 1D or 2D,
// optionally consults the policy oracle, dispatches to the worker pool
// (falling back to in-process execution on pool error), converts the
// packing result to plan data, reports the outcome to the oracle, and
// emits lifecycle events.
package engine

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/cutstock/core/internal/apierr"
	"github.com/cutstock/core/internal/domain"
	"github.com/cutstock/core/internal/events"
	"github.com/cutstock/core/internal/executor"
	"github.com/cutstock/core/internal/logging"
	"github.com/cutstock/core/internal/metrics"
	"github.com/cutstock/core/internal/oracle"
	"github.com/cutstock/core/internal/plan"
	"github.com/cutstock/core/internal/store"
	"github.com/cutstock/core/internal/workerpool"
)

// maxSubmitRetries bounds how many times dispatch{1D,2D} will back off and
// retry a QUEUE_FULL submission before giving up and falling through to
// the caller's existing inline-fallback/workersOnly handling.
const maxSubmitRetries = 5

// Request is the input to RunOptimization: the job to optimize and the
// parameters and constraints to apply.
type Request struct {
	JobID      string
	ScenarioID string
	Params     executor.Params
	MaterialTypeID string
	Thickness      float64
	SelectedStockIDs []string
	WorkersOnly bool
}

// Output is the result of a single RunOptimization call.
type Output struct {
	Success bool
	Plan    plan.Data
	Err     *apierr.Error
}

// Engine wires together the collaborators RunOptimization needs. Every
// field is an interface or a value the caller constructs explicitly —
// no hidden globals.
type Engine struct {
	Jobs   store.JobStore
	Stock  store.StockStore
	Pool   *workerpool.Pool
	Bus    events.Bus
	Oracle oracle.Oracle
	// Limiter paces retries when Pool.Submit reports QUEUE_FULL, instead
	// of hammering the pool with back-to-back submissions while it drains.
	Limiter *rate.Limiter
	planSeq func() int
}

// New constructs an Engine. oracleImpl may be oracle.Noop{} when the
// policy oracle is disabled.
func New(jobs store.JobStore, stock store.StockStore, pool *workerpool.Pool, bus events.Bus, oracleImpl oracle.Oracle) *Engine {
	if oracleImpl == nil {
		oracleImpl = oracle.Noop{}
	}
	seq := 0
	return &Engine{
		Jobs: jobs, Stock: stock, Pool: pool, Bus: bus, Oracle: oracleImpl,
		Limiter: rate.NewLimiter(rate.Every(5*time.Millisecond), 1),
		planSeq: func() int { seq++; return seq },
	}
}

// RunOptimization loads the job and stock, runs the algorithm, and
// records the outcome for a single scenario.
func (e *Engine) RunOptimization(ctx context.Context, req Request) Output {
	logger := logging.From(ctx)
	if req.ScenarioID == "" {
		req.ScenarioID = uuid.NewString()
	}
	start := time.Now()

	e.Bus.Publish(events.NewEvent(req.ScenarioID, events.Started, events.StartedPayload{
		JobID: req.JobID, StartedAt: start,
	}))

	job, err := e.Jobs.LoadJob(ctx, req.JobID)
	if err != nil {
		return e.fail(req, err, logger)
	}

	if len(job.Items) == 0 {
		metrics.EngineRunsTotal.WithLabelValues("empty").Inc()
		out := Output{Success: true, Plan: plan.Data{}}
		e.completeEvent(req, out.Plan)
		return out
	}

	is1D := job.Items[0].GeometryType != domain.Geometry2D

	filter := domain.StockFilter{
		MaterialTypeID:   req.MaterialTypeID,
		Thickness:        req.Thickness,
		SelectedStockIDs: req.SelectedStockIDs,
	}

	var out Output
	if is1D {
		out = e.run1D(ctx, req, job, filter, logger)
	} else {
		out = e.run2D(ctx, req, job, filter, logger)
	}

	elapsed := time.Since(start)
	metrics.EngineRunDuration.Observe(elapsed.Seconds())
	if out.Success {
		metrics.EngineRunsTotal.WithLabelValues("success").Inc()
		metrics.EngineWastePercentage.Observe(out.Plan.WastePercentage)
	} else {
		metrics.EngineRunsTotal.WithLabelValues("failure").Inc()
	}
	return out
}

func (e *Engine) run1D(ctx context.Context, req Request, job domain.Job, filter domain.StockFilter, logger interface {
	Warn(string, ...any)
}) Output {
	stock, err := e.Stock.LoadStock1D(ctx, filter)
	if err != nil {
		return e.fail(req, err, logger)
	}
	if len(stock) == 0 {
		return e.fail(req, apierr.New(apierr.NoStock, "no compatible 1D stock available"), logger)
	}

	pieces := make([]domain.Piece1D, 0, len(job.Items))
	for _, item := range job.Items {
		pieces = append(pieces, domain.Piece1D{
			ID: item.ID, Length: item.Length, Quantity: item.Quantity, OrderItemID: item.OrderItemID,
		})
	}

	params := e.enrichParams1D(req.Params, pieces, stock)
	predictionID := uuid.NewString()
	runStart := time.Now()

	out := e.dispatch1D(ctx, pieces, stock, params, req.WorkersOnly)
	if !out.Success {
		return e.fail(req, out.Err, logger)
	}

	planData := plan.FromPackingResult1D(out.Result)
	e.Oracle.RecordOutcome(predictionID, planData.WastePercentage, time.Since(runStart).Milliseconds())
	e.completeEvent(req, planData)
	return Output{Success: true, Plan: planData}
}

func (e *Engine) run2D(ctx context.Context, req Request, job domain.Job, filter domain.StockFilter, logger interface {
	Warn(string, ...any)
}) Output {
	stock, err := e.Stock.LoadStock2D(ctx, filter)
	if err != nil {
		return e.fail(req, err, logger)
	}
	if len(stock) == 0 {
		return e.fail(req, apierr.New(apierr.NoStock, "no compatible 2D stock available"), logger)
	}

	pieces := make([]domain.Piece2D, 0, len(job.Items))
	for _, item := range job.Items {
		pieces = append(pieces, domain.Piece2D{
			ID: item.ID, Width: item.Width, Height: item.Height, Quantity: item.Quantity,
			OrderItemID: item.OrderItemID, CanRotate: item.CanRotate,
		})
	}

	params := e.enrichParams2D(req.Params, pieces, stock)
	predictionID := uuid.NewString()
	runStart := time.Now()

	out := e.dispatch2D(ctx, pieces, stock, params, req.WorkersOnly)
	if !out.Success {
		return e.fail(req, out.Err, logger)
	}

	planData := plan.FromPackingResult2D(out.Result)
	e.Oracle.RecordOutcome(predictionID, planData.WastePercentage, time.Since(runStart).Milliseconds())
	e.completeEvent(req, planData)
	return Output{Success: true, Plan: planData}
}

// enrichParams1D asks the oracle for an algorithm recommendation when
// none is pinned, falling back to 1D_FFD on any oracle non-answer.
func (e *Engine) enrichParams1D(p executor.Params, pieces []domain.Piece1D, stock []domain.Stock1D) executor.Params {
	if p.Algorithm != "" {
		return p
	}
	features := oracle.Features{Is1D: true, TotalPieceCount: sumQty1D(pieces), UniquePieceCount: len(pieces), StockCount: len(stock)}
	rec := e.Oracle.SelectAlgorithm(features)
	if rec.Algorithm == "" {
		p.Algorithm = executor.DefaultAlgorithm1D
		return p
	}
	p.Algorithm = rec.Algorithm
	return p
}

// enrichParams2D mirrors enrichParams1D, falling back to 2D_GUILLOTINE —
// the historical safe default.
func (e *Engine) enrichParams2D(p executor.Params, pieces []domain.Piece2D, stock []domain.Stock2D) executor.Params {
	if p.Algorithm != "" {
		return p
	}
	features := oracle.Features{Is1D: false, TotalPieceCount: sumQty2D(pieces), UniquePieceCount: len(pieces), StockCount: len(stock)}
	rec := e.Oracle.SelectAlgorithm(features)
	if rec.Algorithm == "" {
		p.Algorithm = "2D_GUILLOTINE"
		return p
	}
	p.Algorithm = rec.Algorithm
	return p
}

func sumQty1D(pieces []domain.Piece1D) int {
	total := 0
	for _, p := range pieces {
		total += p.Quantity
	}
	return total
}

func sumQty2D(pieces []domain.Piece2D) int {
	total := 0
	for _, p := range pieces {
		total += p.Quantity
	}
	return total
}

// submitWithBackoff submits task to the pool, retrying through a rate
// limiter while the pool reports QUEUE_FULL rather than giving up (or
// falling back inline) on the first transient saturation.
func (e *Engine) submitWithBackoff(ctx context.Context, task workerpool.Task) (<-chan workerpool.Outcome, *apierr.Error) {
	var lastErr *apierr.Error
	for attempt := 0; attempt <= maxSubmitRetries; attempt++ {
		resultC, _, err := e.Pool.Submit(task)
		if err == nil {
			return resultC, nil
		}
		lastErr = err
		if err.Code != apierr.QueueFull || attempt == maxSubmitRetries {
			return nil, err
		}
		if waitErr := e.Limiter.Wait(ctx); waitErr != nil {
			return nil, apierr.New(apierr.QueueFull, waitErr.Error())
		}
	}
	return nil, lastErr
}

// dispatch1D prefers the worker pool, falling back to inline execution on
// any pool error unless the caller required workersOnly. Both paths run
// the identical executor.Execute1D call, so they yield bit-identical
// results for identical inputs.
func (e *Engine) dispatch1D(ctx context.Context, pieces []domain.Piece1D, stock []domain.Stock1D, params executor.Params, workersOnly bool) executor.Outcome {
	if e.Pool == nil {
		return executor.Execute1D(pieces, stock, params)
	}

	resultC, submitErr := e.submitWithBackoff(ctx, workerpool.Task{
		ID:   uuid.NewString(),
		Kind: "1D",
		Run: func(ctx context.Context) (any, error) {
			out := executor.Execute1D(pieces, stock, params)
			if !out.Success {
				return nil, out.Err
			}
			return out, nil
		},
	})
	if submitErr != nil {
		if workersOnly {
			return executor.Outcome{Success: false, Err: submitErr}
		}
		return executor.Execute1D(pieces, stock, params)
	}

	poolOutcome := <-resultC
	if poolOutcome.Status != workerpool.Completed {
		if workersOnly {
			return executor.Outcome{Success: false, Err: poolOutcome.Err}
		}
		return executor.Execute1D(pieces, stock, params)
	}
	return poolOutcome.Value.(executor.Outcome)
}

func (e *Engine) dispatch2D(ctx context.Context, pieces []domain.Piece2D, stock []domain.Stock2D, params executor.Params, workersOnly bool) executor.Outcome {
	if e.Pool == nil {
		return executor.Execute2D(pieces, stock, params)
	}

	resultC, submitErr := e.submitWithBackoff(ctx, workerpool.Task{
		ID:   uuid.NewString(),
		Kind: "2D",
		Run: func(ctx context.Context) (any, error) {
			out := executor.Execute2D(pieces, stock, params)
			if !out.Success {
				return nil, out.Err
			}
			return out, nil
		},
	})
	if submitErr != nil {
		if workersOnly {
			return executor.Outcome{Success: false, Err: submitErr}
		}
		return executor.Execute2D(pieces, stock, params)
	}

	poolOutcome := <-resultC
	if poolOutcome.Status != workerpool.Completed {
		if workersOnly {
			return executor.Outcome{Success: false, Err: poolOutcome.Err}
		}
		return executor.Execute2D(pieces, stock, params)
	}
	return poolOutcome.Value.(executor.Outcome)
}

func (e *Engine) completeEvent(req Request, planData plan.Data) {
	e.Bus.Publish(events.NewEvent(req.ScenarioID, events.Completed, events.CompletedPayload{
		PlanID:          req.ScenarioID,
		PlanNumber:      e.planSeq(),
		TotalWaste:      planData.TotalWaste,
		WastePercentage: planData.WastePercentage,
		StockUsedCount:  planData.StockUsedCount,
		CompletedAt:     time.Now().UTC(),
	}))
}

func (e *Engine) fail(req Request, err error, logger interface {
	Warn(string, ...any)
}) Output {
	ae, ok := err.(*apierr.Error)
	if !ok {
		ae = apierr.New(apierr.InternalError, err.Error())
	}
	if logger != nil {
		logger.Warn("optimization run failed", "scenarioId", req.ScenarioID, "code", ae.Code, "message", ae.Message)
	}
	e.Bus.Publish(events.NewEvent(req.ScenarioID, events.Failed, events.FailedPayload{
		Error: ae.Error(), FailedAt: time.Now().UTC(),
	}))
	return Output{Success: false, Err: ae}
}
