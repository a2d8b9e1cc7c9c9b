// Package executor implements the strategy executor: it resolves
// defaults, validates parameters, looks up the named algorithm in the
// registry, times the run, and converts algorithm failures into the
// boundary error envelope.
package executor

import (
	"time"

	"github.com/cutstock/core/internal/algorithm"
	"github.com/cutstock/core/internal/apierr"
	"github.com/cutstock/core/internal/domain"
)

// Defaults applied when the caller leaves a parameter unset.
const (
	DefaultAlgorithm1D   = algorithm.NameFFD1D
	DefaultAlgorithm2D   = algorithm.NameBottomLeft2D
	DefaultKerf          = 3
	DefaultMinUsableWaste = 50
	DefaultAllowRotation = true
	MaxKerf              = 20
)

// Params is the caller-supplied subset of the `parameters` object
// relevant to a single algorithm execution.
type Params struct {
	Algorithm      string
	Kerf           *int
	MinUsableWaste *int
	AllowRotation  *bool
	GuillotineOnly bool
}

// Outcome is the executor's result envelope: {success, result,
// algorithmName, elapsedMs, error?}
type Outcome struct {
	Success       bool
	Result        domain.PackingResult
	AlgorithmName string
	ElapsedMs     int64
	Err           *apierr.Error
}

// resolveOptions applies defaults and validates the given parameters,
// returning the fully-resolved domain.Options or a VALIDATION_ERROR.
func resolveOptions(p Params) (domain.Options, *apierr.Error) {
	opts := domain.Options{
		Kerf:           DefaultKerf,
		MinUsableWaste: DefaultMinUsableWaste,
		AllowRotation:  DefaultAllowRotation,
		GuillotineOnly: p.GuillotineOnly,
	}
	if p.Kerf != nil {
		opts.Kerf = *p.Kerf
	}
	if p.MinUsableWaste != nil {
		opts.MinUsableWaste = *p.MinUsableWaste
	}
	if p.AllowRotation != nil {
		opts.AllowRotation = *p.AllowRotation
	}

	if opts.Kerf < 0 || opts.Kerf > MaxKerf {
		return opts, apierr.Newf(apierr.ValidationError, "kerf must be within [0, %d], got %d", MaxKerf, opts.Kerf)
	}
	if opts.MinUsableWaste < 0 {
		return opts, apierr.New(apierr.ValidationError, "minUsableWaste must be >= 0")
	}
	return opts, nil
}

// Execute1D resolves the named (or default) 1D algorithm, validates
// parameters, and runs it, returning a timed Outcome.
func Execute1D(pieces []domain.Piece1D, stock []domain.Stock1D, p Params) Outcome {
	name := p.Algorithm
	if name == "" {
		name = DefaultAlgorithm1D
	}

	opts, verr := resolveOptions(p)
	if verr != nil {
		return Outcome{Success: false, AlgorithmName: name, Err: verr}
	}

	alg, err := algorithm.Lookup1D(name)
	if err != nil {
		return Outcome{Success: false, AlgorithmName: name, Err: apierr.New(apierr.UnknownAlgorithm, err.Error())}
	}

	start := time.Now()
	result, runErr := safeExecute1D(alg, pieces, stock, opts)
	elapsed := time.Since(start)

	if runErr != nil {
		return Outcome{
			Success:       false,
			AlgorithmName: name,
			ElapsedMs:     elapsed.Milliseconds(),
			Err:           apierr.New(apierr.InternalError, runErr.Error()),
		}
	}
	return Outcome{
		Success:       true,
		Result:        result,
		AlgorithmName: name,
		ElapsedMs:     elapsed.Milliseconds(),
	}
}

// Execute2D mirrors Execute1D for the 2D algorithm family.
func Execute2D(pieces []domain.Piece2D, stock []domain.Stock2D, p Params) Outcome {
	name := p.Algorithm
	if name == "" {
		name = DefaultAlgorithm2D
	}

	opts, verr := resolveOptions(p)
	if verr != nil {
		return Outcome{Success: false, AlgorithmName: name, Err: verr}
	}

	alg, err := algorithm.Lookup2D(name)
	if err != nil {
		return Outcome{Success: false, AlgorithmName: name, Err: apierr.New(apierr.UnknownAlgorithm, err.Error())}
	}

	start := time.Now()
	result, runErr := safeExecute2D(alg, pieces, stock, opts)
	elapsed := time.Since(start)

	if runErr != nil {
		return Outcome{
			Success:       false,
			AlgorithmName: name,
			ElapsedMs:     elapsed.Milliseconds(),
			Err:           apierr.New(apierr.InternalError, runErr.Error()),
		}
	}
	return Outcome{
		Success:       true,
		Result:        result,
		AlgorithmName: name,
		ElapsedMs:     elapsed.Milliseconds(),
	}
}

// safeExecute1D converts an algorithm-layer panic into an error:
// invariant violations inside an algorithm are never silently corrected,
// but they also must not crash the executor's caller.
func safeExecute1D(alg algorithm.Algorithm1D, pieces []domain.Piece1D, stock []domain.Stock1D, opts domain.Options) (result domain.PackingResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &panicError{value: r}
		}
	}()
	return alg.Execute(pieces, stock, opts)
}

func safeExecute2D(alg algorithm.Algorithm2D, pieces []domain.Piece2D, stock []domain.Stock2D, opts domain.Options) (result domain.PackingResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &panicError{value: r}
		}
	}()
	return alg.Execute(pieces, stock, opts)
}

type panicError struct{ value any }

func (p *panicError) Error() string {
	return "algorithm panicked: " + formatPanic(p.value)
}

func formatPanic(v any) string {
	if err, ok := v.(error); ok {
		return err.Error()
	}
	if s, ok := v.(string); ok {
		return s
	}
	return "unrecognized panic value"
}
