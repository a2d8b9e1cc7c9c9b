package engine

import (
	"context"
	"fmt"

	"github.com/cutstock/core/internal/executor"
)

// Scenario names a parameter set to try against the same job.
type Scenario struct {
	Name   string
	Params executor.Params
}

// ComparisonResult pairs a Scenario with the Output RunOptimization
// produced for it, plus the summary figures a caller would otherwise
// have to recompute from Plan itself.
type ComparisonResult struct {
	Scenario      Scenario
	Output        Output
	StockUsed     int
	WastePercent  float64
	UnplacedCount int
}

// CompareScenarios runs the same job through each scenario's parameters
// and reports side-by-side results. Each scenario gets a full
// RunOptimization pass, including oracle consultation, event publication,
// and worker pool dispatch.
func (e *Engine) CompareScenarios(ctx context.Context, baseReq Request, scenarios []Scenario) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))
	for _, scenario := range scenarios {
		req := baseReq
		req.Params = scenario.Params
		req.ScenarioID = baseReq.ScenarioID + ":" + scenario.Name

		out := e.RunOptimization(ctx, req)
		results = append(results, ComparisonResult{
			Scenario:      scenario,
			Output:        out,
			StockUsed:     out.Plan.StockUsedCount,
			WastePercent:  out.Plan.WastePercentage,
			UnplacedCount: out.Plan.UnplacedCount,
		})
	}
	return results
}

// BuildDefaultScenarios1D generates what-if variants of a base 1D
// parameter set: the alternate algorithm, a halved kerf, and the base
// settings unmodified.
func BuildDefaultScenarios1D(base executor.Params) []Scenario {
	scenarios := []Scenario{{Name: "current", Params: base}}

	alt := base
	if base.Algorithm == executor.DefaultAlgorithm1D || base.Algorithm == "" {
		alt.Algorithm = "1D_BFD"
		scenarios = append(scenarios, Scenario{Name: "bfd", Params: alt})
	} else {
		alt.Algorithm = executor.DefaultAlgorithm1D
		scenarios = append(scenarios, Scenario{Name: "ffd", Params: alt})
	}

	if base.Kerf != nil && *base.Kerf > 1 {
		tighter := base
		half := *base.Kerf / 2
		tighter.Kerf = &half
		scenarios = append(scenarios, Scenario{Name: fmt.Sprintf("kerf-%dmm", half), Params: tighter})
	}

	return scenarios
}

// BuildDefaultScenarios2D mirrors BuildDefaultScenarios1D for the 2D
// algorithm family.
func BuildDefaultScenarios2D(base executor.Params) []Scenario {
	scenarios := []Scenario{{Name: "current", Params: base}}

	alt := base
	if base.Algorithm == "2D_GUILLOTINE" {
		alt.Algorithm = executor.DefaultAlgorithm2D
		scenarios = append(scenarios, Scenario{Name: "bottom-left", Params: alt})
	} else {
		alt.Algorithm = "2D_GUILLOTINE"
		scenarios = append(scenarios, Scenario{Name: "guillotine", Params: alt})
	}

	return scenarios
}
