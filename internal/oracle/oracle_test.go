package oracle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cutstock/core/internal/algorithm"
)

func TestNoop_NeverRecommends(t *testing.T) {
	var o Oracle = Noop{}
	rec := o.SelectAlgorithm(Features{Is1D: true, TotalPieceCount: 100})
	assert.Emptyf(t, rec.Algorithm, "expected no recommendation from Noop, got %+v", rec)
	assert.Zero(t, rec.Confidence)
	o.RecordOutcome("p1", 10, 100)
}

func TestHeuristic_PrefersBFDForVariedBatches(t *testing.T) {
	var o Oracle = Heuristic{}
	rec := o.SelectAlgorithm(Features{Is1D: true, UniquePieceCount: 5, PieceAreaVariance: 120})
	assert.Equal(t, algorithm.NameBFD1D, rec.Algorithm)
}

func TestHeuristic_DefaultsToFFDForUniformBatches(t *testing.T) {
	var o Oracle = Heuristic{}
	rec := o.SelectAlgorithm(Features{Is1D: true, UniquePieceCount: 1, PieceAreaVariance: 0})
	assert.Equal(t, algorithm.NameFFD1D, rec.Algorithm)
}

func TestHeuristic_PrefersGuillotineForLargeBatches(t *testing.T) {
	var o Oracle = Heuristic{}
	rec := o.SelectAlgorithm(Features{Is1D: false, TotalPieceCount: 50})
	assert.Equal(t, algorithm.NameGuillotine2D, rec.Algorithm)
}

func TestVariance_Empty(t *testing.T) {
	assert.Zero(t, Variance(nil))
}

func TestVariance_ConstantValuesHaveZeroVariance(t *testing.T) {
	assert.Zero(t, Variance([]float64{5, 5, 5}))
}

func TestAspectRatio_NormalizesToAtLeastOne(t *testing.T) {
	assert.Equal(t, 2.0, AspectRatio(200, 100))
	assert.Equalf(t, 2.0, AspectRatio(100, 200), "expected normalized 2")
}
