// Package oracle implements an optional algorithm recommender the engine
// consults when the caller did not pin an algorithm explicitly.
package oracle

import (
	"math"

	"github.com/cutstock/core/internal/algorithm"
)

// Features is the feature vector the engine derives per scenario before
// consulting the oracle.
type Features struct {
	Is1D                bool
	TotalPieceCount     int
	UniquePieceCount    int
	PieceAreaVariance   float64
	PieceAspectRatioMean float64
	StockCount          int
}

// Recommendation is the oracle's answer: an algorithm name and a
// confidence in [0,1]. Confidence 0 means "no recommendation".
type Recommendation struct {
	Algorithm  string
	Confidence float64
}

// Oracle is the abstract interface the engine depends on. Implementations
// must be side-effect free on the request path; only RecordOutcome may
// have side effects, and those must be fire-and-forget from the caller's
// perspective.
type Oracle interface {
	SelectAlgorithm(f Features) Recommendation
	RecordOutcome(predictionID string, wastePercentage float64, runtimeMs int64)
}

// Noop always declines to recommend. A valid production choice when no
// recommender has been trained yet.
type Noop struct{}

func (Noop) SelectAlgorithm(Features) Recommendation { return Recommendation{} }
func (Noop) RecordOutcome(string, float64, int64)    {}

// Heuristic is a simple stand-in policy: it prefers BFD over FFD when
// piece-length variety is high enough that first-fit's greediness is
// likely to strand more waste, and prefers Guillotine over BLF when the
// batch is large enough that a guillotine-constrained layout is cheaper
// to produce in downstream cutting. It carries no learned state; a real
// deployment would swap this for a trained model behind the same
// interface.
type Heuristic struct{}

func (Heuristic) SelectAlgorithm(f Features) Recommendation {
	if f.Is1D {
		if f.UniquePieceCount >= 3 && f.PieceAreaVariance > 0 {
			return Recommendation{Algorithm: algorithm.NameBFD1D, Confidence: 0.6}
		}
		return Recommendation{Algorithm: algorithm.NameFFD1D, Confidence: 0.5}
	}
	if f.TotalPieceCount >= 20 || f.PieceAspectRatioMean > 2 {
		return Recommendation{Algorithm: algorithm.NameGuillotine2D, Confidence: 0.55}
	}
	return Recommendation{Algorithm: algorithm.NameBottomLeft2D, Confidence: 0.5}
}

func (Heuristic) RecordOutcome(string, float64, int64) {}

// AspectRatio computes width/height normalized to be >= 1, for building a
// Features.PieceAspectRatioMean from raw piece dimensions.
func AspectRatio(width, height int) float64 {
	if width <= 0 || height <= 0 {
		return 1
	}
	w, h := float64(width), float64(height)
	if w < h {
		w, h = h, w
	}
	return w / h
}

// Variance computes the population variance of a float64 sample, for
// building Features.PieceAreaVariance from expanded piece areas.
func Variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	sumSq := 0.0
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return sumSq / float64(len(values))
}

// clampConfidence keeps a confidence value within [0,1] for implementations
// that derive it from an unbounded score.
func clampConfidence(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
