package algorithm

import (
	"github.com/cutstock/core/internal/domain"
	"github.com/cutstock/core/internal/piece"
)

// bfd1D implements Best-Fit Decreasing bar packing.
type bfd1D struct{}

// BFD1D is the registered Best-Fit Decreasing algorithm.
var BFD1D Algorithm1D = bfd1D{}

func (bfd1D) Name() string                        { return NameBFD1D }
func (bfd1D) Dimensionality() domain.Dimensionality { return domain.OneD }

func (bfd1D) Execute(pieces []domain.Piece1D, stock []domain.Stock1D, opts domain.Options) (domain.PackingResult, error) {
	units := piece.Expand1D(pieces)
	if len(units) == 0 {
		return emptyResult1D(units), nil
	}
	sortPieces1DDescending(units)

	// BFD prefers the smallest qualifying stock length when opening a new
	// bar, to avoid consuming large bars for small pieces.
	stockOrder := sortStock1DAscending(stock)

	remaining := make(map[string]int, len(stockOrder))
	for _, s := range stockOrder {
		remaining[s.ID] = s.Available
	}

	var bars []*openBar
	var unplaced []domain.Piece1D

	for _, u := range units {
		target := bestFitBar(bars, u.Length, opts.Kerf)
		if target == nil {
			target = openNewBar(&bars, stockOrder, remaining, u.Length)
		}
		if target == nil {
			unplaced = append(unplaced, u)
			continue
		}
		placeOnBar(target, u, opts.Kerf)
	}

	return buildResult1D(bars, units, unplaced, opts), nil
}

// bestFitBar returns the active bar that leaves the smallest remaining
// length after placement, ties broken by bar open order (first found wins).
func bestFitBar(bars []*openBar, length, kerf int) *openBar {
	var best *openBar
	bestLeftover := -1
	for _, b := range bars {
		needed := length
		if len(b.cuts) > 0 {
			needed += kerf
		}
		if b.remainingLength < needed {
			continue
		}
		leftover := b.remainingLength - needed
		if best == nil || leftover < bestLeftover {
			best = b
			bestLeftover = leftover
		}
	}
	return best
}
