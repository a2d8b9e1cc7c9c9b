package algorithm

import (
	"github.com/cutstock/core/internal/domain"
	"github.com/cutstock/core/internal/piece"
)

// ffd1D implements First-Fit Decreasing bar packing.
type ffd1D struct{}

// FFD1D is the registered First-Fit Decreasing algorithm.
var FFD1D Algorithm1D = ffd1D{}

func (ffd1D) Name() string                        { return NameFFD1D }
func (ffd1D) Dimensionality() domain.Dimensionality { return domain.OneD }

func (ffd1D) Execute(pieces []domain.Piece1D, stock []domain.Stock1D, opts domain.Options) (domain.PackingResult, error) {
	units := piece.Expand1D(pieces)
	if len(units) == 0 {
		return emptyResult1D(units), nil
	}
	sortPieces1DDescending(units)
	stockOrder := sortStock1DDescending(stock)

	remaining := make(map[string]int, len(stockOrder))
	for _, s := range stockOrder {
		remaining[s.ID] = s.Available
	}

	var bars []*openBar
	var unplaced []domain.Piece1D

	for _, u := range units {
		target := firstFitBar(bars, u.Length, opts.Kerf)
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

// firstFitBar returns the first active bar (in open order) with enough
// remaining length for the piece, charging a kerf gap only when the bar
// already holds at least one cut.
func firstFitBar(bars []*openBar, length, kerf int) *openBar {
	for _, b := range bars {
		needed := length
		if len(b.cuts) > 0 {
			needed += kerf
		}
		if b.remainingLength >= needed {
			return b
		}
	}
	return nil
}

// openBar tracks an in-progress bar's placement state.
type openBar struct {
	stockID         string
	stockLength     int
	currentPosition int
	remainingLength int
	cuts            []domain.Cut
}

// openNewBar opens a bar from the first qualifying stock family in
// candidateOrder that still has capacity, decrementing its availability.
func openNewBar(bars *[]*openBar, candidateOrder []domain.Stock1D, remaining map[string]int, minLength int) *openBar {
	for _, s := range candidateOrder {
		if s.Length >= minLength && remaining[s.ID] > 0 {
			remaining[s.ID]--
			b := &openBar{stockID: s.ID, stockLength: s.Length, remainingLength: s.Length}
			*bars = append(*bars, b)
			return b
		}
	}
	return nil
}

// placeOnBar appends a cut to the bar, charging the kerf gap before the
// second and later cuts.
func placeOnBar(b *openBar, u domain.Piece1D, kerf int) {
	if len(b.cuts) > 0 {
		b.currentPosition += kerf
		b.remainingLength -= kerf
	}
	b.cuts = append(b.cuts, domain.Cut{
		PieceID:     u.ID,
		OrderItemID: u.OrderItemID,
		Position:    b.currentPosition,
		Length:      u.Length,
	})
	b.currentPosition += u.Length
	b.remainingLength -= u.Length
}

// buildResult1D converts the open bars into a PackingResult, attaching the
// usable-waste marker and aggregate statistics.
func buildResult1D(bars []*openBar, units []domain.Piece1D, unplaced []domain.Piece1D, opts domain.Options) domain.PackingResult {
	result := domain.PackingResult{Success: true}

	totalStockExtent := 0
	totalUsedExtent := 0

	for _, b := range bars {
		waste := b.remainingLength
		usedLength := b.stockLength - waste
		br := domain.BarResult{
			StockID:         b.stockID,
			StockLength:     b.stockLength,
			Cuts:            b.cuts,
			Waste:           waste,
			WastePercentage: percentage(waste, b.stockLength),
		}
		if waste > 0 && waste >= opts.MinUsableWaste {
			br.UsableWaste = &domain.UsableWaste{
				Position: b.currentPosition + opts.Kerf,
				Length:   waste - opts.Kerf,
			}
		}
		result.Bars = append(result.Bars, br)
		result.TotalWaste += waste
		totalStockExtent += b.stockLength
		totalUsedExtent += usedLength
	}

	result.StockUsedCount = len(bars)
	result.Unplaced = aggregateUnplaced1D(unplaced)
	result.TotalWastePercentage = percentage(result.TotalWaste, totalStockExtent)
	result.Stats = domain.Stats{
		TotalPieces:      len(units),
		TotalStockExtent: totalStockExtent,
		TotalUsedExtent:  totalUsedExtent,
		Efficiency:       efficiency(totalUsedExtent, totalStockExtent),
	}
	return result
}

func emptyResult1D(units []domain.Piece1D) domain.PackingResult {
	return domain.PackingResult{
		Success:  false,
		Unplaced: aggregateUnplaced1D(units),
	}
}

func percentage(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return (float64(part) / float64(whole)) * 100.0
}

func efficiency(used, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return (float64(used) / float64(whole)) * 100.0
}
