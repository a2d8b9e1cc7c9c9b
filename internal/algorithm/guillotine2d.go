package algorithm

import (
	"github.com/cutstock/core/internal/domain"
	"github.com/cutstock/core/internal/geometry"
	"github.com/cutstock/core/internal/piece"
)

// guillotine2D implements maximal-rectangles guillotine split packing:
// every cut runs edge-to-edge across the rectangle it splits, so the
// free-rectangle list always partitions the sheet into axis-aligned,
// mutually exclusive regions.
type guillotine2D struct{}

// Guillotine2D is the registered Guillotine algorithm.
var Guillotine2D Algorithm2D = guillotine2D{}

func (guillotine2D) Name() string                        { return NameGuillotine2D }
func (guillotine2D) Dimensionality() domain.Dimensionality { return domain.TwoD }

func (guillotine2D) Execute(pieces []domain.Piece2D, stock []domain.Stock2D, opts domain.Options) (domain.PackingResult, error) {
	units := piece.Expand2D(pieces)
	if len(units) == 0 {
		return emptyResult2D(units), nil
	}
	sortPieces2DDescending(units)
	stockOrder := sortStock2DDescending(stock)

	remaining := make(map[string]int, len(stockOrder))
	for _, s := range stockOrder {
		remaining[s.ID] = s.Available
	}

	var sheets []*guillotineSheet
	var unplaced []domain.Piece2D

	for _, u := range units {
		placed := false
		for _, sh := range sheets {
			if tryPlaceGuillotine(sh, u, opts) {
				placed = true
				break
			}
		}
		if !placed {
			if sh := openNewSheetGuillotine(&sheets, stockOrder, remaining, u, opts); sh != nil {
				placed = tryPlaceGuillotine(sh, u, opts)
			}
		}
		if !placed {
			unplaced = append(unplaced, u)
		}
	}

	return buildResultGuillotine(sheets, units, unplaced, opts), nil
}

// freeRect is a guillotine-partitioned free region of a sheet.
type freeRect struct {
	x, y, w, h int
}

// guillotineSheet tracks an in-progress sheet's free-rectangle partition.
type guillotineSheet struct {
	stockID     string
	stockWidth  int
	stockHeight int
	free        []freeRect
	placements  []domain.Placement
}

func openNewSheetGuillotine(sheets *[]*guillotineSheet, candidates []domain.Stock2D, remaining map[string]int, u domain.Piece2D, opts domain.Options) *guillotineSheet {
	for _, s := range candidates {
		if remaining[s.ID] <= 0 {
			continue
		}
		// A fresh sheet must admit piece+kerf, as bestShortSideFit requires.
		if !admitsOrientation(s.Width-opts.Kerf, s.Height-opts.Kerf, u, opts) {
			continue
		}
		remaining[s.ID]--
		sh := &guillotineSheet{
			stockID:     s.ID,
			stockWidth:  s.Width,
			stockHeight: s.Height,
			free:        []freeRect{{x: 0, y: 0, w: s.Width, h: s.Height}},
		}
		*sheets = append(*sheets, sh)
		return sh
	}
	return nil
}

// tryPlaceGuillotine selects the free rectangle minimizing the shorter
// leftover side (best-short-side-fit) among those admitting piece+kerf on
// both axes, then splits it width-first: a full-height cut to the right of
// the piece, and a piece-width-only cut above it.
func tryPlaceGuillotine(sh *guillotineSheet, u domain.Piece2D, opts domain.Options) bool {
	for _, o := range geometry.Orientations(u.Width, u.Height, u.CanRotate, opts.AllowRotation) {
		idx, ok := bestShortSideFit(sh.free, o.W, o.H, opts.Kerf)
		if !ok {
			continue
		}
		chosen := sh.free[idx]
		sh.free = append(sh.free[:idx], sh.free[idx+1:]...)
		sh.free = append(sh.free, splitRect(chosen, o.W, o.H, opts.Kerf)...)

		sh.placements = append(sh.placements, domain.Placement{
			PieceID:     u.ID,
			OrderItemID: u.OrderItemID,
			X:           chosen.x,
			Y:           chosen.y,
			Width:       o.W,
			Height:      o.H,
			Rotated:     o.Rotated,
		})
		return true
	}
	return false
}

// bestShortSideFit returns the index of the free rectangle minimizing
// min(leftoverW, leftoverH), considering only rects that admit w+kerf and
// h+kerf. Ties keep the first (lowest-index) candidate for determinism.
func bestShortSideFit(free []freeRect, w, h, kerf int) (int, bool) {
	bestIdx := -1
	bestShortSide := 0
	for i, r := range free {
		if w+kerf > r.w || h+kerf > r.h {
			continue
		}
		leftoverW := r.w - (w + kerf)
		leftoverH := r.h - (h + kerf)
		shortSide := leftoverW
		if leftoverH < shortSide {
			shortSide = leftoverH
		}
		if bestIdx < 0 || shortSide < bestShortSide {
			bestIdx = i
			bestShortSide = shortSide
		}
	}
	return bestIdx, bestIdx >= 0
}

// splitRect performs the width-first guillotine split: a full-height
// right strip, and a piece-width-only top strip. Strips narrower than
// kerf (or non-positive) are discarded.
func splitRect(r freeRect, w, h, kerf int) []freeRect {
	var result []freeRect

	rightW := r.w - (w + kerf)
	if rightW >= kerf && rightW > 0 {
		result = append(result, freeRect{
			x: r.x + w + kerf,
			y: r.y,
			w: rightW,
			h: r.h,
		})
	}

	topH := r.h - (h + kerf)
	if topH >= kerf && topH > 0 {
		result = append(result, freeRect{
			x: r.x,
			y: r.y + h + kerf,
			w: w + kerf,
			h: topH,
		})
	}

	return result
}

func buildResultGuillotine(sheets []*guillotineSheet, units []domain.Piece2D, unplaced []domain.Piece2D, opts domain.Options) domain.PackingResult {
	result := domain.PackingResult{Success: true}

	totalStockArea := 0
	totalUsedArea := 0

	for _, sh := range sheets {
		usedArea := 0
		for _, p := range sh.placements {
			usedArea += p.Width * p.Height
		}
		stockArea := sh.stockWidth * sh.stockHeight
		wasteArea := stockArea - usedArea
		result.Sheets = append(result.Sheets, domain.SheetResult{
			StockID:         sh.stockID,
			StockWidth:      sh.stockWidth,
			StockHeight:     sh.stockHeight,
			Placements:      sh.placements,
			UsedArea:        usedArea,
			WasteArea:       wasteArea,
			WastePercentage: percentage(wasteArea, stockArea),
		})
		result.TotalWaste += wasteArea
		totalStockArea += stockArea
		totalUsedArea += usedArea
	}

	result.StockUsedCount = len(sheets)
	result.Unplaced = aggregateUnplaced2D(unplaced)
	result.TotalWastePercentage = percentage(result.TotalWaste, totalStockArea)
	result.Stats = domain.Stats{
		TotalPieces:      len(units),
		TotalStockExtent: totalStockArea,
		TotalUsedExtent:  totalUsedArea,
		Efficiency:       efficiency(totalUsedArea, totalStockArea),
	}
	return result
}
