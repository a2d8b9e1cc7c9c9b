package algorithm

import (
	"github.com/cutstock/core/internal/domain"
	"github.com/cutstock/core/internal/geometry"
	"github.com/cutstock/core/internal/piece"
)

// blf2D implements Bottom-Left Fill 2D sheet packing.
type blf2D struct{}

// BottomLeftFill2D is the registered Bottom-Left Fill algorithm.
var BottomLeftFill2D Algorithm2D = blf2D{}

func (blf2D) Name() string                        { return NameBottomLeft2D }
func (blf2D) Dimensionality() domain.Dimensionality { return domain.TwoD }

func (blf2D) Execute(pieces []domain.Piece2D, stock []domain.Stock2D, opts domain.Options) (domain.PackingResult, error) {
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

	var sheets []*openSheet
	var unplaced []domain.Piece2D

	for _, u := range units {
		placed := false
		for _, sh := range sheets {
			if tryPlaceBLF(sh, u, opts) {
				placed = true
				break
			}
		}
		if !placed {
			if sh := openNewSheetBLF(&sheets, stockOrder, remaining, u, opts); sh != nil {
				placed = tryPlaceBLF(sh, u, opts)
			}
		}
		if !placed {
			unplaced = append(unplaced, u)
		}
	}

	return buildResult2D(sheets, units, unplaced, opts), nil
}

// openSheet tracks an in-progress sheet's skyline and placements.
type openSheet struct {
	stockID     string
	stockWidth  int
	stockHeight int
	sky         *skyline
	placements  []domain.Placement
}

func openNewSheetBLF(sheets *[]*openSheet, candidates []domain.Stock2D, remaining map[string]int, u domain.Piece2D, opts domain.Options) *openSheet {
	for _, s := range candidates {
		if remaining[s.ID] <= 0 {
			continue
		}
		if !admitsOrientation(s.Width, s.Height, u, opts) {
			continue
		}
		remaining[s.ID]--
		sh := &openSheet{
			stockID:     s.ID,
			stockWidth:  s.Width,
			stockHeight: s.Height,
			sky:         newSkyline(s.Width, s.Height),
		}
		*sheets = append(*sheets, sh)
		return sh
	}
	return nil
}

// admitsOrientation reports whether at least one orientation of u could
// ever fit within a sheetW x sheetH sheet (ignoring current occupancy).
func admitsOrientation(sheetW, sheetH int, u domain.Piece2D, opts domain.Options) bool {
	for _, o := range geometry.Orientations(u.Width, u.Height, u.CanRotate, opts.AllowRotation) {
		if o.W <= sheetW && o.H <= sheetH {
			return true
		}
	}
	return false
}

// tryPlaceBLF attempts natural orientation first, then the 90-degree
// rotation if allowed,
func tryPlaceBLF(sh *openSheet, u domain.Piece2D, opts domain.Options) bool {
	for _, o := range geometry.Orientations(u.Width, u.Height, u.CanRotate, opts.AllowRotation) {
		x, y, ok := sh.sky.candidatePosition(o.W, o.H)
		if !ok {
			continue
		}
		sh.sky.occupy(inflatedRect(x, y, o.W, o.H, opts.Kerf, sh.stockWidth, sh.stockHeight))
		sh.placements = append(sh.placements, domain.Placement{
			PieceID:     u.ID,
			OrderItemID: u.OrderItemID,
			X:           x,
			Y:           y,
			Width:       o.W,
			Height:      o.H,
			Rotated:     o.Rotated,
		})
		return true
	}
	return false
}

// inflatedRect returns the kerf-inflated footprint to register with the
// skyline, clamped to the sheet bounds.
func inflatedRect(x, y, w, h, kerf, boundW, boundH int) (ix, iy, iw, ih int) {
	ix = x - kerf
	if ix < 0 {
		ix = 0
	}
	iy = y - kerf
	if iy < 0 {
		iy = 0
	}
	right := x + w + kerf
	if right > boundW {
		right = boundW
	}
	top := y + h + kerf
	if top > boundH {
		top = boundH
	}
	return ix, iy, right - ix, top - iy
}

func buildResult2D(sheets []*openSheet, units []domain.Piece2D, unplaced []domain.Piece2D, opts domain.Options) domain.PackingResult {
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

func emptyResult2D(units []domain.Piece2D) domain.PackingResult {
	return domain.PackingResult{
		Success:  false,
		Unplaced: aggregateUnplaced2D(units),
	}
}
