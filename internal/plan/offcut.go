package plan

import (
	"github.com/cutstock/core/internal/domain"
)

// MinOffcutDimension is the minimum width or height, in millimeters, for
// a remnant region to be worth recording as a reusable offcut.
const MinOffcutDimension = 50

// MinOffcutArea is the minimum area, in square millimeters, for a remnant
// to be considered usable rather than scrap.
const MinOffcutArea = 10000

// Offcut is a reusable rectangular remnant left over on a sheet after
// packing, as found by DetectOffcuts — the 2D analogue of a bar's
// usableWaste marker, which the 1D layout carries inline. Offcuts are not
// part of plan.Data.
type Offcut struct {
	SheetID string
	X, Y    int
	Width   int
	Height  int
}

// Area returns the offcut's area in square millimeters.
func (o Offcut) Area() int { return o.Width * o.Height }

// DetectOffcuts finds the largest unused right-hand and top strips of a
// packed sheet. It is a bounding-box approximation, not an exhaustive
// maximal-rectangle search: it reports the two strips outside every
// placement's bounding box, which is sufficient for guillotine-style
// layouts where the free area after the last cut is already strip-shaped.
func DetectOffcuts(sheet domain.SheetResult) []Offcut {
	if len(sheet.Placements) == 0 {
		if sheet.StockWidth >= MinOffcutDimension && sheet.StockHeight >= MinOffcutDimension &&
			sheet.StockWidth*sheet.StockHeight >= MinOffcutArea {
			return []Offcut{{SheetID: sheet.StockID, Width: sheet.StockWidth, Height: sheet.StockHeight}}
		}
		return nil
	}

	maxRight, maxBottom := 0, 0
	for _, p := range sheet.Placements {
		if right := p.X + p.Width; right > maxRight {
			maxRight = right
		}
		if bottom := p.Y + p.Height; bottom > maxBottom {
			maxBottom = bottom
		}
	}

	var offcuts []Offcut

	rightW := sheet.StockWidth - maxRight
	if qualifies(rightW, sheet.StockHeight) {
		offcuts = append(offcuts, Offcut{
			SheetID: sheet.StockID,
			X:       maxRight,
			Y:       0,
			Width:   rightW,
			Height:  sheet.StockHeight,
		})
	}

	topH := sheet.StockHeight - maxBottom
	if qualifies(sheet.StockWidth, topH) {
		offcuts = append(offcuts, Offcut{
			SheetID: sheet.StockID,
			X:       0,
			Y:       maxBottom,
			Width:   sheet.StockWidth,
			Height:  topH,
		})
	}

	return offcuts
}

func qualifies(w, h int) bool {
	return w >= MinOffcutDimension && h >= MinOffcutDimension && w*h >= MinOffcutArea
}
