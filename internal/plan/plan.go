// Package plan converts an algorithm's domain.PackingResult into the
// external Plan Data shape, including the deterministic serializedLayout
// encoding the engine reports to callers.
package plan

import (
	"encoding/json"
	"sort"

	"github.com/cutstock/core/internal/domain"
)

// Layout is one used bar/sheet's entry in a Plan's layout list.
type Layout struct {
	StockItemID     string
	Sequence        int
	Waste           float64
	WastePercentage float64
	SerializedLayout string
}

// Data is the external Optimization response's `planData` object.
type Data struct {
	TotalWaste      float64
	WastePercentage float64
	StockUsedCount  int
	Efficiency      float64
	Layouts         []Layout
	UnplacedCount   int
}

// layout1DDoc is the canonical JSON shape for a 1D serializedLayout.
type layout1DDoc struct {
	BarID       string      `json:"barId"`
	BarLength   int         `json:"barLength"`
	Cuts        []cutDoc    `json:"cuts"`
	Waste       int         `json:"waste"`
	UsableWaste *usableDoc  `json:"usableWaste,omitempty"`
}

type cutDoc struct {
	PieceID     string `json:"pieceId"`
	OrderItemID string `json:"orderItemId"`
	Position    int    `json:"position"`
	Length      int    `json:"length"`
}

type usableDoc struct {
	Position int `json:"position"`
	Length   int `json:"length"`
}

// layout2DDoc is the canonical JSON shape for a 2D serializedLayout.
type layout2DDoc struct {
	SheetID     string          `json:"sheetId"`
	SheetWidth  int             `json:"sheetWidth"`
	SheetHeight int             `json:"sheetHeight"`
	Placements  []placementDoc  `json:"placements"`
}

type placementDoc struct {
	PieceID     string `json:"pieceId"`
	OrderItemID string `json:"orderItemId"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Rotated     bool   `json:"rotated"`
}

// FromPackingResult1D converts a 1D PackingResult into Plan Data. Each
// used bar's cuts are sorted by ascending position before encoding, and
// sequence numbers are dense, 1-indexed, in emission
// order.
func FromPackingResult1D(r domain.PackingResult) Data {
	data := Data{
		TotalWaste:      float64(r.TotalWaste),
		WastePercentage: r.TotalWastePercentage,
		StockUsedCount:  r.StockUsedCount,
		Efficiency:      r.Stats.Efficiency,
		UnplacedCount:   unplacedCount(r.Unplaced),
	}
	for i, bar := range r.Bars {
		data.Layouts = append(data.Layouts, Layout{
			StockItemID:      bar.StockID,
			Sequence:         i + 1,
			Waste:            float64(bar.Waste),
			WastePercentage:  bar.WastePercentage,
			SerializedLayout: serializeBar(bar),
		})
	}
	return data
}

// FromPackingResult2D mirrors FromPackingResult1D for 2D sheets.
func FromPackingResult2D(r domain.PackingResult) Data {
	data := Data{
		TotalWaste:      float64(r.TotalWaste),
		WastePercentage: r.TotalWastePercentage,
		StockUsedCount:  r.StockUsedCount,
		Efficiency:      r.Stats.Efficiency,
		UnplacedCount:   unplacedCount(r.Unplaced),
	}
	for i, sheet := range r.Sheets {
		data.Layouts = append(data.Layouts, Layout{
			StockItemID:      sheet.StockID,
			Sequence:         i + 1,
			Waste:            float64(sheet.WasteArea),
			WastePercentage:  sheet.WastePercentage,
			SerializedLayout: serializeSheet(sheet),
		})
	}
	return data
}

func unplacedCount(unplaced []domain.UnplacedPiece) int {
	total := 0
	for _, u := range unplaced {
		total += u.Quantity
	}
	return total
}

func serializeBar(bar domain.BarResult) string {
	cuts := make([]domain.Cut, len(bar.Cuts))
	copy(cuts, bar.Cuts)
	sort.Slice(cuts, func(i, j int) bool { return cuts[i].Position < cuts[j].Position })

	doc := layout1DDoc{
		BarID:     bar.StockID,
		BarLength: bar.StockLength,
		Waste:     bar.Waste,
	}
	for _, c := range cuts {
		doc.Cuts = append(doc.Cuts, cutDoc{
			PieceID:     c.PieceID,
			OrderItemID: c.OrderItemID,
			Position:    c.Position,
			Length:      c.Length,
		})
	}
	if bar.UsableWaste != nil {
		doc.UsableWaste = &usableDoc{Position: bar.UsableWaste.Position, Length: bar.UsableWaste.Length}
	}

	encoded, err := json.Marshal(doc)
	if err != nil {
		return "{}"
	}
	return string(encoded)
}

func serializeSheet(sheet domain.SheetResult) string {
	placements := make([]domain.Placement, len(sheet.Placements))
	copy(placements, sheet.Placements)
	sort.Slice(placements, func(i, j int) bool {
		if placements[i].Y != placements[j].Y {
			return placements[i].Y < placements[j].Y
		}
		return placements[i].X < placements[j].X
	})

	doc := layout2DDoc{
		SheetID:     sheet.StockID,
		SheetWidth:  sheet.StockWidth,
		SheetHeight: sheet.StockHeight,
	}
	for _, p := range placements {
		doc.Placements = append(doc.Placements, placementDoc{
			PieceID:     p.PieceID,
			OrderItemID: p.OrderItemID,
			X:           p.X,
			Y:           p.Y,
			Width:       p.Width,
			Height:      p.Height,
			Rotated:     p.Rotated,
		})
	}

	encoded, err := json.Marshal(doc)
	if err != nil {
		return "{}"
	}
	return string(encoded)
}
