// Package piece implements the piece expander: exploding
// quantity-bearing pieces into unit instances with stable, derived ids,
// ready for the algorithm layer's sort-and-pack preamble.
package piece

import (
	"strconv"

	"github.com/cutstock/core/internal/domain"
)

// Expand1D explodes each 1D piece into Quantity unit instances. Order is
// stable and input-preserving: units of piece i all precede units of
// piece i+1, and within a piece they are emitted in index order.
func Expand1D(pieces []domain.Piece1D) []domain.Piece1D {
	var units []domain.Piece1D
	for _, p := range pieces {
		originalID := p.ID
		for i := 0; i < p.Quantity; i++ {
			unit := p
			unit.OriginalID = originalID
			unit.Index = i
			unit.ID = derivedID(originalID, i)
			unit.Quantity = 1
			units = append(units, unit)
		}
	}
	return units
}

// Expand2D explodes each 2D piece into Quantity unit instances, mirroring
// Expand1D.
func Expand2D(pieces []domain.Piece2D) []domain.Piece2D {
	var units []domain.Piece2D
	for _, p := range pieces {
		originalID := p.ID
		for i := 0; i < p.Quantity; i++ {
			unit := p
			unit.OriginalID = originalID
			unit.Index = i
			unit.ID = derivedID(originalID, i)
			unit.Quantity = 1
			units = append(units, unit)
		}
	}
	return units
}

func derivedID(originalID string, index int) string {
	return originalID + "_" + strconv.Itoa(index)
}
