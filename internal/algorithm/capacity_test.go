package algorithm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cutstock/core/internal/domain"
)

// A stock family's `available` count decrements exactly once when a new
// bar/sheet from that family is opened, never when a piece is placed onto
// an already-open bar/sheet, and never below zero.
func TestAvailableDecrementsOnlyOnOpen1D(t *testing.T) {
	pieces := []domain.Piece1D{{ID: "p1", Length: 100, Quantity: 3}}
	stock := []domain.Stock1D{{ID: "s1", Length: 100, Available: 3}}

	result, err := FFD1D.Execute(pieces, stock, domain.Options{Kerf: 0})
	require.NoError(t, err)
	assert.Equalf(t, 3, result.StockUsedCount, "expected 3 bars opened (one per unit, each exactly fits)")
	assert.Empty(t, result.Unplaced)
}

func TestAvailableNeverExceeded1D(t *testing.T) {
	pieces := []domain.Piece1D{{ID: "p1", Length: 100, Quantity: 5}}
	stock := []domain.Stock1D{{ID: "s1", Length: 100, Available: 2}}

	result, err := FFD1D.Execute(pieces, stock, domain.Options{Kerf: 0})
	require.NoError(t, err)
	require.Equalf(t, 2, result.StockUsedCount, "expected exactly 2 bars (available=2)")

	unplacedQty := 0
	for _, u := range result.Unplaced {
		unplacedQty += u.Quantity
	}
	assert.Equalf(t, 3, unplacedQty, "expected 3 units unplaced once stock is exhausted")
}

func TestAvailableDecrementsOnlyOnOpen2D(t *testing.T) {
	pieces := []domain.Piece2D{{ID: "p1", Width: 400, Height: 400, Quantity: 2}}
	stock := []domain.Stock2D{{ID: "s1", Width: 1000, Height: 1000, Available: 3}}

	result, err := BottomLeftFill2D.Execute(pieces, stock, domain.Options{Kerf: 0})
	require.NoError(t, err)
	assert.Equalf(t, 1, result.StockUsedCount, "expected both units to share 1 sheet (one open)")
}

func TestAvailableNeverExceeded2D(t *testing.T) {
	pieces := []domain.Piece2D{{ID: "p1", Width: 900, Height: 900, Quantity: 4}}
	stock := []domain.Stock2D{{ID: "s1", Width: 1000, Height: 1000, Available: 2}}

	result, err := Guillotine2D.Execute(pieces, stock, domain.Options{Kerf: 0})
	require.NoError(t, err)
	require.Equalf(t, 2, result.StockUsedCount, "expected exactly 2 sheets (available=2)")

	unplacedQty := 0
	for _, u := range result.Unplaced {
		unplacedQty += u.Quantity
	}
	assert.Equalf(t, 2, unplacedQty, "expected 2 units unplaced once sheets are exhausted")
}
