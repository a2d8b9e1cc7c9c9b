package algorithm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cutstock/core/internal/domain"
)

// S1: fits exactly.
func TestFFD1D_FitsExactly(t *testing.T) {
	pieces := []domain.Piece1D{{ID: "p1", Length: 1000, Quantity: 1}}
	stock := []domain.Stock1D{{ID: "s1", Length: 1000, Available: 1}}

	result, err := FFD1D.Execute(pieces, stock, domain.Options{Kerf: 0})
	require.NoError(t, err)
	require.Equal(t, 1, result.StockUsedCount)

	bar := result.Bars[0]
	assert.Equal(t, 0, bar.Waste)
	assert.EqualValues(t, 100, result.Stats.Efficiency)
	require.Len(t, bar.Cuts, 1)
	assert.Equal(t, 0, bar.Cuts[0].Position)
}

// S2: kerf chain.
func TestFFD1D_KerfChain(t *testing.T) {
	pieces := []domain.Piece1D{{ID: "p1", Length: 300, Quantity: 3}}
	stock := []domain.Stock1D{{ID: "s1", Length: 1000, Available: 2}}

	result, err := FFD1D.Execute(pieces, stock, domain.Options{Kerf: 50, MinUsableWaste: 100})
	require.NoError(t, err)
	require.Equal(t, 1, result.StockUsedCount)

	bar := result.Bars[0]
	require.Len(t, bar.Cuts, 3)
	wantPositions := []int{0, 350, 700}
	for i, want := range wantPositions {
		assert.Equalf(t, want, bar.Cuts[i].Position, "cut %d position", i)
	}
	assert.Equal(t, 0, bar.Waste)
}

// S3: unplaced piece.
func TestFFD1D_Unplaced(t *testing.T) {
	pieces := []domain.Piece1D{{ID: "p1", Length: 1500, Quantity: 1}}
	stock := []domain.Stock1D{{ID: "s1", Length: 1000, Available: 5}}

	result, err := FFD1D.Execute(pieces, stock, domain.Options{})
	require.NoError(t, err)
	require.Equal(t, 0, result.StockUsedCount)
	require.Len(t, result.Unplaced, 1)
	assert.Equal(t, 1, result.Unplaced[0].Quantity)
	assert.Equal(t, "p1", result.Unplaced[0].OriginalID)
}

// minUsableWaste=0 marks every non-zero waste as usable, but zero waste
// itself must never be marked even then: an exact-fit bar with a
// positive kerf has nothing left over to call usable.
func TestFFD1D_ZeroWasteNeverMarkedUsable(t *testing.T) {
	pieces := []domain.Piece1D{{ID: "p1", Length: 1000, Quantity: 1}}
	stock := []domain.Stock1D{{ID: "s1", Length: 1000, Available: 1}}

	result, err := FFD1D.Execute(pieces, stock, domain.Options{Kerf: 5, MinUsableWaste: 0})
	require.NoError(t, err)
	require.Equal(t, 1, result.StockUsedCount)

	bar := result.Bars[0]
	require.Equal(t, 0, bar.Waste)
	assert.Nilf(t, bar.UsableWaste, "expected zero waste to never be marked usable, got %+v", bar.UsableWaste)
}

func TestFFD1D_EmptyInputIsUnsuccessful(t *testing.T) {
	result, err := FFD1D.Execute(nil, nil, domain.Options{})
	require.NoError(t, err)
	assert.False(t, result.Success, "expected unsuccessful result for empty input")
	assert.Equal(t, 0, result.StockUsedCount)
	assert.Empty(t, result.Bars)
}

func TestFFD1D_CapacityRespected(t *testing.T) {
	pieces := []domain.Piece1D{{ID: "p1", Length: 900, Quantity: 5}}
	stock := []domain.Stock1D{{ID: "s1", Length: 1000, Available: 2}}

	result, err := FFD1D.Execute(pieces, stock, domain.Options{Kerf: 0})
	require.NoError(t, err)
	assert.LessOrEqualf(t, result.StockUsedCount, 2, "expected at most 2 bars (available=2)")

	placed := 0
	for _, b := range result.Bars {
		placed += len(b.Cuts)
	}
	unplacedQty := 0
	for _, u := range result.Unplaced {
		unplacedQty += u.Quantity
	}
	assert.Equal(t, 5, placed+unplacedQty)
}
