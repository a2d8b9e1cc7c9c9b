package algorithm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cutstock/core/internal/domain"
)

// S4: BFD should waste no more than FFD on a case engineered to separate
// them — both open two bars, but for the 500 piece first-fit opens a
// second 1000 bar while best-fit opens the smaller 500 bar it fills exactly.
func TestBFDWastePercentageLessOrEqualFFD_S4(t *testing.T) {
	pieces := []domain.Piece1D{
		{ID: "long", Length: 800, Quantity: 1},
		{ID: "mid", Length: 500, Quantity: 1},
		{ID: "short", Length: 190, Quantity: 1},
	}
	stock := []domain.Stock1D{
		{ID: "s-small", Length: 500, Available: 2},
		{ID: "s-large", Length: 1000, Available: 2},
	}
	opts := domain.Options{Kerf: 5}

	ffdResult, err := FFD1D.Execute(pieces, stock, opts)
	require.NoError(t, err)
	bfdResult, err := BFD1D.Execute(pieces, stock, opts)
	require.NoError(t, err)

	assert.LessOrEqualf(t, bfdResult.TotalWastePercentage, ffdResult.TotalWastePercentage+1e-9,
		"expected BFD waste %% (%v) <= FFD waste %% (%v)", bfdResult.TotalWastePercentage, ffdResult.TotalWastePercentage)
}

func TestBFD1D_PrefersTightestOpenBar(t *testing.T) {
	pieces := []domain.Piece1D{
		{ID: "a", Length: 400, Quantity: 1},
		{ID: "b", Length: 550, Quantity: 1},
		{ID: "c", Length: 50, Quantity: 1},
	}
	stock := []domain.Stock1D{{ID: "s1", Length: 1000, Available: 2}}

	result, err := BFD1D.Execute(pieces, stock, domain.Options{Kerf: 0})
	require.NoError(t, err)
	assert.Equalf(t, 1, result.StockUsedCount, "expected piece c to best-fit into the single open bar")
}

func TestBFD1D_Unplaced(t *testing.T) {
	pieces := []domain.Piece1D{{ID: "p1", Length: 1500, Quantity: 2}}
	stock := []domain.Stock1D{{ID: "s1", Length: 1000, Available: 1}}

	result, err := BFD1D.Execute(pieces, stock, domain.Options{})
	require.NoError(t, err)
	require.Len(t, result.Unplaced, 1)
	assert.Equal(t, 2, result.Unplaced[0].Quantity)
}
