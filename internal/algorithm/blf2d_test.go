package algorithm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cutstock/core/internal/domain"
)

// S5: a 600x300 rotatable piece cannot fit a 500x800 sheet in its natural
// orientation (600 > 500 width) but fits rotated (300x600) at the origin.
func TestBLF2D_S5_RotationAtOrigin(t *testing.T) {
	pieces := []domain.Piece2D{{ID: "p1", Width: 600, Height: 300, Quantity: 1, CanRotate: true}}
	stock := []domain.Stock2D{{ID: "sheet1", Width: 500, Height: 800, Available: 1}}

	result, err := BottomLeftFill2D.Execute(pieces, stock, domain.Options{Kerf: 0, AllowRotation: true})
	require.NoError(t, err)
	require.Equal(t, 1, result.StockUsedCount)

	placements := result.Sheets[0].Placements
	require.Len(t, placements, 1)
	p := placements[0]
	assert.True(t, p.Rotated, "expected piece to be placed rotated")
	assert.Equal(t, 0, p.X)
	assert.Equal(t, 0, p.Y)
	assert.Equal(t, 300, p.Width)
	assert.Equal(t, 600, p.Height)
}

func TestBLF2D_NoRotationWhenDisallowed(t *testing.T) {
	pieces := []domain.Piece2D{{ID: "p1", Width: 600, Height: 300, Quantity: 1, CanRotate: true}}
	stock := []domain.Stock2D{{ID: "sheet1", Width: 500, Height: 800, Available: 1}}

	result, err := BottomLeftFill2D.Execute(pieces, stock, domain.Options{Kerf: 0, AllowRotation: false})
	require.NoError(t, err)
	assert.Equalf(t, 0, result.StockUsedCount, "expected no sheet to admit the piece without rotation")
	assert.Len(t, result.Unplaced, 1)
}

func TestBLF2D_NonOverlappingPlacements(t *testing.T) {
	pieces := []domain.Piece2D{
		{ID: "a", Width: 200, Height: 200, Quantity: 4},
	}
	stock := []domain.Stock2D{{ID: "sheet1", Width: 500, Height: 500, Available: 1}}

	result, err := BottomLeftFill2D.Execute(pieces, stock, domain.Options{Kerf: 2, AllowRotation: true})
	require.NoError(t, err)
	require.Equal(t, 1, result.StockUsedCount)

	placements := result.Sheets[0].Placements
	for i := 0; i < len(placements); i++ {
		for j := i + 1; j < len(placements); j++ {
			assert.Falsef(t, rectsOverlap(placements[i], placements[j]),
				"placements %d and %d overlap: %+v, %+v", i, j, placements[i], placements[j])
		}
	}
}

func rectsOverlap(a, b domain.Placement) bool {
	return a.X < b.X+b.Width && b.X < a.X+a.Width && a.Y < b.Y+b.Height && b.Y < a.Y+a.Height
}
