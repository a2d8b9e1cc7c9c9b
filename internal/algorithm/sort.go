package algorithm

import (
	"sort"

	"github.com/cutstock/core/internal/domain"
)

// sortPieces1DDescending sorts expanded 1D units by descending length,
// breaking ties by original id ascending for determinism.
func sortPieces1DDescending(units []domain.Piece1D) {
	sort.SliceStable(units, func(i, j int) bool {
		if units[i].Length != units[j].Length {
			return units[i].Length > units[j].Length
		}
		return units[i].ID < units[j].ID
	})
}

// sortPieces2DDescending sorts expanded 2D units by descending area,
// breaking ties by original id ascending.
func sortPieces2DDescending(units []domain.Piece2D) {
	sort.SliceStable(units, func(i, j int) bool {
		ai := units[i].Width * units[i].Height
		aj := units[j].Width * units[j].Height
		if ai != aj {
			return ai > aj
		}
		return units[i].ID < units[j].ID
	})
}

// sortStock1DDescending sorts stock families by descending length,
// tie-broken by id, for FFD's new-bar selection.
func sortStock1DDescending(stock []domain.Stock1D) []domain.Stock1D {
	sorted := append([]domain.Stock1D(nil), stock...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Length != sorted[j].Length {
			return sorted[i].Length > sorted[j].Length
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}

// sortStock1DAscending sorts stock families by ascending length, for
// BFD's new-bar selection (smallest qualifying stock first).
func sortStock1DAscending(stock []domain.Stock1D) []domain.Stock1D {
	sorted := append([]domain.Stock1D(nil), stock...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Length != sorted[j].Length {
			return sorted[i].Length < sorted[j].Length
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}

// sortStock2DDescending sorts sheet families by descending area, for
// BLF/Guillotine new-sheet selection (largest sheet preferred first).
func sortStock2DDescending(stock []domain.Stock2D) []domain.Stock2D {
	sorted := append([]domain.Stock2D(nil), stock...)
	sort.SliceStable(sorted, func(i, j int) bool {
		ai := sorted[i].Width * sorted[i].Height
		aj := sorted[j].Width * sorted[j].Height
		if ai != aj {
			return ai > aj
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}

// aggregateUnplaced groups unplaced unit instances back to their original
// piece id with residual quantity,'s Packing result field.
func aggregateUnplaced1D(units []domain.Piece1D) []domain.UnplacedPiece {
	return aggregateUnplaced(units, func(u domain.Piece1D) string { return u.OriginalID })
}

func aggregateUnplaced2D(units []domain.Piece2D) []domain.UnplacedPiece {
	return aggregateUnplaced(units, func(u domain.Piece2D) string { return u.OriginalID })
}

func aggregateUnplaced[T any](units []T, originalID func(T) string) []domain.UnplacedPiece {
	if len(units) == 0 {
		return nil
	}
	order := make([]string, 0)
	counts := make(map[string]int)
	for _, u := range units {
		id := originalID(u)
		if _, seen := counts[id]; !seen {
			order = append(order, id)
		}
		counts[id]++
	}
	result := make([]domain.UnplacedPiece, 0, len(order))
	for _, id := range order {
		result = append(result, domain.UnplacedPiece{OriginalID: id, Quantity: counts[id]})
	}
	return result
}
