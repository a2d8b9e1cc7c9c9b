// Package algorithm implements the deterministic bin-packing heuristics:
// First-Fit Decreasing and Best-Fit Decreasing for 1D bar cutting,
// Bottom-Left Fill and Guillotine for 2D sheet cutting. Every algorithm
// is a pure function of its inputs — no I/O, no shared mutable state —
// registered by name in a process-wide registry.
package algorithm

import "github.com/cutstock/core/internal/domain"

// Algorithm1D packs 1D pieces onto 1D stock.
type Algorithm1D interface {
	Name() string
	Dimensionality() domain.Dimensionality
	Execute(pieces []domain.Piece1D, stock []domain.Stock1D, opts domain.Options) (domain.PackingResult, error)
}

// Algorithm2D packs 2D pieces onto 2D stock.
type Algorithm2D interface {
	Name() string
	Dimensionality() domain.Dimensionality
	Execute(pieces []domain.Piece2D, stock []domain.Stock2D, opts domain.Options) (domain.PackingResult, error)
}

// Name constants match the wire values callers pass as Params.Algorithm.
const (
	NameFFD1D        = "1D_FFD"
	NameBFD1D        = "1D_BFD"
	NameBottomLeft2D = "2D_BOTTOM_LEFT"
	NameGuillotine2D = "2D_GUILLOTINE"
)
