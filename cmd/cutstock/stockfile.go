package main

import (
	"encoding/json"
	"os"

	"github.com/cutstock/core/internal/domain"
	"github.com/cutstock/core/internal/store"
)

// stockFile is the on-disk JSON shape accepted by `cutstock optimize --stock`.
type stockFile struct {
	Stock1D []stockEntry1DFile `json:"stock1D"`
	Stock2D []stockEntry2DFile `json:"stock2D"`
}

type stockEntry1DFile struct {
	domain.Stock1D
	MaterialTypeID string  `json:"materialTypeId"`
	Thickness      float64 `json:"thickness"`
}

type stockEntry2DFile struct {
	domain.Stock2D
	MaterialTypeID string  `json:"materialTypeId"`
	Thickness      float64 `json:"thickness"`
}

func loadStockFile(path string, s *store.InMemoryStockStore) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var file stockFile
	if err := json.Unmarshal(data, &file); err != nil {
		return err
	}
	for _, e := range file.Stock1D {
		s.AddStock1D(e.Stock1D, e.MaterialTypeID, e.Thickness)
	}
	for _, e := range file.Stock2D {
		s.AddStock2D(e.Stock2D, e.MaterialTypeID, e.Thickness)
	}
	return nil
}
