package services

import (
	"context"

	"github.com/watchdeck/core/internal/domain/entities"
	"github.com/watchdeck/core/internal/ports"
)

// InstrumentService answers catalog queries
type InstrumentService struct {
	catalog ports.InstrumentCatalog
}

// NewInstrumentService creates a new instrument service
func NewInstrumentService(catalog ports.InstrumentCatalog) *InstrumentService {
	return &InstrumentService{catalog: catalog}
}

func (s *InstrumentService) ListInstruments(ctx context.Context, filter ports.InstrumentFilter) ([]entities.Instrument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if filter.Query == "" && filter.Type == "" {
		return s.catalog.All(), nil
	}
	return s.catalog.Search(filter.Query, filter.Type), nil
}

func (s *InstrumentService) GetInstrument(ctx context.Context, symbol string) (*entities.Instrument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	inst, ok := s.catalog.Lookup(symbol)
	if !ok {
		return nil, entities.ErrInstrumentNotFound
	}
	return &inst, nil
}
