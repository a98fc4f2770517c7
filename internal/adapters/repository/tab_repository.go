package repository

import (
	"context"
	"fmt"

	"github.com/watchdeck/core/internal/domain/entities"
	"github.com/watchdeck/core/internal/ports"
)

type tabRepository struct {
	store ports.DocumentStore
}

// NewTabRepository creates a tab state repository over the data file
func NewTabRepository(store ports.DocumentStore) ports.TabRepository {
	return &tabRepository{store: store}
}

func (r *tabRepository) Get(ctx context.Context) (*entities.TabState, error) {
	doc, err := r.store.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get tabs: %w", err)
	}
	return &doc.Tabs, nil
}

func (r *tabRepository) Save(ctx context.Context, tabs entities.TabState) (*entities.TabState, error) {
	doc, err := r.store.Update(ctx, func(doc *entities.Document) error {
		doc.Tabs = tabs
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save tabs: %w", err)
	}
	return &doc.Tabs, nil
}
