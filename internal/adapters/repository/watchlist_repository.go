package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/watchdeck/core/internal/domain/entities"
	"github.com/watchdeck/core/internal/ports"
)

type watchlistRepository struct {
	store ports.DocumentStore
}

// NewWatchlistRepository creates a watchlist repository over the data file
func NewWatchlistRepository(store ports.DocumentStore) ports.WatchlistRepository {
	return &watchlistRepository{store: store}
}

func (r *watchlistRepository) List(ctx context.Context) ([]entities.Watchlist, error) {
	doc, err := r.store.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list watchlists: %w", err)
	}
	return doc.Watchlists, nil
}

func (r *watchlistRepository) GetByID(ctx context.Context, id string) (*entities.Watchlist, error) {
	doc, err := r.store.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get watchlist: %w", err)
	}

	w, ok := doc.Find(id)
	if !ok {
		return nil, entities.ErrWatchlistNotFound
	}
	return w, nil
}

func (r *watchlistRepository) Create(ctx context.Context, watchlist *entities.Watchlist) error {
	_, err := r.store.Update(ctx, func(doc *entities.Document) error {
		if doc.IndexOf(watchlist.ID) >= 0 {
			return entities.ErrWatchlistExists
		}
		doc.Watchlists = append(doc.Watchlists, *watchlist)
		return nil
	})
	return err
}

func (r *watchlistRepository) Upsert(ctx context.Context, id string, changes ports.WatchlistChanges) (*entities.Watchlist, bool, error) {
	var (
		result  entities.Watchlist
		created bool
	)

	_, err := r.store.Update(ctx, func(doc *entities.Document) error {
		if w, ok := doc.Find(id); ok {
			if changes.Name != nil {
				w.Name = *changes.Name
			}
			w.Instruments = changes.Instruments
			w.UpdatedAt = changes.At
			result = *w
			return nil
		}

		if changes.Name == nil {
			return entities.ErrInvalidName
		}

		result = entities.Watchlist{
			ID:          id,
			Name:        *changes.Name,
			Instruments: changes.Instruments,
			CreatedAt:   changes.At,
			UpdatedAt:   changes.At,
		}
		doc.Watchlists = append(doc.Watchlists, result)
		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	return &result, created, nil
}

func (r *watchlistRepository) Rename(ctx context.Context, id, name string, at time.Time) (*entities.Watchlist, error) {
	var result entities.Watchlist

	_, err := r.store.Update(ctx, func(doc *entities.Document) error {
		w, ok := doc.Find(id)
		if !ok {
			return entities.ErrWatchlistNotFound
		}
		w.Name = name
		w.UpdatedAt = at
		result = *w
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *watchlistRepository) Delete(ctx context.Context, id string) error {
	_, err := r.store.Update(ctx, func(doc *entities.Document) error {
		if !doc.Remove(id) {
			return entities.ErrWatchlistNotFound
		}
		return nil
	})
	return err
}
