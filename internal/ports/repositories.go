package ports

import (
	"context"
	"time"

	"github.com/watchdeck/core/internal/domain/entities"
)

// DocumentStore is the single JSON document everything is persisted in
type DocumentStore interface {
	Read(ctx context.Context) (*entities.Document, error)
	Update(ctx context.Context, fn func(doc *entities.Document) error) (*entities.Document, error)
}

// WatchlistRepository defines the interface for watchlist data operations
type WatchlistRepository interface {
	List(ctx context.Context) ([]entities.Watchlist, error)
	GetByID(ctx context.Context, id string) (*entities.Watchlist, error)
	Create(ctx context.Context, watchlist *entities.Watchlist) error
	Upsert(ctx context.Context, id string, changes WatchlistChanges) (*entities.Watchlist, bool, error)
	Rename(ctx context.Context, id, name string, at time.Time) (*entities.Watchlist, error)
	Delete(ctx context.Context, id string) error
}

// TabRepository defines the interface for tab state operations
type TabRepository interface {
	Get(ctx context.Context) (*entities.TabState, error)
	Save(ctx context.Context, tabs entities.TabState) (*entities.TabState, error)
}

// InstrumentCatalog is the read-only instruments catalog
type InstrumentCatalog interface {
	All() []entities.Instrument
	Lookup(symbol string) (entities.Instrument, bool)
	Search(query string, typ entities.InstrumentType) []entities.Instrument
}

// WatchlistChanges is applied to an existing watchlist, or used to build a
// new one when the id is unknown. A nil Name keeps the current name.
type WatchlistChanges struct {
	Name        *string
	Instruments []string
	At          time.Time
}
