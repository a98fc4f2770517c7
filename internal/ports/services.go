package ports

import (
	"context"

	"github.com/watchdeck/core/internal/domain/entities"
)

// WatchlistService interface for watchlist operations
type WatchlistService interface {
	ListWatchlists(ctx context.Context) ([]entities.Watchlist, error)
	GetWatchlist(ctx context.Context, id string) (*entities.Watchlist, error)
	CreateWatchlist(ctx context.Context, req CreateWatchlistRequest) (*entities.Watchlist, error)
	UpdateWatchlist(ctx context.Context, id string, req UpdateWatchlistRequest) (*entities.Watchlist, bool, error)
	RenameWatchlist(ctx context.Context, id string, req RenameWatchlistRequest) (*entities.Watchlist, error)
	DeleteWatchlist(ctx context.Context, id string) error
}

// TabService interface for tab state operations
type TabService interface {
	GetTabs(ctx context.Context) (*entities.TabState, error)
	UpdateTabs(ctx context.Context, req UpdateTabsRequest) (*entities.TabState, error)
}

// InstrumentService interface for catalog queries
type InstrumentService interface {
	ListInstruments(ctx context.Context, filter InstrumentFilter) ([]entities.Instrument, error)
	GetInstrument(ctx context.Context, symbol string) (*entities.Instrument, error)
}

// Request/Response Types

type CreateWatchlistRequest struct {
	Name        string   `json:"name" validate:"required,max=256"`
	Instruments []string `json:"instruments" validate:"max=500,dive,max=32"`
}

// UpdateWatchlistRequest replaces the instrument list. Instruments must be
// present, even if empty; a missing list is rejected.
type UpdateWatchlistRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,max=256"`
	Instruments []string `json:"instruments" validate:"max=500,dive,max=32"`
}

type RenameWatchlistRequest struct {
	Name string `json:"name" validate:"required,max=256"`
}

type UpdateTabsRequest struct {
	ActiveTab string   `json:"activeTab" validate:"max=128"`
	OpenTabs  []string `json:"openTabs" validate:"max=100,dive,max=128"`
}

type InstrumentFilter struct {
	Query string
	Type  entities.InstrumentType
}

// WatchlistsResponse is the payload of GET /api/watchlists
type WatchlistsResponse struct {
	Watchlists []entities.Watchlist `json:"watchlists"`
	Tabs       entities.TabState    `json:"tabs"`
}
