package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/watchdeck/core/internal/domain/entities"
	"github.com/watchdeck/core/internal/infrastructure/logger"
	"github.com/watchdeck/core/internal/ports"
)

// WatchlistService handles watchlist-related operations
type WatchlistService struct {
	watchlistRepo ports.WatchlistRepository
	catalog       ports.InstrumentCatalog
	logger        *logger.Logger
	now           func() time.Time
}

// NewWatchlistService creates a new watchlist service
func NewWatchlistService(watchlistRepo ports.WatchlistRepository, catalog ports.InstrumentCatalog, logger *logger.Logger) *WatchlistService {
	return &WatchlistService{
		watchlistRepo: watchlistRepo,
		catalog:       catalog,
		logger:        logger,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// ListWatchlists returns every watchlist in file order
func (s *WatchlistService) ListWatchlists(ctx context.Context) ([]entities.Watchlist, error) {
	return s.watchlistRepo.List(ctx)
}

// GetWatchlist retrieves a watchlist by ID
func (s *WatchlistService) GetWatchlist(ctx context.Context, id string) (*entities.Watchlist, error) {
	return s.watchlistRepo.GetByID(ctx, id)
}

// CreateWatchlist creates a watchlist with a generated ID
func (s *WatchlistService) CreateWatchlist(ctx context.Context, req ports.CreateWatchlistRequest) (*entities.Watchlist, error) {
	name, err := normalizeName(req.Name)
	if err != nil {
		return nil, err
	}

	instruments, err := s.normalizeInstruments(req.Instruments)
	if err != nil {
		return nil, err
	}

	now := s.now()
	watchlist := &entities.Watchlist{
		ID:          uuid.NewString(),
		Name:        name,
		Instruments: instruments,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.watchlistRepo.Create(ctx, watchlist); err != nil {
		return nil, fmt.Errorf("failed to create watchlist: %w", err)
	}

	s.logger.LogWatchlistChange("create", watchlist.ID, map[string]interface{}{
		"name":        watchlist.Name,
		"instruments": len(watchlist.Instruments),
	})

	return watchlist, nil
}

// UpdateWatchlist replaces the instrument list of a watchlist, and its name
// when one is given. An unknown ID creates the watchlist, which then needs a
// name. The bool result reports whether it was created.
func (s *WatchlistService) UpdateWatchlist(ctx context.Context, id string, req ports.UpdateWatchlistRequest) (*entities.Watchlist, bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, false, entities.ErrWatchlistNotFound
	}

	if req.Instruments == nil {
		return nil, false, entities.ErrInstrumentsRequired
	}

	changes := ports.WatchlistChanges{At: s.now()}

	if req.Name != nil {
		name, err := normalizeName(*req.Name)
		if err != nil {
			return nil, false, err
		}
		changes.Name = &name
	}

	instruments, err := s.normalizeInstruments(req.Instruments)
	if err != nil {
		return nil, false, err
	}
	changes.Instruments = instruments

	watchlist, created, err := s.watchlistRepo.Upsert(ctx, id, changes)
	if err != nil {
		if errors.Is(err, entities.ErrInvalidName) {
			return nil, false, fmt.Errorf("%w: name is required to create a watchlist", err)
		}
		return nil, false, fmt.Errorf("failed to update watchlist: %w", err)
	}

	action := "update"
	if created {
		action = "create"
	}
	s.logger.LogWatchlistChange(action, watchlist.ID, map[string]interface{}{
		"instruments": len(watchlist.Instruments),
	})

	return watchlist, created, nil
}

// RenameWatchlist changes only the name of a watchlist
func (s *WatchlistService) RenameWatchlist(ctx context.Context, id string, req ports.RenameWatchlistRequest) (*entities.Watchlist, error) {
	name, err := normalizeName(req.Name)
	if err != nil {
		return nil, err
	}

	watchlist, err := s.watchlistRepo.Rename(ctx, id, name, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to rename watchlist: %w", err)
	}

	s.logger.LogWatchlistChange("rename", watchlist.ID, map[string]interface{}{
		"name": watchlist.Name,
	})

	return watchlist, nil
}

// DeleteWatchlist removes a watchlist and closes its tab
func (s *WatchlistService) DeleteWatchlist(ctx context.Context, id string) error {
	if err := s.watchlistRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete watchlist: %w", err)
	}

	s.logger.LogWatchlistChange("delete", id, nil)
	return nil
}

// normalizeInstruments upper-cases symbols, skips blanks, drops repeats while
// keeping the first occurrence, and rejects symbols missing from the catalog.
func (s *WatchlistService) normalizeInstruments(symbols []string) ([]string, error) {
	out := make([]string, 0, len(symbols))
	seen := make(map[string]struct{}, len(symbols))

	for _, raw := range symbols {
		symbol := entities.NormalizeSymbol(raw)
		if symbol == "" {
			continue
		}
		if _, dup := seen[symbol]; dup {
			continue
		}
		if _, ok := s.catalog.Lookup(symbol); !ok {
			return nil, fmt.Errorf("%w: %s", entities.ErrUnknownInstrument, symbol)
		}
		seen[symbol] = struct{}{}
		out = append(out, symbol)
	}

	return out, nil
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name must not be empty", entities.ErrInvalidName)
	}
	if utf8.RuneCountInString(name) > entities.MaxNameLength {
		return "", fmt.Errorf("%w: name must be at most %d characters", entities.ErrInvalidName, entities.MaxNameLength)
	}
	return name, nil
}
