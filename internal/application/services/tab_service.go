package services

import (
	"context"
	"strings"
	"time"

	"github.com/watchdeck/core/internal/domain/entities"
	"github.com/watchdeck/core/internal/infrastructure/logger"
	"github.com/watchdeck/core/internal/ports"
)

// TabService handles the UI tab state
type TabService struct {
	tabRepo ports.TabRepository
	logger  *logger.Logger
	now     func() time.Time
}

// NewTabService creates a new tab service
func NewTabService(tabRepo ports.TabRepository, logger *logger.Logger) *TabService {
	return &TabService{
		tabRepo: tabRepo,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// GetTabs returns the stored tab state
func (s *TabService) GetTabs(ctx context.Context) (*entities.TabState, error) {
	return s.tabRepo.Get(ctx)
}

// UpdateTabs replaces the tab state. Open tabs are de-duplicated in order and
// the active tab, when set, must be one of them.
func (s *TabService) UpdateTabs(ctx context.Context, req ports.UpdateTabsRequest) (*entities.TabState, error) {
	open := make([]string, 0, len(req.OpenTabs))
	seen := make(map[string]struct{}, len(req.OpenTabs))
	for _, raw := range req.OpenTabs {
		id := strings.TrimSpace(raw)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		open = append(open, id)
	}

	state := entities.TabState{
		ActiveTab: strings.TrimSpace(req.ActiveTab),
		OpenTabs:  open,
		UpdatedAt: s.now(),
	}
	if state.ActiveTab != "" && !state.IsOpen(state.ActiveTab) {
		return nil, entities.ErrInvalidActiveTab
	}

	tabs, err := s.tabRepo.Save(ctx, state)
	if err != nil {
		return nil, err
	}

	s.logger.Debugw("Tabs updated", "active_tab", tabs.ActiveTab, "open_tabs", len(tabs.OpenTabs))
	return tabs, nil
}
