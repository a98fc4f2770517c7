package services

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/watchdeck/core/internal/adapters/repository"
	"github.com/watchdeck/core/internal/domain/entities"
	"github.com/watchdeck/core/internal/infrastructure/logger"
	"github.com/watchdeck/core/internal/infrastructure/storage"
	"github.com/watchdeck/core/internal/ports"
)

const testCatalog = `[
	{"symbol": "AAPL", "name": "Apple Inc.", "type": "stock"},
	{"symbol": "MSFT", "name": "Microsoft", "type": "stock"},
	{"symbol": "BTC-USD", "name": "Bitcoin", "type": "crypto"}
]`

var fixedNow = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

type fixture struct {
	watchlists  *WatchlistService
	tabs        *TabService
	instruments *InstrumentService
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	catalog, err := storage.ParseCatalog([]byte(testCatalog))
	if err != nil {
		t.Fatal(err)
	}
	store := storage.NewJSONFile(filepath.Join(t.TempDir(), "watchlists.json"), logger.NewNop(), nil)

	f := fixture{
		watchlists:  NewWatchlistService(repository.NewWatchlistRepository(store), catalog, logger.NewNop()),
		tabs:        NewTabService(repository.NewTabRepository(store), logger.NewNop()),
		instruments: NewInstrumentService(catalog),
	}
	f.watchlists.now = func() time.Time { return fixedNow }
	f.tabs.now = func() time.Time { return fixedNow }
	return f
}

func strPtr(s string) *string { return &s }

func TestCreateWatchlist(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	w, err := f.watchlists.CreateWatchlist(ctx, ports.CreateWatchlistRequest{
		Name:        "  Tech  ",
		Instruments: []string{"aapl", "MSFT", "AAPL", " "},
	})
	if err != nil {
		t.Fatalf("CreateWatchlist: %v", err)
	}

	if w.ID == "" {
		t.Error("ID not generated")
	}
	if w.Name != "Tech" {
		t.Errorf("name = %q, want trimmed", w.Name)
	}
	if !reflect.DeepEqual(w.Instruments, []string{"AAPL", "MSFT"}) {
		t.Errorf("instruments = %v", w.Instruments)
	}
	if !w.CreatedAt.Equal(fixedNow) || !w.UpdatedAt.Equal(fixedNow) {
		t.Errorf("timestamps = %v / %v", w.CreatedAt, w.UpdatedAt)
	}

	got, err := f.watchlists.GetWatchlist(ctx, w.ID)
	if err != nil {
		t.Fatalf("GetWatchlist: %v", err)
	}
	if got.Name != "Tech" {
		t.Errorf("persisted name = %q", got.Name)
	}
}

func TestCreateWatchlistValidation(t *testing.T) {
	long := make([]rune, entities.MaxNameLength+1)
	for i := range long {
		long[i] = 'x'
	}

	tests := []struct {
		name string
		req  ports.CreateWatchlistRequest
		want error
	}{
		{"blank name", ports.CreateWatchlistRequest{Name: "   "}, entities.ErrInvalidName},
		{"long name", ports.CreateWatchlistRequest{Name: string(long)}, entities.ErrInvalidName},
		{"unknown instrument", ports.CreateWatchlistRequest{Name: "X", Instruments: []string{"AAPL", "NOPE"}}, entities.ErrUnknownInstrument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.watchlists.CreateWatchlist(context.Background(), tt.req)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}

			list, _ := f.watchlists.ListWatchlists(context.Background())
			if len(list) != 0 {
				t.Errorf("rejected watchlist was stored: %+v", list)
			}
		})
	}
}

func TestUpdateWatchlistUpsert(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _, err := f.watchlists.UpdateWatchlist(ctx, "wl-1", ports.UpdateWatchlistRequest{Instruments: []string{"AAPL"}})
	if !errors.Is(err, entities.ErrInvalidName) {
		t.Fatalf("upsert without name err = %v, want ErrInvalidName", err)
	}

	w, created, err := f.watchlists.UpdateWatchlist(ctx, "wl-1", ports.UpdateWatchlistRequest{
		Name:        strPtr("Crypto"),
		Instruments: []string{"btc-usd"},
	})
	if err != nil {
		t.Fatalf("UpdateWatchlist create: %v", err)
	}
	if !created || w.ID != "wl-1" || w.Name != "Crypto" {
		t.Errorf("created = %v, watchlist = %+v", created, w)
	}

	w, created, err = f.watchlists.UpdateWatchlist(ctx, "wl-1", ports.UpdateWatchlistRequest{
		Instruments: []string{"MSFT", "AAPL"},
	})
	if err != nil {
		t.Fatalf("UpdateWatchlist: %v", err)
	}
	if created {
		t.Error("existing watchlist reported as created")
	}
	if w.Name != "Crypto" {
		t.Errorf("name = %q, want unchanged", w.Name)
	}
	if !reflect.DeepEqual(w.Instruments, []string{"MSFT", "AAPL"}) {
		t.Errorf("instruments = %v", w.Instruments)
	}
}

func TestUpdateWatchlistRequiresInstruments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	w, err := f.watchlists.CreateWatchlist(ctx, ports.CreateWatchlistRequest{Name: "Tech", Instruments: []string{"AAPL", "MSFT"}})
	if err != nil {
		t.Fatalf("CreateWatchlist: %v", err)
	}

	_, _, err = f.watchlists.UpdateWatchlist(ctx, w.ID, ports.UpdateWatchlistRequest{Name: strPtr("Renamed")})
	if !errors.Is(err, entities.ErrInstrumentsRequired) {
		t.Fatalf("err = %v, want ErrInstrumentsRequired", err)
	}

	got, _ := f.watchlists.GetWatchlist(ctx, w.ID)
	if got.Name != "Tech" || !reflect.DeepEqual(got.Instruments, []string{"AAPL", "MSFT"}) {
		t.Errorf("watchlist changed to %+v", got)
	}

	w2, _, err := f.watchlists.UpdateWatchlist(ctx, w.ID, ports.UpdateWatchlistRequest{Instruments: []string{}})
	if err != nil {
		t.Fatalf("UpdateWatchlist with empty list: %v", err)
	}
	if len(w2.Instruments) != 0 {
		t.Errorf("instruments = %v, want cleared", w2.Instruments)
	}
}

func TestUpdateWatchlistRejectsUnknownInstrument(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	w, _ := f.watchlists.CreateWatchlist(ctx, ports.CreateWatchlistRequest{Name: "Tech", Instruments: []string{"AAPL"}})

	_, _, err := f.watchlists.UpdateWatchlist(ctx, w.ID, ports.UpdateWatchlistRequest{Instruments: []string{"ZZZZ"}})
	if !errors.Is(err, entities.ErrUnknownInstrument) {
		t.Fatalf("err = %v, want ErrUnknownInstrument", err)
	}

	got, _ := f.watchlists.GetWatchlist(ctx, w.ID)
	if !reflect.DeepEqual(got.Instruments, []string{"AAPL"}) {
		t.Errorf("instruments changed to %v", got.Instruments)
	}
}

func TestRenameWatchlist(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	w, _ := f.watchlists.CreateWatchlist(ctx, ports.CreateWatchlistRequest{Name: "Tech", Instruments: []string{"AAPL"}})

	renamed, err := f.watchlists.RenameWatchlist(ctx, w.ID, ports.RenameWatchlistRequest{Name: "Mega caps"})
	if err != nil {
		t.Fatalf("RenameWatchlist: %v", err)
	}
	if renamed.Name != "Mega caps" || !reflect.DeepEqual(renamed.Instruments, []string{"AAPL"}) {
		t.Errorf("renamed = %+v", renamed)
	}

	if _, err := f.watchlists.RenameWatchlist(ctx, "missing", ports.RenameWatchlistRequest{Name: "x"}); !errors.Is(err, entities.ErrWatchlistNotFound) {
		t.Errorf("rename missing err = %v", err)
	}
	if _, err := f.watchlists.RenameWatchlist(ctx, w.ID, ports.RenameWatchlistRequest{Name: " "}); !errors.Is(err, entities.ErrInvalidName) {
		t.Errorf("rename blank err = %v", err)
	}
}

func TestDeleteWatchlistPrunesTabs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, _ := f.watchlists.CreateWatchlist(ctx, ports.CreateWatchlistRequest{Name: "A"})
	b, _ := f.watchlists.CreateWatchlist(ctx, ports.CreateWatchlistRequest{Name: "B"})
	if _, err := f.tabs.UpdateTabs(ctx, ports.UpdateTabsRequest{ActiveTab: a.ID, OpenTabs: []string{a.ID, b.ID}}); err != nil {
		t.Fatalf("UpdateTabs: %v", err)
	}

	if err := f.watchlists.DeleteWatchlist(ctx, a.ID); err != nil {
		t.Fatalf("DeleteWatchlist: %v", err)
	}
	if err := f.watchlists.DeleteWatchlist(ctx, a.ID); !errors.Is(err, entities.ErrWatchlistNotFound) {
		t.Errorf("second delete err = %v", err)
	}

	tabs, _ := f.tabs.GetTabs(ctx)
	if tabs.ActiveTab != "" || !reflect.DeepEqual(tabs.OpenTabs, []string{b.ID}) {
		t.Errorf("tabs = %+v", tabs)
	}
}

func TestUpdateTabs(t *testing.T) {
	tests := []struct {
		name       string
		req        ports.UpdateTabsRequest
		wantErr    error
		wantActive string
		wantOpen   []string
	}{
		{
			name:       "dedupe and trim",
			req:        ports.UpdateTabsRequest{ActiveTab: "b", OpenTabs: []string{"a", " b ", "a", ""}},
			wantActive: "b",
			wantOpen:   []string{"a", "b"},
		},
		{
			name:     "no active tab",
			req:      ports.UpdateTabsRequest{OpenTabs: []string{"a"}},
			wantOpen: []string{"a"},
		},
		{
			name:     "nothing open",
			req:      ports.UpdateTabsRequest{},
			wantOpen: []string{},
		},
		{
			name:    "active tab not open",
			req:     ports.UpdateTabsRequest{ActiveTab: "c", OpenTabs: []string{"a"}},
			wantErr: entities.ErrInvalidActiveTab,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tabs, err := f.tabs.UpdateTabs(context.Background(), tt.req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("UpdateTabs: %v", err)
			}
			if tabs.ActiveTab != tt.wantActive || !reflect.DeepEqual(tabs.OpenTabs, tt.wantOpen) {
				t.Errorf("tabs = %+v", tabs)
			}
			if !tabs.UpdatedAt.Equal(fixedNow) {
				t.Errorf("updatedAt = %v", tabs.UpdatedAt)
			}
		})
	}
}

func TestInstrumentService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	all, err := f.instruments.ListInstruments(ctx, ports.InstrumentFilter{})
	if err != nil || len(all) != 3 {
		t.Fatalf("ListInstruments = %v, %v", all, err)
	}

	crypto, _ := f.instruments.ListInstruments(ctx, ports.InstrumentFilter{Type: entities.InstrumentTypeCrypto})
	if len(crypto) != 1 || crypto[0].Symbol != "BTC-USD" {
		t.Errorf("crypto = %+v", crypto)
	}

	inst, err := f.instruments.GetInstrument(ctx, "msft")
	if err != nil || inst.Symbol != "MSFT" {
		t.Errorf("GetInstrument(msft) = %+v, %v", inst, err)
	}
	if _, err := f.instruments.GetInstrument(ctx, "NOPE"); !errors.Is(err, entities.ErrInstrumentNotFound) {
		t.Errorf("GetInstrument(NOPE) err = %v", err)
	}
}
