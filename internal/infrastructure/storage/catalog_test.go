package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/watchdeck/core/internal/domain/entities"
)

func TestLoadCatalogBuiltin(t *testing.T) {
	for _, path := range []string{"", filepath.Join(t.TempDir(), "missing.json")} {
		c, err := LoadCatalog(path)
		if err != nil {
			t.Fatalf("LoadCatalog(%q): %v", path, err)
		}
		if c.Len() == 0 {
			t.Fatalf("LoadCatalog(%q) returned an empty catalog", path)
		}
		if _, ok := c.Lookup("AAPL"); !ok {
			t.Errorf("LoadCatalog(%q): AAPL missing from builtin catalog", path)
		}
	}
}

func TestLoadCatalogFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "instruments.json")
	content := `[
		{"symbol": "abc", "name": "Alpha", "type": "stock"},
		{"symbol": "ABC", "name": "Duplicate", "type": "stock"},
		{"symbol": "", "name": "Nameless"},
		{"symbol": "xyz", "name": "Zeta Coin", "type": "crypto"}
	]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}

	inst, ok := c.Lookup("abc")
	if !ok || inst.Name != "Alpha" {
		t.Errorf("Lookup(abc) = %+v, %v", inst, ok)
	}
	if all := c.All(); all[0].Symbol != "ABC" || all[1].Symbol != "XYZ" {
		t.Errorf("All = %+v", all)
	}
}

func TestLoadCatalogCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "instruments.json")
	os.WriteFile(path, []byte(`{"symbol":`), 0o644)

	if _, err := LoadCatalog(path); err == nil {
		t.Fatal("expected error for corrupt catalog")
	}
}

func TestCatalogSearch(t *testing.T) {
	c, err := ParseCatalog([]byte(`[
		{"symbol": "AAPL", "name": "Apple Inc.", "type": "stock"},
		{"symbol": "APLE", "name": "Apple Hospitality", "type": "stock"},
		{"symbol": "SPY", "name": "S&P 500 ETF", "type": "etf"},
		{"symbol": "BTC-USD", "name": "Bitcoin", "type": "crypto"}
	]`))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		query string
		typ   entities.InstrumentType
		want  []string
	}{
		{"empty query", "", "", []string{"AAPL", "APLE", "SPY", "BTC-USD"}},
		{"by name", "apple", "", []string{"AAPL", "APLE"}},
		{"by symbol", "btc", "", []string{"BTC-USD"}},
		{"by type", "", entities.InstrumentTypeETF, []string{"SPY"}},
		{"query and type", "apple", entities.InstrumentTypeETF, []string{}},
		{"no match", "zzz", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Search(tt.query, tt.typ)
			if len(got) != len(tt.want) {
				t.Fatalf("Search = %+v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i].Symbol != tt.want[i] {
					t.Errorf("result[%d] = %s, want %s", i, got[i].Symbol, tt.want[i])
				}
			}
		})
	}
}

func TestCatalogAllReturnsCopy(t *testing.T) {
	c, _ := ParseCatalog([]byte(`[{"symbol": "AAPL"}]`))
	all := c.All()
	all[0].Symbol = "CHANGED"

	if _, ok := c.Lookup("AAPL"); !ok {
		t.Error("mutating All() result changed the catalog")
	}
	if c.All()[0].Symbol != "AAPL" {
		t.Error("catalog entry was mutated")
	}
}
