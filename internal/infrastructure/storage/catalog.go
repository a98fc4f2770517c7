package storage

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/watchdeck/core/internal/domain/entities"
)

//go:embed instruments.json
var builtinInstruments []byte

// Catalog is the read-only instruments catalog, loaded once at startup
type Catalog struct {
	instruments []entities.Instrument
	bySymbol    map[string]int
}

// LoadCatalog reads the catalog from path. An empty path or a missing file
// falls back to the catalog built into the binary; a file that exists but
// cannot be decoded is an error.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return ParseCatalog(builtinInstruments)
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return ParseCatalog(builtinInstruments)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read instruments file: %w", err)
	}

	catalog, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("instruments file %s: %w", path, err)
	}
	return catalog, nil
}

// ParseCatalog decodes a JSON array of instruments. Symbols are upper-cased
// and the first entry wins on duplicates.
func ParseCatalog(data []byte) (*Catalog, error) {
	var raw []entities.Instrument
	if err := qjson.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode instruments: %w", err)
	}

	c := &Catalog{
		instruments: make([]entities.Instrument, 0, len(raw)),
		bySymbol:    make(map[string]int, len(raw)),
	}

	for _, inst := range raw {
		inst.Symbol = entities.NormalizeSymbol(inst.Symbol)
		if inst.Symbol == "" {
			continue
		}
		if _, dup := c.bySymbol[inst.Symbol]; dup {
			continue
		}
		c.bySymbol[inst.Symbol] = len(c.instruments)
		c.instruments = append(c.instruments, inst)
	}

	return c, nil
}

// Len returns the number of instruments
func (c *Catalog) Len() int {
	return len(c.instruments)
}

// All returns a copy of every instrument in catalog order
func (c *Catalog) All() []entities.Instrument {
	out := make([]entities.Instrument, len(c.instruments))
	copy(out, c.instruments)
	return out
}

// Lookup finds an instrument by symbol, case-insensitively
func (c *Catalog) Lookup(symbol string) (entities.Instrument, bool) {
	i, ok := c.bySymbol[entities.NormalizeSymbol(symbol)]
	if !ok {
		return entities.Instrument{}, false
	}
	return c.instruments[i], true
}

// Search matches query as a case-insensitive substring of the symbol or the
// name. An empty type matches every type.
func (c *Catalog) Search(query string, typ entities.InstrumentType) []entities.Instrument {
	q := strings.ToLower(strings.TrimSpace(query))

	out := make([]entities.Instrument, 0)
	for _, inst := range c.instruments {
		if typ != "" && inst.Type != typ {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(inst.Symbol), q) &&
			!strings.Contains(strings.ToLower(inst.Name), q) {
			continue
		}
		out = append(out, inst)
	}
	return out
}
