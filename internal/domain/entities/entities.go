package entities

import (
	"errors"
	"strings"
	"time"
)

// Common errors
var (
	ErrWatchlistNotFound   = errors.New("watchlist not found")
	ErrInstrumentNotFound  = errors.New("instrument not found")
	ErrUnknownInstrument   = errors.New("unknown instrument")
	ErrInstrumentsRequired = errors.New("instruments list is required")
	ErrInvalidName         = errors.New("invalid watchlist name")
	ErrInvalidActiveTab    = errors.New("active tab is not open")
	ErrWatchlistExists     = errors.New("watchlist already exists")
)

// MaxNameLength is the longest watchlist name accepted, in runes
const MaxNameLength = 64

type InstrumentType string

const (
	InstrumentTypeStock  InstrumentType = "stock"
	InstrumentTypeETF    InstrumentType = "etf"
	InstrumentTypeCrypto InstrumentType = "crypto"
	InstrumentTypeForex  InstrumentType = "forex"
	InstrumentTypeIndex  InstrumentType = "index"
)

// IsValid reports whether the type is one of the known instrument types
func (t InstrumentType) IsValid() bool {
	switch t {
	case InstrumentTypeStock, InstrumentTypeETF, InstrumentTypeCrypto, InstrumentTypeForex, InstrumentTypeIndex:
		return true
	}
	return false
}

// Instrument is an entry of the static catalog
type Instrument struct {
	Symbol   string         `json:"symbol"`
	Name     string         `json:"name"`
	Exchange string         `json:"exchange"`
	Type     InstrumentType `json:"type"`
	Currency string         `json:"currency"`
}

// Watchlist is a named, ordered list of instrument symbols
type Watchlist struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Instruments []string  `json:"instruments"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TabState is the UI tab bar: which tabs are open and which one is focused
type TabState struct {
	ActiveTab string    `json:"activeTab"`
	OpenTabs  []string  `json:"openTabs"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Document is the full contents of the data file
type Document struct {
	Watchlists []Watchlist `json:"watchlists"`
	Tabs       TabState    `json:"tabs"`
}

// DefaultDocument returns the structure used when the data file is missing
// or unreadable.
func DefaultDocument() *Document {
	return &Document{
		Watchlists: []Watchlist{},
		Tabs: TabState{
			OpenTabs: []string{},
		},
	}
}

// Normalize replaces nil slices with empty ones so the file never holds null.
func (d *Document) Normalize() {
	if d.Watchlists == nil {
		d.Watchlists = []Watchlist{}
	}
	for i := range d.Watchlists {
		if d.Watchlists[i].Instruments == nil {
			d.Watchlists[i].Instruments = []string{}
		}
	}
	if d.Tabs.OpenTabs == nil {
		d.Tabs.OpenTabs = []string{}
	}
}

// IndexOf returns the position of the watchlist with the given id, or -1.
func (d *Document) IndexOf(id string) int {
	for i := range d.Watchlists {
		if d.Watchlists[i].ID == id {
			return i
		}
	}
	return -1
}

// Find returns a pointer into the document for the watchlist with the given id.
func (d *Document) Find(id string) (*Watchlist, bool) {
	i := d.IndexOf(id)
	if i < 0 {
		return nil, false
	}
	return &d.Watchlists[i], true
}

// Remove deletes the watchlist with the given id and closes its tab.
func (d *Document) Remove(id string) bool {
	i := d.IndexOf(id)
	if i < 0 {
		return false
	}
	d.Watchlists = append(d.Watchlists[:i], d.Watchlists[i+1:]...)
	d.Tabs.CloseTab(id)
	return true
}

// CloseTab removes id from the open tabs, clearing the active tab if it
// pointed at id.
func (t *TabState) CloseTab(id string) {
	open := t.OpenTabs[:0]
	for _, tab := range t.OpenTabs {
		if tab != id {
			open = append(open, tab)
		}
	}
	t.OpenTabs = open
	if t.ActiveTab == id {
		t.ActiveTab = ""
	}
}

// IsOpen reports whether id is among the open tabs
func (t *TabState) IsOpen(id string) bool {
	for _, tab := range t.OpenTabs {
		if tab == id {
			return true
		}
	}
	return false
}

// NormalizeSymbol upper-cases and trims an instrument symbol
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
