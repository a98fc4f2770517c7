package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/watchdeck/core/internal/domain/entities"
	"github.com/watchdeck/core/internal/infrastructure/logger"
)

var qjson = jsoniter.ConfigCompatibleWithStandardLibrary

// Observer receives store events. metrics.Metrics implements it.
type Observer interface {
	ObserveRead(corrupt bool)
	ObserveWrite(watchlists int, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveRead(bool)       {}
func (nopObserver) ObserveWrite(int, error) {}

// JSONFile keeps the watchlist document in a single JSON file.
//
// Reads never fail because of a missing or corrupt file: both yield the
// default document. Writes go to a temp file that is renamed over the target.
// The mutex serializes read-modify-write cycles within this process only.
type JSONFile struct {
	path     string
	logger   *logger.Logger
	observer Observer
	mu       sync.Mutex
}

// NewJSONFile creates a store backed by path. observer may be nil.
func NewJSONFile(path string, appLogger *logger.Logger, observer Observer) *JSONFile {
	if observer == nil {
		observer = nopObserver{}
	}
	return &JSONFile{
		path:     path,
		logger:   appLogger.WithComponent("storage"),
		observer: observer,
	}
}

// Path returns the data file location
func (s *JSONFile) Path() string {
	return s.path
}

// Read returns the current document
func (s *JSONFile) Read(ctx context.Context) (*entities.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.read()
}

// Write replaces the document on disk
func (s *JSONFile) Write(ctx context.Context, doc *entities.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.write(doc)
}

// Update runs fn against the current document and writes the result.
// Nothing is written when fn returns an error.
func (s *JSONFile) Update(ctx context.Context, fn func(doc *entities.Document) error) (*entities.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}

	if err := fn(doc); err != nil {
		return nil, err
	}

	if err := s.write(doc); err != nil {
		return nil, err
	}

	return doc, nil
}

// Reset overwrites the file with the default document
func (s *JSONFile) Reset(ctx context.Context) error {
	return s.Write(ctx, entities.DefaultDocument())
}

// Healthy checks that the directory holding the data file exists and that a
// file can be created in it.
func (s *JSONFile) Healthy(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("data directory unavailable: %w", err)
	}

	f, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		return fmt.Errorf("data directory not writable: %w", err)
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}

func (s *JSONFile) read() (*entities.Document, error) {
	start := time.Now()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.observer.ObserveRead(false)
		s.logger.Debugw("Data file missing, using defaults", "path", s.path)
		return entities.DefaultDocument(), nil
	}
	if err != nil {
		s.logger.LogStoreOperation("read", s.path, sinceMillis(start), err)
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		s.observer.ObserveRead(true)
		s.logger.Warnw("Data file empty, using defaults", "path", s.path)
		return entities.DefaultDocument(), nil
	}

	var doc entities.Document
	if err := qjson.Unmarshal(data, &doc); err != nil {
		s.observer.ObserveRead(true)
		s.logger.Warnw("Data file corrupt, using defaults", "path", s.path, "error", err)
		return entities.DefaultDocument(), nil
	}

	doc.Normalize()
	s.observer.ObserveRead(false)
	s.logger.LogStoreOperation("read", s.path, sinceMillis(start), nil)

	return &doc, nil
}

func (s *JSONFile) write(doc *entities.Document) error {
	start := time.Now()

	doc.Normalize()
	err := writeFileAtomic(s.path, doc)
	s.observer.ObserveWrite(len(doc.Watchlists), err)
	s.logger.LogStoreOperation("write", s.path, sinceMillis(start), err)

	return err
}

// writeFileAtomic writes v as indented JSON via a temp file then rename.
func writeFileAtomic(path string, v interface{}) error {
	data, err := qjson.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode data file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write data file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace data file: %w", err)
	}

	return nil
}

func sinceMillis(start time.Time) float64 {
	return float64(time.Since(start).Nanoseconds()) / 1000000
}
