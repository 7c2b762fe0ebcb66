// Package watchlist persists an ordered, duplicate-free list of ticker
// symbols to a flat JSON file.
package watchlist

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"TickerDesk/internal/model"
)

// ErrEmptySymbol is returned when adding an empty or whitespace symbol.
var ErrEmptySymbol = errors.New("watchlist: symbol must not be empty")

// Store holds the session watchlist and saves it after every mutation.
// Save failures are surfaced to the caller but never roll back the
// in-memory change.
type Store struct {
	mu      sync.Mutex
	path    string
	symbols []string
}

// NewStore creates a Store backed by the given file, loading any existing
// list. A missing, unreadable, or structurally invalid file yields an
// empty watchlist, never an error.
func NewStore(path string) *Store {
	return &Store{path: path, symbols: load(path)}
}

func load(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[WARN] read watchlist %s: %v", path, err)
		}
		return nil
	}
	var symbols []string
	if err := json.Unmarshal(data, &symbols); err != nil {
		log.Printf("[WARN] watchlist %s is not a symbol list, starting empty: %v", path, err)
		return nil
	}
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if n := model.NormalizeSymbol(s); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func (s *Store) save() error {
	data, err := json.MarshalIndent(s.symbols, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("watchlist dir: %w", err)
		}
	}
	return os.WriteFile(s.path, data, 0644)
}

// Symbols returns a copy of the current watchlist in insertion order.
func (s *Store) Symbols() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.symbols))
	copy(out, s.symbols)
	return out
}

// Add appends a symbol if it is not already present (case-insensitive).
// It reports whether the symbol was added; a non-nil error is either
// ErrEmptySymbol or a save failure after the in-memory append.
func (s *Store) Add(symbol string) (bool, error) {
	n := model.NormalizeSymbol(symbol)
	if n == "" {
		return false, ErrEmptySymbol
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.symbols {
		if strings.EqualFold(existing, n) {
			return false, nil
		}
	}
	s.symbols = append(s.symbols, n)
	if err := s.save(); err != nil {
		return true, fmt.Errorf("save watchlist: %w", err)
	}
	return true, nil
}

// Remove deletes a symbol; it is a no-op when the symbol is not present.
func (s *Store) Remove(symbol string) error {
	n := model.NormalizeSymbol(symbol)

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.symbols {
		if strings.EqualFold(existing, n) {
			s.symbols = append(s.symbols[:i], s.symbols[i+1:]...)
			if err := s.save(); err != nil {
				return fmt.Errorf("save watchlist: %w", err)
			}
			return nil
		}
	}
	return nil
}

// Clear empties the watchlist.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.symbols = nil
	if err := s.save(); err != nil {
		return fmt.Errorf("save watchlist: %w", err)
	}
	return nil
}
