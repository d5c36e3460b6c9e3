// Package keysheet persists named machine keys, the simulator's version of
// the printed daily key sheets.
package keysheet

import (
	"errors"
	"fmt"
	"time"

	"enigma/internal/settings"
)

// ErrNotFound is returned by Delete when no sheet has the name.
var ErrNotFound = errors.New("keysheet: sheet not found")

// Sheet is one stored key.
type Sheet struct {
	ID        int64
	Ref       string // UUID assigned on first save, stable across updates
	Name      string
	Note      string
	Key       settings.Settings
	CreatedAt string
	UpdatedAt string
}

// Store is the persistence facade for key sheets. The CLI, batch runner and
// MCP server use only this interface; implementation is SQLite or in-memory.
type Store interface {
	// Save inserts the sheet or replaces the one with the same name. It fills
	// in ID, Ref and timestamps on s.
	Save(s *Sheet) (id int64, err error)
	// Get returns nil, nil when no sheet has the name.
	Get(name string) (*Sheet, error)
	// List returns every sheet ordered by name.
	List() ([]*Sheet, error)
	Delete(name string) error
	Close() error
}

// nowUTC returns the current UTC time as an ISO 8601 string.
func nowUTC() string { return time.Now().UTC().Format(time.RFC3339) }

func checkSheet(s *Sheet) error {
	if s == nil {
		return errors.New("keysheet: sheet is nil")
	}
	if s.Name == "" {
		return errors.New("keysheet: sheet name is required")
	}
	if err := s.Key.Validate(); err != nil {
		return fmt.Errorf("sheet %q: %w", s.Name, err)
	}
	return nil
}
