package keysheet

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemStore is an in-memory Store for tests and for the MCP server when no
// database is configured.
type MemStore struct {
	mu     sync.Mutex
	sheets map[string]*Sheet
	nextID int64
}

var _ Store = (*MemStore)(nil)

// NewMemStore returns a new in-memory Store.
func NewMemStore() *MemStore {
	return &MemStore{sheets: make(map[string]*Sheet)}
}

func copySheet(sh *Sheet) *Sheet {
	cp := *sh
	cp.Key.Rotors = slices.Clone(sh.Key.Rotors)
	cp.Key.Rings = slices.Clone(sh.Key.Rings)
	cp.Key.Plugs = slices.Clone(sh.Key.Plugs)
	return &cp
}

// Save implements Store.
func (s *MemStore) Save(sh *Sheet) (int64, error) {
	if err := checkSheet(sh); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := nowUTC()
	if old, ok := s.sheets[sh.Name]; ok {
		sh.ID, sh.Ref, sh.CreatedAt = old.ID, old.Ref, old.CreatedAt
	} else {
		s.nextID++
		sh.ID, sh.Ref, sh.CreatedAt = s.nextID, uuid.NewString(), now
	}
	sh.UpdatedAt = now
	s.sheets[sh.Name] = copySheet(sh)
	return sh.ID, nil
}

// Get implements Store.
func (s *MemStore) Get(name string) (*Sheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sh, ok := s.sheets[name]
	if !ok {
		return nil, nil
	}
	return copySheet(sh), nil
}

// List implements Store.
func (s *MemStore) List() ([]*Sheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Sheet, 0, len(s.sheets))
	for _, sh := range s.sheets {
		out = append(out, copySheet(sh))
	}
	slices.SortFunc(out, func(a, b *Sheet) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

// Delete implements Store.
func (s *MemStore) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sheets[name]; !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	delete(s.sheets, name)
	return nil
}

// Close implements Store.
func (s *MemStore) Close() error { return nil }
