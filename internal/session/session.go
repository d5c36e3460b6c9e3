// Package session keeps keyed machines alive between calls and runs batches
// of messages through independent machines.
package session

import (
	"fmt"
	"sync"

	"enigma/internal/settings"
	"enigma/pkg/enigma"
)

// Session is a configured machine plus the state it started from. Unlike a
// bare Machine it is safe for concurrent use.
type Session struct {
	mu    sync.Mutex
	m     *enigma.Machine
	key   settings.Settings
	start enigma.State
	typed int
}

// Step records one key press.
type Step struct {
	Key       string
	Lamp      string
	Positions string // window letters after the rotors moved
}

// New builds a machine for key from cat.
func New(cat enigma.Catalog, key settings.Settings, opts ...enigma.Option) (*Session, error) {
	m, err := key.Build(cat, opts...)
	if err != nil {
		return nil, err
	}
	return &Session{m: m, key: key, start: m.State()}, nil
}

// Key returns the settings the session was opened with.
func (s *Session) Key() settings.Settings { return s.key }

// Type enciphers letters, continuing from wherever the last call stopped.
func (s *Session) Type(text string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out, err := s.m.Encipher(text)
	if err != nil {
		return "", err
	}
	s.typed += len(out)
	return out, nil
}

// Trace is Type with a record of every key press.
func (s *Session) Trace(text string) (string, []Step, error) {
	keys, err := enigma.ParseContacts(text)
	if err != nil {
		return "", nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]enigma.Contact, len(keys))
	steps := make([]Step, len(keys))
	for i, k := range keys {
		lamp, err := s.m.PressKey(k)
		if err != nil {
			return "", nil, fmt.Errorf("key %d: %w", i+1, err)
		}
		out[i] = lamp
		steps[i] = Step{Key: k.String(), Lamp: lamp.String(), Positions: enigma.FormatContacts(s.m.Positions())}
	}
	s.typed += len(keys)
	return enigma.FormatContacts(out), steps, nil
}

// Reset turns the rotors back to the starting positions.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.m.Restore(s.start); err != nil {
		return fmt.Errorf("reset session: %w", err)
	}
	s.typed = 0
	return nil
}

// Positions returns the current window letters.
func (s *Session) Positions() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return enigma.FormatContacts(s.m.Positions())
}

// Typed counts letters enciphered since open or the last Reset.
func (s *Session) Typed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.typed
}
