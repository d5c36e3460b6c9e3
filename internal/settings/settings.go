// Package settings describes a complete machine key (model, wheel order,
// reflector, rings, start positions and cables) and builds machines from it.
package settings

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"enigma/internal/logging"
	"enigma/pkg/enigma"
)

// ErrInvalid marks settings that cannot describe any machine.
var ErrInvalid = errors.New("settings: invalid key")

// Settings is one machine key. Rotors, Rings and Positions are leftmost first.
type Settings struct {
	Model     string   `json:"model" yaml:"model"`
	Rotors    []string `json:"rotors" yaml:"rotors"`
	Reflector string   `json:"reflector" yaml:"reflector"`
	Rings     []int    `json:"rings,omitempty" yaml:"rings,omitempty" jsonschema:"ring settings 1..26, recorded on the key but not applied to the cipher"`
	Positions string   `json:"positions,omitempty" yaml:"positions,omitempty"`
	Plugs     []string `json:"plugs,omitempty" yaml:"plugs,omitempty"`
}

// Default is the Enigma I with wheels I, II, III and reflector B.
func Default() Settings {
	return Settings{
		Model:     "Enigma1",
		Rotors:    []string{"I", "II", "III"},
		Reflector: "UKW-B",
	}
}

func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}

// ParseRotors reads a wheel order such as "I,II,III" or "Beta I II III".
func ParseRotors(s string) []string {
	return splitList(s)
}

// ParsePositions reads window letters such as "ADU" or "A D U".
func ParsePositions(s string) (string, error) {
	letters := strings.Join(splitList(s), "")
	cs, err := enigma.ParseContacts(letters)
	if err != nil {
		return "", fmt.Errorf("%w: positions %q: %w", ErrInvalid, s, err)
	}
	return enigma.FormatContacts(cs), nil
}

// ParseRings reads ring settings either as numbers ("1,12,26") or as one
// letter per wheel ("ALZ").
func ParseRings(s string) ([]int, error) {
	fields := splitList(s)
	if len(fields) == 1 {
		if cs, err := enigma.ParseContacts(fields[0]); err == nil {
			rings := make([]int, len(cs))
			for i, c := range cs {
				rings[i] = int(c) + 1
			}
			return rings, nil
		}
	}
	rings := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: ring setting %q is neither a number nor letters", ErrInvalid, f)
		}
		rings = append(rings, n)
	}
	return rings, nil
}

// ParsePlugs reads cable pairs such as "AB CD EF" or "ab,cd".
func ParsePlugs(s string) ([]string, error) {
	fields := splitList(s)
	plugs := make([]string, 0, len(fields))
	for _, f := range fields {
		pair, err := parsePair(f)
		if err != nil {
			return nil, err
		}
		plugs = append(plugs, enigma.FormatContacts(pair[:]))
	}
	return plugs, nil
}

func parsePair(s string) ([2]enigma.Contact, error) {
	cs, err := enigma.ParseContacts(s)
	if err != nil || len(cs) != 2 {
		return [2]enigma.Contact{}, fmt.Errorf("%w: plug %q must be two letters", ErrInvalid, s)
	}
	return [2]enigma.Contact{cs[0], cs[1]}, nil
}

// Validate checks the key on its own, without a catalog.
func (s Settings) Validate() error {
	switch {
	case s.Model == "":
		return fmt.Errorf("%w: model is required", ErrInvalid)
	case len(s.Rotors) == 0:
		return fmt.Errorf("%w: rotors are required", ErrInvalid)
	case s.Reflector == "":
		return fmt.Errorf("%w: reflector is required", ErrInvalid)
	}
	if len(s.Rings) > 0 {
		if len(s.Rings) != len(s.Rotors) {
			return fmt.Errorf("%w: %d ring settings for %d rotors", ErrInvalid, len(s.Rings), len(s.Rotors))
		}
		for i, r := range s.Rings {
			if r < 1 || r > enigma.NumContacts {
				return fmt.Errorf("%w: ring setting %d of rotor %d is outside 1..26", ErrInvalid, r, i+1)
			}
		}
	}
	if s.Positions != "" {
		cs, err := enigma.ParseContacts(s.Positions)
		if err != nil {
			return fmt.Errorf("%w: positions: %w", ErrInvalid, err)
		}
		if len(cs) != len(s.Rotors) {
			return fmt.Errorf("%w: %d positions for %d rotors", ErrInvalid, len(cs), len(s.Rotors))
		}
	}
	var used [enigma.NumContacts]bool
	for _, p := range s.Plugs {
		pair, err := parsePair(p)
		if err != nil {
			return err
		}
		if pair[0] == pair[1] {
			return fmt.Errorf("%w: plug %q connects a letter to itself", ErrInvalid, p)
		}
		for _, c := range pair {
			if used[c] {
				return fmt.Errorf("%w: letter %s is plugged twice", ErrInvalid, c)
			}
			used[c] = true
		}
	}
	return nil
}

// HasRingOffsets reports whether any ring setting differs from 1. Ring
// settings are stored on the machine but do not change its output.
func (s Settings) HasRingOffsets() bool {
	for _, r := range s.Rings {
		if r != 1 {
			return true
		}
	}
	return false
}

// Build configures a new machine from cat and applies rings, positions and
// cables.
func (s Settings) Build(cat enigma.Catalog, opts ...enigma.Option) (*enigma.Machine, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if s.HasRingOffsets() {
		logging.New("settings").Warn("ring settings are recorded but not applied; output matches rings 01",
			"model", s.Model, "rings", s.Rings)
	}
	m := enigma.New(opts...)
	if err := m.Configure(cat, s.Model, s.Rotors, s.Reflector); err != nil {
		return nil, fmt.Errorf("configure: %w", err)
	}
	for i, r := range s.Rings {
		if err := m.SetRingSetting(i, r); err != nil {
			return nil, fmt.Errorf("ring setting %d: %w", i+1, err)
		}
	}
	if s.Positions != "" {
		cs, _ := enigma.ParseContacts(s.Positions)
		if err := m.SetPositions(cs); err != nil {
			return nil, fmt.Errorf("positions: %w", err)
		}
	}
	for _, p := range s.Plugs {
		pair, _ := parsePair(p)
		if err := m.SetPlug(pair[0], pair[1]); err != nil {
			return nil, fmt.Errorf("plug %s: %w", p, err)
		}
	}
	return m, nil
}

// String renders the key the way it is printed on a key sheet, e.g.
// "Enigma1 I II III UKW-B rings 01 01 01 start ADU plugs AB CD".
func (s Settings) String() string {
	var b strings.Builder
	b.WriteString(s.Model)
	for _, r := range s.Rotors {
		b.WriteString(" " + r)
	}
	b.WriteString(" " + s.Reflector)
	if len(s.Rings) > 0 {
		b.WriteString(" rings")
		for _, r := range s.Rings {
			fmt.Fprintf(&b, " %02d", r)
		}
	}
	if s.Positions != "" {
		b.WriteString(" start " + strings.ToUpper(s.Positions))
	}
	if len(s.Plugs) > 0 {
		b.WriteString(" plugs " + strings.Join(s.Plugs, " "))
	}
	return b.String()
}
