package enigma_test

import (
	"testing"

	"enigma/pkg/enigma"
)

const (
	wiringI      = "EKMFLGDQVZNTOWYHXUSPAIBRCJ"
	wiringII     = "AJDKSIRUXBLHWTMCQGZNPYFVOE"
	wiringIII    = "BDFHJLCPRTXVZNYEIWGAKMUSQO"
	wiringBeta   = "LEYJVCNIXWPBQMDRTAKZGFUHOS"
	wiringUKWB   = "YRUHQSLDPXNGOKMIEBFZCWVJAT"
	wiringUKWBth = "ENKQAUYWJICOPBLMDXZVFTHRGS"
)

// stubCatalog is a hand-built catalog so the engine is tested without the
// file loader.
type stubCatalog struct {
	models     map[string]enigma.ModelSpec
	rotors     map[string]enigma.RotorSpec
	reflectors map[string]enigma.ReflectorSpec
}

func (s *stubCatalog) Model(name string) (enigma.ModelSpec, bool) {
	m, ok := s.models[name]
	return m, ok
}

func (s *stubCatalog) Rotor(_, name string) (enigma.RotorSpec, bool) {
	r, ok := s.rotors[name]
	return r, ok
}

func (s *stubCatalog) Reflector(_, name string) (enigma.ReflectorSpec, bool) {
	r, ok := s.reflectors[name]
	return r, ok
}

func mustWiring(t *testing.T, name, layout string) enigma.Wiring {
	t.Helper()
	w, err := enigma.ParseWiring(name, layout)
	if err != nil {
		t.Fatalf("ParseWiring(%s): %v", name, err)
	}
	return w
}

func newStubCatalog(t *testing.T) *stubCatalog {
	t.Helper()
	return &stubCatalog{
		models: map[string]enigma.ModelSpec{
			"Enigma1": {Name: "Enigma1", LongName: "Enigma I", Rotors: 3, Plugboard: true},
			"M4":      {Name: "M4", LongName: "Enigma M4", Rotors: 4, Plugboard: true},
			"Plain":   {Name: "Plain", LongName: "No plugboard", Rotors: 3},
		},
		rotors: map[string]enigma.RotorSpec{
			"I":    {Name: "I", Wiring: mustWiring(t, "I", wiringI), Notches: []enigma.Contact{enigma.Q}},
			"II":   {Name: "II", Wiring: mustWiring(t, "II", wiringII), Notches: []enigma.Contact{enigma.E}},
			"III":  {Name: "III", Wiring: mustWiring(t, "III", wiringIII), Notches: []enigma.Contact{enigma.V}},
			"Beta": {Name: "Beta", Wiring: mustWiring(t, "Beta", wiringBeta)},
		},
		reflectors: map[string]enigma.ReflectorSpec{
			"UKW-B":      {Name: "UKW-B", Wiring: mustWiring(t, "UKW-B", wiringUKWB)},
			"UKW-B-thin": {Name: "UKW-B-thin", Wiring: mustWiring(t, "UKW-B-thin", wiringUKWBth)},
		},
	}
}

func newEnigma1(t *testing.T) *enigma.Machine {
	t.Helper()
	m := enigma.New()
	if err := m.Configure(newStubCatalog(t), "Enigma1", []string{"I", "II", "III"}, "UKW-B"); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	return m
}

func setPositions(t *testing.T, m *enigma.Machine, letters string) {
	t.Helper()
	ps, err := enigma.ParseContacts(letters)
	if err != nil {
		t.Fatalf("ParseContacts(%q): %v", letters, err)
	}
	if err := m.SetPositions(ps); err != nil {
		t.Fatalf("SetPositions(%q): %v", letters, err)
	}
}
