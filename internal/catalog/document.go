package catalog

import "enigma/pkg/enigma"

// Document is one catalog file. A catalog is assembled from several
// documents; names must be unique across all of them.
type Document struct {
	Models     []ModelDoc     `json:"models,omitempty" yaml:"models,omitempty"`
	Wheels     []WheelDoc     `json:"wheels,omitempty" yaml:"wheels,omitempty"`
	Reflectors []ReflectorDoc `json:"reflectors,omitempty" yaml:"reflectors,omitempty"`

	// Source names the file the document came from, for diagnostics.
	Source string `json:"-" yaml:"-"`
}

// ModelDoc declares a machine variant and the parts it accepts.
type ModelDoc struct {
	Name       string   `json:"name" yaml:"name"`
	LongName   string   `json:"long_name,omitempty" yaml:"long_name,omitempty"`
	Rotors     int      `json:"rotors" yaml:"rotors"`
	Plugboard  bool     `json:"plugboard,omitempty" yaml:"plugboard,omitempty"`
	Wheels     []string `json:"wheels" yaml:"wheels"`
	Reflectors []string `json:"reflectors" yaml:"reflectors"`
}

// WheelDoc is a rotor record. Exactly one of Wiring or Circuits is set.
type WheelDoc struct {
	Name     string           `json:"name" yaml:"name"`
	Wiring   string           `json:"wiring,omitempty" yaml:"wiring,omitempty"`
	Circuits []enigma.Pin     `json:"circuits,omitempty" yaml:"circuits,omitempty"`
	Notches  []enigma.Contact `json:"notches,omitempty" yaml:"notches,omitempty"`
}

// ReflectorDoc is a reflector record. Exactly one of Wiring or Circuits is set.
type ReflectorDoc struct {
	Name     string       `json:"name" yaml:"name"`
	Wiring   string       `json:"wiring,omitempty" yaml:"wiring,omitempty"`
	Circuits []enigma.Pin `json:"circuits,omitempty" yaml:"circuits,omitempty"`
}

func (w WheelDoc) wiring() (enigma.Wiring, error) {
	if w.Wiring != "" {
		return enigma.ParseWiring(w.Name, w.Wiring)
	}
	return enigma.WiringFromPins(w.Name, w.Circuits)
}

func (r ReflectorDoc) wiring() (enigma.Wiring, error) {
	if r.Wiring != "" {
		return enigma.ParseWiring(r.Name, r.Wiring)
	}
	return enigma.WiringFromPins(r.Name, r.Circuits)
}
