package main

import (
	"github.com/spf13/pflag"

	"enigma/internal/settings"
)

// keyFlags are the machine-key flags shared by encipher and sheet save.
type keyFlags struct {
	model     string
	rotors    string
	reflector string
	positions string
	rings     string
	plugs     string
}

func (k *keyFlags) register(f *pflag.FlagSet) {
	f.StringVar(&k.model, "model", "", "Machine model (default Enigma1)")
	f.StringVar(&k.rotors, "rotors", "", `Wheel order, leftmost first, e.g. "I II III"`)
	f.StringVar(&k.reflector, "reflector", "", "Reflector (default UKW-B)")
	f.StringVar(&k.positions, "positions", "", `Start positions, e.g. "ADU"`)
	f.StringVar(&k.rings, "rings", "", `Ring settings as numbers "1,1,1" or letters "AAA" (recorded, not applied to the cipher)`)
	f.StringVar(&k.plugs, "plugs", "", `Plugboard cables, e.g. "AB CD EF"`)
}

// changed reports whether any key flag was given.
func (k *keyFlags) changed(f *pflag.FlagSet) bool {
	for _, name := range []string{"model", "rotors", "reflector", "positions", "rings", "plugs"} {
		if f.Changed(name) {
			return true
		}
	}
	return false
}

// apply overrides base with the flags that were given.
func (k *keyFlags) apply(f *pflag.FlagSet, base settings.Settings) (settings.Settings, error) {
	s := base
	if f.Changed("model") {
		s.Model = k.model
	}
	if f.Changed("rotors") {
		s.Rotors = settings.ParseRotors(k.rotors)
	}
	if f.Changed("reflector") {
		s.Reflector = k.reflector
	}
	if f.Changed("positions") {
		p, err := settings.ParsePositions(k.positions)
		if err != nil {
			return s, err
		}
		s.Positions = p
	}
	if f.Changed("rings") {
		r, err := settings.ParseRings(k.rings)
		if err != nil {
			return s, err
		}
		s.Rings = r
	}
	if f.Changed("plugs") {
		p, err := settings.ParsePlugs(k.plugs)
		if err != nil {
			return s, err
		}
		s.Plugs = p
	}
	return s, nil
}
