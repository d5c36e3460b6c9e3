package enigma

// Reflector (Umkehrwalze) turns the current back through the rotor stack.
// It never rotates.
type Reflector struct {
	name   string
	wiring Wiring
}

// NewReflector rejects wiring that is not a permutation, is not its own
// inverse, or wires any pin to itself.
func NewReflector(name string, wiring Wiring) (*Reflector, error) {
	if err := wiring.Validate(name); err != nil {
		return nil, err
	}
	for in, out := range wiring {
		c := Contact(in)
		if out == c {
			return nil, circuitErr(name, c, out, "is wired to itself")
		}
		if wiring[out] != c {
			return nil, circuitErr(name, c, out, "is not reciprocal, "+out.String()+" returns "+wiring[out].String())
		}
	}
	return &Reflector{name: name, wiring: wiring}, nil
}

// Name is the catalog name of the reflector, e.g. "UKW-B".
func (r *Reflector) Name() string { return r.name }

// Wiring returns a copy of the reflector wiring.
func (r *Reflector) Wiring() Wiring { return r.wiring }

// Reflect returns the contact paired with c.
func (r *Reflector) Reflect(c Contact) Contact { return r.wiring[c] }
