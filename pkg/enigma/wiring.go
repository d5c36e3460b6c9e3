package enigma

import "strconv"

// Wiring maps each entry contact (the index) to its exit contact.
type Wiring [NumContacts]Contact

// Pin is one wired circuit of a wheel or reflector.
type Pin struct {
	In  Contact `json:"in" yaml:"in"`
	Out Contact `json:"out" yaml:"out"`
}

// IdentityWiring returns the pass-through wiring A→A ... Z→Z.
func IdentityWiring() Wiring {
	var w Wiring
	for i := range w {
		w[i] = Contact(i)
	}
	return w
}

// ParseWiring reads the 26-letter exit sequence for entry contacts A..Z,
// e.g. "EKMFLGDQVZNTOWYHXUSPAIBRCJ".
func ParseWiring(device, layout string) (Wiring, error) {
	cs, err := ParseContacts(layout)
	if err != nil {
		return Wiring{}, wiringErr(device, "wiring "+strconv.Quote(layout)+" contains a non-letter")
	}
	if len(cs) != NumContacts {
		return Wiring{}, wiringErr(device, "wiring must list "+strconv.Itoa(NumContacts)+" contacts, got "+strconv.Itoa(len(cs)))
	}
	pins := make([]Pin, NumContacts)
	for i, out := range cs {
		pins[i] = Pin{In: Contact(i), Out: out}
	}
	return WiringFromPins(device, pins)
}

// WiringFromPins builds a wiring from explicit circuits. Every contact must
// appear exactly once as an input and once as an output; the first collision
// is reported with the offending pin pair.
func WiringFromPins(device string, pins []Pin) (Wiring, error) {
	var (
		w       Wiring
		seenIn  [NumContacts]bool
		seenOut [NumContacts]bool
	)
	for _, p := range pins {
		if !p.In.Valid() || !p.Out.Valid() {
			return Wiring{}, circuitErr(device, p.In, p.Out, "uses an invalid contact")
		}
		if seenIn[p.In] {
			return Wiring{}, circuitErr(device, p.In, p.Out, "input pin is already defined")
		}
		if seenOut[p.Out] {
			return Wiring{}, circuitErr(device, p.In, p.Out, "output pin is already defined")
		}
		seenIn[p.In], seenOut[p.Out] = true, true
		w[p.In] = p.Out
	}
	if len(pins) != NumContacts {
		return Wiring{}, wiringErr(device, "incomplete wiring: "+strconv.Itoa(len(pins))+" of "+strconv.Itoa(NumContacts)+" circuits defined")
	}
	return w, nil
}

// Validate checks that w is a permutation of all contacts.
func (w Wiring) Validate(device string) error {
	var seen [NumContacts]bool
	for in, out := range w {
		if !out.Valid() {
			return circuitErr(device, Contact(in), out, "uses an invalid contact")
		}
		if seen[out] {
			return circuitErr(device, Contact(in), out, "output pin is already defined")
		}
		seen[out] = true
	}
	return nil
}

// Inverse returns the wiring that undoes w. w must be valid.
func (w Wiring) Inverse() Wiring {
	var inv Wiring
	for in, out := range w {
		inv[out] = Contact(in)
	}
	return inv
}

// Pins lists the circuits of w in entry order.
func (w Wiring) Pins() []Pin {
	pins := make([]Pin, NumContacts)
	for in, out := range w {
		pins[in] = Pin{In: Contact(in), Out: out}
	}
	return pins
}

func (w Wiring) String() string { return FormatContacts(w[:]) }
