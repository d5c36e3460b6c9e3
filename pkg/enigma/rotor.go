package enigma

// Rotor is a wired wheel. Its wiring is given right to left, i.e. from the
// entry side facing the keyboard towards the reflector.
type Rotor struct {
	name     string
	wiring   Wiring
	reverse  Wiring
	notches  [NumContacts]bool
	position Contact
	ring     int
}

// NewRotor builds a rotor at position A with ring setting 1.
func NewRotor(name string, wiring Wiring, notches []Contact) (*Rotor, error) {
	if err := wiring.Validate(name); err != nil {
		return nil, err
	}
	r := &Rotor{
		name:    name,
		wiring:  wiring,
		reverse: wiring.Inverse(),
		ring:    1,
	}
	for _, n := range notches {
		if !n.Valid() {
			return nil, wiringErr(name, "turnover notch "+n.String()+" is not a contact")
		}
		r.notches[n] = true
	}
	return r, nil
}

// Name is the catalog name of the wheel, e.g. "III".
func (r *Rotor) Name() string { return r.name }

// Wiring returns a copy of the forward wiring.
func (r *Rotor) Wiring() Wiring { return r.wiring }

// Position is the letter currently showing in the machine window.
func (r *Rotor) Position() Contact { return r.position }

// RingSetting returns the Ringstellung, 1..26.
func (r *Rotor) RingSetting() int { return r.ring }

// Notches lists the turnover positions in alphabetical order.
func (r *Rotor) Notches() []Contact {
	var out []Contact
	for c, ok := range r.notches {
		if ok {
			out = append(out, Contact(c))
		}
	}
	return out
}

// Forward passes current from the entry side towards the reflector.
func (r *Rotor) Forward(c Contact) Contact {
	return r.pass(&r.wiring, c)
}

// Backward passes current returning from the reflector. For any fixed
// position Backward(Forward(c)) == c.
func (r *Rotor) Backward(c Contact) Contact {
	return r.pass(&r.reverse, c)
}

// pass shifts the incoming contact onto the physical pin at the current
// position, follows the wire, and shifts the exit pin back into the frame of
// the stack. Both shifts use the same offset so the two directions invert.
func (r *Rotor) pass(w *Wiring, c Contact) Contact {
	offset := int(r.position)
	return w[c.add(offset)].add(-offset)
}

// Step advances the rotor one position, wrapping Z to A.
func (r *Rotor) Step() { r.position = r.position.add(1) }

// WillStepNext reports whether the current position is a turnover notch,
// meaning the neighbour on the left steps when this rotor next steps.
func (r *Rotor) WillStepNext() bool { return r.notches[r.position] }

func (r *Rotor) setPosition(p Contact) error {
	if !p.Valid() {
		return ErrPosition
	}
	r.position = p
	return nil
}

func (r *Rotor) setRing(ring int) error {
	if ring < 1 || ring > NumContacts {
		return ErrRingSetting
	}
	r.ring = ring
	return nil
}
