package enigma

// Plugboard (Steckerbrett) swaps pairs of letters before and after the rotors.
// Unplugged letters pass straight through.
type Plugboard struct {
	wiring Wiring
}

// NewPlugboard returns a plugboard with no cables.
func NewPlugboard() *Plugboard {
	return &Plugboard{wiring: IdentityWiring()}
}

// SetPlug connects src and dst with a cable. Either end already carrying a
// cable is an error and nothing is changed.
func (p *Plugboard) SetPlug(src, dst Contact) error {
	switch {
	case !src.Valid() || !dst.Valid():
		return &PlugError{Src: src, Dst: dst, Reason: "contact is not valid"}
	case src == dst:
		return &PlugError{Src: src, Dst: dst, Reason: "cannot plug a letter to itself"}
	case p.wiring[src] != src:
		return &PlugError{Src: src, Dst: dst, Reason: "source is already in use"}
	case p.wiring[dst] != dst:
		return &PlugError{Src: src, Dst: dst, Reason: "destination is already in use"}
	}
	p.wiring[src] = dst
	p.wiring[dst] = src
	return nil
}

// RemovePlug pulls the cable on c, if any.
func (p *Plugboard) RemovePlug(c Contact) {
	if !c.Valid() {
		return
	}
	other := p.wiring[c]
	p.wiring[c] = c
	p.wiring[other] = other
}

// Clear removes every cable.
func (p *Plugboard) Clear() { p.wiring = IdentityWiring() }

// Plug returns the other end of the cable on c, or c when unplugged. The same
// lookup serves both passes because the pairing is symmetric.
func (p *Plugboard) Plug(c Contact) Contact {
	if !c.Valid() {
		return c
	}
	return p.wiring[c]
}

// Pairs lists the connected cables, lower letter first.
func (p *Plugboard) Pairs() [][2]Contact {
	var out [][2]Contact
	for in, to := range p.wiring {
		if c := Contact(in); c < to {
			out = append(out, [2]Contact{c, to})
		}
	}
	return out
}
