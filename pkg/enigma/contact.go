// Package enigma implements the cipher engine of a rotor cipher machine:
// contacts, wiring tables, rotors, reflectors, the plugboard and the machine
// that steps the rotor stack and routes one key press through all of them.
//
// A Machine is configured from a Catalog of wiring records, then driven one
// key at a time with PressKey. The transformation is reciprocal: pressing the
// ciphertext from the same starting state yields the plaintext.
package enigma

// NumContacts is the number of contacts on every wheel, reflector and the plugboard.
const NumContacts = 26

// Contact is one of the 26 pins of a wheel, ordered A=0 through Z=25.
type Contact uint8

const (
	A Contact = iota
	B
	C
	D
	E
	F
	G
	H
	I
	J
	K
	L
	M
	N
	O
	P
	Q
	R
	S
	T
	U
	V
	W
	X
	Y
	Z
)

// Valid reports whether c lies within A..Z.
func (c Contact) Valid() bool { return c < NumContacts }

// Rune returns the upper-case letter for c, or '?' for an invalid contact.
func (c Contact) Rune() rune {
	if !c.Valid() {
		return '?'
	}
	return 'A' + rune(c)
}

func (c Contact) String() string { return string(c.Rune()) }

// add shifts c by n positions around the ring. n may be negative.
func (c Contact) add(n int) Contact {
	v := (int(c) + n) % NumContacts
	if v < 0 {
		v += NumContacts
	}
	return Contact(v)
}

// ParseContact converts a letter (either case) into a Contact.
func ParseContact(r rune) (Contact, error) {
	switch {
	case r >= 'A' && r <= 'Z':
		return Contact(r - 'A'), nil
	case r >= 'a' && r <= 'z':
		return Contact(r - 'a'), nil
	}
	return 0, &ParseError{Type: "Contact", Value: string(r)}
}

// ParseContacts converts every rune of s into a Contact. Nothing is returned
// unless all of s is valid.
func ParseContacts(s string) ([]Contact, error) {
	out := make([]Contact, 0, len(s))
	for _, r := range s {
		c, err := ParseContact(r)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// FormatContacts renders contacts as a string of letters.
func FormatContacts(cs []Contact) string {
	buf := make([]rune, len(cs))
	for i, c := range cs {
		buf[i] = c.Rune()
	}
	return string(buf)
}

// MarshalText encodes the contact as its letter, so contacts read and write
// as "Q" in YAML and JSON documents.
func (c Contact) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, &MarshalError{Type: "Contact", Value: int(c)}
	}
	return []byte{byte(c.Rune())}, nil
}

// UnmarshalText decodes a single letter.
func (c *Contact) UnmarshalText(text []byte) error {
	if len(text) != 1 {
		return &ParseError{Type: "Contact", Value: string(text)}
	}
	v, err := ParseContact(rune(text[0]))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
