package enigma

import (
	"errors"
	"strconv"
)

var (
	// ErrNotConfigured is returned by operations that need a rotor stack before
	// Configure has succeeded.
	ErrNotConfigured = errors.New("enigma: machine is not configured")

	// ErrUnknownModel is returned when the catalog has no such machine model.
	ErrUnknownModel = errors.New("enigma: unknown machine model")

	// ErrRotorCount is returned when the number of rotors does not match the model.
	ErrRotorCount = errors.New("enigma: invalid number of rotors")

	// ErrUnknownRotor is returned when a rotor name is not available for the model.
	ErrUnknownRotor = errors.New("enigma: unknown rotor")

	// ErrUnknownReflector is returned when a reflector name is not available for the model.
	ErrUnknownReflector = errors.New("enigma: unknown reflector")

	// ErrRotorIndex is returned for a rotor index outside the configured stack.
	ErrRotorIndex = errors.New("enigma: rotor index out of range")

	// ErrPosition is returned for a rotor position outside A..Z.
	ErrPosition = errors.New("enigma: rotor position out of range")

	// ErrRingSetting is returned for a ring setting outside 1..26.
	ErrRingSetting = errors.New("enigma: ring setting out of range")

	// ErrNoPlugboard is returned when plugging cables on a model without a plugboard.
	ErrNoPlugboard = errors.New("enigma: machine has no plugboard")
)

// ParseError is returned when text cannot be read as a contact.
type ParseError struct {
	Type  string
	Value string
}

func (e *ParseError) Error() string {
	return "enigma: invalid " + e.Type + " value: " + strconv.Quote(e.Value)
}

// MarshalError is returned when an out-of-range value is serialised.
type MarshalError struct {
	Type  string
	Value int
}

func (e *MarshalError) Error() string {
	return "enigma: cannot marshal invalid " + e.Type + " value: " + strconv.Itoa(e.Value)
}

// WiringError reports a malformed wiring table. In and Out identify the pin
// pair that collided when the problem is tied to one circuit.
type WiringError struct {
	Device string // rotor or reflector name
	In     Contact
	Out    Contact
	Reason string
	pinned bool
}

func (e *WiringError) Error() string {
	msg := "enigma: " + e.Device + ": "
	if e.pinned {
		msg += "circuit " + e.In.String() + ":" + e.Out.String() + " "
	}
	return msg + e.Reason
}

func wiringErr(device, reason string) *WiringError {
	return &WiringError{Device: device, Reason: reason}
}

func circuitErr(device string, in, out Contact, reason string) *WiringError {
	return &WiringError{Device: device, In: in, Out: out, Reason: reason, pinned: true}
}

// PlugError reports a rejected plugboard cable.
type PlugError struct {
	Src    Contact
	Dst    Contact
	Reason string
}

func (e *PlugError) Error() string {
	return "enigma: plugboard " + e.Reason + " (" + e.Src.String() + ":" + e.Dst.String() + ")"
}
