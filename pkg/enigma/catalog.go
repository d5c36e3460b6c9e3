package enigma

// ModelSpec describes a machine variant: how many rotors it takes and
// whether it has a plugboard.
type ModelSpec struct {
	Name      string
	LongName  string
	Rotors    int
	Plugboard bool
}

// RotorSpec is the wiring record of a wheel.
type RotorSpec struct {
	Name    string
	Wiring  Wiring
	Notches []Contact
}

// ReflectorSpec is the wiring record of a reflector.
type ReflectorSpec struct {
	Name   string
	Wiring Wiring
}

// Catalog resolves model, rotor and reflector names into records. Rotor and
// Reflector only return parts that the named model accepts.
type Catalog interface {
	Model(name string) (ModelSpec, bool)
	Rotor(model, name string) (RotorSpec, bool)
	Reflector(model, name string) (ReflectorSpec, bool)
}
