package enigma

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"enigma/internal/logging"
)

// Machine is one simulated cipher machine. It is not safe for concurrent
// use: PressKey mutates rotor positions, so callers that share a Machine
// must serialise access themselves.
type Machine struct {
	model      ModelSpec
	rotors     []*Rotor // leftmost first
	reflector  *Reflector
	plugboard  *Plugboard
	doubleStep bool
	configured bool
	log        *slog.Logger
}

// State is the mechanical state carried between key presses.
type State struct {
	Positions  []Contact
	DoubleStep bool
}

// Option configures a Machine at construction.
type Option func(*Machine)

// WithLogger routes the machine's debug trace to l.
func WithLogger(l *slog.Logger) Option {
	return func(m *Machine) {
		if l != nil {
			m.log = l
		}
	}
}

// New returns an unconfigured machine.
func New(opts ...Option) *Machine {
	m := &Machine{log: logging.New("machine")}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Configure builds the rotor stack, reflector and (if the model has one)
// plugboard from cat. Any error leaves the machine unconfigured, whatever it
// was before; it may be configured again. On success every rotor is at A with
// ring setting 1 and the plugboard is empty.
func (m *Machine) Configure(cat Catalog, model string, rotors []string, reflector string) error {
	if err := m.configure(cat, model, rotors, reflector); err != nil {
		m.reset()
		m.log.Debug("configuration failed", "model", model, "error", err)
		return err
	}
	return nil
}

// reset drops the whole configuration.
func (m *Machine) reset() {
	m.model = ModelSpec{}
	m.rotors = nil
	m.reflector = nil
	m.plugboard = nil
	m.doubleStep = false
	m.configured = false
}

func (m *Machine) configure(cat Catalog, model string, rotors []string, reflector string) error {
	spec, ok := cat.Model(model)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownModel, model)
	}
	m.log.Debug("configuring machine", "model", model, "rotors", rotors, "reflector", reflector)

	if len(rotors) != spec.Rotors {
		return fmt.Errorf("%w: %s requires %d rotors, got %d", ErrRotorCount, model, spec.Rotors, len(rotors))
	}
	if spec.Rotors < 3 {
		return fmt.Errorf("%w: %s declares %d rotors, stepping needs at least 3", ErrRotorCount, model, spec.Rotors)
	}

	stack := make([]*Rotor, 0, len(rotors))
	for _, name := range rotors {
		rs, ok := cat.Rotor(model, name)
		if !ok {
			return fmt.Errorf("%w: rotor %q is not available for %s", ErrUnknownRotor, name, model)
		}
		r, err := NewRotor(rs.Name, rs.Wiring, rs.Notches)
		if err != nil {
			return fmt.Errorf("build rotor %q: %w", name, err)
		}
		stack = append(stack, r)
		m.log.Debug("added rotor", "rotor", rs.Name)
	}

	rfs, ok := cat.Reflector(model, reflector)
	if !ok {
		return fmt.Errorf("%w: reflector %q is not available for %s", ErrUnknownReflector, reflector, model)
	}
	rf, err := NewReflector(rfs.Name, rfs.Wiring)
	if err != nil {
		return fmt.Errorf("build reflector %q: %w", reflector, err)
	}
	m.log.Debug("added reflector", "reflector", rfs.Name)

	var pb *Plugboard
	if spec.Plugboard {
		m.log.Debug("machine is using a plugboard")
		pb = NewPlugboard()
	}

	m.model = spec
	m.rotors = stack
	m.reflector = rf
	m.plugboard = pb
	m.doubleStep = false
	m.configured = true
	return nil
}

// Configured reports whether Configure has succeeded.
func (m *Machine) Configured() bool { return m.configured }

// Model returns the configured model, or the zero value.
func (m *Machine) Model() ModelSpec { return m.model }

// RotorNames lists the configured rotors, leftmost first.
func (m *Machine) RotorNames() []string {
	names := make([]string, len(m.rotors))
	for i, r := range m.rotors {
		names[i] = r.Name()
	}
	return names
}

// ReflectorName returns the configured reflector, or "" when unconfigured.
func (m *Machine) ReflectorName() string {
	if m.reflector == nil {
		return ""
	}
	return m.reflector.Name()
}

// Plugboard returns the plugboard, or nil when the model has none.
func (m *Machine) Plugboard() *Plugboard { return m.plugboard }

// SetPlug connects two letters on the plugboard.
func (m *Machine) SetPlug(a, b Contact) error {
	if !m.configured {
		return ErrNotConfigured
	}
	if m.plugboard == nil {
		return fmt.Errorf("%w: %s", ErrNoPlugboard, m.model.Name)
	}
	return m.plugboard.SetPlug(a, b)
}

func (m *Machine) rotor(i int) (*Rotor, error) {
	if !m.configured {
		return nil, ErrNotConfigured
	}
	if i < 0 || i >= len(m.rotors) {
		return nil, fmt.Errorf("%w: %d (machine has %d rotors)", ErrRotorIndex, i, len(m.rotors))
	}
	return m.rotors[i], nil
}

// SetRotorPosition turns rotor i (0 is leftmost) to p. A pending double step
// is discarded because it belonged to the previous position.
func (m *Machine) SetRotorPosition(i int, p Contact) error {
	r, err := m.rotor(i)
	if err != nil {
		return err
	}
	if err := r.setPosition(p); err != nil {
		return fmt.Errorf("%w: %d", err, p)
	}
	m.doubleStep = false
	return nil
}

// RotorPosition returns the window letter of rotor i (0 is leftmost).
func (m *Machine) RotorPosition(i int) (Contact, error) {
	r, err := m.rotor(i)
	if err != nil {
		return 0, err
	}
	return r.Position(), nil
}

// Positions returns the window letters, leftmost first.
func (m *Machine) Positions() []Contact {
	ps := make([]Contact, len(m.rotors))
	for i, r := range m.rotors {
		ps[i] = r.Position()
	}
	return ps
}

// SetPositions sets every rotor at once. Nothing changes unless all
// positions are valid.
func (m *Machine) SetPositions(ps []Contact) error {
	if !m.configured {
		return ErrNotConfigured
	}
	if len(ps) != len(m.rotors) {
		return fmt.Errorf("%w: got %d positions for %d rotors", ErrRotorIndex, len(ps), len(m.rotors))
	}
	for _, p := range ps {
		if !p.Valid() {
			return fmt.Errorf("%w: %d", ErrPosition, p)
		}
	}
	for i, p := range ps {
		m.rotors[i].position = p
	}
	m.doubleStep = false
	return nil
}

// SetRingSetting sets the Ringstellung of rotor i, 1..26.
func (m *Machine) SetRingSetting(i, ring int) error {
	r, err := m.rotor(i)
	if err != nil {
		return err
	}
	if err := r.setRing(ring); err != nil {
		return fmt.Errorf("%w: %d", err, ring)
	}
	return nil
}

// RingSetting returns the Ringstellung of rotor i, 1..26.
func (m *Machine) RingSetting(i int) (int, error) {
	r, err := m.rotor(i)
	if err != nil {
		return 0, err
	}
	return r.RingSetting(), nil
}

// State captures positions and any pending double step.
func (m *Machine) State() State {
	return State{Positions: m.Positions(), DoubleStep: m.doubleStep}
}

// Restore returns the machine to a captured State.
func (m *Machine) Restore(s State) error {
	if err := m.SetPositions(s.Positions); err != nil {
		return err
	}
	m.doubleStep = s.DoubleStep
	return nil
}

// stepRotors moves the three rightmost rotors. The right rotor steps on
// every key. When the middle rotor steps onto its own notch it is due to
// step again on the next key together with the left rotor (the double step).
// A fourth rotor never moves.
func (m *Machine) stepRotors() {
	n := len(m.rotors)
	left, middle, right := m.rotors[n-3], m.rotors[n-2], m.rotors[n-1]

	propagate := right.WillStepNext()
	right.Step()

	if m.doubleStep {
		left.Step()
		middle.Step()
		m.doubleStep = false
	}

	if !propagate {
		return
	}

	middle.Step()
	if middle.WillStepNext() {
		m.doubleStep = true
	}
}

// PressKey steps the rotors and returns the lamp that lights for key.
func (m *Machine) PressKey(key Contact) (Contact, error) {
	if !m.configured {
		return 0, ErrNotConfigured
	}
	if !key.Valid() {
		return 0, &ParseError{Type: "Contact", Value: strconv.Itoa(int(key))}
	}
	trace := m.log.Enabled(context.Background(), slog.LevelDebug)

	if trace {
		m.log.Debug("rotors before stepping", "positions", FormatContacts(m.Positions()))
	}
	m.stepRotors()
	if trace {
		m.log.Debug("rotors after stepping", "positions", FormatContacts(m.Positions()), "double_step", m.doubleStep)
	}

	c := key
	if m.plugboard != nil {
		c = m.plugboard.Plug(c)
		if trace {
			m.log.Debug("plugboard", "in", key.String(), "out", c.String())
		}
	}

	for i := len(m.rotors) - 1; i >= 0; i-- {
		r := m.rotors[i]
		out := r.Forward(c)
		if trace {
			m.log.Debug("rotor forward", "rotor", r.Name(), "in", c.String(), "out", out.String())
		}
		c = out
	}

	out := m.reflector.Reflect(c)
	if trace {
		m.log.Debug("reflector", "reflector", m.reflector.Name(), "in", c.String(), "out", out.String())
	}
	c = out

	for _, r := range m.rotors {
		out := r.Backward(c)
		if trace {
			m.log.Debug("rotor backward", "rotor", r.Name(), "in", c.String(), "out", out.String())
		}
		c = out
	}

	if m.plugboard != nil {
		c = m.plugboard.Plug(c)
	}
	if trace {
		m.log.Debug("key pressed", "key", key.String(), "lamp", c.String())
	}
	return c, nil
}

// Encipher presses every letter of text in turn. Text must consist of
// letters only; it is checked in full before any key is pressed.
func (m *Machine) Encipher(text string) (string, error) {
	if !m.configured {
		return "", ErrNotConfigured
	}
	keys, err := ParseContacts(text)
	if err != nil {
		return "", err
	}
	out := make([]Contact, len(keys))
	for i, k := range keys {
		if out[i], err = m.PressKey(k); err != nil {
			return "", err
		}
	}
	return FormatContacts(out), nil
}
