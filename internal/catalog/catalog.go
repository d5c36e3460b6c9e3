// Package catalog loads machine models, wheels and reflectors from YAML or
// JSON documents and serves them to the cipher engine.
package catalog

import (
	"errors"
	"fmt"

	"enigma/pkg/enigma"
)

var (
	// ErrInvalid marks a document that fails the catalog schema.
	ErrInvalid = errors.New("catalog: invalid document")

	// ErrDuplicate is returned when two records share a name.
	ErrDuplicate = errors.New("catalog: duplicate name")

	// ErrUndefined is returned when a model references a missing wheel or reflector.
	ErrUndefined = errors.New("catalog: undefined reference")
)

type model struct {
	spec       enigma.ModelSpec
	wheels     []string
	reflectors []string
	accepts    map[string]bool
}

// Catalog is an immutable, validated set of models and parts. It is safe for
// concurrent use.
type Catalog struct {
	order      []string
	models     map[string]*model
	wheels     map[string]enigma.RotorSpec
	reflectors map[string]enigma.ReflectorSpec
}

var _ enigma.Catalog = (*Catalog)(nil)

// Merge validates documents against each other and against the wiring rules
// of the engine, and assembles them into one Catalog.
func Merge(docs ...*Document) (*Catalog, error) {
	c := &Catalog{
		models:     make(map[string]*model),
		wheels:     make(map[string]enigma.RotorSpec),
		reflectors: make(map[string]enigma.ReflectorSpec),
	}
	for _, d := range docs {
		if err := c.addParts(d); err != nil {
			return nil, err
		}
	}
	for _, d := range docs {
		if err := c.addModels(d); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func source(d *Document) string {
	if d.Source == "" {
		return "catalog"
	}
	return d.Source
}

func (c *Catalog) addParts(d *Document) error {
	src := source(d)
	for _, w := range d.Wheels {
		if _, dup := c.wheels[w.Name]; dup {
			return fmt.Errorf("%s: %w: wheel %q", src, ErrDuplicate, w.Name)
		}
		wiring, err := w.wiring()
		if err != nil {
			return fmt.Errorf("%s: wheel %q: %w", src, w.Name, err)
		}
		if _, err := enigma.NewRotor(w.Name, wiring, w.Notches); err != nil {
			return fmt.Errorf("%s: wheel %q: %w", src, w.Name, err)
		}
		c.wheels[w.Name] = enigma.RotorSpec{Name: w.Name, Wiring: wiring, Notches: w.Notches}
	}
	for _, r := range d.Reflectors {
		if _, dup := c.reflectors[r.Name]; dup {
			return fmt.Errorf("%s: %w: reflector %q", src, ErrDuplicate, r.Name)
		}
		wiring, err := r.wiring()
		if err != nil {
			return fmt.Errorf("%s: reflector %q: %w", src, r.Name, err)
		}
		if _, err := enigma.NewReflector(r.Name, wiring); err != nil {
			return fmt.Errorf("%s: reflector %q: %w", src, r.Name, err)
		}
		c.reflectors[r.Name] = enigma.ReflectorSpec{Name: r.Name, Wiring: wiring}
	}
	return nil
}

func (c *Catalog) addModels(d *Document) error {
	src := source(d)
	for _, md := range d.Models {
		if md.Name == "" {
			return fmt.Errorf("%s: %w: model without a name", src, ErrInvalid)
		}
		if _, dup := c.models[md.Name]; dup {
			return fmt.Errorf("%s: %w: model %q", src, ErrDuplicate, md.Name)
		}
		if md.Rotors != 3 && md.Rotors != 4 {
			return fmt.Errorf("%s: model %q: %w: %d rotors, want 3 or 4", src, md.Name, enigma.ErrRotorCount, md.Rotors)
		}
		m := &model{
			spec: enigma.ModelSpec{
				Name:      md.Name,
				LongName:  md.LongName,
				Rotors:    md.Rotors,
				Plugboard: md.Plugboard,
			},
			accepts: make(map[string]bool),
		}
		if m.spec.LongName == "" {
			m.spec.LongName = md.Name
		}
		for _, w := range md.Wheels {
			if _, ok := c.wheels[w]; !ok {
				return fmt.Errorf("%s: model %q: %w: wheel %q", src, md.Name, ErrUndefined, w)
			}
			m.wheels = append(m.wheels, w)
			m.accepts["w:"+w] = true
		}
		for _, r := range md.Reflectors {
			if _, ok := c.reflectors[r]; !ok {
				return fmt.Errorf("%s: model %q: %w: reflector %q", src, md.Name, ErrUndefined, r)
			}
			m.reflectors = append(m.reflectors, r)
			m.accepts["r:"+r] = true
		}
		if len(m.wheels) == 0 || len(m.reflectors) == 0 {
			return fmt.Errorf("%s: model %q: %w: needs at least one wheel and one reflector", src, md.Name, ErrInvalid)
		}
		c.models[md.Name] = m
		c.order = append(c.order, md.Name)
	}
	return nil
}

// Model implements enigma.Catalog.
func (c *Catalog) Model(name string) (enigma.ModelSpec, bool) {
	m, ok := c.models[name]
	if !ok {
		return enigma.ModelSpec{}, false
	}
	return m.spec, true
}

// Rotor implements enigma.Catalog. Only wheels the model lists are returned.
func (c *Catalog) Rotor(modelName, name string) (enigma.RotorSpec, bool) {
	m, ok := c.models[modelName]
	if !ok || !m.accepts["w:"+name] {
		return enigma.RotorSpec{}, false
	}
	return c.wheels[name], true
}

// Reflector implements enigma.Catalog.
func (c *Catalog) Reflector(modelName, name string) (enigma.ReflectorSpec, bool) {
	m, ok := c.models[modelName]
	if !ok || !m.accepts["r:"+name] {
		return enigma.ReflectorSpec{}, false
	}
	return c.reflectors[name], true
}

// Models lists every model in the order it was declared.
func (c *Catalog) Models() []enigma.ModelSpec {
	out := make([]enigma.ModelSpec, len(c.order))
	for i, n := range c.order {
		out[i] = c.models[n].spec
	}
	return out
}

func (c *Catalog) ModelNames() []string {
	return append([]string(nil), c.order...)
}

// Wheels lists the wheels model accepts, in declaration order. Nil for an
// unknown model.
func (c *Catalog) Wheels(modelName string) []enigma.RotorSpec {
	m, ok := c.models[modelName]
	if !ok {
		return nil
	}
	out := make([]enigma.RotorSpec, len(m.wheels))
	for i, w := range m.wheels {
		out[i] = c.wheels[w]
	}
	return out
}

// Reflectors lists the reflectors model accepts.
func (c *Catalog) Reflectors(modelName string) []enigma.ReflectorSpec {
	m, ok := c.models[modelName]
	if !ok {
		return nil
	}
	out := make([]enigma.ReflectorSpec, len(m.reflectors))
	for i, r := range m.reflectors {
		out[i] = c.reflectors[r]
	}
	return out
}
