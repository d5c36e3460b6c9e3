package enigma_test

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"enigma/pkg/enigma"
)

func TestMachine_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	m := newEnigma1(t)
	start := func(l, mid, r int) {
		ps := []enigma.Contact{enigma.Contact(l), enigma.Contact(mid), enigma.Contact(r)}
		if err := m.SetPositions(ps); err != nil {
			t.Fatalf("SetPositions: %v", err)
		}
	}
	pos := gen.IntRange(0, enigma.NumContacts-1)

	properties.Property("enciphering twice from the same start restores the text", prop.ForAll(
		func(text string, l, mid, r int) bool {
			start(l, mid, r)
			cipher, err := m.Encipher(text)
			if err != nil {
				return false
			}
			start(l, mid, r)
			plain, err := m.Encipher(cipher)
			return err == nil && plain == strings.ToUpper(text)
		},
		gen.AlphaString(), pos, pos, pos,
	))

	properties.Property("no letter enciphers to itself", prop.ForAll(
		func(text string, l, mid, r int) bool {
			start(l, mid, r)
			upper := strings.ToUpper(text)
			cipher, err := m.Encipher(upper)
			if err != nil {
				return false
			}
			for i := range upper {
				if upper[i] == cipher[i] {
					return false
				}
			}
			return true
		},
		gen.AlphaString(), pos, pos, pos,
	))

	properties.Property("the same start always gives the same output", prop.ForAll(
		func(text string, l, mid, r int) bool {
			start(l, mid, r)
			a, _ := m.Encipher(text)
			start(l, mid, r)
			b, _ := m.Encipher(text)
			return a == b
		},
		gen.AlphaString(), pos, pos, pos,
	))

	properties.TestingRun(t)
}
