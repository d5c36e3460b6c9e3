package enigma_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"enigma/pkg/enigma"
)

func TestParseWiring(t *testing.T) {
	w, err := enigma.ParseWiring("I", wiringI)
	if err != nil {
		t.Fatalf("ParseWiring: %v", err)
	}
	if w[enigma.A] != enigma.E || w[enigma.Z] != enigma.J {
		t.Errorf("unexpected wiring %s", w)
	}
	if got := w.String(); got != wiringI {
		t.Errorf("String() = %q, want %q", got, wiringI)
	}
}

func TestParseWiring_Errors(t *testing.T) {
	cases := []struct {
		name   string
		layout string
		want   string
	}{
		{"short", "ABC", "wiring must list 26 contacts, got 3"},
		{"non-letter", "EKMFLGDQVZNTOWYHXUSPAIBRC1", "contains a non-letter"},
		{"duplicate output", "AACDEFGHIJKLMNOPQRSTUVWXYZ", "circuit B:A output pin is already defined"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := enigma.ParseWiring("X", tc.layout)
			var we *enigma.WiringError
			if !errors.As(err, &we) {
				t.Fatalf("expected *WiringError, got %v", err)
			}
			if we.Device != "X" {
				t.Errorf("Device = %q, want X", we.Device)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not contain %q", err, tc.want)
			}
		})
	}
}

func TestWiringFromPins(t *testing.T) {
	ident := enigma.IdentityWiring()
	w, err := enigma.WiringFromPins("id", ident.Pins())
	if err != nil {
		t.Fatalf("WiringFromPins: %v", err)
	}
	if w != ident {
		t.Errorf("got %s, want identity", w)
	}

	pins := ident.Pins()
	pins[3] = enigma.Pin{In: enigma.C, Out: enigma.Q}
	_, err = enigma.WiringFromPins("dup", pins)
	if err == nil || !strings.Contains(err.Error(), "circuit C:Q input pin is already defined") {
		t.Errorf("duplicate input: got %v", err)
	}

	_, err = enigma.WiringFromPins("short", ident.Pins()[:20])
	if err == nil || !strings.Contains(err.Error(), "incomplete wiring: 20 of 26") {
		t.Errorf("incomplete: got %v", err)
	}
}

func TestWiring_Inverse(t *testing.T) {
	w := mustWiring(t, "II", wiringII)
	inv := w.Inverse()
	for c := enigma.A; c <= enigma.Z; c++ {
		if inv[w[c]] != c {
			t.Fatalf("inverse broken at %v", c)
		}
	}
	if diff := cmp.Diff(w, inv.Inverse()); diff != "" {
		t.Errorf("double inverse mismatch:\n%s", diff)
	}
}
