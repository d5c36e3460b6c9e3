package enigma_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"enigma/pkg/enigma"
)

func TestPlugboard_SwapsBothWays(t *testing.T) {
	pb := enigma.NewPlugboard()
	if err := pb.SetPlug(enigma.A, enigma.B); err != nil {
		t.Fatalf("SetPlug: %v", err)
	}
	if pb.Plug(enigma.A) != enigma.B || pb.Plug(enigma.B) != enigma.A {
		t.Error("A:B not symmetric")
	}
	if pb.Plug(enigma.C) != enigma.C {
		t.Error("unplugged C should pass through")
	}
}

func TestPlugboard_Collisions(t *testing.T) {
	pb := enigma.NewPlugboard()
	if err := pb.SetPlug(enigma.A, enigma.B); err != nil {
		t.Fatalf("SetPlug: %v", err)
	}

	cases := []struct {
		name     string
		src, dst enigma.Contact
		reason   string
	}{
		{"source in use", enigma.A, enigma.C, "source is already in use"},
		{"destination in use", enigma.C, enigma.B, "destination is already in use"},
		{"self", enigma.D, enigma.D, "cannot plug a letter to itself"},
		{"invalid", enigma.D, 27, "contact is not valid"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := pb.SetPlug(tc.src, tc.dst)
			var pe *enigma.PlugError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *PlugError, got %v", err)
			}
			if pe.Reason != tc.reason {
				t.Errorf("Reason = %q, want %q", pe.Reason, tc.reason)
			}
		})
	}

	// Rejected cables leave the board untouched.
	want := [][2]enigma.Contact{{enigma.A, enigma.B}}
	if diff := cmp.Diff(want, pb.Pairs()); diff != "" {
		t.Errorf("pairs mismatch:\n%s", diff)
	}
	if pb.Plug(enigma.C) != enigma.C {
		t.Error("C should be unplugged after rejected cables")
	}
}

func TestPlugboard_RemoveAndClear(t *testing.T) {
	pb := enigma.NewPlugboard()
	for _, p := range [][2]enigma.Contact{{enigma.Z, enigma.Q}, {enigma.C, enigma.D}} {
		if err := pb.SetPlug(p[0], p[1]); err != nil {
			t.Fatalf("SetPlug: %v", err)
		}
	}
	want := [][2]enigma.Contact{{enigma.C, enigma.D}, {enigma.Q, enigma.Z}}
	if diff := cmp.Diff(want, pb.Pairs()); diff != "" {
		t.Errorf("pairs mismatch:\n%s", diff)
	}

	pb.RemovePlug(enigma.Z)
	if pb.Plug(enigma.Q) != enigma.Q || pb.Plug(enigma.Z) != enigma.Z {
		t.Error("RemovePlug should free both ends")
	}
	if err := pb.SetPlug(enigma.Q, enigma.A); err != nil {
		t.Errorf("Q should be reusable: %v", err)
	}

	pb.Clear()
	if len(pb.Pairs()) != 0 {
		t.Errorf("Clear left %v", pb.Pairs())
	}
}
