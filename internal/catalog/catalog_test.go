package catalog

import (
	"errors"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"enigma/pkg/enigma"
)

func testdataPath(name string) string {
	_, f, _, _ := runtime.Caller(0)
	dir := filepath.Dir(f)
	return filepath.Join(dir, "testdata", name)
}

func mustBuiltin(t *testing.T) *Catalog {
	t.Helper()
	c, err := Builtin()
	if err != nil {
		t.Fatalf("Builtin: %v", err)
	}
	return c
}

func TestBuiltin_Models(t *testing.T) {
	c := mustBuiltin(t)
	if diff := cmp.Diff([]string{"Enigma1", "M3", "M4"}, c.ModelNames()); diff != "" {
		t.Errorf("model names mismatch:\n%s", diff)
	}
	want := []enigma.ModelSpec{
		{Name: "Enigma1", LongName: "Enigma I", Rotors: 3, Plugboard: true},
		{Name: "M3", LongName: "Enigma M3", Rotors: 3, Plugboard: true},
		{Name: "M4", LongName: "Enigma M4", Rotors: 4, Plugboard: true},
	}
	if diff := cmp.Diff(want, c.Models()); diff != "" {
		t.Errorf("models mismatch:\n%s", diff)
	}
}

func TestBuiltin_PartsAreScopedToModel(t *testing.T) {
	c := mustBuiltin(t)
	cases := []struct {
		model, part string
		rotor       bool
		want        bool
	}{
		{"Enigma1", "V", true, true},
		{"Enigma1", "VI", true, false},
		{"M3", "VIII", true, true},
		{"M3", "Beta", true, false},
		{"M4", "Gamma", true, true},
		{"Enigma1", "UKW-A", false, true},
		{"M3", "UKW-A", false, false},
		{"M4", "UKW-B", false, false},
		{"M4", "UKW-C-thin", false, true},
		{"Typex", "I", true, false},
	}
	for _, tc := range cases {
		var ok bool
		if tc.rotor {
			_, ok = c.Rotor(tc.model, tc.part)
		} else {
			_, ok = c.Reflector(tc.model, tc.part)
		}
		if ok != tc.want {
			t.Errorf("%s accepts %s = %v, want %v", tc.model, tc.part, ok, tc.want)
		}
	}
}

func TestBuiltin_WheelRecords(t *testing.T) {
	c := mustBuiltin(t)
	vi, ok := c.Rotor("M3", "VI")
	if !ok {
		t.Fatal("VI missing")
	}
	if vi.Wiring.String() != "JPGVOUMFYQBENHZRDKASXLICTW" {
		t.Errorf("VI wiring = %s", vi.Wiring)
	}
	if diff := cmp.Diff([]enigma.Contact{enigma.Z, enigma.M}, vi.Notches); diff != "" {
		t.Errorf("VI notches mismatch:\n%s", diff)
	}
	beta, _ := c.Rotor("M4", "Beta")
	if len(beta.Notches) != 0 {
		t.Errorf("Beta should have no notches, got %v", beta.Notches)
	}
	if n := len(c.Wheels("M4")); n != 10 {
		t.Errorf("M4 wheels = %d, want 10", n)
	}
	if n := len(c.Reflectors("Enigma1")); n != 3 {
		t.Errorf("Enigma1 reflectors = %d, want 3", n)
	}
	if c.Wheels("Typex") != nil {
		t.Error("unknown model should list no wheels")
	}
}

func TestBuiltin_DrivesMachine(t *testing.T) {
	c := mustBuiltin(t)
	m := enigma.New()
	if err := m.Configure(c, "Enigma1", []string{"I", "II", "III"}, "UKW-B"); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	got, err := m.Encipher("AAAAA")
	if err != nil || got != "BDZGO" {
		t.Errorf("Encipher = %q, %v; want BDZGO", got, err)
	}

	m4 := enigma.New()
	if err := m4.Configure(c, "M4", []string{"Beta", "I", "II", "III"}, "UKW-B-thin"); err != nil {
		t.Fatalf("Configure M4: %v", err)
	}
	if got, _ := m4.Encipher("AAAAA"); got != "BDZGO" {
		t.Errorf("M4 Encipher = %q, want BDZGO", got)
	}

	err = m.Configure(c, "Enigma1", []string{"I", "II", "VI"}, "UKW-B")
	if !errors.Is(err, enigma.ErrUnknownRotor) || !strings.Contains(err.Error(), `"VI"`) {
		t.Errorf("VI on Enigma1: %v", err)
	}
}

func TestLoad_DetectJSON(t *testing.T) {
	data := []byte(`{"reflectors":[{"name":"R","wiring":"YRUHQSLDPXNGOKMIEBFZCWVJAT"}]}`)
	doc, err := Load(data, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(doc.Reflectors) != 1 || doc.Reflectors[0].Name != "R" {
		t.Errorf("got %+v", doc)
	}
}

func TestLoad_DetectYAML(t *testing.T) {
	data := []byte("wheels:\n  - name: X\n    wiring: EKMFLGDQVZNTOWYHXUSPAIBRCJ\n    notches: [q]\n")
	doc, err := Load(data, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(doc.Wheels) != 1 || doc.Wheels[0].Notches[0] != enigma.Q {
		t.Errorf("got %+v", doc)
	}
}

func TestLoad_SchemaViolations(t *testing.T) {
	cases := map[string]string{
		"unknown field":       "wheels:\n  - name: X\n    wiring: EKMFLGDQVZNTOWYHXUSPAIBRCJ\n    colour: red\n",
		"no wiring":           "wheels:\n  - name: X\n",
		"short wiring":        "reflectors:\n  - name: R\n    wiring: ABC\n",
		"two-letter notch":    "wheels:\n  - name: X\n    wiring: EKMFLGDQVZNTOWYHXUSPAIBRCJ\n    notches: [QE]\n",
		"wiring and circuits": "reflectors:\n  - name: R\n    wiring: YRUHQSLDPXNGOKMIEBFZCWVJAT\n    circuits: [{in: A, out: B}]\n",
		"unknown section":     "machines: []\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load([]byte(doc), ".yaml")
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestLoadFromPath_RotorCountOutOfRange(t *testing.T) {
	_, err := LoadFromPath(testdataPath("five_rotors.json"))
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if !strings.Contains(err.Error(), "five_rotors.json") {
		t.Errorf("error should name the file: %v", err)
	}
}

func TestMerge_WiringDiagnostic(t *testing.T) {
	doc, err := LoadFromPath(testdataPath("broken_wiring.yaml"))
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	_, err = Merge(doc)
	var we *enigma.WiringError
	if !errors.As(err, &we) {
		t.Fatalf("expected WiringError, got %v", err)
	}
	for _, want := range []string{"broken_wiring.yaml", `wheel "Broken"`, "circuit B:A"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}

func TestMerge_Duplicates(t *testing.T) {
	docs, err := BuiltinDocuments()
	if err != nil {
		t.Fatal(err)
	}
	extra := &Document{
		Source:     "extra.yaml",
		Reflectors: []ReflectorDoc{{Name: "UKW-B", Wiring: "YRUHQSLDPXNGOKMIEBFZCWVJAT"}},
	}
	_, err = Merge(append(docs, extra)...)
	if !errors.Is(err, ErrDuplicate) || !strings.Contains(err.Error(), "extra.yaml") {
		t.Errorf("expected ErrDuplicate naming extra.yaml, got %v", err)
	}

	model := &Document{Models: []ModelDoc{{Name: "M3", Rotors: 3, Wheels: []string{"I"}, Reflectors: []string{"UKW-B"}}}}
	if _, err := Merge(append(docs, model)...); !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate model: %v", err)
	}
}

func TestMerge_UndefinedReference(t *testing.T) {
	doc := &Document{
		Models: []ModelDoc{{Name: "Lonely", Rotors: 3, Wheels: []string{"Nope"}, Reflectors: []string{"UKW-B"}}},
	}
	_, err := Merge(doc)
	if !errors.Is(err, ErrUndefined) || !strings.Contains(err.Error(), `"Nope"`) {
		t.Errorf("expected ErrUndefined naming Nope, got %v", err)
	}
}

func TestMerge_RotorCountInCode(t *testing.T) {
	docs, _ := BuiltinDocuments()
	doc := &Document{Models: []ModelDoc{{Name: "Two", Rotors: 2, Wheels: []string{"I"}, Reflectors: []string{"UKW-B"}}}}
	if _, err := Merge(append(docs, doc)...); !errors.Is(err, enigma.ErrRotorCount) {
		t.Errorf("expected ErrRotorCount, got %v", err)
	}
}

func TestOpen_ExtraDocumentWithCircuits(t *testing.T) {
	c, err := Open(testdataPath("tutorial.yaml"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if diff := cmp.Diff([]string{"Enigma1", "M3", "M4", "Tutorial"}, c.ModelNames()); diff != "" {
		t.Errorf("model names mismatch:\n%s", diff)
	}
	shift, ok := c.Rotor("Tutorial", "Shift")
	if !ok {
		t.Fatal("Shift missing")
	}
	if shift.Wiring.String() != "BCDEFGHIJKLMNOPQRSTUVWXYZA" {
		t.Errorf("Shift wiring = %s", shift.Wiring)
	}
	m := enigma.New()
	if err := m.Configure(c, "Tutorial", []string{"Shift", "I", "Shift"}, "Half-turn"); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if m.Plugboard() != nil {
		t.Error("Tutorial declares no plugboard")
	}
	cipher, _ := m.Encipher("HELLO")
	_ = m.SetPositions([]enigma.Contact{enigma.A, enigma.A, enigma.A})
	if plain, _ := m.Encipher(cipher); plain != "HELLO" {
		t.Errorf("round trip = %q", plain)
	}
}

func TestOpen_Directory(t *testing.T) {
	_, err := Open(filepath.Dir(testdataPath("x")))
	// The testdata directory holds deliberately broken documents.
	if err == nil {
		t.Fatal("expected an error from the broken documents")
	}
}

func TestSchema_IsEmbedded(t *testing.T) {
	if !strings.Contains(string(Schema()), "catalog.schema.json") {
		t.Error("schema missing $id")
	}
}
