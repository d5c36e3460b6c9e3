// Package display provides human-readable names for catalog codes.
//
// Rule: code is for machines, words are for humans.
// Use these functions in CLI output and tables. Keep raw codes for JSON
// fields, catalog files, map keys and equality comparisons.
package display

import "strings"

// --- Wheels ---

var wheels = map[string]string{
	"I":     "Walze I",
	"II":    "Walze II",
	"III":   "Walze III",
	"IV":    "Walze IV",
	"V":     "Walze V",
	"VI":    "Walze VI",
	"VII":   "Walze VII",
	"VIII":  "Walze VIII",
	"Beta":  "Zusatzwalze Beta",
	"Gamma": "Zusatzwalze Gamma",
}

// Wheel returns the human-readable name for a wheel code.
// Unknown codes are returned as-is.
func Wheel(code string) string {
	if name, ok := wheels[code]; ok {
		return name
	}
	return code
}

// WheelOrder renders a wheel order leftmost first: "I II III" -> "I | II | III".
func WheelOrder(codes []string) string {
	return strings.Join(codes, " | ")
}

// --- Reflectors ---

var reflectors = map[string]string{
	"UKW-A":      "Umkehrwalze A",
	"UKW-B":      "Umkehrwalze B",
	"UKW-C":      "Umkehrwalze C",
	"UKW-B-thin": "Umkehrwalze B, thin (Bruno)",
	"UKW-C-thin": "Umkehrwalze C, thin (Caesar)",
}

// Reflector returns the human-readable name for a reflector code.
// "UKW-B" -> "Umkehrwalze B".
func Reflector(code string) string {
	if name, ok := reflectors[code]; ok {
		return name
	}
	return code
}

// ReflectorWithCode returns "Umkehrwalze B (UKW-B)" format.
func ReflectorWithCode(code string) string {
	if name, ok := reflectors[code]; ok {
		return name + " (" + code + ")"
	}
	return code
}

// --- Models ---

var models = map[string]string{
	"Enigma1": "Enigma I (Heer, Luftwaffe)",
	"M3":      "Enigma M3 (Kriegsmarine)",
	"M4":      "Enigma M4 (U-boat fleet)",
}

// Model returns the human-readable name for a model code.
func Model(code string) string {
	if name, ok := models[code]; ok {
		return name
	}
	return code
}

// ModelWithCode returns "Enigma M4 (U-boat fleet) [M4]" format.
func ModelWithCode(code string) string {
	if name, ok := models[code]; ok {
		return name + " [" + code + "]"
	}
	return code
}
