// Package message turns free text into the letters a rotor machine can key,
// and lays cipher text out in transmission groups.
package message

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// German letters are spelled out the way operators keyed them.
var spellOut = strings.NewReplacer(
	"Ä", "AE", "ä", "ae",
	"Ö", "OE", "ö", "oe",
	"Ü", "UE", "ü", "ue",
	"ß", "ss", "ẞ", "SS",
)

// Prepare spells out umlauts and ß, strips remaining accents, upper-cases the
// result and drops everything outside A..Z.
func Prepare(text string) string {
	text = spellOut.Replace(text)
	stripped, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn))), text)
	if err == nil {
		text = stripped
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		case r >= 'a' && r <= 'z':
			b.WriteRune(r - 'a' + 'A')
		}
	}
	return b.String()
}

// Group splits text into blocks of n letters separated by single spaces.
// n <= 0 returns text unchanged.
func Group(text string, n int) string {
	if n <= 0 || len(text) <= n {
		return text
	}
	var b strings.Builder
	b.Grow(len(text) + len(text)/n)
	i := 0
	for _, r := range text {
		if i > 0 && i%n == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		i++
	}
	return b.String()
}
