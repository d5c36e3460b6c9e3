package format

import (
	"fmt"
	"strings"

	"enigma/pkg/enigma"
)

// Notches lists turnover letters as "Z,M", or "-" for a wheel without any.
func Notches(cs []enigma.Contact) string {
	if len(cs) == 0 {
		return "-"
	}
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, ",")
}

// Rings renders ring settings the way key sheets print them: "02 21 12".
func Rings(rings []int) string {
	if len(rings) == 0 {
		return "-"
	}
	parts := make([]string, len(rings))
	for i, r := range rings {
		parts[i] = fmt.Sprintf("%02d", r)
	}
	return strings.Join(parts, " ")
}

// List joins names with spaces, or "-" when there are none.
func List(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, " ")
}

// Truncate shortens s to maxLen characters, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// BoolMark returns "✓" for true and "✗" for false.
func BoolMark(v bool) string {
	if v {
		return "✓"
	}
	return "✗"
}
