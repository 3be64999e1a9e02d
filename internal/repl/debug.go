package repl

import (
	"fmt"
	"math"
	"strings"

	"github.com/YouDevIt/itl/internal/value"
)

const debugDumpCap = 64

// formatDebug implements the "debug V" byte dump of SPEC_FULL.md §D: a
// numeric cell prints its IEEE-754 bit pattern in hex plus its decimal
// value; a string cell prints its length, a capped hex byte dump, and an
// ASCII rendering with non-printable bytes shown as '.'.
func formatDebug(name byte, v value.Value, defined bool) string {
	var b strings.Builder
	fmt.Fprintln(&b, debugHelpHeader(name))
	if !defined {
		fmt.Fprintln(&b, "  undefined")
		return b.String()
	}
	switch v.Kind() {
	case value.Number:
		n := v.ToNumber()
		bits := math.Float64bits(n)
		fmt.Fprintf(&b, "  number  hex=%016x  dec=%s\n", bits, value.FormatNumber(n))
	case value.String:
		s := v.ToString()
		truncated := s
		marker := ""
		if len(truncated) > debugDumpCap {
			truncated = truncated[:debugDumpCap]
			marker = fmt.Sprintf(" (truncated, %d bytes total)", len(s))
		}
		fmt.Fprintf(&b, "  string  length=%d%s\n", len(s), marker)
		fmt.Fprintf(&b, "  hex     %s\n", hexDump(truncated))
		fmt.Fprintf(&b, "  ascii   %s\n", asciiDump(truncated))
	default:
		fmt.Fprintln(&b, "  undefined")
	}
	return b.String()
}

func hexDump(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%02x", s[i])
	}
	return b.String()
}

func asciiDump(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c < 0x7f {
			b.WriteByte(c)
		} else {
			b.WriteByte('.')
		}
	}
	return b.String()
}
