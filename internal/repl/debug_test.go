package repl

import (
	"strings"
	"testing"

	"github.com/YouDevIt/itl/internal/value"
)

func TestFormatDebugNumber(t *testing.T) {
	out := formatDebug('A', value.Num(1), true)
	if !strings.Contains(out, "number") || !strings.Contains(out, "dec=1") {
		t.Errorf("formatDebug(number) = %q", out)
	}
}

func TestFormatDebugString(t *testing.T) {
	out := formatDebug('S', value.Str("hi", 0), true)
	if !strings.Contains(out, "length=2") || !strings.Contains(out, "68 69") || !strings.Contains(out, "hi") {
		t.Errorf("formatDebug(string) = %q", out)
	}
}

func TestFormatDebugUndefined(t *testing.T) {
	out := formatDebug('Z', value.Undef, false)
	if !strings.Contains(out, "undefined") {
		t.Errorf("formatDebug(undefined) = %q", out)
	}
}

func TestFormatDebugStringTruncates(t *testing.T) {
	long := strings.Repeat("x", 100)
	out := formatDebug('L', value.Str(long, 0), true)
	if !strings.Contains(out, "truncated") || !strings.Contains(out, "100 bytes total") {
		t.Errorf("formatDebug(long string) missing truncation marker: %q", out)
	}
}

func TestAsciiDumpNonPrintable(t *testing.T) {
	out := asciiDump("a\x01b")
	if out != "a.b" {
		t.Errorf("asciiDump = %q, want %q", out, "a.b")
	}
}

func TestHexDump(t *testing.T) {
	out := hexDump("AB")
	if out != "41 42" {
		t.Errorf("hexDump = %q, want %q", out, "41 42")
	}
}
