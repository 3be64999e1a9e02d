package splitter

import (
	"reflect"
	"testing"
)

func TestSplitBasic(t *testing.T) {
	got := Split(`A=1;B=2`)
	want := []string{"A=1", "B=2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Split = %v, want %v", got, want)
	}
}

func TestSplitNewlineTerminatesSegment(t *testing.T) {
	got := Split("A=1\nB=2")
	want := []string{"A=1", "B=2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Split = %v, want %v", got, want)
	}
}

func TestSplitIgnoresSemicolonInParens(t *testing.T) {
	got := Split(`A=(1;2)`)
	want := []string{"A=(1;2)"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Split = %v, want %v", got, want)
	}
}

func TestSplitIgnoresSemicolonInString(t *testing.T) {
	got := Split(`?"a;b"`)
	want := []string{`?"a;b"`}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Split = %v, want %v", got, want)
	}
}

func TestSplitEscapedSemicolonInString(t *testing.T) {
	got := Split(`?"a\;b"`)
	want := []string{`?"a\;b"`}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Split = %v, want %v", got, want)
	}
}

func TestSplitEscapedQuoteKeepsStringOpen(t *testing.T) {
	got := Split(`?"a\"b";C=1`)
	want := []string{`?"a\"b"`, "C=1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Split = %v, want %v", got, want)
	}
}

func TestSplitCRStripped(t *testing.T) {
	got := Split("A=1\r\nB=2")
	want := []string{"A=1", "B=2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Split = %v, want %v", got, want)
	}
}

func TestSplitStableFixedPoint(t *testing.T) {
	src := `A=1;B=2;?"x;y"`
	once := Split(src)
	twice := Split(Join(once))
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Split not stable: %v vs %v", once, twice)
	}
}

// TestSplitNewlineTerminatesEvenInsideOpenParen is a regression test for
// spec.md §4.1: unlike ';', a newline terminates a segment
// unconditionally, even mid paren-block. An unclosed '(' at end of line
// does not carry into the next physical line.
func TestSplitNewlineTerminatesEvenInsideOpenParen(t *testing.T) {
	got := Split("A=(1+2\nB=3")
	want := []string{"A=(1+2", "B=3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Split = %v, want %v", got, want)
	}
}

func TestSplitBlankSegmentsRetained(t *testing.T) {
	got := Split("A=1;;B=2")
	want := []string{"A=1", "", "B=2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Split = %v, want %v", got, want)
	}
}
