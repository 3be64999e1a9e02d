package value

import "testing"

func TestToNumber(t *testing.T) {
	cases := []struct {
		v    Value
		want float64
	}{
		{Undef, 0},
		{Num(42), 42},
		{Str("42", 0), 42},
		{Str("  -3.5e2abc", 0), -350},
		{Str("abc", 0), 0},
		{Str("", 0), 0},
	}
	for _, c := range cases {
		if got := c.v.ToNumber(); got != c.want {
			t.Errorf("ToNumber(%v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestToString(t *testing.T) {
	if got := Undef.ToString(); got != "0" {
		t.Errorf("Undef.ToString() = %q, want %q", got, "0")
	}
	if got := Num(3).ToString(); got != "3" {
		t.Errorf("Num(3).ToString() = %q, want %q", got, "3")
	}
	if got := Str("hi", 0).ToString(); got != "hi" {
		t.Errorf("Str(hi).ToString() = %q, want %q", got, "hi")
	}
}

func TestFlipTypeRoundTrip(t *testing.T) {
	// $$v == v for integers, per spec.md §8 invariant 5.
	for _, n := range []float64{0, 1, -1, 42, 1000, -999} {
		v := Num(n)
		flipped := v.FlipType().FlipType()
		if !Equal(v, flipped) {
			t.Errorf("$$%.0f = %v, want round-trip", n, flipped)
		}
	}
}

func TestEqual(t *testing.T) {
	if !Equal(Str("abc", 0), Str("abc", 0)) {
		t.Error("expected string equality")
	}
	if Equal(Str("abc", 0), Str("abd", 0)) {
		t.Error("expected string inequality")
	}
	if !Equal(Num(1), Str("1", 0)) {
		t.Error("expected numeric equality across kinds")
	}
}

func TestStrTruncation(t *testing.T) {
	s := Str("abcdef", 3)
	if s.ToString() != "abc" {
		t.Errorf("Str truncation = %q, want %q", s.ToString(), "abc")
	}
}

func TestFormatNumberExponent(t *testing.T) {
	got := FormatNumber(1e20)
	if got != "1e+20" {
		t.Errorf("FormatNumber(1e20) = %q, want %q", got, "1e+20")
	}
}
