package builtin

import "testing"

func TestIsMathKnownAndUnknown(t *testing.T) {
	if !IsMath("sqrt") {
		t.Error("sqrt should be a math builtin")
	}
	if IsMath("gotoxy") {
		t.Error("gotoxy should not be a math builtin")
	}
}

func TestCallMathArity(t *testing.T) {
	got, ok := CallMath("sqrt", []float64{9})
	if !ok || got != 3 {
		t.Errorf("sqrt(9) = %v, %v, want 3, true", got, ok)
	}
	got, ok = CallMath("pow", []float64{2, 10})
	if !ok || got != 1024 {
		t.Errorf("pow(2,10) = %v, %v, want 1024, true", got, ok)
	}
}

func TestCallMathMissingArgsPadWithZero(t *testing.T) {
	got, ok := CallMath("atan2", []float64{1})
	if !ok {
		t.Fatal("atan2 should be known")
	}
	want, _ := CallMath("atan2", []float64{1, 0})
	if got != want {
		t.Errorf("atan2 with missing arg = %v, want %v (padded with 0)", got, want)
	}
}

func TestCallMathExtraArgsIgnored(t *testing.T) {
	got, ok := CallMath("sqrt", []float64{16, 999, 999})
	if !ok || got != 4 {
		t.Errorf("sqrt(16, extras...) = %v, %v, want 4, true", got, ok)
	}
}

func TestCallMathZeroArity(t *testing.T) {
	got, ok := CallMath("pi", nil)
	if !ok || got < 3.14159 || got > 3.14160 {
		t.Errorf("pi() = %v, %v", got, ok)
	}
}

func TestCallMathUnknownName(t *testing.T) {
	if _, ok := CallMath("bogus", nil); ok {
		t.Error("bogus should not resolve")
	}
}

func TestSignHelper(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{5, 1}, {-5, -1}, {0, 0},
	}
	for _, c := range cases {
		if got := sign(c.in); got != c.want {
			t.Errorf("sign(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
