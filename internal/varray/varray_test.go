package varray

import "testing"

func TestSetGetRoundTrip(t *testing.T) {
	a := New(100)
	a.Set(5, 42)
	if got := a.Get(5); got != 42 {
		t.Errorf("Get(5) = %v, want 42", got)
	}
	if a.Len() < 6 {
		t.Errorf("Len() = %d, want >= 6", a.Len())
	}
}

func TestGetBeyondLengthReturnsZeroWithoutGrowing(t *testing.T) {
	a := New(100)
	if got := a.Get(50); got != 0 {
		t.Errorf("Get(50) = %v, want 0", got)
	}
	if a.Len() != 0 {
		t.Errorf("Len() = %d, want 0 (read must not grow)", a.Len())
	}
}

func TestNegativeIndexClampsToZero(t *testing.T) {
	a := New(100)
	a.Set(-5, 7)
	if got := a.Get(-5); got != 7 {
		t.Errorf("Get(-5) = %v, want 7", got)
	}
	if got := a.Get(0); got != 7 {
		t.Errorf("Get(0) = %v, want 7 (negative index clamps to 0)", got)
	}
}

func TestClear(t *testing.T) {
	a := New(100)
	a.Set(10, 1)
	a.Clear()
	if a.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", a.Len())
	}
	if got := a.Get(10); got != 0 {
		t.Errorf("Get(10) after Clear = %v, want 0", got)
	}
}

func TestCap(t *testing.T) {
	a := New(10)
	a.Set(1000, 99)
	if a.Len() > 10 {
		t.Errorf("Len() = %d, exceeds cap 10", a.Len())
	}
}
