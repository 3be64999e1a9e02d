package engine

import "testing"

func eval(e *Engine, src string) (float64, string, bool) {
	p := &parser{eng: e, src: src, pos: 0}
	v := p.EvalExpr()
	return v.ToNumber(), v.ToString(), v.IsString()
}

func TestNoPrecedenceLeftToRight(t *testing.T) {
	e, _ := newTestEngine()
	n, _, _ := eval(e, "1+2*3")
	if n != 9 {
		t.Errorf("1+2*3 = %v, want 9 (no precedence, left-to-right)", n)
	}
}

func TestStringConcatenation(t *testing.T) {
	e, _ := newTestEngine()
	_, s, isStr := eval(e, `"a"+"b"`)
	if !isStr || s != "ab" {
		t.Errorf(`"a"+"b" = %q (isString=%v), want "ab"`, s, isStr)
	}
}

func TestNumberPlusStringConcatenates(t *testing.T) {
	e, _ := newTestEngine()
	_, s, isStr := eval(e, `1+"x"`)
	if !isStr || s != "1x" {
		t.Errorf(`1+"x" = %q (isString=%v), want "1x"`, s, isStr)
	}
}

func TestLogicalAndOr(t *testing.T) {
	e, _ := newTestEngine()
	if n, _, _ := eval(e, "1&0"); n != 0 {
		t.Errorf("1&0 = %v, want 0", n)
	}
	if n, _, _ := eval(e, "1&1"); n != 1 {
		t.Errorf("1&1 = %v, want 1", n)
	}
	if n, _, _ := eval(e, "0|0"); n != 0 {
		t.Errorf("0|0 = %v, want 0", n)
	}
	if n, _, _ := eval(e, "1|0"); n != 1 {
		t.Errorf("1|0 = %v, want 1", n)
	}
}

func TestComparisonOperators(t *testing.T) {
	e, _ := newTestEngine()
	if n, _, _ := eval(e, "3<5"); n != 1 {
		t.Errorf("3<5 = %v, want 1", n)
	}
	if n, _, _ := eval(e, "3>5"); n != 0 {
		t.Errorf("3>5 = %v, want 0", n)
	}
	if n, _, _ := eval(e, "5=5"); n != 1 {
		t.Errorf("5=5 = %v, want 1", n)
	}
}

func TestUnaryNot(t *testing.T) {
	e, _ := newTestEngine()
	if n, _, _ := eval(e, "!0"); n != 1 {
		t.Errorf("!0 = %v, want 1", n)
	}
	if n, _, _ := eval(e, "!5"); n != 0 {
		t.Errorf("!5 = %v, want 0", n)
	}
}

func TestUnaryMinus(t *testing.T) {
	e, _ := newTestEngine()
	if n, _, _ := eval(e, "-5"); n != -5 {
		t.Errorf("-5 = %v, want -5", n)
	}
}

func TestStringEscapes(t *testing.T) {
	e, _ := newTestEngine()
	_, s, _ := eval(e, `"a\tb\n\"c\""`)
	if s != "a\tb\n\"c\"" {
		t.Errorf("escapes = %q", s)
	}
}

func TestOctalEscape(t *testing.T) {
	e, _ := newTestEngine()
	_, s, _ := eval(e, `"\101"`) // octal 101 = 65 = 'A'
	if s != "A" {
		t.Errorf(`"\101" = %q, want "A"`, s)
	}
}

func TestMathBuiltins(t *testing.T) {
	e, _ := newTestEngine()
	if n, _, _ := eval(e, "sqrt(9)"); n != 3 {
		t.Errorf("sqrt(9) = %v, want 3", n)
	}
	if n, _, _ := eval(e, "pow(2,10)"); n != 1024 {
		t.Errorf("pow(2,10) = %v, want 1024", n)
	}
	if n, _, _ := eval(e, "pi()"); n < 3.14159 || n > 3.1416 {
		t.Errorf("pi() = %v", n)
	}
	if n, _, _ := eval(e, "pi"); n < 3.14159 || n > 3.1416 {
		t.Errorf("pi (no parens) = %v", n)
	}
}

func TestUnknownBuiltinDiagnostic(t *testing.T) {
	e, _ := newTestEngine()
	n, _, _ := eval(e, "bogus(1,2)")
	if n != 0 {
		t.Errorf("bogus(1,2) = %v, want 0 (undefined)", n)
	}
	if len(e.Diagnostics()) != 1 {
		t.Errorf("diagnostics = %v, want one entry", e.Diagnostics())
	}
}

func TestRNGSeedDeterministic(t *testing.T) {
	e1, _ := newTestEngine()
	eval(e1, "'42")
	first1, _, _ := eval(e1, "'")

	e2, _ := newTestEngine()
	eval(e2, "'42")
	first2, _, _ := eval(e2, "'")

	if first1 != first2 {
		t.Errorf("seeded draws diverged: %v vs %v", first1, first2)
	}
}

func TestArrayReadBeyondLengthIsZero(t *testing.T) {
	e, _ := newTestEngine()
	n, _, _ := eval(e, "@999")
	if n != 0 {
		t.Errorf("@999 on empty array = %v, want 0", n)
	}
}

func TestNegativeArrayIndexClampsToZero(t *testing.T) {
	e, _ := newTestEngine()
	e.LoadProgram("A@0=7")
	e.Run()
	n, _, _ := eval(e, "@-5")
	if n != 7 {
		t.Errorf("@-5 = %v, want 7 (clamped to index 0)", n)
	}
}

func TestEmptyParenBlockYieldsZero(t *testing.T) {
	e, _ := newTestEngine()
	n, _, _ := eval(e, "()")
	if n != 0 {
		t.Errorf("() = %v, want 0", n)
	}
}

func TestParenBlockLastItemWins(t *testing.T) {
	e, _ := newTestEngine()
	n, _, _ := eval(e, "(1;2;3)")
	if n != 3 {
		t.Errorf("(1;2;3) = %v, want 3", n)
	}
}

func TestParenBlockImplicitAssignment(t *testing.T) {
	e, _ := newTestEngine()
	n, _, _ := eval(e, "(A5)")
	if n != 5 {
		t.Errorf("(A5) = %v, want 5", n)
	}
	cur, _ := e.Var('A')
	if cur.ToNumber() != 5 {
		t.Errorf("A after (A5) = %v, want 5", cur.ToNumber())
	}
}

func TestParenBlockSelfReferentialNonLastModifies(t *testing.T) {
	e, _ := newTestEngine()
	e.LoadProgram("A=3")
	e.Run()
	n, _, _ := eval(e, "(A*2;0)")
	if n != 0 {
		t.Errorf("(A*2;0) = %v, want 0 (last item wins)", n)
	}
	cur, _ := e.Var('A')
	if cur.ToNumber() != 6 {
		t.Errorf("A after (A*2;0) = %v, want 6 (non-last self-ref modifies)", cur.ToNumber())
	}
}

func TestParenBlockSelfReferentialLastDoesNotModify(t *testing.T) {
	e, _ := newTestEngine()
	e.LoadProgram("A=3")
	e.Run()
	n, _, _ := eval(e, "(A*2)")
	if n != 6 {
		t.Errorf("(A*2) = %v, want 6", n)
	}
	cur, _ := e.Var('A')
	if cur.ToNumber() != 3 {
		t.Errorf("A after (A*2) = %v, want 3 (last item must not modify A)", cur.ToNumber())
	}
}

func TestKeyboardPollReturnsQueuedKey(t *testing.T) {
	e, rec := newTestEngine()
	rec.KeyQueue = []int{65}
	n, _, _ := eval(e, ":")
	if n != 65 {
		t.Errorf(": = %v, want 65", n)
	}
	n2, _, _ := eval(e, ":")
	if n2 != 0 {
		t.Errorf("second : with empty queue = %v, want 0", n2)
	}
}

func TestBlockingLineRead(t *testing.T) {
	e, rec := newTestEngine()
	rec.InputLines = []string{"hello"}
	_, s, isStr := eval(e, "?")
	if !isStr || s != "hello" {
		t.Errorf("? = %q (isString=%v), want \"hello\"", s, isStr)
	}
}

func TestCurrentLineNumberPrimary(t *testing.T) {
	e, rec := newTestEngine()
	e.LoadProgram(`?#+"\n"`)
	e.Run()
	if got := rec.Output.String(); got != "1\n" {
		t.Errorf("output = %q, want %q", got, "1\n")
	}
}
