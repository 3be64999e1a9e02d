package engine

import "strings"

// firstSignificant returns the index of the first non-whitespace byte
// in s, or -1 if s is blank.
func firstSignificant(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' && s[i] != '\t' {
			return i
		}
	}
	return -1
}

// execute dispatches segment e.segments[idx-1] per spec.md §4.5 and
// returns the next segment index to run: idx+1, or a jump target if
// the segment was a jump statement.
func (e *Engine) execute(idx int) int {
	e.cursor = idx
	seg := e.segments[idx-1]
	next := idx + 1

	i := firstSignificant(seg)
	if i < 0 {
		return next // blank segment: no-op
	}
	c := seg[i]

	switch {
	case c == ':':
		rest := strings.TrimSpace(seg[i+1:])
		if e.MetaHandler != nil {
			e.MetaHandler(rest)
		} else {
			e.diagnostic(DiagUnknownCommand, "no REPL attached for meta-command: "+rest)
		}

	case c == '?':
		p := &parser{eng: e, src: seg, pos: i + 1}
		p.skipSpaces()
		if p.peek() == '=' {
			p.pos++
		}
		p.skipSpaces()
		v := p.EvalExpr()
		e.output(v.ToString())

	case c == '#':
		p := &parser{eng: e, src: seg, pos: i + 1}
		p.skipSpaces()
		if p.peek() == '=' {
			p.pos++
		}
		p.skipSpaces()
		v := p.EvalExpr()
		next = int(v.ToNumber())

	case isDigit(c) || c == '.' || isVarLetter(c):
		if handled := e.tryArrayWrite(seg, i); handled {
			break
		}
		if isVarLetter(c) {
			e.execAssignment(seg, i)
			break
		}
		p := &parser{eng: e, src: seg, pos: i}
		p.EvalExpr()

	default:
		p := &parser{eng: e, src: seg, pos: i}
		p.EvalExpr()
	}

	return next
}

// tryArrayWrite implements spec.md §4.5's array-write row: a primary
// (the base, its value discarded) followed by '@', an integer index
// primary, an optional '=', then the expression to store. Reports
// whether the segment was in fact an array write.
func (e *Engine) tryArrayWrite(seg string, i int) bool {
	// The base primary can only be a variable read or a numeric literal
	// here (dispatch already restricted the lead byte to one of the
	// two). A variable base's value is discarded, so it is skipped by
	// position alone rather than parsed through parsePrimary — parsing
	// it would call readVar and could spuriously trigger forward-
	// reference resolution on a segment that turns out not to be an
	// array write at all (e.g. a bare "V" unset statement).
	basePos := i + 1
	if !isVarLetter(seg[i]) {
		scan := &parser{eng: e, src: seg, pos: i}
		scan.parseNumberLiteral()
		basePos = scan.pos
	}
	j := basePos
	for j < len(seg) && (seg[j] == ' ' || seg[j] == '\t') {
		j++
	}
	if j >= len(seg) || seg[j] != '@' {
		return false
	}
	p := &parser{eng: e, src: seg, pos: j + 1}
	idxVal := p.parsePrimary()
	idx := int(idxVal.ToNumber())
	p.skipSpaces()
	if p.peek() == '=' {
		p.pos++
	}
	p.skipSpaces()
	v := p.EvalExpr()
	n := v.ToNumber()
	e.env.array.Set(idx, n)
	if e.echoAssignments {
		e.echoArrayWrite(idx, n)
	}
	return true
}

// execAssignment implements the assignment family of spec.md §4.5 for
// a segment leading with variable letter name at position i: bare
// unset, explicit "V = expr", self-referential "V op expr", or
// implicit "V expr".
func (e *Engine) execAssignment(seg string, i int) {
	name := seg[i]
	j := i + 1

	if strings.TrimSpace(seg[j:]) == "" {
		e.unsetVar(name)
		return
	}

	var after byte
	if j < len(seg) {
		after = seg[j]
	}

	switch {
	case after == '=':
		p := &parser{eng: e, src: seg, pos: j + 1}
		p.skipSpaces()
		rhs := p.EvalExpr()
		e.setVar(name, rhs)

	case isBinaryOpChar(after):
		// Left-to-right (spec.md §4.3): "V op expr" is V=V op expr, so V
		// (the left operand) must be read before expr is evaluated
		// (itl_interpreter.c:1887-1898's synthetic "VARop..").
		cur := e.readVar(name)
		p := &parser{eng: e, src: seg, pos: j + 1}
		p.skipSpaces()
		rhs := p.EvalExpr()
		e.setVar(name, applyBinaryOp(after, cur, rhs, e))

	case isValueStarter(after):
		p := &parser{eng: e, src: seg, pos: j}
		rhs := p.EvalExpr()
		e.setVar(name, rhs)

	default:
		e.unsetVar(name)
	}
}
