package engine

import "github.com/YouDevIt/itl/internal/value"

// parseParenBlock implements spec.md §4.3.1: a '(' opens a sequence of
// items separated by ';' or ',', the block's value is the last item's
// value, and an empty block yields 0.
func (p *parser) parseParenBlock() value.Value {
	p.pos++ // consume '('
	p.depth++
	if p.depth > p.eng.limits.MaxParenDepth {
		p.eng.diagnostic(DiagMalformedPrimary, "paren nesting exceeds limit")
	}
	defer func() { p.depth-- }()

	last := value.Num(0)
	for {
		p.skipSpaces()
		if p.eof() || p.peek() == ')' {
			break
		}
		last = p.parseParenItem()
		p.skipSpaces()
		if !p.eof() && (p.peek() == ';' || p.peek() == ',') {
			p.pos++
			continue
		}
		break
	}
	p.skipSpaces()
	if !p.eof() && p.peek() == ')' {
		p.pos++
	}
	return last
}

// isLastItem reports, without consuming input, whether the item just
// parsed is the final item of its enclosing block: true when only
// whitespace and ')' (or end of segment) remain before the next
// separator, false when a ';' or ',' follows.
func (p *parser) isLastItem() bool {
	save := p.pos
	p.skipSpaces()
	last := p.eof() || p.peek() == ')'
	p.pos = save
	return last
}

// parseParenItem implements the four item forms of spec.md §4.3.1. Only
// a leading variable letter can introduce the three special forms;
// everything else (including a bare variable letter with nothing
// special following) falls through to a plain expression evaluation.
func (p *parser) parseParenItem() value.Value {
	start := p.pos
	if isVarLetter(p.peek()) {
		name := p.src[p.pos]
		after := p.peekAt(1)

		switch {
		case after == '=':
			// Left-to-right (spec.md §4.3): V is the left operand of the
			// implied "V=V" comparison and must be read before rhs, so a
			// forward reference triggered by rhs observes V's read having
			// already happened (matching itl_interpreter.c:1220-1224).
			cur := p.eng.readVar(name)
			p.pos += 2
			p.skipSpaces()
			rhs := p.EvalExpr()
			if p.isLastItem() {
				if value.Equal(cur, rhs) {
					return value.Num(1)
				}
				return value.Num(0)
			}
			p.eng.setVar(name, rhs)
			return p.eng.readVar(name)

		case isBinaryOpChar(after):
			op := after
			// Same left-to-right rule as above: read V before evaluating
			// rhs (itl_interpreter.c:1263-1276's synthetic "VARop..").
			cur := p.eng.readVar(name)
			p.pos += 2
			p.skipSpaces()
			rhs := p.EvalExpr()
			result := applyBinaryOp(op, cur, rhs, p.eng)
			if p.isLastItem() {
				return result
			}
			p.eng.setVar(name, result)
			return p.eng.readVar(name)

		case isValueStarter(after):
			p.pos++ // consume the variable letter only; rhs starts at `after`
			rhs := p.EvalExpr()
			p.eng.setVar(name, rhs)
			return p.eng.readVar(name)
		}
	}

	// Other: a plain expression, possibly starting with the same
	// variable letter (e.g. a bare "V" item just reads V).
	p.pos = start
	return p.EvalExpr()
}
