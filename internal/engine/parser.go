package engine

import (
	"math"
	"strconv"
	"strings"

	"github.com/YouDevIt/itl/internal/builtin"
	"github.com/YouDevIt/itl/internal/value"
)

// parser walks one segment's byte string left to right, evaluating
// primaries and chaining binary operators with no precedence (spec.md
// §4.3). It is the char-scanner idiom the teacher's lexer.go uses
// (input string + pos int), generalized to also evaluate as it scans
// rather than emitting tokens for a separate parser pass.
type parser struct {
	eng   *Engine
	src   string
	pos   int
	depth int // open paren-block nesting; past eng.limits.MaxParenDepth each level reports a diagnostic
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) peekAt(offset int) byte {
	i := p.pos + offset
	if i < 0 || i >= len(p.src) {
		return 0
	}
	return p.src[i]
}

func (p *parser) skipSpaces() {
	for !p.eof() && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

// isPrimaryStarter is the set spec.md §4.3 item 1 names as following a
// unary '-' or '\'' for them to bind as a primary.
func isPrimaryStarter(c byte) bool {
	return isDigit(c) || isVarLetter(c) || c == '(' || c == '@' || c == '?' || c == '\'' || c == '#' || c == '$'
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// isBinaryOpChar is the self-referential operator set (spec.md §4.3.1),
// which excludes '=' — '=' is always handled as its own case because
// its meaning differs between plain expressions and paren-block items.
func isBinaryOpChar(c byte) bool {
	return strings.IndexByte("+-*/%^&|<>", c) >= 0
}

// isOperatorChar is the full binary-operator set a plain expression
// chain recognises (spec.md §4.3's table), including '='.
func isOperatorChar(c byte) bool { return isBinaryOpChar(c) || c == '=' }

// isValueStarter is the set of characters that begin a value (not an
// operator, not '=') at a statement's or paren-item's assignment
// position — spec.md §9 Open Question (a) leaves this set's exact
// extent outside paren-blocks ambiguous; this implementation uses the
// same set inside and outside blocks for consistency (see DESIGN.md).
func isValueStarter(c byte) bool {
	if c == 0 {
		return false
	}
	return isDigit(c) || c == '.' || isVarLetter(c) || (c >= 'a' && c <= 'z') ||
		strings.IndexByte("(\"':?#@$!", c) >= 0
}

// EvalExpr parses and evaluates a full expression: a primary followed
// by zero or more (operator, primary) pairs, chained strictly
// left-to-right with no precedence (spec.md §4.3).
func (p *parser) EvalExpr() value.Value {
	left := p.parsePrimary()
	for {
		p.skipSpaces()
		c := p.peek()
		if p.eof() || !isOperatorChar(c) {
			break
		}
		p.pos++
		p.skipSpaces()
		right := p.parsePrimary()
		left = applyBinaryOp(c, left, right, p.eng)
	}
	return left
}

// applyBinaryOp implements the binary-operator table (spec.md §4.3),
// shared between EvalExpr's chain loop, statement-level self-
// referential shorthand (§4.5), and paren-block self-referential
// items (§4.3.1).
func applyBinaryOp(op byte, a, b value.Value, eng *Engine) value.Value {
	switch op {
	case '+':
		if a.IsString() || b.IsString() {
			return value.Str(a.ToString()+b.ToString(), eng.limits.MaxStringBytes)
		}
		return value.Num(a.ToNumber() + b.ToNumber())
	case '-':
		return value.Num(a.ToNumber() - b.ToNumber())
	case '*':
		return value.Num(a.ToNumber() * b.ToNumber())
	case '/':
		bn := b.ToNumber()
		if bn == 0 {
			eng.diagnostic(DiagDivideByZero, "division by zero")
			return value.Num(0)
		}
		return value.Num(a.ToNumber() / bn)
	case '%':
		bn := b.ToNumber()
		if bn == 0 {
			eng.diagnostic(DiagDivideByZero, "modulo by zero")
			return value.Num(0)
		}
		return value.Num(math.Mod(a.ToNumber(), bn))
	case '^':
		return value.Num(math.Pow(a.ToNumber(), b.ToNumber()))
	case '&':
		if a.ToNumber() != 0 && b.ToNumber() != 0 {
			return value.Num(1)
		}
		return value.Num(0)
	case '|':
		if a.ToNumber() != 0 || b.ToNumber() != 0 {
			return value.Num(1)
		}
		return value.Num(0)
	case '<':
		if a.ToNumber() < b.ToNumber() {
			return value.Num(1)
		}
		return value.Num(0)
	case '>':
		if a.ToNumber() > b.ToNumber() {
			return value.Num(1)
		}
		return value.Num(0)
	case '=':
		if value.Equal(a, b) {
			return value.Num(1)
		}
		return value.Num(0)
	}
	return value.Num(0)
}

// parsePrimary implements the ordered primary list of spec.md §4.3.
func (p *parser) parsePrimary() value.Value {
	if p.eof() {
		return value.Num(0)
	}
	c := p.src[p.pos]

	// 1. unary '-'
	if c == '-' && isPrimaryStarter(p.peekAt(1)) {
		p.pos++
		v := p.parsePrimary()
		return value.Num(-v.ToNumber())
	}

	// 2. unary '!'
	if c == '!' {
		p.pos++
		v := p.parsePrimary()
		if v.ToNumber() == 0 {
			return value.Num(1)
		}
		return value.Num(0)
	}

	// 3. '$' + variable letter (type flip). '$' recurses into a full
	// primary rather than only a bare letter so that "$$v" (the nested
	// form spec.md §8's invariant 5 requires) flips twice: the inner
	// '$' flips the cell's value, the outer '$' flips that result back.
	if c == '$' {
		p.pos++
		v := p.parsePrimary()
		return v.FlipType()
	}

	// 4. paren-block
	if c == '(' {
		return p.parseParenBlock()
	}

	// 5. string literal
	if c == '"' {
		return p.parseStringLiteral()
	}

	// 6. RNG draw / seed
	if c == '\'' {
		p.pos++
		if isPrimaryStarter(p.peek()) {
			v := p.parsePrimary()
			p.eng.env.seed(int64(v.ToNumber()))
			return value.Num(0)
		}
		return value.Num(p.eng.env.random())
	}

	// 7. non-blocking key poll
	if c == ':' {
		p.pos++
		code := 0
		if p.eng.host != nil {
			code = p.eng.host.PollKey()
		}
		return value.Num(float64(code))
	}

	// 8. blocking line read
	if c == '?' {
		p.pos++
		line := ""
		if p.eng.host != nil {
			line = p.eng.host.ReadLine()
		}
		return value.Str(line, p.eng.limits.MaxStringBytes)
	}

	// 9. current line number
	if c == '#' {
		p.pos++
		return value.Num(float64(p.eng.cursor))
	}

	// 10. array read
	if c == '@' {
		p.pos++
		idx := p.parsePrimary()
		return value.Num(p.eng.env.array.Get(int(idx.ToNumber())))
	}

	// 11. lowercase identifier: builtin call
	if c >= 'a' && c <= 'z' {
		return p.parseBuiltinCall()
	}

	// 12. variable letter
	if isVarLetter(c) {
		p.pos++
		return p.eng.readVar(c)
	}

	// 13. numeric literal
	if isDigit(c) || c == '.' {
		return p.parseNumberLiteral()
	}

	// 14. otherwise
	p.eng.diagnostic(DiagMalformedPrimary, "unexpected character "+string(c))
	p.pos++
	return value.Num(0)
}

// parseNumberLiteral scans a decimal literal with an optional fraction
// and exponent (spec.md §4.3 item 13).
func (p *parser) parseNumberLiteral() value.Value {
	start := p.pos
	for isDigit(p.peek()) {
		p.pos++
	}
	if p.peek() == '.' {
		p.pos++
		for isDigit(p.peek()) {
			p.pos++
		}
	}
	if p.peek() == 'e' || p.peek() == 'E' {
		save := p.pos
		p.pos++
		if p.peek() == '+' || p.peek() == '-' {
			p.pos++
		}
		if isDigit(p.peek()) {
			for isDigit(p.peek()) {
				p.pos++
			}
		} else {
			p.pos = save // no digits after 'e': not an exponent after all
		}
	}
	text := p.src[start:p.pos]
	n, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return value.Num(0)
	}
	return value.Num(n)
}

// parseStringLiteral decodes a double-quoted string with escapes
// \n \t \r \\ \" and 1-3 digit octal \nnn (spec.md §4.3 item 5).
func (p *parser) parseStringLiteral() value.Value {
	p.pos++ // opening quote
	var sb strings.Builder
	for !p.eof() && p.src[p.pos] != '"' {
		c := p.src[p.pos]
		if c != '\\' {
			sb.WriteByte(c)
			p.pos++
			continue
		}
		p.pos++ // consume backslash
		if p.eof() {
			break
		}
		e := p.src[p.pos]
		switch e {
		case 'n':
			sb.WriteByte('\n')
			p.pos++
		case 't':
			sb.WriteByte('\t')
			p.pos++
		case 'r':
			sb.WriteByte('\r')
			p.pos++
		case '\\':
			sb.WriteByte('\\')
			p.pos++
		case '"':
			sb.WriteByte('"')
			p.pos++
		default:
			if e >= '0' && e <= '7' {
				n := 0
				digits := 0
				for digits < 3 && p.src[p.pos] >= '0' && p.src[p.pos] <= '7' {
					n = n*8 + int(p.src[p.pos]-'0')
					p.pos++
					digits++
					if p.eof() {
						break
					}
				}
				sb.WriteByte(byte(n))
			} else {
				sb.WriteByte(e)
				p.pos++
			}
		}
	}
	if !p.eof() && p.src[p.pos] == '"' {
		p.pos++
	}
	return value.Str(sb.String(), p.eng.limits.MaxStringBytes)
}

// parseBuiltinCall scans a lowercase [a-z0-9]+ identifier and its
// optional parenthesised argument list (spec.md §4.4).
func (p *parser) parseBuiltinCall() value.Value {
	start := p.pos
	for !p.eof() && (isLowerIdentChar(p.src[p.pos])) {
		p.pos++
	}
	name := p.src[start:p.pos]

	var args []value.Value
	p.skipSpaces()
	if p.peek() == '(' {
		p.pos++
		p.skipSpaces()
		if p.peek() != ')' {
			for {
				v := p.EvalExpr()
				if len(args) < p.eng.limits.MaxCallArgs {
					args = append(args, v)
				}
				p.skipSpaces()
				if p.peek() == ',' {
					p.pos++
					p.skipSpaces()
					continue
				}
				break
			}
		}
		p.skipSpaces()
		if p.peek() == ')' {
			p.pos++
		}
	}

	if builtin.IsMath(name) {
		nums := make([]float64, len(args))
		for i, a := range args {
			nums[i] = a.ToNumber()
		}
		n, _ := builtin.CallMath(name, nums)
		return value.Num(n)
	}
	if builtin.IsHost(name) {
		return builtin.CallHost(p.eng, name, args)
	}

	p.eng.diagnostic(DiagUnknownBuiltin, "unknown builtin: "+name)
	return value.Undef
}

func isLowerIdentChar(c byte) bool { return (c >= 'a' && c <= 'z') || isDigit(c) }
