package engine

import "github.com/YouDevIt/itl/internal/value"

// resolveForward implements spec.md §4.6: on first read of an
// undefined cell, scan forward from the current line for a segment
// that assigns it and run that segment, then restore the cursor. The
// in-progress flag is a scoped acquisition released on every exit path
// (spec.md §9's "Forward-reference reentrancy" design note), so a
// second triggering read during an active scan returns the default
// immediately rather than recursing.
func (e *Engine) resolveForward(name byte) value.Value {
	if e.forwardRefActive {
		return value.Undef
	}
	e.forwardRefActive = true
	defer func() { e.forwardRefActive = false }()

	savedCursor := e.cursor
	n := len(e.segments)
	for i := e.cursor; i >= 1 && i <= n; i++ {
		seg := e.segments[i-1]
		j := firstSignificant(seg)
		if j < 0 {
			continue
		}
		if seg[j] == name && j+1 < len(seg) {
			e.execute(i)
			break
		}
	}
	e.cursor = savedCursor

	if v, ok := e.env.get(name); ok {
		return v
	}
	return value.Undef
}
