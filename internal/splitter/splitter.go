// Package splitter turns raw ITL source text into an ordered list of
// segments (spec.md §4.1): the unit the driver and executor operate on.
package splitter

import "github.com/YouDevIt/itl/internal/logger"

// Split breaks src into top-level segments. Splits occur at ';' and at
// physical newlines, but never inside parentheses or double-quoted
// string literals (where '\' escapes the following byte). Carriage
// returns are stripped before scanning.
func Split(src string) []string {
	src = stripCR(src)

	var segments []string
	var cur []byte
	depth := 0
	inString := false

	flush := func() {
		segments = append(segments, string(cur))
		cur = cur[:0]
	}

	for i := 0; i < len(src); i++ {
		c := src[i]

		if inString {
			if c == '\n' {
				// An unclosed string ends with its physical line.
				flush()
				depth = 0
				inString = false
				continue
			}
			cur = append(cur, c)
			switch c {
			case '\\':
				if i+1 < len(src) && src[i+1] != '\n' {
					i++
					cur = append(cur, src[i])
				}
			case '"':
				inString = false
			}
			continue
		}

		switch {
		case c == '"':
			inString = true
			cur = append(cur, c)
		case c == '(':
			depth++
			cur = append(cur, c)
		case c == ')':
			if depth > 0 {
				depth--
			}
			cur = append(cur, c)
		case c == ';' && depth == 0:
			flush()
		case c == '\n':
			// Newlines terminate a segment unconditionally, even inside an
			// open paren-block (spec.md §4.1) — the original scans one
			// physical line per call and starts the next with depth back
			// at 0 (itl_interpreter.c's split_and_store, called once per
			// fgets line with depth/in_str local to the call).
			flush()
			depth = 0
		default:
			cur = append(cur, c)
		}
	}
	flush()

	logger.Debug(logger.AreaSplitter, "split %d bytes into %d segments", len(src), len(segments))
	return segments
}

// Join reproduces a source text from segments, the left inverse the
// splitter contract (spec.md §4.1) requires: Split(Join(Split(src)))
// is a fixed point of Split(src) modulo blank-segment and CR
// normalization.
func Join(segments []string) string {
	out := ""
	for i, s := range segments {
		if i > 0 {
			out += ";"
		}
		out += s
	}
	return out
}

func stripCR(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\r' {
			out = append(out, s[i])
		}
	}
	return string(out)
}
