package engine

import (
	"errors"
	"fmt"

	"github.com/YouDevIt/itl/internal/logger"
)

// Sentinel errors for the structural failures a caller (cmd/itl) must
// react to, ported from the teacher's errors.go pattern of package-level
// sentinels for conditions the host/CLI layer branches on.
var (
	ErrSourceNotFound   = errors.New("source file not found")
	ErrSourceUnreadable = errors.New("source file could not be read")
)

// Diagnostic categories (spec.md §7). These are never returned as Go
// errors from evaluation — they are local, non-fatal, and execution
// continues per §7's propagation policy.
const (
	DiagUnknownBuiltin   = "UNKNOWN BUILTIN"
	DiagMalformedPrimary = "MALFORMED PRIMARY"
	DiagDivideByZero     = "DIVIDE BY ZERO"
	DiagUnknownCommand   = "UNKNOWN COMMAND"
)

// Diagnostic is a single local-failure report, generalized from the
// teacher's BASICError (category/message/line split) to ITL's
// segment-indexed model.
type Diagnostic struct {
	Category string
	Message  string
	Segment  int
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s IN SEGMENT %d: %s", d.Category, d.Segment, d.Message)
}

const maxDiagnostics = 64

// diagnostic records a local failure: appended to the bounded ring
// buffer, logged, and forwarded to the host as a notice (spec.md §7).
func (e *Engine) diagnostic(category, message string) {
	d := Diagnostic{Category: category, Message: message, Segment: e.cursor}
	e.diagnostics = append(e.diagnostics, d)
	if len(e.diagnostics) > maxDiagnostics {
		e.diagnostics = e.diagnostics[len(e.diagnostics)-maxDiagnostics:]
	}
	e.log.Warn(logger.AreaEvaluator, "%s", d.String())
	if e.host != nil {
		e.host.Notice(d.String())
	}
}

// notice surfaces a non-diagnostic, informational message (e.g.
// interruption) to the host and the log.
func (e *Engine) notice(text string) {
	e.log.Info(logger.AreaDriver, "%s", text)
	if e.host != nil {
		e.host.Notice(text)
	}
}

// Diagnostics returns a copy of the current diagnostic ring buffer.
func (e *Engine) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(e.diagnostics))
	copy(out, e.diagnostics)
	return out
}
