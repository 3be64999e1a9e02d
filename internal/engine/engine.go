// Package engine implements the ITL language engine: the expression
// evaluator, statement executor, control driver, and forward-reference
// resolver described in spec.md §4, wired to a host.Host capability
// set (spec.md §6).
package engine

import (
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/YouDevIt/itl/internal/builtin"
	"github.com/YouDevIt/itl/internal/config"
	"github.com/YouDevIt/itl/internal/host"
	"github.com/YouDevIt/itl/internal/logger"
	"github.com/YouDevIt/itl/internal/splitter"
	"github.com/YouDevIt/itl/internal/value"
)

// Engine implements builtin.Context so host builtins (gotoxy, putch, ...)
// can be dispatched directly against it.
var _ builtin.Context = (*Engine)(nil)

// Limits are the implementation caps spec.md leaves to the
// implementation (§3, §4.3.1, §4.4), loaded from internal/config's
// [Limits] section.
type Limits struct {
	MaxStringBytes int
	MaxArrayLen    int
	MaxCallArgs    int
	MaxParenDepth  int
}

// DefaultLimits returns the spec's documented defaults, for callers
// that construct an Engine without a config instance (e.g. tests).
func DefaultLimits() Limits {
	return Limits{MaxStringBytes: 4096, MaxArrayLen: 1000000, MaxCallArgs: 8, MaxParenDepth: 64}
}

// LimitsFromConfig reads [Limits] from the package-level global config.
func LimitsFromConfig() Limits {
	return Limits{
		MaxStringBytes: config.GetInt("Limits", "max_string_bytes", 4096),
		MaxArrayLen:    config.GetInt("Limits", "max_array_len", 1000000),
		MaxCallArgs:    config.GetInt("Limits", "max_call_args", 8),
		MaxParenDepth:  config.GetInt("Limits", "max_paren_depth", 64),
	}
}

// Engine is one self-contained instance of the language engine: a
// program store, a variable environment, and a host. Every piece of
// state spec.md §9 calls "process-wide" (environment, array, RNG,
// program store) is instead a field here, so several Engines can run
// independently in one process.
type Engine struct {
	// InstanceID lets logs/diagnostics/recordings from two engines in
	// the same process be told apart (spec.md §9). It has no effect on
	// language semantics.
	InstanceID uuid.UUID

	// MetaHandler, if set, receives the trailing text of a ':'-led
	// segment (spec.md §4.5's REPL meta-command row). internal/repl
	// normally intercepts ':' lines itself before they ever reach the
	// engine; this hook exists so a ':' segment reached via a jump or
	// forward-reference scan still has somewhere to go.
	MetaHandler func(args string)

	segments []string
	cursor   int // 1-based; the segment currently executing

	log logger.Tag

	env    *environment
	limits Limits

	host             host.Host
	cursorX, cursorY int // mirror for builtin.Context, see builtin.CallHost

	diagnostics []Diagnostic

	forwardRefActive bool

	lastByteWasNewline bool
	echoAssignments    bool
}

// New constructs an Engine with a fresh random InstanceID.
func New(h host.Host, limits Limits) *Engine {
	return NewWithInstanceID(h, limits, uuid.New())
}

// NewWithInstanceID constructs an Engine with a caller-supplied
// InstanceID, for tests that want deterministic identifiers.
func NewWithInstanceID(h host.Host, limits Limits, id uuid.UUID) *Engine {
	e := &Engine{
		InstanceID:         id,
		log:                logger.For(id.String()),
		env:                newEnvironment(limits.MaxArrayLen),
		limits:             limits,
		host:               h,
		lastByteWasNewline: true,
	}
	e.log.Info(logger.AreaDriver, "engine created")
	return e
}

// Host, CursorX, CursorY, and SetCursor implement builtin.Context, the
// seam builtin.CallHost uses to track the "current cursor" putch/getch
// operate at (spec.md §4.4).
func (e *Engine) Host() host.Host    { return e.host }
func (e *Engine) CursorX() int       { return e.cursorX }
func (e *Engine) CursorY() int       { return e.cursorY }
func (e *Engine) SetCursor(x, y int) { e.cursorX, e.cursorY = x, y }

// SetEcho enables or disables the REPL-only assignment echo (spec.md
// §6); file-mode programs leave it disabled.
func (e *Engine) SetEcho(on bool) { e.echoAssignments = on }

// LoadProgram replaces the program store with src split into segments
// (spec.md §4.1), for file mode where the store is built once at load.
func (e *Engine) LoadProgram(src string) {
	e.segments = splitter.Split(src)
	e.cursor = 0
}

// LoadFile reads path and loads it as the program store, per spec.md
// §6's CLI contract (exit code 1 if the source cannot be opened).
func (e *Engine) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return fmt.Errorf("%w: %s: %v", ErrSourceUnreadable, path, err)
	}
	e.LoadProgram(string(data))
	return nil
}

// Run executes the program store starting at segment 1 (file mode).
func (e *Engine) Run() { e.RunFrom(1) }

// RunFrom drives execution starting at segment start, per spec.md
// §4.7: the cursor advances by one after each segment unless a jump
// statement set it, and the loop stops when the cursor leaves [1,N] or
// an external interrupt is observed.
func (e *Engine) RunFrom(start int) {
	e.cursor = start
	for {
		if e.host != nil && e.host.Interrupted() {
			e.notice("interrupted")
			return
		}
		n := len(e.segments)
		if e.cursor <= 0 || e.cursor > n {
			return
		}
		e.cursor = e.execute(e.cursor)
	}
}

// FeedLine appends one REPL input line's segments to the program store
// and runs them (spec.md §3 "accumulated monotonically (REPL)"). Since
// the store only grows, a jump backward into earlier REPL-entered
// segments (e.g. to build a loop one line at a time) behaves exactly
// as it would in file mode.
func (e *Engine) FeedLine(line string) {
	added := splitter.Split(line)
	start := len(e.segments) + 1
	e.segments = append(e.segments, added...)
	e.RunFrom(start)
}

// ClearState implements ":clear" (spec.md §6): empties variables and
// the array, keeps the program store.
func (e *Engine) ClearState() {
	e.env = newEnvironment(e.limits.MaxArrayLen)
}

// Reset implements ":reset" (spec.md §6): empties everything,
// including the program store.
func (e *Engine) Reset() {
	e.env = newEnvironment(e.limits.MaxArrayLen)
	e.segments = nil
	e.cursor = 0
}

// Segments returns the current program store, for the REPL's ":lines".
func (e *Engine) Segments() []string { return append([]string(nil), e.segments...) }

// Cursor returns the segment currently executing (or about to execute).
func (e *Engine) Cursor() int { return e.cursor }

// Var returns the current value of a variable cell and whether it is
// defined, without triggering forward-reference resolution — used by
// the REPL's ":vars" and "debug V" commands, which must not have
// side effects on the program.
func (e *Engine) Var(name byte) (value.Value, bool) { return e.env.get(name) }

// VarNames returns the currently-defined cell names in sorted order.
func (e *Engine) VarNames() []byte { return e.env.snapshot() }

// ArraySnapshot returns a copy of the live portion of the array.
func (e *Engine) ArraySnapshot() []float64 { return e.env.array.Snapshot() }

// output writes s to the host and updates the newline-tracking state
// spec.md §4.5 calls for ("print tracks whether the last byte emitted
// was a newline in order to interleave the REPL prompt cleanly").
func (e *Engine) output(s string) {
	if e.host != nil {
		e.host.Write(s)
	}
	if len(s) > 0 {
		e.lastByteWasNewline = s[len(s)-1] == '\n'
	}
}

// LastByteWasNewline reports whether the most recently written output
// byte was a newline.
func (e *Engine) LastByteWasNewline() bool { return e.lastByteWasNewline }

// readVar reads a variable cell, attempting forward-reference
// resolution on first read of an undefined cell (spec.md §4.6).
func (e *Engine) readVar(name byte) value.Value {
	if v, ok := e.env.get(name); ok {
		return v
	}
	return e.resolveForward(name)
}

// setVar writes a variable cell and, in REPL mode, emits the
// assignment echo (spec.md §6).
func (e *Engine) setVar(name byte, v value.Value) {
	e.env.set(name, v)
	if e.echoAssignments {
		e.echoAssignment(name, v)
	}
}

// unsetVar implements the bare-"V"-alone form: set V to undefined.
func (e *Engine) unsetVar(name byte) {
	e.env.unset(name)
	if e.echoAssignments {
		e.echoAssignment(name, value.Undef)
	}
}

func (e *Engine) echoAssignment(name byte, v value.Value) {
	var text string
	if v.IsString() {
		text = "\"" + v.ToString() + "\""
	} else {
		text = v.ToString()
	}
	e.output(fmt.Sprintf("< %c = %s\n", name, text))
}

func (e *Engine) echoArrayWrite(idx int, n float64) {
	e.output(fmt.Sprintf("< @%d = %s\n", idx, value.FormatNumber(n)))
}
