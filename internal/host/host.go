// Package host defines the capability seam the engine consumes
// (spec.md §6): a narrow interface for terminal output, keyboard
// polling, and screen/graphics/mouse/timer queries. The engine never
// depends on a concrete UI library, only on this trait.
package host

import "time"

// Host is the full capability set spec.md §6 enumerates. An
// implementation backs it with a real terminal (Console), or with a
// deterministic recording/mock (Recorder) for tests.
type Host interface {
	TerminalHost
	KeyboardHost
	PixelHost
	PointerHost
	TimerHost
	// Interrupted reports whether an external interrupt (e.g. an OS
	// signal) has been observed and the engine should stop between
	// segments (spec.md §5).
	Interrupted() bool
	// Notice surfaces a non-fatal diagnostic (spec.md §7) to the host;
	// a terminal host prints it, a recording host stores it.
	Notice(text string)
}

// TerminalHost is the character-grid capability (spec.md §6, "Terminal
// grid"). Coordinates are 0-based; out-of-range reads return 0, invalid
// writes are rejected silently as the table specifies.
type TerminalHost interface {
	GotoXY(x, y int)
	PutChar(x, y int, ch byte) bool
	CharAt(x, y int) byte
	Write(s string)
	SetForeground(color int) bool // 0..7
	SetBackground(color int) bool // 0..7
	SetAttr(attr int) bool        // 0=normal 1=bold 2=reverse
	Width() int
	Height() int
	ClearScreen()
}

// KeyboardHost is the keyboard capability: a blocking line read and a
// non-blocking key poll.
type KeyboardHost interface {
	ReadLine() string
	PollKey() int // 0 when no key is queued
}

// PixelHost is the pixel-graphics capability (spec.md §6, "Pixel
// surface"). All coordinates are in pixels; drawing is buffered until
// Refresh.
type PixelHost interface {
	GraphicsOpen(w, h int)
	SetPen(r, g, b int)
	SetBrush(r, g, b int)
	GraphicsClear()
	Pixel(x, y int)
	Line(x1, y1, x2, y2 int)
	Rect(x, y, w, h int)
	FillRect(x, y, w, h int)
	Circle(x, y, r int)
	FillCircle(x, y, r int)
	Text(x, y int, s string)
	Refresh()
}

// PointerHost is the mouse capability, in both pixel and character-cell
// coordinates (spec.md §6, "Pointer"/"Cell pointer"). Mask bits: 1=left,
// 2=right, 4=middle. LastClick is one-shot: it is consumed on read.
type PointerHost interface {
	MouseX() int
	MouseY() int
	MouseButtons() int
	MouseLastClick() int
	MouseDrag() int
	CellMouseX() int
	CellMouseY() int
	CellMouseLastClick() int
	CellMouseDrag() int
}

// TimerHost is the clock capability (spec.md §6, "Timer").
type TimerHost interface {
	WallClockSeconds() int64
	MonotonicMillis() int64       // since engine start
	ElapsedMillis() int64         // since last call, then resets
}

// NopRefresh is embeddable by hosts whose Refresh has nothing to do.
type NopRefresh struct{}

// Refresh does nothing.
func (NopRefresh) Refresh() {}

// StartTime is a small helper shared by Console and Recorder to compute
// MonotonicMillis/ElapsedMillis consistently.
type StartTime struct {
	start   time.Time
	lastHit time.Time
	armed   bool
}

// NewStartTime begins the clock at "now".
func NewStartTime(now time.Time) *StartTime {
	return &StartTime{start: now}
}

// MonotonicMillis returns milliseconds since the clock began.
func (s *StartTime) MonotonicMillis(now time.Time) int64 {
	return now.Sub(s.start).Milliseconds()
}

// ElapsedMillis returns milliseconds since the previous ElapsedMillis
// call. The first call has no previous call to measure from, so it
// arms the baseline at "now" and returns the time since the clock
// began instead (SPEC_FULL.md §D "monotonic timer zeroing": "first
// call returns ms since engine construction").
func (s *StartTime) ElapsedMillis(now time.Time) int64 {
	if !s.armed {
		s.lastHit = now
		s.armed = true
		return now.Sub(s.start).Milliseconds()
	}
	delta := now.Sub(s.lastHit).Milliseconds()
	s.lastHit = now
	return delta
}
