package host

import (
	"strconv"
	"strings"
	"time"
)

// Recorder is an in-memory Host: it captures terminal/pixel operations
// for assertions, replays scripted keyboard input, and exposes a
// virtual clock the test advances explicitly. Grounded on the teacher's
// pattern of constructing its interpreter with a nil external OS for
// hermetic tests (pkg/tinybasic/tests/expression_test.go's
// NewTestBasic).
type Recorder struct {
	Output   strings.Builder
	Notices  []string
	screen   [][]byte
	fg, bg   int
	attr     int
	cols     int
	rows     int
	cursorX  int
	cursorY  int

	PixelOps []string // textual log of pixel-surface calls, for assertions

	InputLines []string // ReadLine() pops from the front
	KeyQueue   []int     // PollKey() pops from the front

	interrupted bool

	clock    time.Time
	realtime *StartTime
}

// NewRecorder builds a Recorder with a default 80x25 grid and a clock
// starting at an arbitrary fixed instant (tests advance it explicitly
// via Advance, never relying on wall-clock time).
func NewRecorder() *Recorder {
	r := &Recorder{cols: 80, rows: 25}
	r.screen = make([][]byte, r.rows)
	for i := range r.screen {
		r.screen[i] = make([]byte, r.cols)
		for j := range r.screen[i] {
			r.screen[i][j] = ' '
		}
	}
	r.clock = time.Unix(0, 0)
	r.realtime = NewStartTime(r.clock)
	return r
}

// Advance moves the virtual clock forward by d.
func (r *Recorder) Advance(d time.Duration) { r.clock = r.clock.Add(d) }

func (r *Recorder) GotoXY(x, y int) {
	if x < 0 || y < 0 || x >= r.cols || y >= r.rows {
		return
	}
	r.cursorX, r.cursorY = x, y
}

func (r *Recorder) PutChar(x, y int, ch byte) bool {
	if x < 0 || y < 0 || x >= r.cols || y >= r.rows {
		return false
	}
	r.screen[y][x] = ch
	return true
}

func (r *Recorder) CharAt(x, y int) byte {
	if x < 0 || y < 0 || x >= r.cols || y >= r.rows {
		return 0
	}
	return r.screen[y][x]
}

func (r *Recorder) Write(s string) {
	r.Output.WriteString(s)
	for _, c := range []byte(s) {
		if c == '\n' {
			r.cursorX = 0
			r.cursorY++
			continue
		}
		r.PutChar(r.cursorX, r.cursorY, c)
		r.cursorX++
	}
}

func (r *Recorder) SetForeground(color int) bool {
	if color < 0 || color > 7 {
		return false
	}
	r.fg = color
	return true
}

func (r *Recorder) SetBackground(color int) bool {
	if color < 0 || color > 7 {
		return false
	}
	r.bg = color
	return true
}

func (r *Recorder) SetAttr(attr int) bool {
	if attr < 0 || attr > 2 {
		return false
	}
	r.attr = attr
	return true
}

func (r *Recorder) Width() int  { return r.cols }
func (r *Recorder) Height() int { return r.rows }

func (r *Recorder) ClearScreen() {
	for i := range r.screen {
		for j := range r.screen[i] {
			r.screen[i][j] = ' '
		}
	}
	r.cursorX, r.cursorY = 0, 0
}

// ReadLine pops the next scripted input line, or "" if none remain.
func (r *Recorder) ReadLine() string {
	if len(r.InputLines) == 0 {
		return ""
	}
	line := r.InputLines[0]
	r.InputLines = r.InputLines[1:]
	return line
}

// PollKey pops the next scripted key code, or 0 if none remain.
func (r *Recorder) PollKey() int {
	if len(r.KeyQueue) == 0 {
		return 0
	}
	k := r.KeyQueue[0]
	r.KeyQueue = r.KeyQueue[1:]
	return k
}

func (r *Recorder) GraphicsOpen(w, h int)       { r.logPixel("open", w, h) }
func (r *Recorder) SetPen(rr, g, b int)         { r.logPixel("pen", rr, g, b) }
func (r *Recorder) SetBrush(rr, g, b int)       { r.logPixel("brush", rr, g, b) }
func (r *Recorder) GraphicsClear()              { r.logPixel("clear") }
func (r *Recorder) Pixel(x, y int)              { r.logPixel("pixel", x, y) }
func (r *Recorder) Line(x1, y1, x2, y2 int)      { r.logPixel("line", x1, y1, x2, y2) }
func (r *Recorder) Rect(x, y, w, h int)          { r.logPixel("rect", x, y, w, h) }
func (r *Recorder) FillRect(x, y, w, h int)      { r.logPixel("fillrect", x, y, w, h) }
func (r *Recorder) Circle(x, y, rad int)         { r.logPixel("circle", x, y, rad) }
func (r *Recorder) FillCircle(x, y, rad int)     { r.logPixel("fillcircle", x, y, rad) }
func (r *Recorder) Text(x, y int, s string)      { r.PixelOps = append(r.PixelOps, "text:"+s) }
func (r *Recorder) Refresh()                     { r.logPixel("refresh") }

func (r *Recorder) logPixel(op string, nums ...int) {
	entry := op
	for _, n := range nums {
		entry += " " + strconv.Itoa(n)
	}
	r.PixelOps = append(r.PixelOps, entry)
}

func (r *Recorder) MouseX() int             { return 0 }
func (r *Recorder) MouseY() int             { return 0 }
func (r *Recorder) MouseButtons() int       { return 0 }
func (r *Recorder) MouseLastClick() int     { return 0 }
func (r *Recorder) MouseDrag() int          { return 0 }
func (r *Recorder) CellMouseX() int         { return 0 }
func (r *Recorder) CellMouseY() int         { return 0 }
func (r *Recorder) CellMouseLastClick() int { return 0 }
func (r *Recorder) CellMouseDrag() int      { return 0 }

func (r *Recorder) WallClockSeconds() int64 { return r.clock.Unix() }

func (r *Recorder) MonotonicMillis() int64 { return r.realtime.MonotonicMillis(r.clock) }

func (r *Recorder) ElapsedMillis() int64 { return r.realtime.ElapsedMillis(r.clock) }

// Interrupt sets the interrupt flag a test wants the driver to observe.
func (r *Recorder) Interrupt()        { r.interrupted = true }
func (r *Recorder) Interrupted() bool { return r.interrupted }

func (r *Recorder) Notice(text string) { r.Notices = append(r.Notices, text) }

var _ Host = (*Recorder)(nil)
