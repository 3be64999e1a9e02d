package host

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/YouDevIt/itl/internal/logger"
)

// ansiForeground/ansiBackground map spec.md §6's 0..7 color range onto
// the standard ANSI SGR color codes.
var ansiForeground = [8]int{30, 31, 32, 33, 34, 35, 36, 37}
var ansiBackground = [8]int{40, 41, 42, 43, 44, 45, 46, 47}

// Console is the real Host used by cmd/itl: terminal output goes to
// os.Stdout via ANSI escapes, keyboard input comes from os.Stdin. The
// pixel surface and mouse are accepted but are no-ops (see spec.md §1:
// the pixel-graphics surface and its mouse input are external
// collaborators the engine never assumes a concrete implementation
// for). A background goroutine watches for the process signal spec.md
// §5 calls the "external interrupt flag" and is the one piece of
// engine-adjacent concurrency the host is allowed to run independently
// of the engine.
//
// PollKey is best-effort only: a real non-blocking single-keystroke
// poll needs raw terminal mode, which belongs to the interactive
// line-editor/terminal-UI layer spec.md §1 keeps external to this
// engine. Without that layer attached, PollKey always reports no key
// queued; ReadLine (blocking `?`) remains fully functional.
type Console struct {
	out  *bufio.Writer
	in   *bufio.Reader
	cols int
	rows int

	clock     *StartTime
	interrupt int32
}

// NewConsole builds a Console over stdin/stdout with a default 80x25
// grid, and arms SIGINT handling so the engine observes spec.md §5's
// external interrupt flag between segments.
func NewConsole() *Console {
	c := &Console{
		out:   bufio.NewWriter(os.Stdout),
		in:    bufio.NewReader(os.Stdin),
		cols:  80,
		rows:  25,
		clock: NewStartTime(time.Now()),
	}
	go c.watchSignals()
	return c
}

func (c *Console) watchSignals() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	atomic.StoreInt32(&c.interrupt, 1)
}

func (c *Console) GotoXY(x, y int) {
	if x < 0 || y < 0 || x >= c.cols || y >= c.rows {
		return
	}
	fmt.Fprintf(c.out, "\x1b[%d;%dH", y+1, x+1)
	c.out.Flush()
}

func (c *Console) PutChar(x, y int, ch byte) bool {
	if x < 0 || y < 0 || x >= c.cols || y >= c.rows {
		return false
	}
	c.GotoXY(x, y)
	c.out.WriteByte(ch)
	c.out.Flush()
	return true
}

// CharAt cannot read back a real terminal's contents; spec.md §6 allows
// rejecting out-of-range host-domain queries with 0.
func (c *Console) CharAt(x, y int) byte { return 0 }

func (c *Console) Write(s string) {
	c.out.WriteString(s)
	c.out.Flush()
}

func (c *Console) SetForeground(color int) bool {
	if color < 0 || color > 7 {
		return false
	}
	fmt.Fprintf(c.out, "\x1b[%dm", ansiForeground[color])
	c.out.Flush()
	return true
}

func (c *Console) SetBackground(color int) bool {
	if color < 0 || color > 7 {
		return false
	}
	fmt.Fprintf(c.out, "\x1b[%dm", ansiBackground[color])
	c.out.Flush()
	return true
}

func (c *Console) SetAttr(attr int) bool {
	code := 0
	switch attr {
	case 0:
		code = 0
	case 1:
		code = 1
	case 2:
		code = 7
	default:
		return false
	}
	fmt.Fprintf(c.out, "\x1b[%dm", code)
	c.out.Flush()
	return true
}

func (c *Console) Width() int  { return c.cols }
func (c *Console) Height() int { return c.rows }

func (c *Console) ClearScreen() {
	c.out.WriteString("\x1b[2J\x1b[H")
	c.out.Flush()
}

func (c *Console) ReadLine() string {
	line, _ := c.in.ReadString('\n')
	if len(line) > 0 && line[len(line)-1] == '\n' {
		line = line[:len(line)-1]
	}
	if len(line) > 0 && line[len(line)-1] == '\r' {
		line = line[:len(line)-1]
	}
	return line
}

func (c *Console) PollKey() int { return 0 }

// Pixel surface, mouse: real presentation is out of scope (spec.md §1).
// Calls are accepted and logged at DEBUG so programs that use them do
// not error, but nothing is drawn.

func (c *Console) GraphicsOpen(w, h int)  { logger.Debug(logger.AreaHost, "gopen %d,%d (no-op)", w, h) }
func (c *Console) SetPen(r, g, b int)     {}
func (c *Console) SetBrush(r, g, b int)   {}
func (c *Console) GraphicsClear()         {}
func (c *Console) Pixel(x, y int)         {}
func (c *Console) Line(x1, y1, x2, y2 int) {}
func (c *Console) Rect(x, y, w, h int)    {}
func (c *Console) FillRect(x, y, w, h int) {}
func (c *Console) Circle(x, y, r int)     {}
func (c *Console) FillCircle(x, y, r int) {}
func (c *Console) Text(x, y int, s string) {}
func (c *Console) Refresh()               {}

func (c *Console) MouseX() int             { return 0 }
func (c *Console) MouseY() int             { return 0 }
func (c *Console) MouseButtons() int       { return 0 }
func (c *Console) MouseLastClick() int     { return 0 }
func (c *Console) MouseDrag() int          { return 0 }
func (c *Console) CellMouseX() int         { return 0 }
func (c *Console) CellMouseY() int         { return 0 }
func (c *Console) CellMouseLastClick() int { return 0 }
func (c *Console) CellMouseDrag() int      { return 0 }

func (c *Console) WallClockSeconds() int64 { return time.Now().Unix() }

func (c *Console) MonotonicMillis() int64 {
	return c.clock.MonotonicMillis(time.Now())
}

func (c *Console) ElapsedMillis() int64 {
	return c.clock.ElapsedMillis(time.Now())
}

func (c *Console) Interrupted() bool { return atomic.LoadInt32(&c.interrupt) != 0 }

func (c *Console) Notice(text string) {
	fmt.Fprintf(os.Stderr, "? %s\n", text)
}

var _ Host = (*Console)(nil)
