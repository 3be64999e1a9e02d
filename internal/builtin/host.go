package builtin

import (
	"github.com/YouDevIt/itl/internal/host"
	"github.com/YouDevIt/itl/internal/value"
)

// Context is what a host builtin needs beyond the Host capability set
// itself: a cursor mirror for the two ops (putch/getch) that spec.md
// §6 defines as operating "at the cursor" rather than at an explicit
// (x,y), the way gotoxy/gpixel/etc. do.
type Context interface {
	Host() host.Host
	CursorX() int
	CursorY() int
	SetCursor(x, y int)
}

var hostNames = map[string]bool{
	"gotoxy": true, "putch": true, "getch": true, "setfore": true,
	"setback": true, "setattr": true, "getw": true, "geth": true, "clear": true,
	"gopen": true, "gclear": true, "gpen": true, "gbr": true, "gpixel": true,
	"gline": true, "grect": true, "gfillrect": true, "gcircle": true,
	"gfillcircle": true, "gtext": true, "grefresh": true,
	"gmx": true, "gmy": true, "gmb": true, "gmclick": true, "gmdrag": true,
	"tmx": true, "tmy": true, "tmclick": true, "tmdrag": true,
	"time": true, "ticks": true, "elapsed": true,
}

// IsHost reports whether name names a host builtin.
func IsHost(name string) bool { return hostNames[name] }

// CallHost dispatches the host builtin name to exactly one Context/Host
// capability call, per spec.md §4.4 and §6.
func CallHost(ctx Context, name string, args []value.Value) value.Value {
	n := func(i int) int { return int(arg(args, i).ToNumber()) }
	s := func(i int) string { return arg(args, i).ToString() }
	h := ctx.Host()

	switch name {
	case "gotoxy":
		x, y := n(0), n(1)
		h.GotoXY(x, y)
		ctx.SetCursor(x, y)
		return value.Num(0)
	case "putch":
		return value.Num(boolNum(writeAtCursor(ctx, args)))
	case "getch":
		return value.Num(float64(h.CharAt(ctx.CursorX(), ctx.CursorY())))
	case "setfore":
		return value.Num(boolNum(h.SetForeground(n(0))))
	case "setback":
		return value.Num(boolNum(h.SetBackground(n(0))))
	case "setattr":
		return value.Num(boolNum(h.SetAttr(n(0))))
	case "getw":
		return value.Num(float64(h.Width()))
	case "geth":
		return value.Num(float64(h.Height()))
	case "clear":
		h.ClearScreen()
		return value.Num(0)

	case "gopen":
		h.GraphicsOpen(n(0), n(1))
		return value.Num(0)
	case "gclear":
		h.GraphicsClear()
		return value.Num(0)
	case "gpen":
		h.SetPen(n(0), n(1), n(2))
		return value.Num(0)
	case "gbr":
		h.SetBrush(n(0), n(1), n(2))
		return value.Num(0)
	case "gpixel":
		h.Pixel(n(0), n(1))
		return value.Num(0)
	case "gline":
		h.Line(n(0), n(1), n(2), n(3))
		return value.Num(0)
	case "grect":
		h.Rect(n(0), n(1), n(2), n(3))
		return value.Num(0)
	case "gfillrect":
		h.FillRect(n(0), n(1), n(2), n(3))
		return value.Num(0)
	case "gcircle":
		h.Circle(n(0), n(1), n(2))
		return value.Num(0)
	case "gfillcircle":
		h.FillCircle(n(0), n(1), n(2))
		return value.Num(0)
	case "gtext":
		h.Text(n(0), n(1), s(2))
		return value.Num(0)
	case "grefresh":
		h.Refresh()
		return value.Num(0)

	case "gmx":
		return value.Num(float64(h.MouseX()))
	case "gmy":
		return value.Num(float64(h.MouseY()))
	case "gmb":
		return value.Num(float64(h.MouseButtons()))
	case "gmclick":
		return value.Num(float64(h.MouseLastClick()))
	case "gmdrag":
		return value.Num(float64(h.MouseDrag()))
	case "tmx":
		return value.Num(float64(h.CellMouseX()))
	case "tmy":
		return value.Num(float64(h.CellMouseY()))
	case "tmclick":
		return value.Num(float64(h.CellMouseLastClick()))
	case "tmdrag":
		return value.Num(float64(h.CellMouseDrag()))

	case "time":
		return value.Num(float64(h.WallClockSeconds()))
	case "ticks":
		return value.Num(float64(h.MonotonicMillis()))
	case "elapsed":
		return value.Num(float64(h.ElapsedMillis()))
	}
	return value.Num(0)
}

// writeAtCursor implements putch: a string argument writes every byte,
// a numeric argument writes one byte (its low 8 bits), both advancing
// the cursor mirror and wrapping at the terminal width.
func writeAtCursor(ctx Context, args []value.Value) bool {
	h := ctx.Host()
	v := arg(args, 0)

	var bytes []byte
	if v.IsString() {
		bytes = []byte(v.ToString())
	} else {
		bytes = []byte{byte(int(v.ToNumber()))}
	}

	x, y := ctx.CursorX(), ctx.CursorY()
	ok := true
	for _, b := range bytes {
		if !h.PutChar(x, y, b) {
			ok = false
		}
		x++
		if x >= h.Width() {
			x = 0
			y++
		}
	}
	ctx.SetCursor(x, y)
	return ok
}

func arg(args []value.Value, i int) value.Value {
	if i < 0 || i >= len(args) {
		return value.Num(0)
	}
	return args[i]
}

func boolNum(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
