// Package repl implements the interactive ITL shell: line editing with
// history (github.com/peterh/liner, the same way
// other_examples/michaelmacinnis-oh__task.go embeds liner.State),
// assignment-echo, and the meta-commands of spec.md §6
// ("help syntax screen vars array lines clear reset debug exit quit").
package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/YouDevIt/itl/internal/config"
	"github.com/YouDevIt/itl/internal/engine"
	"github.com/YouDevIt/itl/internal/logger"
)

// REPL drives one interactive session over one engine.Engine.
type REPL struct {
	eng         *engine.Engine
	line        *liner.State
	prompt      string
	historyFile string
}

// New builds a REPL around eng, reading the prompt and history file path
// from internal/config's [REPL] section.
func New(eng *engine.Engine) *REPL {
	r := &REPL{
		eng:         eng,
		line:        liner.NewLiner(),
		prompt:      config.GetString("REPL", "prompt", "] "),
		historyFile: config.GetString("REPL", "history_file", ".itl_history"),
	}
	r.line.SetCtrlCAborts(true)
	eng.SetEcho(true)
	eng.MetaHandler = func(args string) { r.dispatch(args) }
	return r
}

// Run reads lines until EOF (Ctrl+D) or ":exit"/":quit", feeding each one
// to the engine (spec.md §3's "accumulated monotonically (REPL)" model).
func (r *REPL) Run() {
	fmt.Println(banner)
	r.loadHistory()
	defer r.saveHistory()
	defer r.line.Close()

	for {
		text, err := r.line.Prompt(r.prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Println()
				return
			}
			fmt.Fprintf(os.Stderr, "itl: %v\n", err)
			return
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		r.line.AppendHistory(text)

		trimmed := strings.TrimSpace(text)
		if strings.HasPrefix(trimmed, ":") {
			if r.dispatch(strings.TrimSpace(trimmed[1:])) {
				return
			}
			continue
		}
		r.eng.FeedLine(text)
	}
}

func (r *REPL) loadHistory() {
	f, err := os.Open(r.historyFile)
	if err != nil {
		return
	}
	defer f.Close()
	if _, err := r.line.ReadHistory(f); err != nil {
		logger.Warn(logger.AreaREPL, "read history: %v", err)
	}
}

func (r *REPL) saveHistory() {
	f, err := os.Create(r.historyFile)
	if err != nil {
		logger.Warn(logger.AreaREPL, "save history: %v", err)
		return
	}
	defer f.Close()
	if _, err := r.line.WriteHistory(f); err != nil {
		logger.Warn(logger.AreaREPL, "write history: %v", err)
	}
}

// dispatch handles one meta-command's argument text (the part after the
// leading ':'), whether it arrived from the prompt directly or via a
// ':'-led program segment (engine.Engine.MetaHandler). Reports whether
// the session should end.
func (r *REPL) dispatch(args string) bool {
	fields := strings.Fields(args)
	cmd := ""
	if len(fields) > 0 {
		cmd = fields[0]
	}

	switch cmd {
	case "help":
		fmt.Print(helpText)
	case "syntax":
		fmt.Print(syntaxText)
	case "screen":
		r.printScreen()
	case "vars":
		r.printVars()
	case "array":
		r.printArray()
	case "lines":
		r.printLines()
	case "clear":
		r.eng.ClearState()
		fmt.Println("state cleared")
	case "reset":
		r.eng.Reset()
		fmt.Println("engine reset")
	case "debug":
		if len(fields) < 2 || len(fields[1]) != 1 {
			fmt.Println("usage: :debug V")
			break
		}
		name := fields[1][0]
		v, ok := r.eng.Var(name)
		fmt.Print(formatDebug(name, v, ok))
	case "exit", "quit":
		return true
	default:
		fmt.Printf("unknown command: %q (try :help)\n", cmd)
	}
	return false
}

func (r *REPL) printVars() {
	names := r.eng.VarNames()
	if len(names) == 0 {
		fmt.Println("(no variables defined)")
		return
	}
	for _, n := range names {
		v, _ := r.eng.Var(n)
		if v.IsString() {
			fmt.Printf("%c = %q\n", n, v.ToString())
		} else {
			fmt.Printf("%c = %s\n", n, v.ToString())
		}
	}
}

func (r *REPL) printArray() {
	snap := r.eng.ArraySnapshot()
	if len(snap) == 0 {
		fmt.Println("(array is empty)")
		return
	}
	for i, n := range snap {
		fmt.Printf("@%d = %s\n", i, strconv.FormatFloat(n, 'g', -1, 64))
	}
}

func (r *REPL) printLines() {
	segs := r.eng.Segments()
	if len(segs) == 0 {
		fmt.Println("(program store is empty)")
		return
	}
	for i, s := range segs {
		fmt.Printf("%4d  %s\n", i+1, s)
	}
}

func (r *REPL) printScreen() {
	h := r.eng.Host()
	if h == nil {
		fmt.Println("(no host attached)")
		return
	}
	w, rows := h.Width(), h.Height()
	var b strings.Builder
	for y := 0; y < rows; y++ {
		for x := 0; x < w; x++ {
			c := h.CharAt(x, y)
			if c == 0 {
				c = ' '
			}
			b.WriteByte(c)
		}
		b.WriteByte('\n')
	}
	fmt.Print(b.String())
}
