package repl

import (
	"testing"

	"github.com/YouDevIt/itl/internal/engine"
	"github.com/YouDevIt/itl/internal/host"
)

func newTestREPL() (*REPL, *engine.Engine) {
	rec := host.NewRecorder()
	eng := engine.New(rec, engine.DefaultLimits())
	eng.LoadProgram("A=1")
	eng.Run()
	r := &REPL{eng: eng, prompt: "] "}
	return r, eng
}

func TestDispatchClearKeepsProgram(t *testing.T) {
	r, eng := newTestREPL()
	if r.dispatch("clear") {
		t.Fatal("clear must not end the session")
	}
	if _, ok := eng.Var('A'); ok {
		t.Error("A should be undefined after :clear")
	}
	if len(eng.Segments()) == 0 {
		t.Error(":clear must keep the program store")
	}
}

func TestDispatchResetClearsProgram(t *testing.T) {
	r, eng := newTestREPL()
	r.dispatch("reset")
	if len(eng.Segments()) != 0 {
		t.Error(":reset must empty the program store")
	}
}

func TestDispatchExitQuit(t *testing.T) {
	r, _ := newTestREPL()
	if !r.dispatch("exit") {
		t.Error(":exit should end the session")
	}
	if !r.dispatch("quit") {
		t.Error(":quit should end the session")
	}
	if r.dispatch("vars") {
		t.Error(":vars should not end the session")
	}
}

func TestDispatchUnknownCommandDoesNotEndSession(t *testing.T) {
	r, _ := newTestREPL()
	if r.dispatch("bogus") {
		t.Error("unknown command should not end the session")
	}
}

func TestMetaHandlerReachesDispatch(t *testing.T) {
	r, eng := newTestREPL()
	eng.MetaHandler = func(args string) { r.dispatch(args) }
	eng.LoadProgram(":clear")
	eng.Run()
	if _, ok := eng.Var('A'); ok {
		t.Error("A should be undefined after a ':clear' segment runs through MetaHandler")
	}
}
