package engine

import (
	"math/rand"
	"sort"
	"time"

	"github.com/YouDevIt/itl/internal/value"
	"github.com/YouDevIt/itl/internal/varray"
)

// environment holds the 27 named cells (spec.md §3), the single global
// array, and the RNG state. It is a field of Engine, never an ambient
// global, so multiple engines can coexist in one process (spec.md §9
// "Global state").
type environment struct {
	cells map[byte]value.Value
	array *varray.Array
	rng   *rand.Rand
}

func newEnvironment(maxArrayLen int) *environment {
	return &environment{
		cells: make(map[byte]value.Value, 27),
		array: varray.New(maxArrayLen),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// isVarLetter reports whether c names one of the 27 variable cells.
func isVarLetter(c byte) bool { return (c >= 'A' && c <= 'Z') || c == '_' }

func (env *environment) get(name byte) (value.Value, bool) {
	v, ok := env.cells[name]
	return v, ok
}

func (env *environment) set(name byte, v value.Value) { env.cells[name] = v }

func (env *environment) unset(name byte) { delete(env.cells, name) }

func (env *environment) seed(n int64) { env.rng = rand.New(rand.NewSource(n)) }

func (env *environment) random() float64 { return env.rng.Float64() }

// snapshot returns the currently-defined cells in A-Z,_ order, for the
// REPL's ":vars" command.
func (env *environment) snapshot() []byte {
	names := make([]byte, 0, len(env.cells))
	for name := range env.cells {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}
