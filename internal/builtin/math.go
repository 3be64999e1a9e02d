// Package builtin implements ITL's two builtin families (spec.md §4.4):
// mathematics, evaluated purely over numbers, and host builtins, each
// translated into exactly one host.Host capability call.
package builtin

import "math"

// mathFn is a fixed-arity math builtin. Missing arguments are supplied
// as 0 by the caller before mathFn ever runs (spec.md §4.4).
type mathFn struct {
	arity int
	call  func(args []float64) float64
}

var mathTable = map[string]mathFn{
	"sin":    {1, func(a []float64) float64 { return math.Sin(a[0]) }},
	"cos":    {1, func(a []float64) float64 { return math.Cos(a[0]) }},
	"tan":    {1, func(a []float64) float64 { return math.Tan(a[0]) }},
	"asin":   {1, func(a []float64) float64 { return math.Asin(a[0]) }},
	"acos":   {1, func(a []float64) float64 { return math.Acos(a[0]) }},
	"atan":   {1, func(a []float64) float64 { return math.Atan(a[0]) }},
	"atan2":  {2, func(a []float64) float64 { return math.Atan2(a[0], a[1]) }},
	"sinh":   {1, func(a []float64) float64 { return math.Sinh(a[0]) }},
	"cosh":   {1, func(a []float64) float64 { return math.Cosh(a[0]) }},
	"tanh":   {1, func(a []float64) float64 { return math.Tanh(a[0]) }},
	"exp":    {1, func(a []float64) float64 { return math.Exp(a[0]) }},
	"log":    {1, func(a []float64) float64 { return math.Log(a[0]) }},
	"log2":   {1, func(a []float64) float64 { return math.Log2(a[0]) }},
	"log10":  {1, func(a []float64) float64 { return math.Log10(a[0]) }},
	"sqrt":   {1, func(a []float64) float64 { return math.Sqrt(a[0]) }},
	"cbrt":   {1, func(a []float64) float64 { return math.Cbrt(a[0]) }},
	"pow":    {2, func(a []float64) float64 { return math.Pow(a[0], a[1]) }},
	"ceil":   {1, func(a []float64) float64 { return math.Ceil(a[0]) }},
	"floor":  {1, func(a []float64) float64 { return math.Floor(a[0]) }},
	"round":  {1, func(a []float64) float64 { return math.Round(a[0]) }},
	"trunc":  {1, func(a []float64) float64 { return math.Trunc(a[0]) }},
	"abs":    {1, func(a []float64) float64 { return math.Abs(a[0]) }},
	"fabs":   {1, func(a []float64) float64 { return math.Abs(a[0]) }},
	"sign":   {1, func(a []float64) float64 { return sign(a[0]) }},
	"fmod":   {2, func(a []float64) float64 { return math.Mod(a[0], a[1]) }},
	"hypot":  {2, func(a []float64) float64 { return math.Hypot(a[0], a[1]) }},
	"max":    {2, func(a []float64) float64 { return math.Max(a[0], a[1]) }},
	"min":    {2, func(a []float64) float64 { return math.Min(a[0], a[1]) }},
	"pi":     {0, func(a []float64) float64 { return math.Pi }},
	"e":      {0, func(a []float64) float64 { return math.E }},
}

func sign(n float64) float64 {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}

// IsMath reports whether name names a math builtin.
func IsMath(name string) bool {
	_, ok := mathTable[name]
	return ok
}

// CallMath evaluates the math builtin name with args, padding any
// missing argument with 0 per spec.md §4.4 and ignoring extras beyond
// the builtin's arity.
func CallMath(name string, args []float64) (float64, bool) {
	fn, ok := mathTable[name]
	if !ok {
		return 0, false
	}
	padded := make([]float64, fn.arity)
	copy(padded, args)
	return fn.call(padded), true
}
