package functions

import (
	"math"

	"github.com/sandboxeval/sandboxeval/internal/value"
)

// registerMath installs the standard double-precision operations plus
// PI and E as zero-arg callables, matching spec §4.B and exposed to
// the evaluator as qualified Math.* names.
func registerMath(r *Registry) {
	unary := func(name string, f func(float64) float64) {
		must(r.Register(SafeFunction{
			Name: "Math." + name, Category: "math", MinArgs: 1, MaxArgs: 1,
			TypeChecks: []TypeCheck{IsNumber},
			Impl: func(args []value.Value) (value.Value, error) {
				return value.Number(f(args[0].Num())), nil
			},
		}))
	}

	unary("round", math.Round)
	unary("floor", math.Floor)
	unary("ceil", math.Ceil)
	unary("trunc", math.Trunc)
	unary("abs", math.Abs)
	unary("sqrt", math.Sqrt)
	unary("sign", func(x float64) float64 {
		switch {
		case x > 0:
			return 1
		case x < 0:
			return -1
		default:
			return x
		}
	})

	must(r.Register(SafeFunction{
		Name: "Math.pow", Category: "math", MinArgs: 2, MaxArgs: 2,
		TypeChecks: []TypeCheck{IsNumber, IsNumber},
		Impl: func(args []value.Value) (value.Value, error) {
			return value.Number(math.Pow(args[0].Num(), args[1].Num())), nil
		},
	}))

	must(r.Register(SafeFunction{
		Name: "Math.min", Category: "math", MinArgs: 1, MaxArgs: -1,
		Impl: func(args []value.Value) (value.Value, error) {
			m := math.Inf(1)
			for _, a := range args {
				m = math.Min(m, a.Num())
			}
			return value.Number(m), nil
		},
	}))

	must(r.Register(SafeFunction{
		Name: "Math.max", Category: "math", MinArgs: 1, MaxArgs: -1,
		Impl: func(args []value.Value) (value.Value, error) {
			m := math.Inf(-1)
			for _, a := range args {
				m = math.Max(m, a.Num())
			}
			return value.Number(m), nil
		},
	}))

	must(r.Register(SafeFunction{
		Name: "Math.PI", Category: "math", MinArgs: 0, MaxArgs: 0,
		Impl: func(args []value.Value) (value.Value, error) {
			return value.Number(math.Pi), nil
		},
	}))

	must(r.Register(SafeFunction{
		Name: "Math.E", Category: "math", MinArgs: 0, MaxArgs: 0,
		Impl: func(args []value.Value) (value.Value, error) {
			return value.Number(math.E), nil
		},
	}))
}
