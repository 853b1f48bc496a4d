package functions

import "github.com/sandboxeval/sandboxeval/internal/value"

// registerConditional installs $if, $and, $or, $not from spec §4.B.
// These read as ordinary registered functions to the validator and
// evaluator — no special-cased short-circuit node is introduced for
// them, matching the spec's framing of them as plain callables rather
// than control-flow syntax.
func registerConditional(r *Registry) {
	must(r.Register(SafeFunction{
		Name: "$if", Category: "conditional", MinArgs: 2, MaxArgs: 3,
		Impl: func(args []value.Value) (value.Value, error) {
			if args[0].Truthy() {
				return args[1], nil
			}
			if len(args) == 3 {
				return args[2], nil
			}
			return value.Null, nil
		},
	}))

	must(r.Register(SafeFunction{
		Name: "$and", Category: "conditional", MinArgs: 0, MaxArgs: -1,
		Impl: func(args []value.Value) (value.Value, error) {
			for _, a := range args {
				if !a.Truthy() {
					return value.Bool(false), nil
				}
			}
			return value.Bool(true), nil
		},
	}))

	must(r.Register(SafeFunction{
		Name: "$or", Category: "conditional", MinArgs: 0, MaxArgs: -1,
		Impl: func(args []value.Value) (value.Value, error) {
			for _, a := range args {
				if a.Truthy() {
					return value.Bool(true), nil
				}
			}
			return value.Bool(false), nil
		},
	}))

	must(r.Register(SafeFunction{
		Name: "$not", Category: "conditional", MinArgs: 1, MaxArgs: 1,
		Impl: func(args []value.Value) (value.Value, error) {
			return value.Bool(!args[0].Truthy()), nil
		},
	}))
}
