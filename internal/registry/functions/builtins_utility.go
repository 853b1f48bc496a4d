package functions

import "github.com/sandboxeval/sandboxeval/internal/value"

// registerUtility installs isEmpty and hasField from spec §4.B.
func registerUtility(r *Registry) {
	must(r.Register(SafeFunction{
		Name: "isEmpty", Category: "utility", MinArgs: 1, MaxArgs: 1,
		Impl: func(args []value.Value) (value.Value, error) {
			v := args[0]
			switch v.Kind() {
			case value.KindUndefined, value.KindNull:
				return value.Bool(true), nil
			case value.KindString:
				return value.Bool(v.Str() == ""), nil
			case value.KindArray:
				return value.Bool(v.Len() == 0), nil
			case value.KindObject:
				return value.Bool(len(v.Keys()) == 0), nil
			default:
				return value.Bool(false), nil
			}
		},
	}))

	must(r.Register(SafeFunction{
		Name: "hasField", Category: "utility", MinArgs: 2, MaxArgs: 2,
		TypeChecks: []TypeCheck{nil, IsString},
		Impl: func(args []value.Value) (value.Value, error) {
			return value.Bool(args[0].ObjectHas(args[1].Str())), nil
		},
	}))
}
