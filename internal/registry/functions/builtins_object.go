package functions

import "github.com/sandboxeval/sandboxeval/internal/value"

// registerObject installs Object.keys, Object.values, Object.entries from
// spec §4.B, qualified under the Object static namespace the same way
// registerJSON and registerMath qualify theirs.
func registerObject(r *Registry) {
	isObject := func(v value.Value) bool { return v.IsPlainObject() }

	must(r.Register(SafeFunction{
		Name: "Object.keys", Category: "object", MinArgs: 1, MaxArgs: 1,
		TypeChecks: []TypeCheck{isObject},
		Impl: func(args []value.Value) (value.Value, error) {
			keys := args[0].Keys()
			out := make([]value.Value, len(keys))
			for i, k := range keys {
				out[i] = value.String(k)
			}
			return value.NewArray(out), nil
		},
	}))

	must(r.Register(SafeFunction{
		Name: "Object.values", Category: "object", MinArgs: 1, MaxArgs: 1,
		TypeChecks: []TypeCheck{isObject},
		Impl: func(args []value.Value) (value.Value, error) {
			keys := args[0].Keys()
			out := make([]value.Value, len(keys))
			for i, k := range keys {
				out[i] = args[0].ObjectGet(k)
			}
			return value.NewArray(out), nil
		},
	}))

	must(r.Register(SafeFunction{
		Name: "Object.entries", Category: "object", MinArgs: 1, MaxArgs: 1,
		TypeChecks: []TypeCheck{isObject},
		Impl: func(args []value.Value) (value.Value, error) {
			keys := args[0].Keys()
			out := make([]value.Value, len(keys))
			for i, k := range keys {
				pair := value.NewArray([]value.Value{value.String(k), args[0].ObjectGet(k)})
				out[i] = pair
			}
			return value.NewArray(out), nil
		},
	}))
}
