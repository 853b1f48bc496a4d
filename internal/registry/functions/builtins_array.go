package functions

import (
	"sort"

	"github.com/maruel/natural"

	"github.com/sandboxeval/sandboxeval/internal/value"
)

// registerArray installs length, join, slice, first, last, reverse,
// flatten, unique, chunk from spec §4.B, plus the SPEC_FULL-added
// sort/sortBy pair backed by github.com/maruel/natural for
// human-friendly ordering of mixed numeric/alphanumeric strings.
func registerArray(r *Registry) {
	must(r.Register(SafeFunction{
		Name: "length", Category: "array", MinArgs: 1, MaxArgs: 1,
		TypeChecks: []TypeCheck{IsArray},
		Impl: func(args []value.Value) (value.Value, error) {
			return value.Number(float64(args[0].Len())), nil
		},
	}))

	must(r.Register(SafeFunction{
		Name: "join", Category: "array", MinArgs: 1, MaxArgs: 2,
		TypeChecks: []TypeCheck{IsArray},
		Impl: func(args []value.Value) (value.Value, error) {
			sep := ","
			if len(args) == 2 {
				sep = args[1].Str()
			}
			elems := args[0].Elements()
			var out string
			for i, e := range elems {
				if i > 0 {
					out += sep
				}
				out += e.ToDisplayString()
			}
			return value.String(out), nil
		},
	}))

	must(r.Register(SafeFunction{
		Name: "slice", Category: "array", MinArgs: 1, MaxArgs: 3,
		TypeChecks: []TypeCheck{IsArray},
		Impl: func(args []value.Value) (value.Value, error) {
			elems := args[0].Elements()
			start := 0
			end := len(elems)
			if len(args) >= 2 {
				start = clampIndex(int(args[1].Num()), len(elems))
			}
			if len(args) == 3 {
				end = clampIndex(int(args[2].Num()), len(elems))
			}
			if start > end {
				start = end
			}
			return value.NewArray(elems[start:end]), nil
		},
	}))

	must(r.Register(SafeFunction{
		Name: "first", Category: "array", MinArgs: 1, MaxArgs: 1,
		TypeChecks: []TypeCheck{IsArray},
		Impl: func(args []value.Value) (value.Value, error) {
			return args[0].At(0), nil
		},
	}))

	must(r.Register(SafeFunction{
		Name: "last", Category: "array", MinArgs: 1, MaxArgs: 1,
		TypeChecks: []TypeCheck{IsArray},
		Impl: func(args []value.Value) (value.Value, error) {
			return args[0].At(args[0].Len() - 1), nil
		},
	}))

	must(r.Register(SafeFunction{
		Name: "reverse", Category: "array", MinArgs: 1, MaxArgs: 1,
		TypeChecks: []TypeCheck{IsArray},
		Impl: func(args []value.Value) (value.Value, error) {
			elems := args[0].Elements()
			out := make([]value.Value, len(elems))
			for i, e := range elems {
				out[len(elems)-1-i] = e
			}
			return value.NewArray(out), nil
		},
	}))

	must(r.Register(SafeFunction{
		Name: "flatten", Category: "array", MinArgs: 1, MaxArgs: 1,
		TypeChecks: []TypeCheck{IsArray},
		Impl: func(args []value.Value) (value.Value, error) {
			var out []value.Value
			for _, e := range args[0].Elements() {
				if e.IsArray() {
					out = append(out, e.Elements()...)
				} else {
					out = append(out, e)
				}
			}
			return value.NewArray(out), nil
		},
	}))

	must(r.Register(SafeFunction{
		Name: "unique", Category: "array", MinArgs: 1, MaxArgs: 1,
		TypeChecks: []TypeCheck{IsArray},
		Impl: func(args []value.Value) (value.Value, error) {
			elems := args[0].Elements()
			var out []value.Value
			seen := map[string]bool{}
			for _, e := range elems {
				key := e.ToDisplayString() + "\x00" + e.Kind().String()
				if !seen[key] {
					seen[key] = true
					out = append(out, e)
				}
			}
			return value.NewArray(out), nil
		},
	}))

	must(r.Register(SafeFunction{
		Name: "chunk", Category: "array", MinArgs: 2, MaxArgs: 2,
		TypeChecks: []TypeCheck{IsArray, IsNumber},
		Impl: func(args []value.Value) (value.Value, error) {
			elems := args[0].Elements()
			size := int(args[1].Num())
			if size < 1 {
				size = 1
			}
			var chunks []value.Value
			for i := 0; i < len(elems); i += size {
				end := i + size
				if end > len(elems) {
					end = len(elems)
				}
				chunks = append(chunks, value.NewArray(elems[i:end]))
			}
			return value.NewArray(chunks), nil
		},
	}))

	must(r.Register(SafeFunction{
		Name: "sort", Category: "array", MinArgs: 1, MaxArgs: 1,
		TypeChecks: []TypeCheck{IsArray},
		Impl: func(args []value.Value) (value.Value, error) {
			elems := args[0].Elements()
			strs := make([]string, len(elems))
			for i, e := range elems {
				strs[i] = e.ToDisplayString()
			}
			idx := make([]int, len(elems))
			for i := range idx {
				idx[i] = i
			}
			sort.SliceStable(idx, func(a, b int) bool {
				return natural.Less(strs[idx[a]], strs[idx[b]])
			})
			out := make([]value.Value, len(elems))
			for i, j := range idx {
				out[i] = elems[j]
			}
			return value.NewArray(out), nil
		},
	}))

	must(r.Register(SafeFunction{
		Name: "sortBy", Category: "array", MinArgs: 2, MaxArgs: 2,
		TypeChecks: []TypeCheck{IsArray, IsString},
		Impl: func(args []value.Value) (value.Value, error) {
			elems := args[0].Elements()
			key := args[1].Str()
			strs := make([]string, len(elems))
			for i, e := range elems {
				strs[i] = e.ObjectGet(key).ToDisplayString()
			}
			idx := make([]int, len(elems))
			for i := range idx {
				idx[i] = i
			}
			sort.SliceStable(idx, func(a, b int) bool {
				return natural.Less(strs[idx[a]], strs[idx[b]])
			})
			out := make([]value.Value, len(elems))
			for i, j := range idx {
				out[i] = elems[j]
			}
			return value.NewArray(out), nil
		},
	}))
}
