package functions

import (
	"errors"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sandboxeval/sandboxeval/internal/value"
)

// registerString installs the string category: trim, case conversion,
// slice, includes, prefix/suffix, replace, split, plus the
// padStart/padEnd/repeat trio SPEC_FULL adds to round out the
// category (see SPEC_FULL.md, SUPPLEMENTED FEATURES). Case folding
// goes through golang.org/x/text/cases for Unicode correctness instead
// of byte-oriented strings.ToUpper/ToLower.
func registerString(r *Registry) {
	titleCaser := cases.Title(language.Und)
	upperCaser := cases.Upper(language.Und)
	lowerCaser := cases.Lower(language.Und)

	must(r.Register(SafeFunction{
		Name: "trim", Category: "string", MinArgs: 1, MaxArgs: 1,
		TypeChecks: []TypeCheck{IsString},
		Impl: func(args []value.Value) (value.Value, error) {
			return value.String(strings.TrimSpace(args[0].Str())), nil
		},
	}))

	must(r.Register(SafeFunction{
		Name: "toUpperCase", Category: "string", MinArgs: 1, MaxArgs: 1,
		TypeChecks: []TypeCheck{IsString},
		Impl: func(args []value.Value) (value.Value, error) {
			return value.String(upperCaser.String(args[0].Str())), nil
		},
	}))

	must(r.Register(SafeFunction{
		Name: "toLowerCase", Category: "string", MinArgs: 1, MaxArgs: 1,
		TypeChecks: []TypeCheck{IsString},
		Impl: func(args []value.Value) (value.Value, error) {
			return value.String(lowerCaser.String(args[0].Str())), nil
		},
	}))

	must(r.Register(SafeFunction{
		Name: "capitalize", Category: "string", MinArgs: 1, MaxArgs: 1,
		TypeChecks: []TypeCheck{IsString},
		Impl: func(args []value.Value) (value.Value, error) {
			return value.String(titleCaser.String(args[0].Str())), nil
		},
	}))

	must(r.Register(SafeFunction{
		Name: "slice", Category: "string", MinArgs: 2, MaxArgs: 3,
		TypeChecks: []TypeCheck{IsString, IsNumber, IsNumber},
		Impl: func(args []value.Value) (value.Value, error) {
			runes := []rune(args[0].Str())
			start := clampIndex(int(args[1].Num()), len(runes))
			end := len(runes)
			if len(args) == 3 {
				end = clampIndex(int(args[2].Num()), len(runes))
			}
			if start > end {
				start = end
			}
			return value.String(string(runes[start:end])), nil
		},
	}))

	must(r.Register(SafeFunction{
		Name: "includes", Category: "string", MinArgs: 2, MaxArgs: 2,
		TypeChecks: []TypeCheck{IsString, IsString},
		Impl: func(args []value.Value) (value.Value, error) {
			return value.Bool(strings.Contains(args[0].Str(), args[1].Str())), nil
		},
	}))

	must(r.Register(SafeFunction{
		Name: "startsWith", Category: "string", MinArgs: 2, MaxArgs: 2,
		TypeChecks: []TypeCheck{IsString, IsString},
		Impl: func(args []value.Value) (value.Value, error) {
			return value.Bool(strings.HasPrefix(args[0].Str(), args[1].Str())), nil
		},
	}))

	must(r.Register(SafeFunction{
		Name: "endsWith", Category: "string", MinArgs: 2, MaxArgs: 2,
		TypeChecks: []TypeCheck{IsString, IsString},
		Impl: func(args []value.Value) (value.Value, error) {
			return value.Bool(strings.HasSuffix(args[0].Str(), args[1].Str())), nil
		},
	}))

	must(r.Register(SafeFunction{
		Name: "replace", Category: "string", MinArgs: 3, MaxArgs: 3,
		TypeChecks: []TypeCheck{IsString, IsString, IsString},
		Impl: func(args []value.Value) (value.Value, error) {
			return value.String(strings.Replace(args[0].Str(), args[1].Str(), args[2].Str(), 1)), nil
		},
	}))

	must(r.Register(SafeFunction{
		Name: "split", Category: "string", MinArgs: 2, MaxArgs: 2,
		TypeChecks: []TypeCheck{IsString, IsString},
		Impl: func(args []value.Value) (value.Value, error) {
			parts := strings.Split(args[0].Str(), args[1].Str())
			elems := make([]value.Value, len(parts))
			for i, p := range parts {
				elems[i] = value.String(p)
			}
			return value.NewArray(elems), nil
		},
	}))

	must(r.Register(SafeFunction{
		Name: "padStart", Category: "string", MinArgs: 2, MaxArgs: 3,
		TypeChecks: []TypeCheck{IsString, IsNumber},
		Impl: func(args []value.Value) (value.Value, error) {
			pad := " "
			if len(args) == 3 {
				pad = args[2].Str()
			}
			return value.String(padString(args[0].Str(), int(args[1].Num()), pad, true)), nil
		},
	}))

	must(r.Register(SafeFunction{
		Name: "padEnd", Category: "string", MinArgs: 2, MaxArgs: 3,
		TypeChecks: []TypeCheck{IsString, IsNumber},
		Impl: func(args []value.Value) (value.Value, error) {
			pad := " "
			if len(args) == 3 {
				pad = args[2].Str()
			}
			return value.String(padString(args[0].Str(), int(args[1].Num()), pad, false)), nil
		},
	}))

	must(r.Register(SafeFunction{
		Name: "repeat", Category: "string", MinArgs: 2, MaxArgs: 2,
		TypeChecks: []TypeCheck{IsString, IsNumber},
		Impl: func(args []value.Value) (value.Value, error) {
			n := int(args[1].Num())
			if n < 0 {
				return value.Undefined, errors.New("repeat count must not be negative")
			}
			return value.String(strings.Repeat(args[0].Str(), n)), nil
		},
	}))
}

func clampIndex(i, length int) int {
	if i < 0 {
		i = length + i
	}
	if i < 0 {
		return 0
	}
	if i > length {
		return length
	}
	return i
}

func padString(s string, targetLen int, pad string, atStart bool) string {
	runes := []rune(s)
	if len(runes) >= targetLen || pad == "" {
		return s
	}
	need := targetLen - len(runes)
	padRunes := []rune(strings.Repeat(pad, need/len([]rune(pad))+1))[:need]
	if atStart {
		return string(padRunes) + s
	}
	return s + string(padRunes)
}
