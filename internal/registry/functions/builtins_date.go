package functions

import (
	"time"

	"github.com/sandboxeval/sandboxeval/internal/value"
)

// registerDate installs Date.now, Date.parse, Date.today, Date.addDays,
// Date.diffDays from spec §4.B. The category boundary (encode/parse
// here, vs. formatting, vs. increment/difference) is grounded on the
// teacher's dropped internal/builtins/{datetime_calc,datetime_format}.go
// split (see DESIGN.md) even though none of that file's Delphi-epoch
// arithmetic survives; date math itself uses the standard library's
// time package, justified in DESIGN.md since no pack dependency covers
// calendar arithmetic.
func registerDate(r *Registry) {
	must(r.Register(SafeFunction{
		Name: "Date.now", Category: "date", MinArgs: 0, MaxArgs: 0,
		Impl: func(args []value.Value) (value.Value, error) {
			return value.Number(float64(time.Now().UnixMilli())), nil
		},
	}))

	must(r.Register(SafeFunction{
		Name: "Date.today", Category: "date", MinArgs: 0, MaxArgs: 0,
		Impl: func(args []value.Value) (value.Value, error) {
			return value.String(time.Now().UTC().Format("2006-01-02")), nil
		},
	}))

	must(r.Register(SafeFunction{
		Name: "Date.parse", Category: "date", MinArgs: 1, MaxArgs: 1,
		TypeChecks: []TypeCheck{IsString},
		Impl: func(args []value.Value) (value.Value, error) {
			t, err := parseDateLoose(args[0].Str())
			if err != nil {
				return value.Number(nanValue()), nil
			}
			return value.Number(float64(t.UnixMilli())), nil
		},
	}))

	must(r.Register(SafeFunction{
		Name: "Date.addDays", Category: "date", MinArgs: 2, MaxArgs: 2,
		TypeChecks: []TypeCheck{IsString, IsNumber},
		Impl: func(args []value.Value) (value.Value, error) {
			t, err := parseDateLoose(args[0].Str())
			if err != nil {
				return value.String(""), nil
			}
			return value.String(t.AddDate(0, 0, int(args[1].Num())).Format("2006-01-02")), nil
		},
	}))

	must(r.Register(SafeFunction{
		Name: "Date.diffDays", Category: "date", MinArgs: 2, MaxArgs: 2,
		TypeChecks: []TypeCheck{IsString, IsString},
		Impl: func(args []value.Value) (value.Value, error) {
			a, err1 := parseDateLoose(args[0].Str())
			b, err2 := parseDateLoose(args[1].Str())
			if err1 != nil || err2 != nil {
				return value.Number(nanValue()), nil
			}
			return value.Number(a.Sub(b).Hours() / 24), nil
		},
	}))
}

func parseDateLoose(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errDateParse
}

var errDateParse = &dateParseError{}

type dateParseError struct{}

func (e *dateParseError) Error() string { return "could not parse date" }

func nanValue() float64 {
	var zero float64
	return zero / zero
}
