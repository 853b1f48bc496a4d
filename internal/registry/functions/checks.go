package functions

import "github.com/sandboxeval/sandboxeval/internal/value"

// IsString is a TypeCheck accepting string arguments.
func IsString(v value.Value) bool { return v.Kind() == value.KindString }

// IsNumber is a TypeCheck accepting number arguments.
func IsNumber(v value.Value) bool { return v.Kind() == value.KindNumber }

// IsArray is a TypeCheck accepting array arguments.
func IsArray(v value.Value) bool { return v.IsArray() }

// Any accepts every value, used as a placeholder to keep a
// TypeChecks slice positionally aligned when only a later argument
// needs checking.
func Any(value.Value) bool { return true }
