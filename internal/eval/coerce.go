package eval

import (
	"math"
	"strconv"
	"strings"

	"github.com/sandboxeval/sandboxeval/internal/value"
)

// jsTypeOf implements typeof's result per the JS type tag convention:
// null is famously "object", arrays and plain objects are both
// "object" too, since this sandbox has no separate array typeof tag.
func jsTypeOf(v value.Value) string {
	switch v.Kind() {
	case value.KindUndefined:
		return "undefined"
	case value.KindNull:
		return "object"
	case value.KindBoolean:
		return "boolean"
	case value.KindNumber:
		return "number"
	case value.KindString:
		return "string"
	default:
		return "object"
	}
}

// toNumber implements the host's numeric coercion, grounded on
// _examples/other_examples/00db6b9e_flowbaker-flowbaker__...executor.go's
// converter.ToNumber (undefined/NaN-string → NaN, null → 0, booleans
// → 0/1, single-element arrays recurse into their element, everything
// else that isn't already numeric → NaN).
func toNumber(v value.Value) float64 {
	switch v.Kind() {
	case value.KindUndefined:
		return math.NaN()
	case value.KindNull:
		return 0
	case value.KindBoolean:
		if v.Bool() {
			return 1
		}
		return 0
	case value.KindNumber:
		return v.Num()
	case value.KindString:
		s := strings.TrimSpace(v.Str())
		if s == "" {
			return 0
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN()
		}
		return n
	case value.KindArray:
		switch v.Len() {
		case 0:
			return 0
		case 1:
			return toNumber(v.At(0))
		default:
			return math.NaN()
		}
	default:
		return math.NaN()
	}
}

// addValues implements `+`: string concatenation if either side is a
// string, numeric addition otherwise (IEEE-754, so NaN propagates
// naturally through plain float64 arithmetic without special-casing).
func addValues(left, right value.Value) value.Value {
	if left.Kind() == value.KindString || right.Kind() == value.KindString {
		return value.String(left.ToDisplayString() + right.ToDisplayString())
	}
	return value.Number(toNumber(left) + toNumber(right))
}

// strictEquals implements `===`: same kind, same value, NaN never
// equals itself.
func strictEquals(left, right value.Value) bool {
	if left.Kind() != right.Kind() {
		return false
	}
	switch left.Kind() {
	case value.KindUndefined, value.KindNull:
		return true
	case value.KindBoolean:
		return left.Bool() == right.Bool()
	case value.KindNumber:
		return left.Num() == right.Num()
	case value.KindString:
		return left.Str() == right.Str()
	default:
		// Arrays and objects compare by identity in real JS; this
		// sandbox's values carry no identity, so structural nodes are
		// never strictly equal to one another unless they are the
		// exact same Value (which Go's == on the struct would catch
		// for simple cases, but Value holds slice/map fields that
		// aren't comparable) — treat as never equal, matching the
		// grounding executor's `left == right` pointer-style check
		// failing for any non-identical composite.
		return false
	}
}

// looseEquals implements `==`, grounded on the grounding executor's
// looseEquals: strict equality first, then null/undefined treated as
// mutually equal, then string-involving comparisons done as strings,
// everything else compared numerically.
func looseEquals(left, right value.Value) bool {
	if strictEquals(left, right) {
		return true
	}
	leftNullish := left.IsNullish()
	rightNullish := right.IsNullish()
	if leftNullish && rightNullish {
		return true
	}
	if leftNullish != rightNullish {
		return false
	}
	if left.Kind() == value.KindString || right.Kind() == value.KindString {
		return left.ToDisplayString() == right.ToDisplayString()
	}
	ln, rn := toNumber(left), toNumber(right)
	return ln == rn
}

// compare implements <, <=, >, >=: lexicographic when both sides are
// strings, numeric otherwise.
func compare(left, right value.Value, op string) bool {
	if left.Kind() == value.KindString && right.Kind() == value.KindString {
		ls, rs := left.Str(), right.Str()
		switch op {
		case "<":
			return ls < rs
		case "<=":
			return ls <= rs
		case ">":
			return ls > rs
		case ">=":
			return ls >= rs
		}
		return false
	}
	ln, rn := toNumber(left), toNumber(right)
	switch op {
	case "<":
		return ln < rn
	case "<=":
		return ln <= rn
	case ">":
		return ln > rn
	case ">=":
		return ln >= rn
	}
	return false
}

// inOperator implements the `in` binary operator: property presence
// on an object, or a valid numeric index on an array.
func inOperator(left, right value.Value) bool {
	switch right.Kind() {
	case value.KindObject:
		return right.ObjectHas(left.ToDisplayString())
	case value.KindArray:
		idx, err := strconv.Atoi(strings.TrimSpace(left.ToDisplayString()))
		if err != nil {
			return false
		}
		return idx >= 0 && idx < right.Len()
	default:
		return false
	}
}
