package functions

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/sandboxeval/sandboxeval/internal/value"
)

// registerJSON installs JSON.parse and JSON.stringify from spec §4.B.
// Parsing walks arbitrary JSON text via gjson.Valid+.Value() instead
// of reflection-based encoding/json decoding (DOMAIN STACK). Stringify
// builds its document incrementally with sjson.SetRaw for the
// array/object assembly path; scalar leaves are rendered by this
// file's own jsonNumber/jsonQuote helpers, since sjson/gjson are
// text-path tools with no primitive-to-JSON-literal encoder of their
// own.
func registerJSON(r *Registry) {
	must(r.Register(SafeFunction{
		Name: "JSON.parse", Category: "json", MinArgs: 1, MaxArgs: 1,
		TypeChecks: []TypeCheck{IsString},
		Impl: func(args []value.Value) (value.Value, error) {
			text := args[0].Str()
			if !gjson.Valid(text) {
				return value.Null, nil
			}
			return fromGJSON(gjson.Parse(text)), nil
		},
	}))

	must(r.Register(SafeFunction{
		Name: "JSON.stringify", Category: "json", MinArgs: 1, MaxArgs: 1,
		Impl: func(args []value.Value) (value.Value, error) {
			s, ok := toJSONText(args[0])
			if !ok {
				return value.String("null"), nil
			}
			return value.String(s), nil
		},
	}))
}

func fromGJSON(r gjson.Result) value.Value {
	switch r.Type {
	case gjson.Null:
		return value.Null
	case gjson.False:
		return value.Bool(false)
	case gjson.True:
		return value.Bool(true)
	case gjson.Number:
		return value.Number(r.Num)
	case gjson.String:
		return value.String(r.Str)
	case gjson.JSON:
		if r.IsArray() {
			var elems []value.Value
			r.ForEach(func(_, v gjson.Result) bool {
				elems = append(elems, fromGJSON(v))
				return true
			})
			return value.NewArray(elems)
		}
		obj := value.NewObject()
		r.ForEach(func(k, v gjson.Result) bool {
			obj = obj.ObjectSet(k.Str, fromGJSON(v))
			return true
		})
		return obj
	default:
		return value.Null
	}
}

// toJSONText renders v as a JSON document, building it incrementally
// via sjson for arrays/objects. Returns ok=false only for values that
// cannot be represented (there are none in this closed value model,
// but the signature mirrors the source's fallible stringify).
func toJSONText(v value.Value) (string, bool) {
	switch v.Kind() {
	case value.KindUndefined:
		return "null", true
	case value.KindNull:
		return "null", true
	case value.KindBoolean:
		if v.Bool() {
			return "true", true
		}
		return "false", true
	case value.KindNumber:
		return jsonNumber(v.Num()), true
	case value.KindString:
		return jsonQuote(v.Str()), true
	case value.KindArray:
		doc := "[]"
		for i, e := range v.Elements() {
			inner, _ := toJSONText(e)
			next, err := sjson.SetRaw(doc, "-1", inner)
			if err != nil {
				return "null", false
			}
			_ = i
			doc = next
		}
		return doc, true
	case value.KindObject:
		doc := "{}"
		for _, k := range v.Keys() {
			inner, _ := toJSONText(v.ObjectGet(k))
			next, err := sjson.SetRaw(doc, jsonPathKey(k), inner)
			if err != nil {
				return "null", false
			}
			doc = next
		}
		return doc, true
	default:
		return "null", false
	}
}

func jsonPathKey(k string) string {
	// sjson treats '.' as a path separator; escape it so a literal
	// dotted key sets one field instead of nesting.
	out := make([]byte, 0, len(k))
	for i := 0; i < len(k); i++ {
		if k[i] == '.' || k[i] == '*' || k[i] == '?' {
			out = append(out, '\\')
		}
		out = append(out, k[i])
	}
	return string(out)
}

func jsonNumber(n float64) string {
	return value.Number(n).ToDisplayString()
}

func jsonQuote(s string) string {
	out := make([]byte, 0, len(s)+2)
	out = append(out, '"')
	for _, r := range s {
		switch r {
		case '"':
			out = append(out, '\\', '"')
		case '\\':
			out = append(out, '\\', '\\')
		case '\n':
			out = append(out, '\\', 'n')
		case '\r':
			out = append(out, '\\', 'r')
		case '\t':
			out = append(out, '\\', 't')
		default:
			out = append(out, string(r)...)
		}
	}
	out = append(out, '"')
	return string(out)
}
