package functions

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sandboxeval/sandboxeval/internal/value"
)

func TestDefault_HasCoreCategories(t *testing.T) {
	r := Default()
	stats := r.Stats()

	for _, cat := range []string{"string", "array", "object", "math", "date", "json", "crypto", "conditional", "utility"} {
		require.Greater(t, stats.ByCategory[cat], 0, "expected at least one function in category %q", cat)
	}
}

func TestRegistry_Call_MethodArityRelaxesMinimum(t *testing.T) {
	r := NewRegistry()
	must(r.Register(SafeFunction{
		Name: "greet", Category: "test", MinArgs: 2, MaxArgs: 2,
		Impl: func(args []value.Value) (value.Value, error) {
			return value.String(args[0].Str() + " " + args[1].Str()), nil
		},
	}))

	// Called as a bare function, both args required.
	_, err := r.Call("greet", []value.Value{value.String("hi")}, false)
	require.Error(t, err)

	// Called as a method, the receiver fills args[0], so one
	// remaining argument satisfies the relaxed minimum of 1.
	out, err := r.Call("greet", []value.Value{value.String("hi"), value.String("there")}, true)
	require.NoError(t, err)
	require.Equal(t, "hi there", out.Str())
}

func TestRegistry_Call_UnregisteredFunction(t *testing.T) {
	r := NewRegistry()
	_, err := r.Call("missing", nil, false)
	require.Error(t, err)
}

func TestRegistry_Call_TypeCheckFailure(t *testing.T) {
	r := Default()
	_, err := r.Call("trim", []value.Value{value.Number(1)}, false)
	require.Error(t, err)
}

func TestJSONStringify_RoundTrip(t *testing.T) {
	r := Default()

	obj := value.NewObject().ObjectSet("a", value.Number(1)).ObjectSet("b", value.String("x"))
	out, err := r.Call("JSON.stringify", []value.Value{obj}, false)
	require.NoError(t, err)

	parsed, err := r.Call("JSON.parse", []value.Value{out}, false)
	require.NoError(t, err)
	require.Equal(t, float64(1), parsed.ObjectGet("a").Num())
	require.Equal(t, "x", parsed.ObjectGet("b").Str())
}

func TestJSONParse_InvalidReturnsNull(t *testing.T) {
	r := Default()
	out, err := r.Call("JSON.parse", []value.Value{value.String("{not valid")}, false)
	require.NoError(t, err)
	require.Equal(t, value.KindNull, out.Kind())
}

func TestArraySort_NaturalOrder(t *testing.T) {
	r := Default()
	arr := value.NewArray([]value.Value{value.String("item10"), value.String("item2"), value.String("item1")})
	out, err := r.Call("sort", []value.Value{arr}, false)
	require.NoError(t, err)

	elems := out.Elements()
	require.Equal(t, "item1", elems[0].Str())
	require.Equal(t, "item2", elems[1].Str())
	require.Equal(t, "item10", elems[2].Str())
}
