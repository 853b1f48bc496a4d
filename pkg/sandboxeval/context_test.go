package sandboxeval

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sandboxeval/sandboxeval/internal/value"
)

func TestParseContextJSON_DecodesObject(t *testing.T) {
	e, err := New()
	require.NoError(t, err)

	ctx, err := e.ParseContextJSON(`{"item": {"total": 10}, "label": "order"}`)
	require.NoError(t, err)
	require.Contains(t, ctx, "item")
	require.Contains(t, ctx, "label")
	require.Equal(t, "order", ctx["label"].Str())
	require.Equal(t, 10.0, ctx["item"].ObjectGet("total").Num())
}

func TestParseContextJSON_RejectsNonObject(t *testing.T) {
	e, err := New()
	require.NoError(t, err)

	_, err = e.ParseContextJSON(`[1, 2, 3]`)
	require.Error(t, err)
}

func TestParseContextJSON_EmptyInputReturnsNil(t *testing.T) {
	e, err := New()
	require.NoError(t, err)

	ctx, err := e.ParseContextJSON("")
	require.NoError(t, err)
	require.Nil(t, ctx)
}

func TestToJSONString_RoundTrips(t *testing.T) {
	e, err := New()
	require.NoError(t, err)

	obj := value.NewObject().ObjectSet("a", value.Number(1)).ObjectSet("b", value.String("x"))
	text, err := e.ToJSONString(obj)
	require.NoError(t, err)
	require.Contains(t, text, `"a":1`)
	require.Contains(t, text, `"b":"x"`)
}
