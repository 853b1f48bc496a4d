package eval

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sandboxeval/sandboxeval/internal/ast"
	"github.com/sandboxeval/sandboxeval/internal/parser"
	"github.com/sandboxeval/sandboxeval/internal/registry/functions"
	"github.com/sandboxeval/sandboxeval/internal/value"
)

func mustParse(t *testing.T, expr string) *parser.ParsedExpression {
	t.Helper()
	p := parser.New(32)
	parsed, err := p.Parse(expr, parser.Options{})
	require.NoError(t, err)
	return parsed
}

func evalExpr(t *testing.T, expr string, vars map[string]value.Value) (value.Value, *stringErr) {
	t.Helper()
	parsed := mustParse(t, expr)
	e := New(functions.Default(), Options{})
	v, err := e.Evaluate(parsed.AST, NewContext(vars), parsed.Source, "")
	if err != nil {
		return v, &stringErr{err.Message}
	}
	return v, nil
}

// stringErr avoids importing internal/errors just for its message in
// test assertions.
type stringErr struct{ msg string }

func (s *stringErr) Error() string { return s.msg }

func TestEvaluate_MemberAccessNullishShortCircuits(t *testing.T) {
	v, err := evalExpr(t, "item.profile.name", map[string]value.Value{
		"item": value.NewObject(),
	})
	require.Nil(t, err)
	require.Equal(t, value.Undefined, v)
}

func TestEvaluate_ArrayIndexOutOfBoundsIsUndefined(t *testing.T) {
	arr := value.NewArray([]value.Value{value.Number(1), value.Number(2)})
	v, err := evalExpr(t, "item[5]", map[string]value.Value{"item": arr})
	require.Nil(t, err)
	require.Equal(t, value.Undefined, v)
}

func TestEvaluate_PropertyDenylistBlockedAtRuntime(t *testing.T) {
	_, err := evalExpr(t, "item.constructor", map[string]value.Value{
		"item": value.NewObject(),
	})
	require.NotNil(t, err)
}

func TestEvaluate_DivisionByZeroProducesInfinityNotError(t *testing.T) {
	v, err := evalExpr(t, "1 / 0", nil)
	require.Nil(t, err)
	require.Equal(t, "Infinity", v.ToDisplayString())

	v, err = evalExpr(t, "-1 / 0", nil)
	require.Nil(t, err)
	require.Equal(t, "-Infinity", v.ToDisplayString())
}

func TestEvaluate_LogicalShortCircuitsRightUnevaluated(t *testing.T) {
	// undefinedFn isn't registered; if the right side evaluated, this
	// would raise an error instead of returning the left operand.
	v, err := evalExpr(t, "false && undefinedFn()", nil)
	require.Nil(t, err)
	require.Equal(t, value.False, v)
}

func TestEvaluate_NullishCoalescingOnlyTriggersOnNullOrUndefined(t *testing.T) {
	v, err := evalExpr(t, "0 ?? 5", nil)
	require.Nil(t, err)
	require.Equal(t, value.Number(0), v)

	v, err = evalExpr(t, "item.missing ?? 5", map[string]value.Value{"item": value.NewObject()})
	require.Nil(t, err)
	require.Equal(t, value.Number(5), v)
}

func TestEvaluate_ConditionalEvaluatesOneBranchOnly(t *testing.T) {
	v, err := evalExpr(t, "true ? 1 : undefinedFn()", nil)
	require.Nil(t, err)
	require.Equal(t, value.Number(1), v)
}

func TestEvaluate_ArrayHolesYieldUndefined(t *testing.T) {
	p := parser.New(8)
	parsed, perr := p.Parse("[1, , 3]", parser.Options{})
	require.NoError(t, perr)
	arr, ok := parsed.AST.(*ast.Array)
	require.True(t, ok)
	require.Len(t, arr.Elements, 3)
	require.Nil(t, arr.Elements[1])

	v, err := evalExpr(t, "[1, , 3]", nil)
	require.Nil(t, err)
	require.Equal(t, value.Undefined, v.At(1))
}

func TestEvaluate_ObjectDuplicateKeysKeepLastValue(t *testing.T) {
	v, err := evalExpr(t, `{a: 1, a: 2}`, nil)
	require.Nil(t, err)
	require.Equal(t, value.Number(2), v.ObjectGet("a"))
	require.Equal(t, []string{"a"}, v.Keys())
}

func TestEvaluate_CallbackFilterKeepsTruthyElements(t *testing.T) {
	arr := value.NewArray([]value.Value{value.Number(1), value.Number(2), value.Number(3), value.Number(4)})
	v, err := evalExpr(t, "item.filter(x => x > 2)", map[string]value.Value{"item": arr})
	require.Nil(t, err)
	require.Equal(t, 2, v.Len())
	require.Equal(t, value.Number(3), v.At(0))
	require.Equal(t, value.Number(4), v.At(1))
}

func TestEvaluate_CallbackMapUsesIndexParameter(t *testing.T) {
	arr := value.NewArray([]value.Value{value.Number(10), value.Number(20)})
	v, err := evalExpr(t, "item.map((x, i) => x + i)", map[string]value.Value{"item": arr})
	require.Nil(t, err)
	require.Equal(t, value.Number(10), v.At(0))
	require.Equal(t, value.Number(21), v.At(1))
}

func TestEvaluate_CallbackReduceNoInitialSeedsWithUndefinedWhenEmpty(t *testing.T) {
	arr := value.NewArray(nil)
	v, err := evalExpr(t, "item.reduce((acc, x) => acc + x)", map[string]value.Value{"item": arr})
	require.Nil(t, err)
	require.Equal(t, value.Undefined, v)
}

func TestEvaluate_CallbackReduceWithInitialValue(t *testing.T) {
	arr := value.NewArray([]value.Value{value.Number(1), value.Number(2), value.Number(3)})
	v, err := evalExpr(t, "item.reduce((acc, x) => acc + x, 10)", map[string]value.Value{"item": arr})
	require.Nil(t, err)
	require.Equal(t, value.Number(16), v)
}

// Reduce without an initial value seeds the accumulator with undefined
// even over a non-empty array, diverging from Array.prototype.reduce's
// first-element-as-seed behavior: the first callback invocation folds
// undefined into the first element rather than skipping it.
func TestEvaluate_CallbackReduceNoInitialSeedsUndefinedOverNonEmptyArray(t *testing.T) {
	arr := value.NewArray([]value.Value{value.Number(1), value.Number(2), value.Number(3)})
	v, err := evalExpr(t, "item.reduce((acc, x) => acc + x)", map[string]value.Value{"item": arr})
	require.Nil(t, err)
	require.Equal(t, value.KindNumber, v.Kind())
	require.True(t, math.IsNaN(v.Num()))
}

func TestEvaluate_CallbackSwallowsPerElementErrors(t *testing.T) {
	// "a" + 1 never errors under this value model (it string-concatenates),
	// so to exercise swallowing we call a registered function with a bad
	// arity from inside the callback body.
	arr := value.NewArray([]value.Value{value.Number(1), value.Number(2)})
	v, err := evalExpr(t, "item.map(x => trim())", map[string]value.Value{"item": arr})
	require.Nil(t, err)
	require.Equal(t, 2, v.Len())
	require.Equal(t, value.Undefined, v.At(0))
	require.Equal(t, value.Undefined, v.At(1))
}

func TestEvaluate_QualifiedNamespaceCall(t *testing.T) {
	v, err := evalExpr(t, "Math.round(item)", map[string]value.Value{"item": value.Number(2.6)})
	require.Nil(t, err)
	require.Equal(t, value.Number(3), v)
}

// Object is a static namespace like Math and JSON, not a variable, so
// Object.keys must resolve through the qualified registry entry rather
// than falling through to receiver-prepend dispatch.
func TestEvaluate_ObjectKeysQualifiedNamespaceCall(t *testing.T) {
	obj := value.NewObject().ObjectSet("a", value.Number(1)).ObjectSet("b", value.Number(2))
	v, err := evalExpr(t, "Object.keys(item)", map[string]value.Value{"item": obj})
	require.Nil(t, err)
	require.ElementsMatch(t, []string{"a", "b"}, []string{v.At(0).Str(), v.At(1).Str()})
}

func TestEvaluate_MethodStyleCallPrependsReceiver(t *testing.T) {
	arr := value.NewArray([]value.Value{value.String("a"), value.String("b")})
	v, err := evalExpr(t, `item.join(",")`, map[string]value.Value{"item": arr})
	require.Nil(t, err)
	require.Equal(t, "a,b", v.Str())
}

func TestEvaluate_StackDepthCapIsEnforced(t *testing.T) {
	expr := "1"
	for i := 0; i < 100; i++ {
		expr = "(" + expr + " + 1)"
	}
	parsed := mustParse(t, expr)
	e := New(functions.Default(), Options{MaxStackDepth: 10})
	_, err := e.Evaluate(parsed.AST, NewContext(nil), parsed.Source, "")
	require.NotNil(t, err)
	require.Equal(t, "timeout", string(err.Type))
}

func TestEvaluate_UndefinedIdentifierIsUndefinedNotError(t *testing.T) {
	v, err := evalExpr(t, "doesNotExist", nil)
	require.Nil(t, err)
	require.Equal(t, value.Undefined, v)
}

func TestEvaluate_BuiltinConstants(t *testing.T) {
	v, err := evalExpr(t, "true && !false", nil)
	require.Nil(t, err)
	require.Equal(t, value.True, v)
}
