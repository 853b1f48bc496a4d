package sandboxeval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sandboxeval/sandboxeval/internal/value"
)

func TestEvaluate_SimpleArithmetic(t *testing.T) {
	e, err := New()
	require.NoError(t, err)

	result := e.Evaluate("1 + 2 * 3", nil)
	require.True(t, result.Success)
	require.Equal(t, value.Number(7), result.Value)
	require.NotNil(t, result.Metadata)
}

func TestEvaluate_ContextLookup(t *testing.T) {
	e, err := New()
	require.NoError(t, err)

	ctx := map[string]value.Value{
		"item": value.NewObject().ObjectSet("total", value.Number(10)),
	}
	result := e.Evaluate("item.total * 1.1", ctx)
	require.True(t, result.Success)
	require.InDelta(t, 11.0, result.Value.Num(), 1e-9)
}

func TestEvaluate_StrictModeBlocksDisallowedIdentifier(t *testing.T) {
	e, err := New(WithStrictMode(true))
	require.NoError(t, err)

	result := e.Evaluate("constructor", nil)
	require.False(t, result.Success)
	require.NotEmpty(t, result.Error)
}

func TestEvaluate_ComplexityCapRejectsDeepExpression(t *testing.T) {
	e, err := New(WithComplexityCap(0.5))
	require.NoError(t, err)

	result := e.Evaluate("1 + 2 + 3 + 4", nil)
	require.False(t, result.Success)
}

func TestEvaluate_TemplateModeSplicesHoles(t *testing.T) {
	e, err := New()
	require.NoError(t, err)

	ctx := map[string]value.Value{
		"item": value.NewObject().ObjectSet("name", value.String("Ada")),
	}
	result := e.Evaluate("Hello {{ item.name }}!", ctx)
	require.True(t, result.Success)
	require.Equal(t, "Hello Ada!", result.Value.Str())
	require.Len(t, result.ProcessedHoles, 1)
}

func TestEvaluate_TemplateModeFailsOnBadHole(t *testing.T) {
	e, err := New()
	require.NoError(t, err)

	result := e.Evaluate("Hello {{ constructor }}!", nil)
	require.False(t, result.Success)
}

func TestValidate_ReportsViolations(t *testing.T) {
	e, err := New()
	require.NoError(t, err)

	result := e.Validate("constructor")
	require.False(t, result.Valid)
	require.NotEmpty(t, result.Violations)
}

func TestParse_ExposesMetadata(t *testing.T) {
	e, err := New()
	require.NoError(t, err)

	parsed, err := e.Parse("item.total + other.total")
	require.NoError(t, err)
	// "other" is a free identifier but not a recognized context root, so
	// it is excluded: Dependencies only ever names identifiers the caller
	// can actually supply through the context roots.
	require.ElementsMatch(t, []string{"item"}, parsed.Dependencies)
}

func TestExtractDependencies(t *testing.T) {
	e, err := New()
	require.NoError(t, err)

	deps, err := e.ExtractDependencies("item.b + node.c")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"item", "node"}, deps)
}

func TestEngine_TimeoutOptionIsApplied(t *testing.T) {
	e, err := New(WithTimeout(50 * time.Millisecond))
	require.NoError(t, err)
	require.NotNil(t, e)
	require.Equal(t, 50*time.Millisecond, e.evaluator.Options.Timeout)
}

func TestEngine_ResetStatsZeroesCounters(t *testing.T) {
	e, err := New()
	require.NoError(t, err)

	e.Evaluate("1 + 1", nil)
	require.Greater(t, e.Stats().TotalExecutions, int64(0))

	e.ClearCaches()
	e.ResetStats()
	require.Equal(t, int64(0), e.Stats().TotalExecutions)
}
