package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sandboxeval/sandboxeval/internal/ast"
)

func TestParse_SimpleMemberExpression(t *testing.T) {
	p := New(32)
	parsed, err := p.Parse("item.name", Options{})
	require.NoError(t, err)
	require.NotNil(t, parsed)
	require.IsType(t, &ast.Member{}, parsed.AST)
	require.Equal(t, []string{"item"}, parsed.Dependencies)
	require.True(t, parsed.IsSimple)
}

func TestParse_CachesNegativeResults(t *testing.T) {
	p := New(32)
	_, err := p.Parse("item..", Options{})
	require.Error(t, err)

	_, err = p.Parse("item..", Options{})
	require.Error(t, err)

	require.EqualValues(t, 1, p.Stats().Misses)
	require.EqualValues(t, 1, p.Stats().Hits)
}

func TestParse_RejectsNonExpressionTopLevel(t *testing.T) {
	p := New(32)
	_, err := p.Parse("let x = 1", Options{})
	require.Error(t, err)
}

func TestParse_RejectsBlockBodiedArrow(t *testing.T) {
	p := New(32)
	_, err := p.Parse("items.map(x => { return x })", Options{})
	require.Error(t, err)
}

func TestParse_CallbackArrowKeepsUnevaluatedShape(t *testing.T) {
	p := New(32)
	parsed, err := p.Parse("items.filter(x => x.active)", Options{})
	require.NoError(t, err)

	call, ok := parsed.AST.(*ast.Call)
	require.True(t, ok)
	require.Len(t, call.Args, 1)
	require.IsType(t, &ast.Arrow{}, call.Args[0])
	require.Contains(t, parsed.Functions, "filter")
}

func TestParse_QualifiedAndBareFunctionNames(t *testing.T) {
	p := New(32)
	parsed, err := p.Parse("Math.round(item.price) + trim(item.name)", Options{})
	require.NoError(t, err)
	require.Contains(t, parsed.Functions, "Math.round")
	require.Contains(t, parsed.Functions, "round")
	require.Contains(t, parsed.Functions, "trim")
}

func TestParse_ComplexityWeighting(t *testing.T) {
	p := New(32)
	// one Conditional (4) + one Member (1) + four Literal/Identifier (0.5 each) = 7
	parsed, err := p.Parse("item.active ? 1 : 0", Options{})
	require.NoError(t, err)
	require.Greater(t, parsed.Complexity, 0.0)
	require.False(t, parsed.IsSimple) // Conditional disqualifies isSimple
}

func TestParse_DirectModeRejectsTemplateHoles(t *testing.T) {
	p := New(32)
	_, err := p.Parse("{{ item.name }}", Options{})
	require.Error(t, err)
}

func TestExtractTemplateHoles_IgnoresEmpty(t *testing.T) {
	holes := ExtractTemplateHoles("Hello {{ item.name }}, total: {{  }} done {{ item.sum }}")
	require.Len(t, holes, 2)
	require.Equal(t, "item.name", holes[0].Expression)
	require.Equal(t, "item.sum", holes[1].Expression)
}
