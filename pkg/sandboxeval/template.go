package sandboxeval

import (
	"strings"

	"github.com/sandboxeval/sandboxeval/internal/parser"
	"github.com/sandboxeval/sandboxeval/internal/registry/types"
	"github.com/sandboxeval/sandboxeval/internal/value"
)

// EvaluateTemplate runs template mode directly, surfacing the richer
// TemplateResult shape (including per-hole diagnostics) the CLI's
// `--show-holes` flag reads. Evaluate calls this internally and
// adapts the result for its own unified return shape.
func (e *Engine) EvaluateTemplate(template string, context map[string]value.Value) *TemplateResult {
	return e.evaluateTemplate(template, context)
}

// templateCacheKey follows §4.G: keyed on the template text plus the
// sorted set of context keys, not their values — cache granularity is
// intentionally coarse.
func templateCacheKey(template string, context map[string]value.Value) string {
	var sb strings.Builder
	sb.WriteString(template)
	sb.WriteByte('\x00')
	for _, k := range sortedContextKeys(context) {
		sb.WriteString(k)
		sb.WriteByte(',')
	}
	return sb.String()
}

func (e *Engine) evaluateTemplate(template string, context map[string]value.Value) *TemplateResult {
	key := templateCacheKey(template, context)
	if cached, ok := e.templateCache.Get(key); ok {
		return cached
	}

	holes := parser.ExtractTemplateHoles(template)
	if len(holes) == 0 {
		result := &TemplateResult{Success: true, Result: template}
		e.templateCache.Set(key, result, true)
		return result
	}

	processed := make([]ProcessedHole, 0, len(holes))
	evaluated := make([]string, len(holes))
	for i, hole := range holes {
		direct := e.evaluateDirect(hole.Expression, context)
		if !direct.Success {
			result := &TemplateResult{
				Success: false,
				Error:   "template hole \"" + hole.Expression + "\": " + direct.Error,
			}
			e.templateCache.Set(key, result, true)
			return result
		}
		rendered := e.stringifyHoleResult(direct.Value)
		evaluated[i] = rendered
		processed = append(processed, ProcessedHole{
			Original:   hole.FullMatch,
			Evaluated:  rendered,
			StartIndex: hole.StartIndex,
			EndIndex:   hole.EndIndex,
		})
	}

	// Splice in reverse source-position order so earlier indices stay
	// valid while later ones are rewritten (spec §4.G point 3).
	out := template
	for i := len(holes) - 1; i >= 0; i-- {
		out = out[:holes[i].StartIndex] + evaluated[i] + out[holes[i].EndIndex:]
	}

	result := &TemplateResult{Success: true, Result: out, ProcessedHoles: processed}
	e.templateCache.Set(key, result, true)
	return result
}

// stringifyHoleResult implements spec §4.G point 3's stringification
// rule: nullish becomes empty, a detected registered type serializes
// by its strategy (escaping backslashes/quotes for the json strategy
// so the hole embeds safely inside a surrounding JSON-string literal),
// and everything else falls back to the default display coercion.
func (e *Engine) stringifyHoleResult(v value.Value) string {
	if v.IsNullish() {
		return ""
	}

	typeName := e.types.DetectType(v)
	if typeName == "" {
		return v.ToDisplayString()
	}

	serialized := e.types.Serialize(v, typeName, e.jsonStringifyOrDisplay)
	if strategy, ok := e.types.StrategyFor(typeName); ok && strategy == types.StrategyJSON {
		return escapeForJSONHole(serialized)
	}
	return serialized
}

func escapeForJSONHole(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}

// jsonStringifyOrDisplay adapts ToJSONString to types.Registry.Serialize's
// infallible jsonStringify func(value.Value) string signature.
func (e *Engine) jsonStringifyOrDisplay(v value.Value) string {
	s, err := e.ToJSONString(v)
	if err != nil {
		return v.ToDisplayString()
	}
	return s
}
