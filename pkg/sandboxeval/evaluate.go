package sandboxeval

import (
	"fmt"
	"sort"
	"time"

	"github.com/sandboxeval/sandboxeval/internal/errors"
	"github.com/sandboxeval/sandboxeval/internal/eval"
	"github.com/sandboxeval/sandboxeval/internal/parser"
	"github.com/sandboxeval/sandboxeval/internal/security"
	"github.com/sandboxeval/sandboxeval/internal/value"
)

// Evaluate runs expression against context, taking template mode when
// expression contains at least one `{{ }}` hole and direct mode
// otherwise (spec §4.G point 1).
func (e *Engine) Evaluate(expression string, context map[string]value.Value) *EvalResult {
	if parser.HasTemplateHoles(expression) {
		tr := e.evaluateTemplate(expression, context)
		result := &EvalResult{
			Success:        tr.Success,
			Error:          tr.Error,
			ProcessedHoles: tr.ProcessedHoles,
		}
		if tr.Success {
			result.Value = value.String(tr.Result)
		} else {
			result.ErrorType = errors.ErrorRuntime
		}
		return result
	}
	return e.evaluateDirect(expression, context)
}

// Parse exposes the parser front-end's result directly — the
// orchestrator's own `parse` operation (spec §4.G).
func (e *Engine) Parse(expression string) (*parser.ParsedExpression, error) {
	return e.parser.Parse(expression, parser.Options{})
}

// ExtractDependencies returns the context-root identifiers expression
// references, per spec §4.D/§6.
func (e *Engine) ExtractDependencies(expression string) ([]string, error) {
	parsed, err := e.parser.Parse(expression, parser.Options{})
	if err != nil {
		return nil, err
	}
	return parsed.Dependencies, nil
}

// Validate runs the security audit over expression without executing
// it, the orchestrator's `validate` operation.
func (e *Engine) Validate(expression string) *ValidationResult {
	parsed, err := e.parser.Parse(expression, parser.Options{})
	if err != nil {
		return &ValidationResult{Valid: false, Error: err.Error()}
	}
	res := e.validator.Validate(parsed.AST)
	return &ValidationResult{Valid: res.Valid, Violations: res.Violations}
}

// evaluateDirect implements spec §4.G point 2: parse, enforce the
// complexity/depth caps from parse metadata, (in strict mode)
// validate, execute.
func (e *Engine) evaluateDirect(expression string, context map[string]value.Value) *EvalResult {
	start := time.Now()

	parsed, err := e.parser.Parse(expression, parser.Options{})
	if err != nil {
		e.recordExecution(start, true)
		return &EvalResult{Success: false, Error: err.Error(), ErrorType: errors.ErrorSyntax}
	}

	if e.complexityCap > 0 && parsed.Complexity > e.complexityCap {
		e.recordExecution(start, true)
		return &EvalResult{
			Success:   false,
			Error:     fmt.Sprintf("expression complexity %.1f exceeds configured cap %.1f", parsed.Complexity, e.complexityCap),
			ErrorType: errors.ErrorComplexity,
		}
	}
	if e.depthCap > 0 && parsed.Depth > e.depthCap {
		e.recordExecution(start, true)
		return &EvalResult{
			Success:   false,
			Error:     fmt.Sprintf("expression depth %d exceeds configured cap %d", parsed.Depth, e.depthCap),
			ErrorType: errors.ErrorComplexity,
		}
	}

	if e.strictMode {
		audit := e.validator.Validate(parsed.AST)
		if !audit.Valid {
			e.recordExecution(start, true)
			return &EvalResult{Success: false, Error: formatViolations(audit.Violations), ErrorType: errors.ErrorSecurity}
		}
	}

	evalCtx := eval.NewContext(context)
	v, sourceErr := e.evaluator.Evaluate(parsed.AST, evalCtx, parsed.Source, "")
	if sourceErr != nil {
		if e.errorHandler != nil {
			if recovered, ok := e.errorHandler(sourceErr, parsed.AST, evalCtx); ok {
				e.recordExecution(start, false)
				return &EvalResult{Success: true, Value: recovered, Metadata: e.metadataFor(parsed, start)}
			}
		}
		e.recordExecution(start, true)
		return &EvalResult{Success: false, Error: sourceErr.Message, ErrorType: sourceErr.Type}
	}

	e.recordExecution(start, false)
	return &EvalResult{Success: true, Value: v, Metadata: e.metadataFor(parsed, start)}
}

func (e *Engine) metadataFor(parsed *parser.ParsedExpression, start time.Time) *Metadata {
	return &Metadata{
		Complexity:     parsed.Complexity,
		Depth:          parsed.Depth,
		Dependencies:   parsed.Dependencies,
		Functions:      parsed.Functions,
		MemoryEstimate: parsed.MemoryEstimate,
		Duration:       time.Since(start),
	}
}

// formatViolations renders the validator's error-severity findings
// into a single message; a direct-mode failure surfaces one error, not
// a list, so only the first error-severity violation plus a count of
// any remainder is reported.
func formatViolations(violations []security.Violation) string {
	var errs []security.Violation
	for _, v := range violations {
		if v.Severity == security.SeverityError {
			errs = append(errs, v)
		}
	}
	if len(errs) == 0 {
		return "security validation failed"
	}
	msg := fmt.Sprintf("security: %s", errs[0].Message)
	if len(errs) > 1 {
		msg += fmt.Sprintf(" (and %d more violation(s))", len(errs)-1)
	}
	return msg
}

func sortedContextKeys(context map[string]value.Value) []string {
	keys := make([]string, 0, len(context))
	for k := range context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
