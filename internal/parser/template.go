package parser

import (
	"regexp"
	"strings"
)

// holePattern matches `{{ ... }}` with a non-greedy body that forbids
// nested braces, per spec §4.D/§6. Grounded on
// _examples/other_examples/52341fa0_flowbaker-flowbaker__...parser.go's
// ExtractTemplateExpressions, generalized to reject (rather than
// silently swallow) a literal `{` inside the hole body.
var holePattern = regexp.MustCompile(`\{\{([^{}]*)\}\}`)

// TemplateHole is one `{{ expression }}` occurrence in a template
// string, with the surrounding source positions preserved so the
// orchestrator can splice evaluated results back in reverse order.
type TemplateHole struct {
	FullMatch  string
	Expression string
	StartIndex int
	EndIndex   int
	Multiline  bool
}

// HasTemplateHoles reports whether s contains at least one non-empty
// `{{ }}` hole.
func HasTemplateHoles(s string) bool {
	return len(ExtractTemplateHoles(s)) > 0
}

// ExtractTemplateHoles finds every `{{ expression }}` occurrence in s,
// in source order. Holes that are empty or whitespace-only after
// trimming are ignored (literal passthrough), per spec §4.D.
func ExtractTemplateHoles(s string) []TemplateHole {
	matches := holePattern.FindAllStringSubmatchIndex(s, -1)
	holes := make([]TemplateHole, 0, len(matches))
	for _, m := range matches {
		full := s[m[0]:m[1]]
		expr := strings.TrimSpace(s[m[2]:m[3]])
		if expr == "" {
			continue
		}
		holes = append(holes, TemplateHole{
			FullMatch:  full,
			Expression: expr,
			StartIndex: m[0],
			EndIndex:   m[1],
			Multiline:  strings.Contains(expr, "\n"),
		})
	}
	return holes
}
