package parser

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestParsedExpression_MetadataSnapshot pins the parse-metadata shape
// (complexity, depth, dependencies, functions) for a representative
// expression against a committed snapshot, the same way the grounding
// fixture suite snapshots its evaluation output.
func TestParsedExpression_MetadataSnapshot(t *testing.T) {
	p := New(32)
	parsed, err := p.Parse(`items.filter(i => i.active).map(i => i.total * price.rate)`, Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	snaps.MatchSnapshot(t, struct {
		Complexity   float64
		Depth        int
		IsSimple     bool
		Dependencies []string
		Functions    []string
	}{
		Complexity:   parsed.Complexity,
		Depth:        parsed.Depth,
		IsSimple:     parsed.IsSimple,
		Dependencies: parsed.Dependencies,
		Functions:    parsed.Functions,
	})
}
