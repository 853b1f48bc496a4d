package parser

import (
	"fmt"
	"strings"

	gojaparser "github.com/dop251/goja/parser"

	"github.com/sandboxeval/sandboxeval/internal/ast"
	"github.com/sandboxeval/sandboxeval/internal/cache"
)

// ParsedExpression is the parser front-end's output per spec §4.D: the
// closed-set node tree plus the metadata the orchestrator needs to
// enforce complexity/depth caps before ever touching the evaluator.
type ParsedExpression struct {
	Source         string
	AST            ast.Node
	Dependencies   []string
	Functions      []string
	Complexity     float64
	Depth          int
	IsSimple       bool
	HasTemplates   bool
	MemoryEstimate int64
}

// Options configures parsing. It participates in the cache key, so
// two calls with identical source but different options never share a
// cache entry.
type Options struct {
	// AllowTemplateHoles skips the unexpanded-hole check. When it is
	// false, source that still contains a non-empty `{{ }}` hole fails
	// before it reaches goja; the orchestrator hands Parse only hole
	// bodies in template mode, so it never needs the flag.
	AllowTemplateHoles bool
}

func (o Options) cacheSuffix() string {
	if o.AllowTemplateHoles {
		return "\x00tpl=1"
	}
	return "\x00tpl=0"
}

// Parser wraps goja's parser with the closed-node-set adapter and an
// LRU cache over (expression, options), including negative results,
// per spec §4.D.
type Parser struct {
	cache *cache.LRU[string, *ParsedExpression]
}

// New returns a Parser with a parse cache of the given capacity.
// capacity <= 0 means unbounded.
func New(cacheSize int) *Parser {
	return &Parser{cache: cache.New[string, *ParsedExpression](cacheSize)}
}

// Parse converts expression into a ParsedExpression, or returns
// (nil, err) if expression is empty, contains an unexpanded hole
// (unless opts allows it), fails to parse, or cannot be expressed in
// the closed node variant set. Orchestrator callers treat every such
// failure as a syntax-class failure.
func (p *Parser) Parse(expression string, opts Options) (*ParsedExpression, error) {
	trimmed := strings.TrimSpace(expression)
	if trimmed == "" {
		return nil, fmt.Errorf("empty expression")
	}

	key := trimmed + opts.cacheSuffix()
	if cached, ok := p.cache.Get(key); ok {
		if cached == nil {
			return nil, fmt.Errorf("expression previously failed to parse")
		}
		return cached, nil
	}

	if !opts.AllowTemplateHoles && HasTemplateHoles(trimmed) {
		p.cache.Set(key, nil, true)
		return nil, fmt.Errorf("unexpanded template hole in direct-mode expression")
	}

	result, err := p.parseInternal(trimmed)
	if err != nil {
		p.cache.Set(key, nil, true)
		return nil, err
	}

	p.cache.Set(key, result, true)
	return result, nil
}

// Stats reports cache hit/miss/eviction counters.
func (p *Parser) Stats() cache.Stats {
	return p.cache.Stats()
}

// ClearCache discards all memoized parse results.
func (p *Parser) ClearCache() {
	p.cache.Clear()
}

func (p *Parser) parseInternal(expression string) (*ParsedExpression, error) {
	// A parenthesized expression always parses as a single
	// ExpressionStatement program, per spec §4.D — this is the same
	// trick the Kangaroo parser uses to turn an arbitrary expression
	// into something goja's statement-oriented grammar accepts.
	wrapped := "(" + expression + ")"

	program, err := gojaparser.ParseFile(nil, "<expression>", wrapped, 0)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	root, err := convertTree(program, program.File)
	if err != nil {
		return nil, fmt.Errorf("unsupported syntax: %w", err)
	}

	return &ParsedExpression{
		Source:         expression,
		AST:            root,
		Dependencies:   dependencies(root),
		Functions:      functionCalls(root),
		Complexity:     complexity(root),
		Depth:          depth(root),
		IsSimple:       isSimple(root),
		HasTemplates:   HasTemplateHoles(expression),
		MemoryEstimate: memoryEstimate(root),
	}, nil
}
