// Package sandboxeval is the public orchestrator (spec §4.G): it wires
// the parser, security validator, evaluator, and function/type
// registries into the single `evaluate`/`validate`/`parse` surface a
// caller embeds.
package sandboxeval

import (
	"fmt"
	"sync"
	"time"

	"github.com/sandboxeval/sandboxeval/internal/ast"
	"github.com/sandboxeval/sandboxeval/internal/cache"
	"github.com/sandboxeval/sandboxeval/internal/eval"
	"github.com/sandboxeval/sandboxeval/internal/parser"
	"github.com/sandboxeval/sandboxeval/internal/registry/functions"
	"github.com/sandboxeval/sandboxeval/internal/registry/types"
	"github.com/sandboxeval/sandboxeval/internal/security"
	"github.com/sandboxeval/sandboxeval/internal/value"
)

// DefaultCacheSize bounds the parse, validation, and template caches
// when the caller doesn't specify WithCacheSize.
const DefaultCacheSize = 512

// EvalContext is the overlay/base variable context threaded through a
// single evaluation, re-exported so an ErrorHandler can inspect it
// without importing internal/eval directly.
type EvalContext = eval.Context

// ErrorHandler may convert an evaluation error into a success value.
// Returning ok=false lets the error propagate normally.
type ErrorHandler func(err error, node ast.Node, ctx *EvalContext) (value.Value, bool)

// Stats mirrors the grounding executor's ASTExecutor.GetStats: simple
// running counters over every Evaluate call this Engine has served.
type Stats struct {
	TotalExecutions int64
	TotalErrors     int64
	TotalDuration   time.Duration
}

// Engine is the sandboxed-evaluation entry point. The zero value is
// not usable; construct with New.
type Engine struct {
	functions *functions.Registry
	types     *types.Registry
	parser    *parser.Parser
	validator *security.Validator
	evaluator *eval.Evaluator

	strictMode    bool
	complexityCap float64
	depthCap      int
	errorHandler  ErrorHandler

	templateCache *cache.LRU[string, *TemplateResult]

	mu    sync.Mutex
	stats Stats
}

// New builds an Engine from the default function/type registries plus
// any supplied Options.
func New(opts ...Option) (*Engine, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.timeout < 0 {
		return nil, fmt.Errorf("sandboxeval: negative timeout")
	}
	if cfg.maxStackDepth < 0 {
		return nil, fmt.Errorf("sandboxeval: negative max stack depth")
	}

	fns := functions.Default()
	validator := security.New(fns, cfg.cacheSize)
	for _, name := range cfg.extraBlocked {
		validator.AddRule(blockIdentifierRule(name))
	}

	evaluator := eval.New(fns, eval.Options{
		Timeout:       cfg.timeout,
		MaxStackDepth: cfg.maxStackDepth,
	})

	return &Engine{
		functions:     fns,
		types:         types.NewRegistry(),
		parser:        parser.New(cfg.cacheSize),
		validator:     validator,
		evaluator:     evaluator,
		strictMode:    cfg.strictMode,
		complexityCap: cfg.complexityCap,
		depthCap:      cfg.depthCap,
		errorHandler:  cfg.errorHandler,
		templateCache: cache.New[string, *TemplateResult](cfg.cacheSize),
	}, nil
}

// blockIdentifierRule builds the security.CustomRule WithExtraBlockedIdentifiers
// installs for one additional denylisted name, per §6's identifier
// denylist mechanism.
func blockIdentifierRule(name string) security.CustomRule {
	return security.CustomRule{
		Type:     "custom-identifier-denylist",
		Severity: security.SeverityError,
		Message:  fmt.Sprintf("identifier %q is blocked by engine configuration", name),
		Predicate: func(n ast.Node) bool {
			ident, ok := n.(*ast.Identifier)
			return ok && ident.Name == name
		},
	}
}

// AddFunction registers a new callable function, or replaces an
// existing one of the same name.
func (e *Engine) AddFunction(fn functions.SafeFunction) error {
	return e.functions.Register(fn)
}

// RemoveFunction unregisters name, if present.
func (e *Engine) RemoveFunction(name string) {
	e.functions.Unregister(name)
}

// ListFunctions returns registered function names, optionally
// filtered to one category.
func (e *Engine) ListFunctions(category string) []string {
	return e.functions.List(category)
}

// FunctionStats reports the registry's total count and per-category
// breakdown, surfaced by the CLI's `functions stats` command.
func (e *Engine) FunctionStats() functions.Stats {
	return e.functions.Stats()
}

// RegisterType adds or replaces a named shape in the type registry
// (spec §4.C).
func (e *Engine) RegisterType(entry types.TypeEntry) {
	e.types.Register(entry)
}

// HasType reports whether name is registered.
func (e *Engine) HasType(name string) bool {
	return e.types.HasType(name)
}

// GetRegisteredTypes lists registered type names, most-recently-
// registered first.
func (e *Engine) GetRegisteredTypes() []string {
	return e.types.List()
}

// Stats returns a snapshot of the running execution counters.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

// ResetStats zeroes the running execution counters.
func (e *Engine) ResetStats() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stats = Stats{}
}

// ClearCaches discards every memoized result across the parse,
// validation, property-access, and template layers (§5's four
// process-wide LRU caches).
func (e *Engine) ClearCaches() {
	e.parser.ClearCache()
	e.validator.ClearCache()
	e.evaluator.ClearCache()
	e.templateCache.Clear()
}

func (e *Engine) recordExecution(start time.Time, failed bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stats.TotalExecutions++
	e.stats.TotalDuration += time.Since(start)
	if failed {
		e.stats.TotalErrors++
	}
}
