package eval

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/sandboxeval/sandboxeval/internal/ast"
	"github.com/sandboxeval/sandboxeval/internal/cache"
	"github.com/sandboxeval/sandboxeval/internal/errors"
	"github.com/sandboxeval/sandboxeval/internal/registry/functions"
	"github.com/sandboxeval/sandboxeval/internal/security"
	"github.com/sandboxeval/sandboxeval/internal/value"
)

// DefaultTimeout and DefaultMaxStackDepth are the §4.F execution limit
// defaults, overridable per Evaluator.
const (
	DefaultTimeout       = 5 * time.Second
	DefaultMaxStackDepth = 50

	propertyCacheSize = 4096
)

// Options configures an Evaluator's execution limits.
type Options struct {
	Timeout       time.Duration
	MaxStackDepth int
}

// Evaluator walks a validated ast.Node tree and produces a
// value.Value, dispatching Call nodes into fns and caching memoized
// primitive property-access results in a bounded LRU.
type Evaluator struct {
	Functions     *functions.Registry
	Options       Options
	propertyCache *cache.LRU[string, value.Value]
}

// New returns an Evaluator backed by fns, applying default execution
// limits for any zero-valued Options field.
func New(fns *functions.Registry, opts Options) *Evaluator {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxStackDepth <= 0 {
		opts.MaxStackDepth = DefaultMaxStackDepth
	}
	return &Evaluator{
		Functions:     fns,
		Options:       opts,
		propertyCache: cache.New[string, value.Value](propertyCacheSize),
	}
}

// ClearCache discards every memoized property-access result.
func (e *Evaluator) ClearCache() {
	e.propertyCache.Clear()
}

// run carries the per-call state a single Evaluate invocation needs:
// wall-clock start time, current recursion depth, and the source text
// used to render positioned errors.
type run struct {
	engine *Evaluator
	start  time.Time
	depth  int
	source string
	file   string
}

// Evaluate executes node against ctx, enforcing the configured
// wall-clock timeout and stack-depth cap.
func (e *Evaluator) Evaluate(node ast.Node, ctx *Context, source, file string) (value.Value, *errors.SourceError) {
	r := &run{engine: e, start: time.Now(), source: source, file: file}
	v, err := r.eval(node, ctx)
	if err != nil {
		return value.Undefined, err
	}
	return v, nil
}

func (r *run) newErr(pos ast.Position, format string, args ...interface{}) *errors.SourceError {
	msg := fmt.Sprintf(format, args...)
	return errors.New(categorizeMessage(msg), pos, msg, r.source, r.file)
}

func (r *run) checkLimits(pos ast.Position) *errors.SourceError {
	if r.engine.Options.Timeout > 0 && time.Since(r.start) > r.engine.Options.Timeout {
		return r.newErr(pos, "execution timeout after %s", r.engine.Options.Timeout)
	}
	if r.depth >= r.engine.Options.MaxStackDepth {
		return r.newErr(pos, "maximum stack depth exceeded (%d)", r.engine.Options.MaxStackDepth)
	}
	return nil
}

// eval is the recursive node dispatcher. Every call site enters and
// leaves with r.depth unchanged; the increment/decrement pair brackets
// exactly the node currently being evaluated, the same bookkeeping
// shape as the grounding executor's execution stack push/pop.
func (r *run) eval(node ast.Node, ctx *Context) (value.Value, *errors.SourceError) {
	if err := r.checkLimits(node.Pos()); err != nil {
		return value.Undefined, err
	}
	r.depth++
	defer func() { r.depth-- }()

	switch n := node.(type) {
	case *ast.Literal:
		return r.evalLiteral(n)
	case *ast.Identifier:
		return r.evalIdentifier(n, ctx)
	case *ast.Member:
		return r.evalMember(n, ctx)
	case *ast.Call:
		return r.evalCall(n, ctx)
	case *ast.Unary:
		return r.evalUnary(n, ctx)
	case *ast.Binary:
		return r.evalBinary(n, ctx)
	case *ast.Logical:
		return r.evalLogical(n, ctx)
	case *ast.Conditional:
		return r.evalConditional(n, ctx)
	case *ast.Array:
		return r.evalArray(n, ctx)
	case *ast.Object:
		return r.evalObject(n, ctx)
	case *ast.Arrow:
		// An Arrow reached here was never unwrapped by a callback-method
		// Call — it is opaque outside that context, per §4.F.
		return value.Undefined, r.newErr(n.Pos(), "arrow functions may only appear as a callback-method argument")
	default:
		return value.Undefined, r.newErr(node.Pos(), "unsupported syntax: %T", node)
	}
}

func (r *run) evalLiteral(n *ast.Literal) (value.Value, *errors.SourceError) {
	switch v := n.Value.(type) {
	case nil:
		return value.Null, nil
	case string:
		return value.String(v), nil
	case bool:
		return value.Bool(v), nil
	case float64:
		return value.Number(v), nil
	default:
		return value.Undefined, r.newErr(n.Pos(), "unsupported literal value %v", v)
	}
}

func (r *run) evalIdentifier(n *ast.Identifier, ctx *Context) (value.Value, *errors.SourceError) {
	switch n.Name {
	case "true":
		return value.True, nil
	case "false":
		return value.False, nil
	case "null":
		return value.Null, nil
	case "undefined":
		return value.Undefined, nil
	case "NaN":
		return value.Number(math.NaN()), nil
	case "Infinity":
		return value.Number(math.Inf(1)), nil
	}
	if v, ok := ctx.Lookup(n.Name); ok {
		return v, nil
	}
	return value.Undefined, nil
}

func (r *run) evalMember(n *ast.Member, ctx *Context) (value.Value, *errors.SourceError) {
	obj, err := r.eval(n.Object, ctx)
	if err != nil {
		return value.Undefined, err
	}
	if obj.IsNullish() {
		return value.Undefined, nil
	}

	var propName string
	if n.Computed {
		propVal, err := r.eval(n.Property, ctx)
		if err != nil {
			return value.Undefined, err
		}
		propName = propVal.ToDisplayString()
	} else {
		ident, ok := n.Property.(*ast.Identifier)
		if !ok {
			return value.Undefined, r.newErr(n.Pos(), "dot member property must be an identifier")
		}
		propName = ident.Name
	}

	if security.PropertyDenylist[propName] {
		return value.Undefined, r.newErr(n.Pos(), "security: access to property %q is blocked", propName)
	}

	return r.accessProperty(obj, propName), nil
}

// accessProperty implements length/index/key lookup across the three
// indexable kinds, memoizing primitive results against a cache key
// built from the receiver's kind and display form plus the property
// name — cheap enough for the repeated-lookup patterns template holes
// produce, and bounded so it never grows past propertyCacheSize.
// Array and object receivers are not memoized: their display form does
// not identify their contents.
func (r *run) accessProperty(obj value.Value, propName string) value.Value {
	cacheable := obj.Kind() != value.KindArray && obj.Kind() != value.KindObject
	cacheKey := obj.Kind().String() + ":" + obj.ToDisplayString() + "." + propName
	if cacheable {
		if cached, ok := r.engine.propertyCache.Get(cacheKey); ok {
			return cached
		}
	}

	var result value.Value
	switch obj.Kind() {
	case value.KindArray:
		if propName == "length" {
			result = value.Number(float64(obj.Len()))
		} else if idx, err := strconv.Atoi(propName); err == nil {
			result = obj.At(idx)
		} else {
			result = value.Undefined
		}
	case value.KindString:
		if propName == "length" {
			result = value.Number(float64(obj.Len()))
		} else if idx, err := strconv.Atoi(propName); err == nil {
			runes := []rune(obj.Str())
			if idx >= 0 && idx < len(runes) {
				result = value.String(string(runes[idx]))
			} else {
				result = value.Undefined
			}
		} else {
			result = value.Undefined
		}
	case value.KindObject:
		result = obj.ObjectGet(propName)
	default:
		result = value.Undefined
	}

	if cacheable && result.Kind() != value.KindArray && result.Kind() != value.KindObject {
		r.engine.propertyCache.Set(cacheKey, result, true)
	}
	return result
}

func (r *run) evalUnary(n *ast.Unary, ctx *Context) (value.Value, *errors.SourceError) {
	operand, err := r.eval(n.Argument, ctx)
	if err != nil {
		return value.Undefined, err
	}
	switch n.Operator {
	case "+":
		return value.Number(toNumber(operand)), nil
	case "-":
		return value.Number(-toNumber(operand)), nil
	case "!":
		return value.Bool(!operand.Truthy()), nil
	case "typeof":
		// Unreachable when the security validator runs first (it
		// blocks typeof as a unary operator outright); reached when
		// the evaluator runs a tree that was not validated, as in
		// non-strict mode.
		return value.String(jsTypeOf(operand)), nil
	case "void":
		return value.Undefined, nil
	default:
		return value.Undefined, r.newErr(n.Pos(), "unsupported unary operator %q", n.Operator)
	}
}

func (r *run) evalBinary(n *ast.Binary, ctx *Context) (value.Value, *errors.SourceError) {
	left, err := r.eval(n.Left, ctx)
	if err != nil {
		return value.Undefined, err
	}
	right, err := r.eval(n.Right, ctx)
	if err != nil {
		return value.Undefined, err
	}

	switch n.Operator {
	case "+":
		return addValues(left, right), nil
	case "-":
		return value.Number(toNumber(left) - toNumber(right)), nil
	case "*":
		return value.Number(toNumber(left) * toNumber(right)), nil
	case "/":
		// Plain IEEE-754 division: ±Inf or NaN fall out naturally,
		// no zero special-casing needed (§4.F).
		return value.Number(toNumber(left) / toNumber(right)), nil
	case "%":
		return value.Number(math.Mod(toNumber(left), toNumber(right))), nil
	case "**":
		return value.Number(math.Pow(toNumber(left), toNumber(right))), nil
	case "==":
		return value.Bool(looseEquals(left, right)), nil
	case "!=":
		return value.Bool(!looseEquals(left, right)), nil
	case "===":
		return value.Bool(strictEquals(left, right)), nil
	case "!==":
		return value.Bool(!strictEquals(left, right)), nil
	case "<", "<=", ">", ">=":
		return value.Bool(compare(left, right, n.Operator)), nil
	case "in":
		return value.Bool(inOperator(left, right)), nil
	default:
		return value.Undefined, r.newErr(n.Pos(), "unsupported binary operator %q", n.Operator)
	}
}

func (r *run) evalLogical(n *ast.Logical, ctx *Context) (value.Value, *errors.SourceError) {
	left, err := r.eval(n.Left, ctx)
	if err != nil {
		return value.Undefined, err
	}
	switch n.Operator {
	case "&&":
		if !left.Truthy() {
			return left, nil
		}
	case "||":
		if left.Truthy() {
			return left, nil
		}
	case "??":
		if !left.IsNullish() {
			return left, nil
		}
	default:
		return value.Undefined, r.newErr(n.Pos(), "unsupported logical operator %q", n.Operator)
	}
	return r.eval(n.Right, ctx)
}

func (r *run) evalConditional(n *ast.Conditional, ctx *Context) (value.Value, *errors.SourceError) {
	test, err := r.eval(n.Test, ctx)
	if err != nil {
		return value.Undefined, err
	}
	if test.Truthy() {
		return r.eval(n.Consequent, ctx)
	}
	return r.eval(n.Alternate, ctx)
}

func (r *run) evalArray(n *ast.Array, ctx *Context) (value.Value, *errors.SourceError) {
	elems := make([]value.Value, len(n.Elements))
	for i, el := range n.Elements {
		if el == nil {
			elems[i] = value.Undefined
			continue
		}
		v, err := r.eval(el, ctx)
		if err != nil {
			return value.Undefined, err
		}
		elems[i] = v
	}
	return value.NewArray(elems), nil
}

func (r *run) evalObject(n *ast.Object, ctx *Context) (value.Value, *errors.SourceError) {
	result := value.NewObject()
	for _, prop := range n.Properties {
		key, err := r.evalObjectKey(prop, ctx)
		if err != nil {
			return value.Undefined, err
		}
		v, err := r.eval(prop.Value, ctx)
		if err != nil {
			return value.Undefined, err
		}
		result = result.ObjectSet(key, v)
	}
	return result, nil
}

func (r *run) evalObjectKey(prop ast.ObjectProperty, ctx *Context) (string, *errors.SourceError) {
	if prop.Computed {
		v, err := r.eval(prop.Key, ctx)
		if err != nil {
			return "", err
		}
		return v.ToDisplayString(), nil
	}
	switch k := prop.Key.(type) {
	case *ast.Identifier:
		return k.Name, nil
	case *ast.Literal:
		v, err := r.evalLiteral(k)
		if err != nil {
			return "", err
		}
		return v.ToDisplayString(), nil
	default:
		return "", r.newErr(prop.Key.Pos(), "unsupported object key shape %T", prop.Key)
	}
}
