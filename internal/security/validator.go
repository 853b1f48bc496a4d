package security

import (
	"fmt"

	"github.com/sandboxeval/sandboxeval/internal/ast"
	"github.com/sandboxeval/sandboxeval/internal/cache"
	"github.com/sandboxeval/sandboxeval/internal/registry/functions"
)

// Severity classifies a Violation.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Violation is a single audit finding.
type Violation struct {
	Type       string
	Message    string
	Severity   Severity
	Pos        ast.Position
	Suggestion string
}

// Result is the outcome of validating a single node tree.
type Result struct {
	Valid      bool
	Violations []Violation
}

// CustomRule lets a caller extend the audit with an additional
// predicate. A rule firing produces a Violation of the given Type and
// Severity.
type CustomRule struct {
	Type      string
	Severity  Severity
	Message   string
	Predicate func(node ast.Node) bool
}

// Validator audits a node tree against the closed policy from §4.E.
// It caches results by node signature so the orchestrator can skip
// re-validating an expression it has already accepted or rejected.
type Validator struct {
	functions   *functions.Registry
	customRules []CustomRule
	cache       *cache.LRU[string, *Result]
}

// New returns a Validator that resolves bare call targets against fns.
// cacheSize <= 0 means an unbounded cache.
func New(fns *functions.Registry, cacheSize int) *Validator {
	return &Validator{
		functions: fns,
		cache:     cache.New[string, *Result](cacheSize),
	}
}

// AddRule registers an additional custom rule.
func (v *Validator) AddRule(r CustomRule) {
	v.customRules = append(v.customRules, r)
}

// ClearCache discards every memoized validation result.
func (v *Validator) ClearCache() {
	v.cache.Clear()
}

// Validate audits root and returns whether it is accepted plus every
// violation found (errors and warnings alike).
func (v *Validator) Validate(root ast.Node) *Result {
	sig := ast.Signature(root)
	if cached, ok := v.cache.Get(sig); ok {
		return cached
	}

	res := &Result{Valid: true}
	v.walk(root, res, 0)

	for _, r := range v.customRules {
		ast.Walk(root, func(n ast.Node) bool {
			if r.Predicate(n) {
				v.record(res, r.Type, r.Message, r.Severity, n.Pos(), "")
			}
			return true
		})
	}

	res.Valid = !hasError(res.Violations)
	v.cache.Set(sig, res, true)
	return res
}

func hasError(vs []Violation) bool {
	for _, v := range vs {
		if v.Severity == SeverityError {
			return true
		}
	}
	return false
}

func (v *Validator) record(res *Result, typ, message string, sev Severity, pos ast.Position, suggestion string) {
	res.Violations = append(res.Violations, Violation{
		Type:       typ,
		Message:    message,
		Severity:   sev,
		Pos:        pos,
		Suggestion: suggestion,
	})
}

// walk implements the pre-order audit. Unrecognized node kinds are
// impossible here because ast.Node is a closed Go interface satisfied
// only by the eleven variant structs — the "unknown variant" rule
// from §4.E rule 1 is therefore enforced structurally by the adapter
// that builds the tree (internal/parser), not by a runtime type switch
// here. chainDepth is not read; rule 9's member-chain length is
// computed by checkMemberChain.
func (v *Validator) walk(n ast.Node, res *Result, chainDepth int) {
	switch node := n.(type) {
	case *ast.Literal:
		if s, ok := node.Value.(string); ok {
			v.checkStringLiteral(s, node.Position, res)
		}

	case *ast.Identifier:
		v.checkIdentifier(node.Name, node.Position, res)

	case *ast.Member:
		v.checkMemberChain(node, res)
		v.walk(node.Object, res, chainDepth+1)
		if node.Computed {
			v.walk(node.Property, res, 0)
		} else if id, ok := node.Property.(*ast.Identifier); ok {
			v.checkProperty(id.Name, node.Position, res)
		}

	case *ast.Call:
		v.checkCall(node, res)
		v.walk(node.Callee, res, 0)
		if len(node.Args) > MaxCallArguments {
			v.record(res, "resource_cap",
				fmt.Sprintf("call has %d arguments, exceeding the recommended %d", len(node.Args), MaxCallArguments),
				SeverityWarning, node.Position, "reduce the number of arguments")
		}
		for i, a := range node.Args {
			if i == 0 && isCallbackCall(node) {
				// The callback Arrow itself is walked below by the
				// Arrow case; its body runs in an overlay context the
				// evaluator builds at call time, not here.
			}
			v.walk(a, res, 0)
		}

	case *ast.Unary:
		if BlockedUnaryOperators[node.Operator] {
			v.record(res, "blocked_operator",
				fmt.Sprintf("unary operator '%s' is not allowed", node.Operator),
				SeverityError, node.Position, "")
		}
		v.walk(node.Argument, res, 0)

	case *ast.Binary:
		if BlockedBinaryOperators[node.Operator] {
			v.record(res, "blocked_operator",
				fmt.Sprintf("binary operator '%s' is not allowed", node.Operator),
				SeverityError, node.Position, "")
		}
		v.walk(node.Left, res, 0)
		v.walk(node.Right, res, 0)

	case *ast.Logical:
		v.walk(node.Left, res, 0)
		v.walk(node.Right, res, 0)

	case *ast.Conditional:
		v.walk(node.Test, res, 0)
		v.walk(node.Consequent, res, 0)
		v.walk(node.Alternate, res, 0)

	case *ast.Array:
		for _, e := range node.Elements {
			if e != nil {
				v.walk(e, res, 0)
			}
		}

	case *ast.Object:
		if len(node.Properties) > MaxObjectProperties {
			v.record(res, "resource_cap",
				fmt.Sprintf("object literal has %d properties, exceeding the recommended %d", len(node.Properties), MaxObjectProperties),
				SeverityWarning, node.Position, "split into smaller objects")
		}
		for _, p := range node.Properties {
			if p.Computed {
				v.walk(p.Key, res, 0)
			} else if id, ok := p.Key.(*ast.Identifier); ok {
				v.checkProperty(id.Name, node.Position, res)
			}
			v.walk(p.Value, res, 0)
		}

	case *ast.Arrow:
		v.checkArrowParams(node, res)
		v.walk(node.Body, res, 0)
	}
}

func (v *Validator) checkIdentifier(name string, pos ast.Position, res *Result) {
	if IdentifierDenylist[name] {
		v.record(res, "blocked_identifier",
			fmt.Sprintf("identifier '%s' is not allowed", name),
			SeverityError, pos, "remove this reference")
	}
}

func (v *Validator) checkProperty(name string, pos ast.Position, res *Result) {
	if PropertyDenylist[name] {
		v.record(res, "blocked_property",
			fmt.Sprintf("property '%s' is not allowed", name),
			SeverityError, pos, "")
	}
}

// checkMemberChain walks a.b.c-style nesting, applying rule 4
// (prototype-pollution pattern: a Member whose object is itself a
// Member with a denylisted literal property) and rule 9's chain-length
// warning.
func (v *Validator) checkMemberChain(m *ast.Member, res *Result) {
	depth := 1
	cur := m.Object
	for {
		inner, ok := cur.(*ast.Member)
		if !ok {
			break
		}
		depth++
		if inner.Computed {
			if lit, ok := inner.Property.(*ast.Literal); ok {
				if s, ok := lit.Value.(string); ok && PropertyDenylist[s] {
					v.record(res, "blocked_property",
						fmt.Sprintf("property '%s' is not allowed", s),
						SeverityError, inner.Position, "")
				}
			}
		}
		cur = inner.Object
	}
	if depth > MaxMemberChainLength {
		v.record(res, "resource_cap",
			fmt.Sprintf("member chain is %d deep, exceeding the recommended %d", depth, MaxMemberChainLength),
			SeverityWarning, m.Position, "simplify the access path")
	}

	if m.Computed {
		if lit, ok := m.Property.(*ast.Literal); ok {
			if s, ok := lit.Value.(string); ok && PropertyDenylist[s] {
				v.record(res, "blocked_property",
					fmt.Sprintf("property '%s' is not allowed", s),
					SeverityError, m.Position, "")
			}
		}
	}
}

func isCallbackCall(c *ast.Call) bool {
	m, ok := c.Callee.(*ast.Member)
	if !ok || m.Computed {
		return false
	}
	id, ok := m.Property.(*ast.Identifier)
	return ok && CallbackMethods[id.Name]
}

// checkCall implements rule 5: bare-call resolution against the
// function registry, qualified/unqualified member-call resolution,
// and the callback-method exception.
func (v *Validator) checkCall(c *ast.Call, res *Result) {
	switch callee := c.Callee.(type) {
	case *ast.Identifier:
		if !v.functions.Has(callee.Name) {
			v.record(res, "unresolved_call",
				fmt.Sprintf("function '%s' is not registered", callee.Name),
				SeverityError, c.Position, "register this function before use")
		}

	case *ast.Member:
		if callee.Computed {
			return
		}
		methodID, ok := callee.Property.(*ast.Identifier)
		if !ok {
			return
		}
		method := methodID.Name

		if CallbackMethods[method] {
			if len(c.Args) == 0 {
				v.record(res, "invalid_callback",
					fmt.Sprintf("'%s' requires a callback argument", method),
					SeverityError, c.Position, "pass an arrow function")
				return
			}
			if _, ok := c.Args[0].(*ast.Arrow); !ok {
				v.record(res, "invalid_callback",
					fmt.Sprintf("'%s' requires its first argument to be an arrow function", method),
					SeverityError, c.Position, "pass an arrow function, e.g. x => x")
			}
			return
		}

		if objID, ok := callee.Object.(*ast.Identifier); ok && StaticNamespaces[objID.Name] {
			qualified := objID.Name + "." + method
			if v.functions.Has(qualified) {
				return
			}
		}
		if !v.functions.Has(method) {
			v.record(res, "unresolved_call",
				fmt.Sprintf("function '%s' is not registered", method),
				SeverityError, c.Position, "register this function before use")
		}
	}
}

func (v *Validator) checkStringLiteral(s string, pos ast.Position, res *Result) {
	if len(s) > MaxStringLiteralLength {
		v.record(res, "resource_cap",
			fmt.Sprintf("string literal is %d characters, exceeding the recommended %d", len(s), MaxStringLiteralLength),
			SeverityWarning, pos, "shorten the literal")
	}
	for _, re := range DangerousPatterns {
		if re.MatchString(s) {
			v.record(res, "dangerous_literal",
				fmt.Sprintf("string literal matches a disallowed pattern: %s", re.String()),
				SeverityError, pos, "remove the suspicious content")
			return
		}
	}
}

func (v *Validator) checkArrowParams(a *ast.Arrow, res *Result) {
	if len(a.Params) > MaxArrowParams {
		v.record(res, "invalid_arrow",
			fmt.Sprintf("arrow function has %d parameters, exceeding the maximum of %d", len(a.Params), MaxArrowParams),
			SeverityError, a.Position, "reduce the parameter count")
	}
	for _, p := range a.Params {
		if IdentifierDenylist[p] {
			v.record(res, "blocked_identifier",
				fmt.Sprintf("arrow parameter '%s' is not allowed", p),
				SeverityError, a.Position, "rename the parameter")
		}
	}
}
