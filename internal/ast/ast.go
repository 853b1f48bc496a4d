// Package ast defines the closed AST node set for the sandboxed
// expression language.
package ast

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Position locates a node in its source text.
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Node is the base interface every one of the eleven node kinds
// implements.
type Node interface {
	// String renders the node back to a compact expression form, used
	// for debug dumps and for the signature hash below.
	String() string

	// Pos returns the node's source position for diagnostics.
	Pos() Position

	nodeKind() string
}

// Literal is a scalar constant: string, number, boolean, or null.
// Undefined has no literal spelling in the grammar.
type Literal struct {
	Position Position
	Value    interface{} // string, float64, bool, or nil (null)
}

func (l *Literal) nodeKind() string { return "Literal" }
func (l *Literal) Pos() Position    { return l.Position }
func (l *Literal) String() string {
	switch v := l.Value.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(v)
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Identifier is a bare name reference, looked up against the caller
// context and, failing that, against built-in constants.
type Identifier struct {
	Position Position
	Name     string
}

func (i *Identifier) nodeKind() string { return "Identifier" }
func (i *Identifier) Pos() Position    { return i.Position }
func (i *Identifier) String() string   { return i.Name }

// Member is property access: either dot form (`a.b`, Computed=false,
// Property is an *Identifier) or bracket form (`a[b]`, Computed=true,
// Property is an arbitrary expression). There is no optional-chaining
// variant — the evaluator's Member semantics already short-circuit to
// undefined on a nullish object unconditionally (§4.F), so `?.` would
// add no behavior the closed set doesn't already have.
type Member struct {
	Position Position
	Object   Node
	Property Node
	Computed bool
}

func (m *Member) nodeKind() string { return "Member" }
func (m *Member) Pos() Position    { return m.Position }
func (m *Member) String() string {
	if m.Computed {
		return fmt.Sprintf("%s[%s]", m.Object.String(), m.Property.String())
	}
	return fmt.Sprintf("%s.%s", m.Object.String(), m.Property.String())
}

// Call invokes a registered function or a callback-accepting array
// method reached through Callee (a Member or Identifier).
type Call struct {
	Position Position
	Callee   Node
	Args     []Node
}

func (c *Call) nodeKind() string { return "Call" }
func (c *Call) Pos() Position    { return c.Position }
func (c *Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.Callee.String(), strings.Join(parts, ", "))
}

// Unary is a prefix operator: -, +, !, typeof, or void.
type Unary struct {
	Position Position
	Operator string
	Argument Node
}

func (u *Unary) nodeKind() string { return "Unary" }
func (u *Unary) Pos() Position    { return u.Position }
func (u *Unary) String() string {
	if u.Operator == "typeof" {
		return fmt.Sprintf("typeof %s", u.Argument.String())
	}
	return fmt.Sprintf("%s%s", u.Operator, u.Argument.String())
}

// Binary is an arithmetic, comparison, or bitwise two-operand
// operator: + - * / % ** == === != !== < <= > >= & | ^ << >> >>>.
type Binary struct {
	Position Position
	Operator string
	Left     Node
	Right    Node
}

func (b *Binary) nodeKind() string { return "Binary" }
func (b *Binary) Pos() Position    { return b.Position }
func (b *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left.String(), b.Operator, b.Right.String())
}

// Logical is a short-circuiting operator: && || ??.
type Logical struct {
	Position Position
	Operator string
	Left     Node
	Right    Node
}

func (l *Logical) nodeKind() string { return "Logical" }
func (l *Logical) Pos() Position    { return l.Position }
func (l *Logical) String() string {
	return fmt.Sprintf("(%s %s %s)", l.Left.String(), l.Operator, l.Right.String())
}

// Conditional is the ternary `test ? consequent : alternate`.
type Conditional struct {
	Position   Position
	Test       Node
	Consequent Node
	Alternate  Node
}

func (c *Conditional) nodeKind() string { return "Conditional" }
func (c *Conditional) Pos() Position    { return c.Position }
func (c *Conditional) String() string {
	return fmt.Sprintf("(%s ? %s : %s)", c.Test.String(), c.Consequent.String(), c.Alternate.String())
}

// Array is an array literal: `[a, b, c]`.
type Array struct {
	Position Position
	Elements []Node
}

func (a *Array) nodeKind() string { return "Array" }
func (a *Array) Pos() Position    { return a.Position }
func (a *Array) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		if e == nil {
			continue // hole: rendered as an empty slot
		}
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ObjectProperty is one key/value pair of an Object node. Computed
// marks a `[expr]: value` key.
type ObjectProperty struct {
	Key      Node
	Value    Node
	Computed bool
}

// Object is an object literal: `{ a: 1, [k]: v }`.
type Object struct {
	Position   Position
	Properties []ObjectProperty
}

func (o *Object) nodeKind() string { return "Object" }
func (o *Object) Pos() Position    { return o.Position }
func (o *Object) String() string {
	parts := make([]string, len(o.Properties))
	for i, p := range o.Properties {
		key := p.Key.String()
		if p.Computed {
			key = "[" + key + "]"
		}
		parts[i] = fmt.Sprintf("%s: %s", key, p.Value.String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Arrow is a single-expression callback: `(x, i) => expr`. It is only
// valid as a Call argument position (a filter/map/etc. callback), never
// as a standalone top-level expression.
type Arrow struct {
	Position Position
	Params   []string
	Body     Node
}

func (a *Arrow) nodeKind() string { return "Arrow" }
func (a *Arrow) Pos() Position    { return a.Position }
func (a *Arrow) String() string {
	return fmt.Sprintf("(%s) => %s", strings.Join(a.Params, ", "), a.Body.String())
}

// Kind returns the name of n's concrete node variant, used by the
// validator and evaluator for dispatch and by error messages.
func Kind(n Node) string { return n.nodeKind() }

// Signature computes a stable digest of a node's canonical dump,
// used as the validation cache key instead of the raw source text so
// that two expressions differing only in whitespace or comments share
// a validation cache entry. The parse cache keys on source text.
func Signature(n Node) string {
	h, _ := blake2b.New(16, nil)
	h.Write([]byte(n.String()))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Walk visits n and every descendant in pre-order, calling visit on
// each. Returning false from visit skips that node's children.
func Walk(n Node, visit func(Node) bool) {
	if n == nil || !visit(n) {
		return
	}
	switch v := n.(type) {
	case *Literal, *Identifier:
		// leaves
	case *Member:
		Walk(v.Object, visit)
		Walk(v.Property, visit)
	case *Call:
		Walk(v.Callee, visit)
		for _, a := range v.Args {
			Walk(a, visit)
		}
	case *Unary:
		Walk(v.Argument, visit)
	case *Binary:
		Walk(v.Left, visit)
		Walk(v.Right, visit)
	case *Logical:
		Walk(v.Left, visit)
		Walk(v.Right, visit)
	case *Conditional:
		Walk(v.Test, visit)
		Walk(v.Consequent, visit)
		Walk(v.Alternate, visit)
	case *Array:
		for _, e := range v.Elements {
			Walk(e, visit)
		}
	case *Object:
		for _, p := range v.Properties {
			if p.Computed {
				Walk(p.Key, visit)
			}
			Walk(p.Value, visit)
		}
	case *Arrow:
		Walk(v.Body, visit)
	}
}

// IdentifierNames returns the sorted, de-duplicated set of free
// identifier names referenced anywhere in n, excluding arrow parameter
// names bound within their own body. Used for the parser's
// dependency-extraction metadata (§4.D).
func IdentifierNames(n Node) []string {
	bound := map[string]int{}
	seen := map[string]bool{}
	var names []string

	var visit func(Node)
	visit = func(node Node) {
		switch v := node.(type) {
		case *Identifier:
			if bound[v.Name] == 0 && !seen[v.Name] {
				seen[v.Name] = true
				names = append(names, v.Name)
			}
		case *Member:
			visit(v.Object)
			if v.Computed {
				visit(v.Property)
			}
		case *Call:
			visit(v.Callee)
			for _, a := range v.Args {
				visit(a)
			}
		case *Unary:
			visit(v.Argument)
		case *Binary:
			visit(v.Left)
			visit(v.Right)
		case *Logical:
			visit(v.Left)
			visit(v.Right)
		case *Conditional:
			visit(v.Test)
			visit(v.Consequent)
			visit(v.Alternate)
		case *Array:
			for _, e := range v.Elements {
				visit(e)
			}
		case *Object:
			for _, p := range v.Properties {
				if p.Computed {
					visit(p.Key)
				}
				visit(p.Value)
			}
		case *Arrow:
			for _, p := range v.Params {
				bound[p]++
			}
			visit(v.Body)
			for _, p := range v.Params {
				bound[p]--
			}
		}
	}
	visit(n)
	sort.Strings(names)
	return names
}
