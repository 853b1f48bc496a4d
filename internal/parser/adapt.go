package parser

import (
	"fmt"

	gojaast "github.com/dop251/goja/ast"
	"github.com/dop251/goja/file"

	"github.com/sandboxeval/sandboxeval/internal/ast"
)

// logicalOperators are the goja BinaryExpression operators that map to
// ast.Logical instead of ast.Binary. goja (like its otto ancestor)
// never introduces a separate node kind for these — they come through
// as ordinary *ast.BinaryExpression values, distinguished only by the
// operator token (confirmed by the executor's short-circuit handling
// of "&&"/"||" inside executeBinaryExpression).
var logicalOperators = map[string]bool{
	"&&": true,
	"||": true,
	"??": true,
}

// allowedUnaryOperators mirrors the evaluator's unary switch (§4.F):
// anything else (delete, ~, ++, --) can't be expressed in the closed
// set and fails the whole parse, per §4.D "anything else is a parse
// failure".
var allowedUnaryOperators = map[string]bool{
	"+": true, "-": true, "!": true, "typeof": true, "void": true,
}

// convertTree converts a program already known to hold exactly one
// ExpressionStatement into the closed ast.Node tree.
func convertTree(program *gojaast.Program, f *file.File) (ast.Node, error) {
	if len(program.Body) != 1 {
		return nil, fmt.Errorf("expected a single expression, got %d statements", len(program.Body))
	}
	stmt, ok := program.Body[0].(*gojaast.ExpressionStatement)
	if !ok {
		return nil, fmt.Errorf("expected an expression statement, got %T", program.Body[0])
	}
	return convertExpr(stmt.Expression, f)
}

func posOf(f *file.File, idx file.Idx) ast.Position {
	if f == nil {
		return ast.Position{}
	}
	p := f.Position(idx)
	return ast.Position{Line: p.Line, Column: p.Column, Offset: p.Offset}
}

func convertExpr(n gojaast.Expression, f *file.File) (ast.Node, error) {
	if n == nil {
		return nil, fmt.Errorf("unexpected empty expression")
	}

	switch e := n.(type) {
	case *gojaast.StringLiteral:
		return &ast.Literal{Position: posOf(f, e.Idx0()), Value: e.Value.String()}, nil

	case *gojaast.NumberLiteral:
		return &ast.Literal{Position: posOf(f, e.Idx0()), Value: e.Value}, nil

	case *gojaast.BooleanLiteral:
		return &ast.Literal{Position: posOf(f, e.Idx0()), Value: e.Value}, nil

	case *gojaast.NullLiteral:
		return &ast.Literal{Position: posOf(f, e.Idx0()), Value: nil}, nil

	case *gojaast.Identifier:
		return &ast.Identifier{Position: posOf(f, e.Idx0()), Name: e.Name.String()}, nil

	case *gojaast.DotExpression:
		left, err := convertExpr(e.Left, f)
		if err != nil {
			return nil, err
		}
		prop := &ast.Identifier{Position: posOf(f, e.Identifier.Idx0()), Name: e.Identifier.Name.String()}
		return &ast.Member{
			Position: posOf(f, e.Idx0()),
			Object:   left,
			Property: prop,
			Computed: false,
		}, nil

	case *gojaast.BracketExpression:
		left, err := convertExpr(e.Left, f)
		if err != nil {
			return nil, err
		}
		member, err := convertExpr(e.Member, f)
		if err != nil {
			return nil, err
		}
		return &ast.Member{
			Position: posOf(f, e.Idx0()),
			Object:   left,
			Property: member,
			Computed: true,
		}, nil

	case *gojaast.CallExpression:
		callee, err := convertExpr(e.Callee, f)
		if err != nil {
			return nil, err
		}
		args := make([]ast.Node, len(e.ArgumentList))
		for i, a := range e.ArgumentList {
			// The first argument of a callback-method call (filter,
			// map, find, some, every, reduce) is an Arrow and must be
			// preserved unevaluated — convertExpr already treats
			// ArrowFunctionLiteral as an ordinary, if opaque, node, so
			// no special casing is needed here.
			conv, err := convertExpr(a, f)
			if err != nil {
				return nil, err
			}
			args[i] = conv
		}
		return &ast.Call{Position: posOf(f, e.Idx0()), Callee: callee, Args: args}, nil

	case *gojaast.UnaryExpression:
		op := e.Operator.String()
		if !allowedUnaryOperators[op] {
			return nil, fmt.Errorf("unsupported unary operator %q", op)
		}
		operand, err := convertExpr(e.Operand, f)
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Position: posOf(f, e.Idx0()), Operator: op, Argument: operand}, nil

	case *gojaast.BinaryExpression:
		op := e.Operator.String()
		left, err := convertExpr(e.Left, f)
		if err != nil {
			return nil, err
		}
		right, err := convertExpr(e.Right, f)
		if err != nil {
			return nil, err
		}
		pos := posOf(f, e.Idx0())
		if logicalOperators[op] {
			return &ast.Logical{Position: pos, Operator: op, Left: left, Right: right}, nil
		}
		return &ast.Binary{Position: pos, Operator: op, Left: left, Right: right}, nil

	case *gojaast.ConditionalExpression:
		test, err := convertExpr(e.Test, f)
		if err != nil {
			return nil, err
		}
		cons, err := convertExpr(e.Consequent, f)
		if err != nil {
			return nil, err
		}
		alt, err := convertExpr(e.Alternate, f)
		if err != nil {
			return nil, err
		}
		return &ast.Conditional{Position: posOf(f, e.Idx0()), Test: test, Consequent: cons, Alternate: alt}, nil

	case *gojaast.ArrayLiteral:
		elems := make([]ast.Node, len(e.Value))
		for i, el := range e.Value {
			if el == nil {
				continue // hole: leave as nil; ast.Array.String() renders it as an empty slot, the evaluator as undefined
			}
			conv, err := convertExpr(el, f)
			if err != nil {
				return nil, err
			}
			elems[i] = conv
		}
		return &ast.Array{Position: posOf(f, e.Idx0()), Elements: elems}, nil

	case *gojaast.ObjectLiteral:
		props := make([]ast.ObjectProperty, 0, len(e.Value))
		for _, p := range e.Value {
			keyed, ok := p.(*gojaast.PropertyKeyed)
			if !ok {
				return nil, fmt.Errorf("unsupported object property form %T", p)
			}
			var key ast.Node
			var err error
			switch k := keyed.Key.(type) {
			case *gojaast.Identifier:
				// Kept as an Identifier, not collapsed to a Literal:
				// spec's data model distinguishes a bare-name key
				// (`{a: 1}`) from a string/number literal key
				// (`{"a": 1}`) at the node-shape level.
				key = &ast.Identifier{Position: posOf(f, k.Idx0()), Name: k.Name.String()}
			case *gojaast.StringLiteral:
				key = &ast.Literal{Position: posOf(f, k.Idx0()), Value: k.Value.String()}
			case *gojaast.NumberLiteral:
				key = &ast.Literal{Position: posOf(f, k.Idx0()), Value: k.Value}
			default:
				key, err = convertExpr(keyed.Key, f)
				if err != nil {
					return nil, err
				}
			}
			val, err := convertExpr(keyed.Value, f)
			if err != nil {
				return nil, err
			}
			props = append(props, ast.ObjectProperty{Key: key, Value: val, Computed: keyed.Computed})
		}
		return &ast.Object{Position: posOf(f, e.Idx0()), Properties: props}, nil

	case *gojaast.ArrowFunctionLiteral:
		return convertArrow(e, f)

	default:
		return nil, fmt.Errorf("unsupported syntax: %T", n)
	}
}

func convertArrow(e *gojaast.ArrowFunctionLiteral, f *file.File) (ast.Node, error) {
	if e.ParameterList == nil {
		return nil, fmt.Errorf("arrow function has no parameter list")
	}
	if e.ParameterList.Rest != nil {
		return nil, fmt.Errorf("rest parameters are not supported in arrow functions")
	}

	params := make([]string, 0, len(e.ParameterList.List))
	for _, b := range e.ParameterList.List {
		ident, ok := b.Target.(*gojaast.Identifier)
		if !ok {
			return nil, fmt.Errorf("arrow function parameters must be plain identifiers")
		}
		if b.Initializer != nil {
			return nil, fmt.Errorf("default parameter values are not supported in arrow functions")
		}
		params = append(params, ident.Name.String())
	}

	body, err := convertConciseBody(e.Body, f)
	if err != nil {
		return nil, err
	}

	return &ast.Arrow{Position: posOf(f, e.Idx0()), Params: params, Body: body}, nil
}

func convertConciseBody(body gojaast.ConciseBody, f *file.File) (ast.Node, error) {
	switch b := body.(type) {
	case *gojaast.ExpressionBody:
		return convertExpr(b.Expression, f)
	default:
		return nil, fmt.Errorf("arrow function bodies must be a single expression, got %T", body)
	}
}
