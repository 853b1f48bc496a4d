package eval

import (
	"github.com/sandboxeval/sandboxeval/internal/ast"
	"github.com/sandboxeval/sandboxeval/internal/errors"
	"github.com/sandboxeval/sandboxeval/internal/security"
	"github.com/sandboxeval/sandboxeval/internal/value"
)

// evalCall implements §4.F's three-way Call dispatch: a bare callee
// resolves straight into the function registry; a Member callee is
// first checked for the `Namespace.method` qualified form, then for
// the callback-method-on-array shape, and only then falls back to an
// ordinary `receiver.method(...)` registry lookup.
func (r *run) evalCall(n *ast.Call, ctx *Context) (value.Value, *errors.SourceError) {
	switch callee := n.Callee.(type) {
	case *ast.Identifier:
		args, err := r.evalArgs(n.Args, ctx)
		if err != nil {
			return value.Undefined, err
		}
		return r.invoke(n, callee.Name, args, false)

	case *ast.Member:
		return r.evalMethodCall(n, callee, ctx)

	default:
		return value.Undefined, r.newErr(n.Pos(), "call callee must be an identifier or member expression")
	}
}

func (r *run) evalMethodCall(n *ast.Call, callee *ast.Member, ctx *Context) (value.Value, *errors.SourceError) {
	methodName, ok := memberPropertyName(callee)
	if !ok {
		propVal, err := r.eval(callee.Property, ctx)
		if err != nil {
			return value.Undefined, err
		}
		methodName = propVal.ToDisplayString()
	}

	if qualified, ok := qualifiedName(callee); ok && r.engine.Functions.Has(qualified) {
		args, err := r.evalArgs(n.Args, ctx)
		if err != nil {
			return value.Undefined, err
		}
		return r.invoke(n, qualified, args, false)
	}

	receiver, err := r.eval(callee.Object, ctx)
	if err != nil {
		return value.Undefined, err
	}

	if security.CallbackMethods[methodName] && receiver.Kind() == value.KindArray {
		return r.evalCallback(n, methodName, receiver, ctx)
	}

	args, err := r.evalArgs(n.Args, ctx)
	if err != nil {
		return value.Undefined, err
	}
	allArgs := append([]value.Value{receiver}, args...)
	return r.invoke(n, methodName, allArgs, true)
}

func (r *run) invoke(n *ast.Call, name string, args []value.Value, asMethod bool) (value.Value, *errors.SourceError) {
	result, callErr := r.engine.Functions.Call(name, args, asMethod)
	if callErr != nil {
		return value.Undefined, r.newErr(n.Pos(), "%s", callErr.Error())
	}
	return result, nil
}

func (r *run) evalArgs(nodes []ast.Node, ctx *Context) ([]value.Value, *errors.SourceError) {
	args := make([]value.Value, len(nodes))
	for i, a := range nodes {
		v, err := r.eval(a, ctx)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}

// memberPropertyName returns the dot-form property name, or ("", false)
// for a computed member (the caller must evaluate Property instead).
func memberPropertyName(m *ast.Member) (string, bool) {
	if m.Computed {
		return "", false
	}
	ident, ok := m.Property.(*ast.Identifier)
	if !ok {
		return "", false
	}
	return ident.Name, true
}

// qualifiedName returns "Namespace.method" when callee is a dot-form
// member whose object is a bare identifier naming a recognized static
// namespace (Math, JSON, Object, ...).
func qualifiedName(m *ast.Member) (string, bool) {
	if m.Computed {
		return "", false
	}
	prop, ok := memberPropertyName(m)
	if !ok {
		return "", false
	}
	ident, ok := m.Object.(*ast.Identifier)
	if !ok || !security.StaticNamespaces[ident.Name] {
		return "", false
	}
	return ident.Name + "." + prop, true
}
