package eval

import (
	"github.com/sandboxeval/sandboxeval/internal/ast"
	"github.com/sandboxeval/sandboxeval/internal/errors"
	"github.com/sandboxeval/sandboxeval/internal/value"
)

// evalCallback dispatches one of the six callback-accepting array
// methods. The callback argument is taken unevaluated off n.Args[0]
// and must be an Arrow; every other argument is evaluated eagerly
// (reduce's optional initial-value is the only other argument any of
// these methods accept).
func (r *run) evalCallback(n *ast.Call, methodName string, receiver value.Value, ctx *Context) (value.Value, *errors.SourceError) {
	if len(n.Args) == 0 {
		return value.Undefined, r.newErr(n.Pos(), "%s requires a callback argument", methodName)
	}
	arrow, ok := n.Args[0].(*ast.Arrow)
	if !ok {
		return value.Undefined, r.newErr(n.Pos(), "%s requires an arrow function callback", methodName)
	}

	switch methodName {
	case "filter":
		return r.callbackFilter(arrow, receiver, ctx)
	case "map":
		return r.callbackMap(arrow, receiver, ctx)
	case "find":
		return r.callbackFind(arrow, receiver, ctx)
	case "some":
		return r.callbackSome(arrow, receiver, ctx)
	case "every":
		return r.callbackEvery(arrow, receiver, ctx)
	case "reduce":
		var initial value.Value
		hasInitial := false
		if len(n.Args) > 1 {
			v, err := r.eval(n.Args[1], ctx)
			if err != nil {
				return value.Undefined, err
			}
			initial = v
			hasInitial = true
		}
		return r.callbackReduce(arrow, receiver, initial, hasInitial, ctx)
	default:
		return value.Undefined, r.newErr(n.Pos(), "unsupported callback method %q", methodName)
	}
}

// bindElement builds the overlay bindings for the (element, index,
// array) parameter shape shared by filter/map/find/some/every. Excess
// arrow parameters bind to undefined; missing ones are simply absent
// from the map, which Context.Lookup treats identically (falls through
// to the parent, then to the undefined default).
func bindElement(params []string, elem value.Value, idx int, arr value.Value) map[string]value.Value {
	values := []value.Value{elem, value.Number(float64(idx)), arr}
	return bindPositional(params, values)
}

func bindReduce(params []string, acc, elem value.Value, idx int, arr value.Value) map[string]value.Value {
	values := []value.Value{acc, elem, value.Number(float64(idx)), arr}
	return bindPositional(params, values)
}

func bindPositional(params []string, values []value.Value) map[string]value.Value {
	bindings := make(map[string]value.Value, len(params))
	for i, p := range params {
		if i < len(values) {
			bindings[p] = values[i]
		} else {
			bindings[p] = value.Undefined
		}
	}
	return bindings
}

func (r *run) callbackFilter(arrow *ast.Arrow, receiver value.Value, ctx *Context) (value.Value, *errors.SourceError) {
	var kept []value.Value
	for i, elem := range receiver.Elements() {
		result, err := r.eval(arrow.Body, ctx.Overlay(bindElement(arrow.Params, elem, i, receiver)))
		if err != nil {
			continue // erroring element treated as false
		}
		if result.Truthy() {
			kept = append(kept, elem)
		}
	}
	return value.NewArray(kept), nil
}

func (r *run) callbackMap(arrow *ast.Arrow, receiver value.Value, ctx *Context) (value.Value, *errors.SourceError) {
	elems := receiver.Elements()
	out := make([]value.Value, len(elems))
	for i, elem := range elems {
		result, err := r.eval(arrow.Body, ctx.Overlay(bindElement(arrow.Params, elem, i, receiver)))
		if err != nil {
			out[i] = value.Undefined
			continue
		}
		out[i] = result
	}
	return value.NewArray(out), nil
}

func (r *run) callbackFind(arrow *ast.Arrow, receiver value.Value, ctx *Context) (value.Value, *errors.SourceError) {
	for i, elem := range receiver.Elements() {
		result, err := r.eval(arrow.Body, ctx.Overlay(bindElement(arrow.Params, elem, i, receiver)))
		if err != nil {
			continue
		}
		if result.Truthy() {
			return elem, nil
		}
	}
	return value.Undefined, nil
}

func (r *run) callbackSome(arrow *ast.Arrow, receiver value.Value, ctx *Context) (value.Value, *errors.SourceError) {
	for i, elem := range receiver.Elements() {
		result, err := r.eval(arrow.Body, ctx.Overlay(bindElement(arrow.Params, elem, i, receiver)))
		if err != nil {
			continue
		}
		if result.Truthy() {
			return value.True, nil
		}
	}
	return value.False, nil
}

func (r *run) callbackEvery(arrow *ast.Arrow, receiver value.Value, ctx *Context) (value.Value, *errors.SourceError) {
	for i, elem := range receiver.Elements() {
		result, err := r.eval(arrow.Body, ctx.Overlay(bindElement(arrow.Params, elem, i, receiver)))
		if err != nil {
			return value.False, nil // erroring element treated as false, which fails every
		}
		if !result.Truthy() {
			return value.False, nil
		}
	}
	return value.True, nil
}

func (r *run) callbackReduce(arrow *ast.Arrow, receiver, initial value.Value, hasInitial bool, ctx *Context) (value.Value, *errors.SourceError) {
	elems := receiver.Elements()
	acc := value.Undefined
	if hasInitial {
		acc = initial
	}
	for i := 0; i < len(elems); i++ {
		elem := elems[i]
		result, err := r.eval(arrow.Body, ctx.Overlay(bindReduce(arrow.Params, acc, elem, i, receiver)))
		if err != nil {
			continue // erroring element keeps the prior accumulator
		}
		acc = result
	}
	return acc, nil
}
