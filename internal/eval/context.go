package eval

import "github.com/sandboxeval/sandboxeval/internal/value"

// Context is an immutable name → value mapping (spec §3's
// ExpressionContext). Callback evaluation builds an overlay context
// that adds bound parameter names on top of a parent without ever
// mutating it.
type Context struct {
	values map[string]value.Value
	parent *Context
}

// NewContext wraps a caller-supplied variable set as the base context.
// The map is copied so later caller-side mutation of it is never
// observed.
func NewContext(values map[string]value.Value) *Context {
	copied := make(map[string]value.Value, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return &Context{values: copied}
}

// Overlay returns a new Context that resolves bindings before falling
// through to c. c itself is never modified, so the same base context
// can be reused across many overlapping callback invocations.
func (c *Context) Overlay(bindings map[string]value.Value) *Context {
	return &Context{values: bindings, parent: c}
}

// Lookup resolves name against this context and its parent chain.
func (c *Context) Lookup(name string) (value.Value, bool) {
	for ctx := c; ctx != nil; ctx = ctx.parent {
		if v, ok := ctx.values[name]; ok {
			return v, true
		}
	}
	return value.Undefined, false
}
