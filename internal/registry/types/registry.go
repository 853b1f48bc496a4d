// Package types implements the schema-keyed type registry from spec
// §4.C: callers register named shapes, the registry detects which
// registered shape a runtime value matches, and serializes values
// according to each shape's declared strategy.
package types

import (
	"sync"

	"github.com/sandboxeval/sandboxeval/internal/value"
)

// PropertyKind is the declared shape of one schema property.
type PropertyKind string

const (
	KindString  PropertyKind = "string"
	KindNumber  PropertyKind = "number"
	KindBoolean PropertyKind = "boolean"
	KindObject  PropertyKind = "object"
	KindArray   PropertyKind = "array"
)

// Strategy selects how a matched value is serialized.
type Strategy string

const (
	StrategyJSON   Strategy = "json"
	StrategyString Strategy = "string"
	StrategyObject Strategy = "object"
)

// Schema describes a type's shape: required own-keys plus a partial
// map of key -> expected kind for keys present on the value.
type Schema struct {
	Required   []string
	Properties map[string]PropertyKind
}

// TypeEntry is one registered shape.
type TypeEntry struct {
	Name     string
	Schema   Schema
	Strategy Strategy
}

// Registry holds type entries in most-recently-registered-first order
// (spec §3/§4.C; see DESIGN.md Open Question 1).
type Registry struct {
	mu      sync.RWMutex
	entries []TypeEntry
}

// NewRegistry returns an empty type registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds or replaces the entry named cfg.Name, removing any
// prior entry with that name and prepending the new one so it is
// checked first by DetectType.
func (r *Registry) Register(cfg TypeEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	filtered := r.entries[:0:0]
	for _, e := range r.entries {
		if e.Name != cfg.Name {
			filtered = append(filtered, e)
		}
	}
	r.entries = append([]TypeEntry{cfg}, filtered...)
}

// HasType reports whether name is registered.
func (r *Registry) HasType(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.entries {
		if e.Name == name {
			return true
		}
	}
	return false
}

// List returns registered type names, most-recently-registered first.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.Name
	}
	return names
}

// DetectType returns the name of the first registered entry (in
// most-recently-registered-first order) whose schema matches v, or ""
// if v is not a plain object or no entry matches.
func (r *Registry) DetectType(v value.Value) string {
	if !v.IsPlainObject() {
		return ""
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.entries {
		if matches(v, e.Schema) {
			return e.Name
		}
	}
	return ""
}

func matches(v value.Value, schema Schema) bool {
	for _, req := range schema.Required {
		if !v.ObjectHas(req) {
			return false
		}
	}
	for key, kind := range schema.Properties {
		if !v.ObjectHas(key) {
			continue // absent properties pass
		}
		if !kindMatches(v.ObjectGet(key), kind) {
			return false
		}
	}
	return true
}

func kindMatches(v value.Value, kind PropertyKind) bool {
	switch kind {
	case KindString:
		return v.Kind() == value.KindString
	case KindNumber:
		n := v.Num()
		return v.Kind() == value.KindNumber && n == n // exclude NaN
	case KindBoolean:
		return v.Kind() == value.KindBoolean
	case KindArray:
		return v.IsArray()
	case KindObject:
		return v.IsPlainObject()
	default:
		return true // unknown kind passes
	}
}

// StrategyFor returns the registered strategy for name and whether it
// was found, letting a caller (the orchestrator's template stage)
// decide on strategy-specific post-processing such as JSON escaping
// without duplicating Serialize's lookup.
func (r *Registry) StrategyFor(name string) (Strategy, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.entries {
		if e.Name == name {
			return e.Strategy, true
		}
	}
	return "", false
}

// Serialize renders v per name's registered strategy. Falls back to
// the default string coercion (never raises) if name is unregistered
// or JSON encoding fails.
func (r *Registry) Serialize(v value.Value, name string, jsonStringify func(value.Value) string) string {
	r.mu.RLock()
	var strategy Strategy
	found := false
	for _, e := range r.entries {
		if e.Name == name {
			strategy = e.Strategy
			found = true
			break
		}
	}
	r.mu.RUnlock()

	if !found {
		return v.ToDisplayString()
	}

	switch strategy {
	case StrategyJSON:
		return jsonStringify(v)
	case StrategyObject:
		// "returns the value itself" — for a template/string context
		// the nearest meaningful rendering is still its display form.
		return v.ToDisplayString()
	default:
		return v.ToDisplayString()
	}
}
