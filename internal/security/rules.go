// Package security implements the closed-policy audit the node tree
// must pass before the evaluator ever touches it. The rule set (fixed
// identifier/property denylists, dangerous string patterns, resource
// caps) is grounded on the visitor-pattern shape of
// _examples/other_examples/76a4b84a_magpierre...security.go's
// securityPatcher, generalized from a single depth check into the
// full rule table.
package security

import "regexp"

// ContextRoots is the recognized free-variable namespace: identifiers
// that are always considered bound regardless of what the caller's
// context actually contains. Anything else is a free identifier and
// evaluates to undefined unless it names a registered function.
var ContextRoots = map[string]bool{
	"item":      true,
	"inputs":    true,
	"outputs":   true,
	"node":      true,
	"execution": true,
	"true":      true,
	"false":     true,
	"null":      true,
	"undefined": true,
	"Infinity":  true,
	"NaN":       true,
}

// StaticNamespaces is the set of recognized qualified-call prefixes
// (`Namespace.method`).
var StaticNamespaces = map[string]bool{
	"Object": true,
	"Math":   true,
	"JSON":   true,
	"Date":   true,
	"Array":  true,
	"Crypto": true,
	"String": true,
	"Number": true,
}

// CallbackMethods are the higher-order array methods permitted without
// a registry entry, provided their first argument is an Arrow.
var CallbackMethods = map[string]bool{
	"filter": true,
	"map":    true,
	"find":   true,
	"some":   true,
	"every":  true,
	"reduce": true,
}

// IdentifierDenylist blocks references that would expose the host.
var IdentifierDenylist = buildSet([]string{
	"eval", "Function", "constructor", "prototype", "__proto__",
	"window", "document", "global", "globalThis", "self", "parent",
	"top", "frames", "process", "require", "module", "exports",
	"__dirname", "__filename", "Buffer", "setImmediate", "clearImmediate",
	"setInterval", "clearInterval", "alert", "confirm", "prompt",
	"console", "fetch", "XMLHttpRequest", "localStorage", "sessionStorage",
	"indexedDB", "location", "history", "navigator", "setTimeout",
	"clearTimeout", "Worker", "SharedWorker", "ServiceWorker",
	"importScripts", "import", "WebAssembly", "WebSocket", "EventSource",
	"FileReader", "Blob", "URL", "URLSearchParams", "postMessage",
	"MessageChannel", "BroadcastChannel", "Error", "SyntaxError",
	"ReferenceError", "TypeError",
})

// PropertyDenylist blocks prototype-walk and reflection property
// names on Member access, enforced both at validation time and again
// at evaluation time as defense in depth.
var PropertyDenylist = buildSet([]string{
	"constructor", "prototype", "__proto__", "__defineGetter__",
	"__defineSetter__", "__lookupGetter__", "__lookupSetter__",
	"valueOf", "toString", "hasOwnProperty", "isPrototypeOf",
	"propertyIsEnumerable", "__defineProperty__",
	"__getOwnPropertyDescriptor__", "__getPrototypeOf__",
	"__setPrototypeOf__", "apply", "call", "bind",
})

// BlockedBinaryOperators are binary operators rejected outright.
var BlockedBinaryOperators = buildSet([]string{"instanceof"})

// BlockedUnaryOperators are unary operators rejected outright. typeof
// is included here even though the evaluator still implements it: in
// strict mode the validator runs first, so a user-supplied `typeof x`
// is rejected before it would reach that code path; with strict mode
// off the validator is skipped and the evaluator's typeof branch runs.
// See DESIGN.md's open-question log for why the evaluator keeps that
// branch.
var BlockedUnaryOperators = buildSet([]string{"delete", "new", "void", "typeof"})

// DangerousPatterns matches string literal content that looks like an
// attempt to smuggle executable content through as inert data.
var DangerousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)javascript:`),
	regexp.MustCompile(`(?i)data:text/html`),
	regexp.MustCompile(`(?i)data:application/javascript`),
	regexp.MustCompile(`(?i)vbscript:`),
	regexp.MustCompile(`(?i)<script`),
	regexp.MustCompile(`(?i)on\w+\s*=`),
	regexp.MustCompile(`(?i)eval\(`),
	regexp.MustCompile(`(?i)Function\(`),
	regexp.MustCompile(`(?i)setTimeout\(`),
	regexp.MustCompile(`(?i)setInterval\(`),
}

const (
	// MaxMemberChainLength is the warning threshold on a.b.c... depth.
	MaxMemberChainLength = 10
	// MaxCallArguments is the warning threshold on call argument count.
	MaxCallArguments = 20
	// MaxStringLiteralLength is the warning threshold on string literals.
	MaxStringLiteralLength = 10000
	// MaxObjectProperties is the warning threshold on object literal size.
	MaxObjectProperties = 50
	// MaxArrowParams is the hard cap on arrow-function parameter count.
	MaxArrowParams = 4
)

func buildSet(names []string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}
