// Package ast defines the closed node set the sandboxed evaluator
// accepts. Unlike a general-purpose language AST, this tree has no
// statements, declarations, or control-flow nodes: every node is an
// Expression, and the set of node kinds a parser is allowed to produce
// is fixed at eleven variants.
//
// Node categories:
//   - Literal, Identifier: leaves
//   - Member, Call: access and invocation
//   - Unary, Binary, Logical, Conditional: operators
//   - Array, Object: composite literals
//   - Arrow: single-expression callback parameters for filter/map/etc.
//
// Every node implements Node and carries a Position for diagnostics.
// Anything goja's parser can produce that falls outside this set
// (statements, loops, classes, regexes, template literals outside the
// `{{ }}` hole syntax, ...) is rejected by the parser adapter before it
// ever reaches this package.
package ast
