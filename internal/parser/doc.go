// Package parser adapts github.com/dop251/goja's ECMAScript parser
// into the closed node set of internal/ast. It owns the one boundary
// where the full JavaScript grammar goja understands is narrowed down
// to the eleven variants this sandbox actually runs: anything goja
// parses that falls outside that set is reported as a parse failure,
// exactly as if goja itself had rejected the syntax.
//
// Grounded on _examples/other_examples/52341fa0_flowbaker-flowbaker__
// ...parser.go (the wrap-in-parens + unwrap-to-single-expression
// trick, the metadata walk) and on
// 00db6b9e_flowbaker-flowbaker__...executor.go (confirms goja's exact
// field names: StringLiteral.Value, DotExpression.{Left,Identifier},
// BinaryExpression.Operator.String() for both arithmetic and `&&`/
// `||`, ExpressionBody.Expression for arrow bodies).
package parser
