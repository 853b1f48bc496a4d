// Package eval is the tree-walking evaluator: it executes a validated
// internal/ast.Node against an ExpressionContext and produces a
// value.Value. Grounded node-for-node on
// _examples/other_examples/00db6b9e_flowbaker-flowbaker__...executor.go's
// ASTExecutor.executeNode switch, adapted to the closed node set's
// split between Binary and Logical (goja's own AST makes no such
// split; the flowbaker executor's executeBinaryExpression handles
// "&&"/"||"/"??" inline, which here becomes evalLogical), to
// value.Value instead of interface{}, and to a recursion-depth counter
// and wall-clock timeout check reported through internal/errors'
// SourceError.
package eval
