package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sandboxeval/sandboxeval/internal/ast"
	"github.com/sandboxeval/sandboxeval/pkg/sandboxeval"
)

var parseDumpAST bool

var parseCmd = &cobra.Command{
	Use:   "parse [expression]",
	Short: "Parse an expression and show its AST and parse metadata",
	Long: `Parse an expression (or read it from a file or stdin) and print its
parse metadata: complexity, nesting depth, the context-root
identifiers it references, and the functions it calls.

Use --dump-ast to also print the full node tree.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParseCmd,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().BoolVar(&parseDumpAST, "dump-ast", false, "dump the full AST node tree")
}

func runParseCmd(_ *cobra.Command, args []string) error {
	expression, err := readExpressionInput(args)
	if err != nil {
		return err
	}

	engine, err := sandboxeval.New()
	if err != nil {
		return err
	}

	parsed, err := engine.Parse(expression)
	if err != nil {
		return fmt.Errorf("parse error: %w", err)
	}

	fmt.Printf("Complexity:   %.1f\n", parsed.Complexity)
	fmt.Printf("Depth:        %d\n", parsed.Depth)
	fmt.Printf("Simple:       %v\n", parsed.IsSimple)
	fmt.Printf("HasTemplates: %v\n", parsed.HasTemplates)
	fmt.Printf("Memory est.:  %d bytes\n", parsed.MemoryEstimate)
	fmt.Printf("Dependencies: %v\n", parsed.Dependencies)
	fmt.Printf("Functions:    %v\n", parsed.Functions)

	if parseDumpAST {
		fmt.Println()
		fmt.Println("AST:")
		fmt.Println("====")
		dumpASTNode(parsed.AST, 0)
	}

	return nil
}

func dumpASTNode(node ast.Node, indent int) {
	pad := ""
	for i := 0; i < indent; i++ {
		pad += "  "
	}

	switch n := node.(type) {
	case *ast.Literal:
		fmt.Printf("%sLiteral: %s\n", pad, n.String())
	case *ast.Identifier:
		fmt.Printf("%sIdentifier: %s\n", pad, n.Name)
	case *ast.Member:
		fmt.Printf("%sMember (computed=%v)\n", pad, n.Computed)
		dumpASTNode(n.Object, indent+1)
		dumpASTNode(n.Property, indent+1)
	case *ast.Call:
		fmt.Printf("%sCall\n", pad)
		fmt.Printf("%s  Callee:\n", pad)
		dumpASTNode(n.Callee, indent+2)
		for i, a := range n.Args {
			fmt.Printf("%s  Arg[%d]:\n", pad, i)
			dumpASTNode(a, indent+2)
		}
	case *ast.Unary:
		fmt.Printf("%sUnary (%s)\n", pad, n.Operator)
		dumpASTNode(n.Argument, indent+1)
	case *ast.Binary:
		fmt.Printf("%sBinary (%s)\n", pad, n.Operator)
		dumpASTNode(n.Left, indent+1)
		dumpASTNode(n.Right, indent+1)
	case *ast.Logical:
		fmt.Printf("%sLogical (%s)\n", pad, n.Operator)
		dumpASTNode(n.Left, indent+1)
		dumpASTNode(n.Right, indent+1)
	case *ast.Conditional:
		fmt.Printf("%sConditional\n", pad)
		dumpASTNode(n.Test, indent+1)
		dumpASTNode(n.Consequent, indent+1)
		dumpASTNode(n.Alternate, indent+1)
	case *ast.Array:
		fmt.Printf("%sArray (%d elements)\n", pad, len(n.Elements))
		for _, e := range n.Elements {
			dumpASTNode(e, indent+1)
		}
	case *ast.Object:
		fmt.Printf("%sObject (%d properties)\n", pad, len(n.Properties))
		for _, p := range n.Properties {
			fmt.Printf("%s  Key (computed=%v):\n", pad, p.Computed)
			dumpASTNode(p.Key, indent+2)
			fmt.Printf("%s  Value:\n", pad)
			dumpASTNode(p.Value, indent+2)
		}
	case *ast.Arrow:
		fmt.Printf("%sArrow (%v)\n", pad, n.Params)
		dumpASTNode(n.Body, indent+1)
	default:
		fmt.Printf("%s%T: %s\n", pad, node, node.String())
	}
}
