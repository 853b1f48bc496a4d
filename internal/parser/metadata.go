package parser

import (
	"math"

	"github.com/sandboxeval/sandboxeval/internal/ast"
	"github.com/sandboxeval/sandboxeval/internal/security"
)

// dependencies returns the sorted, de-duplicated set of free
// identifier names in root that are context roots (§6), following the
// same arrow-parameter exclusion as ast.IdentifierNames.
func dependencies(root ast.Node) []string {
	names := ast.IdentifierNames(root)
	out := names[:0]
	for _, n := range names {
		if security.ContextRoots[n] {
			out = append(out, n)
		}
	}
	return append([]string(nil), out...)
}

// functionCalls collects bare callee names and qualified
// `Namespace.method` names reachable from root, per spec §4.D.
func functionCalls(root ast.Node) []string {
	seen := map[string]bool{}
	ast.Walk(root, func(n ast.Node) bool {
		call, ok := n.(*ast.Call)
		if !ok {
			return true
		}
		switch callee := call.Callee.(type) {
		case *ast.Identifier:
			seen[callee.Name] = true
		case *ast.Member:
			if callee.Computed {
				break
			}
			prop, ok := callee.Property.(*ast.Identifier)
			if !ok {
				break
			}
			seen[prop.Name] = true
			if obj, ok := callee.Object.(*ast.Identifier); ok && security.StaticNamespaces[obj.Name] {
				seen[obj.Name+"."+prop.Name] = true
			}
		}
		return true
	})

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	return sortedStrings(names)
}

func sortedStrings(ss []string) []string {
	for i := 1; i < len(ss); i++ {
		for j := i; j > 0 && ss[j-1] > ss[j]; j-- {
			ss[j-1], ss[j] = ss[j], ss[j-1]
		}
	}
	return ss
}

// complexity is the weighted structural score from spec §4.D: call 3,
// member 1, binary/logical 1, conditional 4, arrow 5, array/object 2
// plus 0.5 per element/property, any other node 0.5. Rounded to one
// decimal.
func complexity(root ast.Node) float64 {
	total := 0.0
	ast.Walk(root, func(n ast.Node) bool {
		switch v := n.(type) {
		case *ast.Call:
			total += 3
		case *ast.Member:
			total += 1
		case *ast.Binary, *ast.Logical:
			total += 1
		case *ast.Conditional:
			total += 4
		case *ast.Arrow:
			total += 5
		case *ast.Array:
			total += 2 + float64(len(v.Elements))*0.5
		case *ast.Object:
			total += 2 + float64(len(v.Properties))*0.5
		default:
			total += 0.5
		}
		return true
	})
	return math.Round(total*10) / 10
}

// depth returns the maximum structural nesting depth of root.
func depth(root ast.Node) int {
	max := 0
	var walk func(n ast.Node, d int)
	walk = func(n ast.Node, d int) {
		if n == nil {
			return
		}
		if d > max {
			max = d
		}
		for _, c := range children(n) {
			walk(c, d+1)
		}
	}
	walk(root, 1)
	return max
}

// children returns the immediate child nodes of n, mirroring the
// switch in ast.Walk but exposed here for depth computation, which
// needs to track depth per branch rather than visit order.
func children(n ast.Node) []ast.Node {
	switch v := n.(type) {
	case *ast.Member:
		return []ast.Node{v.Object, v.Property}
	case *ast.Call:
		cs := append([]ast.Node{v.Callee}, v.Args...)
		return cs
	case *ast.Unary:
		return []ast.Node{v.Argument}
	case *ast.Binary:
		return []ast.Node{v.Left, v.Right}
	case *ast.Logical:
		return []ast.Node{v.Left, v.Right}
	case *ast.Conditional:
		return []ast.Node{v.Test, v.Consequent, v.Alternate}
	case *ast.Array:
		return v.Elements
	case *ast.Object:
		cs := make([]ast.Node, 0, len(v.Properties)*2)
		for _, p := range v.Properties {
			cs = append(cs, p.Key, p.Value)
		}
		return cs
	case *ast.Arrow:
		return []ast.Node{v.Body}
	default:
		return nil
	}
}

// isSimple holds iff every node in root is in {identifier, member,
// literal, binary, logical} and neither call nor conditional appears
// anywhere in the tree.
func isSimple(root ast.Node) bool {
	simple := true
	ast.Walk(root, func(n ast.Node) bool {
		switch n.(type) {
		case *ast.Identifier, *ast.Member, *ast.Literal, *ast.Binary, *ast.Logical:
			return true
		default:
			simple = false
			return false
		}
	})
	return simple
}

// memoryEstimate tallies a byte estimate for root using fixed
// per-variant constants, with strings weighted by code-unit length
// times two, grounded on
// _examples/other_examples/52341fa0_flowbaker-flowbaker__...parser.go's
// estimateMemoryUsage.
func memoryEstimate(root ast.Node) int64 {
	var total int64
	ast.Walk(root, func(n ast.Node) bool {
		switch v := n.(type) {
		case *ast.Literal:
			if s, ok := v.Value.(string); ok {
				total += int64(len(s) * 2)
			} else {
				total += 8
			}
		case *ast.Array:
			total += 64
		case *ast.Object:
			total += 128
		case *ast.Call:
			total += 32
		default:
			total += 16
		}
		return true
	})
	return total
}
