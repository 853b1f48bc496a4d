package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"

	"github.com/sandboxeval/sandboxeval/internal/value"
	"github.com/sandboxeval/sandboxeval/pkg/sandboxeval"
)

var (
	evalContextJSON string
	evalContextFile string
	evalJSON        bool
	evalShowHoles   bool
	evalStats       bool
	evalTimeout     time.Duration
	evalStrict      bool
	evalComplexity  float64
	evalDepthCap    int
)

var evalCmd = &cobra.Command{
	Use:   "eval [expression]",
	Short: "Evaluate a sandboxed expression or template",
	Long: `Evaluate a single expression (or a {{ }}-templated string) against
an optional JSON context object, and print the result.

Examples:
  # Evaluate an inline expression
  sandboxeval eval "1 + 2 * 3"

  # Evaluate against a context
  sandboxeval eval "item.total * 1.1" --context '{"item": {"total": 10}}'

  # Evaluate a template string
  sandboxeval eval "Hello {{ item.name }}!" --context '{"item": {"name": "Ada"}}'

  # Read the expression from a file
  sandboxeval eval script.expr`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)

	evalCmd.Flags().StringVarP(&evalContextJSON, "context", "c", "", "JSON object to bind as the evaluation context")
	evalCmd.Flags().StringVar(&evalContextFile, "context-file", "", "path to a file containing the JSON context object")
	evalCmd.Flags().BoolVar(&evalJSON, "json", false, "print the result as JSON")
	evalCmd.Flags().BoolVar(&evalShowHoles, "show-holes", false, "print per-hole template diagnostics to stderr")
	evalCmd.Flags().BoolVar(&evalStats, "stats", false, "print parse metadata (complexity, depth, dependencies) to stderr")
	evalCmd.Flags().DurationVar(&evalTimeout, "timeout", 0, "execution timeout (default 5s)")
	evalCmd.Flags().BoolVar(&evalStrict, "strict", true, "run the security validator before execution")
	evalCmd.Flags().Float64Var(&evalComplexity, "complexity-cap", 0, "reject expressions above this complexity score")
	evalCmd.Flags().IntVar(&evalDepthCap, "depth-cap", 0, "reject expressions nested deeper than this")
}

func runEval(_ *cobra.Command, args []string) error {
	expression, err := readExpressionInput(args)
	if err != nil {
		return err
	}

	opts := []sandboxeval.Option{sandboxeval.WithStrictMode(evalStrict)}
	if evalTimeout > 0 {
		opts = append(opts, sandboxeval.WithTimeout(evalTimeout))
	}
	if evalComplexity > 0 {
		opts = append(opts, sandboxeval.WithComplexityCap(evalComplexity))
	}
	if evalDepthCap > 0 {
		opts = append(opts, sandboxeval.WithDepthCap(evalDepthCap))
	}

	engine, err := sandboxeval.New(opts...)
	if err != nil {
		return err
	}

	context, err := loadEvalContext(engine)
	if err != nil {
		return err
	}

	result := engine.Evaluate(expression, context)

	if evalStats {
		if parsed, perr := engine.Parse(expression); perr == nil {
			fmt.Fprintf(os.Stderr, "complexity=%.1f depth=%d memory=%s dependencies=%v functions=%v\n",
				parsed.Complexity, parsed.Depth, humanize.Bytes(uint64(parsed.MemoryEstimate)),
				parsed.Dependencies, parsed.Functions)
		}
	}

	if evalShowHoles {
		for _, h := range result.ProcessedHoles {
			fmt.Fprintf(os.Stderr, "hole %s -> %s (%d:%d)\n", h.Original, h.Evaluated, h.StartIndex, h.EndIndex)
		}
	}

	if !result.Success {
		if evalJSON {
			obj := value.NewObject().ObjectSet("success", value.False).ObjectSet("error", value.String(result.Error)).
				ObjectSet("errorType", value.String(string(result.ErrorType)))
			printJSON(engine, obj)
		} else {
			fmt.Fprintf(os.Stderr, "[%s] %s\n", result.ErrorType, result.Error)
		}
		return fmt.Errorf("evaluation failed")
	}

	if evalJSON {
		obj := value.NewObject().ObjectSet("success", value.True).ObjectSet("value", result.Value)
		printJSON(engine, obj)
	} else {
		fmt.Println(result.Value.ToDisplayString())
	}
	return nil
}

func readExpressionInput(args []string) (string, error) {
	if len(args) == 1 {
		if info, err := os.Stat(args[0]); err == nil && !info.IsDir() {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return "", fmt.Errorf("reading %s: %w", args[0], err)
			}
			return string(data), nil
		}
		return args[0], nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

// loadEvalContext resolves --context/--context-file (mutually
// exclusive; --context wins if both are set) into the evaluation
// context map, or returns nil if neither was supplied.
func loadEvalContext(engine *sandboxeval.Engine) (map[string]value.Value, error) {
	text := evalContextJSON
	if text == "" && evalContextFile != "" {
		data, err := os.ReadFile(evalContextFile)
		if err != nil {
			return nil, fmt.Errorf("reading context file %s: %w", evalContextFile, err)
		}
		text = string(data)
	}
	if text == "" {
		return nil, nil
	}
	return engine.ParseContextJSON(text)
}

func printJSON(engine *sandboxeval.Engine, v value.Value) {
	doc, err := engine.ToJSONString(v)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error: failed to render JSON output:", err)
		return
	}
	if useColor() {
		os.Stdout.Write(pretty.Color(pretty.Pretty([]byte(doc)), nil))
	} else {
		os.Stdout.Write(pretty.Pretty([]byte(doc)))
	}
}
