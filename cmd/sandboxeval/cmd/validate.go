package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sandboxeval/sandboxeval/internal/security"
	"github.com/sandboxeval/sandboxeval/pkg/sandboxeval"
)

var validateCmd = &cobra.Command{
	Use:   "validate [expression]",
	Short: "Run the security validator over an expression without executing it",
	Long: `Parse an expression and run the security audit (blocked
identifiers, call-target allowlisting, and any custom rules) without
evaluating it, printing every violation found.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	expression, err := readExpressionInput(args)
	if err != nil {
		return err
	}

	engine, err := sandboxeval.New()
	if err != nil {
		return err
	}

	result := engine.Validate(expression)
	if result.Error != "" {
		fmt.Fprintf(os.Stderr, "parse error: %s\n", result.Error)
		return fmt.Errorf("validation could not run")
	}

	if result.Valid {
		fmt.Println("valid: no violations found")
		return nil
	}

	for _, v := range result.Violations {
		label := "warning"
		printer := color.New(color.FgYellow)
		if v.Severity == security.SeverityError {
			label = "error"
			printer = color.New(color.FgRed, color.Bold)
		}
		if useColor() {
			printer.Fprintf(os.Stdout, "[%s] %s", label, v.Type)
		} else {
			fmt.Printf("[%s] %s", label, v.Type)
		}
		fmt.Printf(" at %s: %s\n", v.Pos, v.Message)
		if v.Suggestion != "" {
			fmt.Printf("    suggestion: %s\n", v.Suggestion)
		}
	}

	return fmt.Errorf("validation found %d violation(s)", len(result.Violations))
}
