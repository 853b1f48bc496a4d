package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "sandboxeval",
	Short: "Sandboxed expression evaluator",
	Long: `sandboxeval evaluates a restricted JavaScript-like expression
language against a caller-supplied context, with a closed AST, a
security validator, and a tree-walking evaluator in between.

It supports two input shapes: a bare expression ("item.total * 2") and
a template string with one or more {{ expression }} holes, evaluated
and spliced back into the surrounding text.`,
	Version: Version,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// useColor decides whether diagnostics should colorize, mirroring the
// CLI layer's auto-detection described in SPEC_FULL's Errors section:
// on when stdout is a terminal, off otherwise (e.g. piped/redirected).
func useColor() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
