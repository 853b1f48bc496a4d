package cmd

import (
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/maruel/natural"
	"github.com/spf13/cobra"

	"github.com/sandboxeval/sandboxeval/pkg/sandboxeval"
)

var functionsCategory string

var functionsCmd = &cobra.Command{
	Use:   "functions",
	Short: "Inspect the registered safe-function catalog",
}

var functionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered function names",
	RunE:  runFunctionsList,
}

var functionsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print function registry totals by category",
	RunE:  runFunctionsStats,
}

func init() {
	rootCmd.AddCommand(functionsCmd)
	functionsCmd.AddCommand(functionsListCmd)
	functionsCmd.AddCommand(functionsStatsCmd)

	functionsListCmd.Flags().StringVar(&functionsCategory, "category", "", "restrict the listing to one category")
}

func runFunctionsList(_ *cobra.Command, _ []string) error {
	engine, err := sandboxeval.New()
	if err != nil {
		return err
	}

	names := engine.ListFunctions(functionsCategory)
	sort.Slice(names, func(i, j int) bool { return natural.Less(names[i], names[j]) })
	for _, n := range names {
		fmt.Println(n)
	}
	return nil
}

func runFunctionsStats(_ *cobra.Command, _ []string) error {
	engine, err := sandboxeval.New()
	if err != nil {
		return err
	}

	stats := engine.FunctionStats()
	fmt.Printf("Total functions: %s\n", humanize.Comma(int64(stats.Total)))

	categories := make([]string, 0, len(stats.ByCategory))
	for c := range stats.ByCategory {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return natural.Less(categories[i], categories[j]) })
	for _, c := range categories {
		fmt.Printf("  %-12s %s\n", c, humanize.Comma(int64(stats.ByCategory[c])))
	}
	return nil
}
