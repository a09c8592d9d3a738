package cmd

import (
	"github.com/dbsmedya/godrift/internal/stattest"
	"github.com/spf13/cobra"
)

var listTestsCmd = &cobra.Command{
	Use:   "list-tests",
	Short: "List the built-in statistical tests",
	Long: `List-tests displays every built-in two-sample test along with its
family, default drift threshold, and minimum sample size.

Distance tests compare numeric observations directly; frequency tests
compare category counts.

Example:
  godrift list-tests`,
	Run: runListTests,
}

func init() {
	rootCmd.AddCommand(listTestsCmd)
}

func runListTests(cmd *cobra.Command, args []string) {
	registry := stattest.NewRegistry(stattest.Options{})
	tests := registry.All()

	cmd.Printf("Built-in tests:\n\n")
	cmd.Printf("%-12s %-28s %-10s %10s %12s\n",
		"ID", "NAME", "FAMILY", "THRESHOLD", "MIN SAMPLES")

	for _, t := range tests {
		cmd.Printf("%-12s %-28s %-10s %10.2f %12d\n",
			t.ID(), t.Name(), string(t.Family()),
			t.Defaults().Drift, t.MinSampleSize())
	}

	cmd.Printf("\nTotal: %d test(s)\n", len(tests))
}
