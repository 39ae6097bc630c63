package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/storypath"
	"github.com/aretw0/storypath/internal/cli"
	"github.com/aretw0/storypath/pkg/analysis"
	"github.com/aretw0/storypath/pkg/domain"
	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Find the highest scoring path",
	Long: `Explores every simple path from the start node and prints the best one.

--ending prefers an ending category (exact match); when no path reaches it,
the best path overall is shown instead. --target restricts the search to one
ending node.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd, domain.LifecycleHooks{})
		if err != nil {
			return err
		}
		ending, _ := cmd.Flags().GetString("ending")
		target, _ := cmd.Flags().GetString("target")
		save, _ := cmd.Flags().GetBool("save")
		top, _ := cmd.Flags().GetInt("top")
		asJSON, _ := cmd.Flags().GetBool("json")
		if top <= 0 {
			top = env.cfg.Search.TopN
		}

		sc := cli.NewSignalContext(cmd.Context())
		defer sc.Cancel()

		res, err := search(sc, env.engine, ending, target)
		if err != nil {
			return cli.HandleExecutionError(err)
		}
		report := analysis.BuildReport(env.engine.Story(), res, top)

		if save {
			store, closeStore, err := cli.CreateReportStore(env.cfg.Reports)
			if err != nil {
				return err
			}
			defer closeStore()
			if err := store.Save(sc, report); err != nil {
				return fmt.Errorf("failed to save report: %w", err)
			}
			env.logger.Info("report saved", "id", report.ID, "backend", env.cfg.Reports.Backend)
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}
		printResult(os.Stdout, res, top)
		if save {
			cli.PrintSystemMessage(os.Stdout, "Report saved as %s", report.ID)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(findCmd)
	findCmd.Flags().StringP("ending", "e", "", "Preferred ending category")
	findCmd.Flags().StringP("target", "t", "", "Only paths reaching this ending node")
	findCmd.Flags().Bool("save", false, "Persist the result as a report")
	findCmd.Flags().Int("top", 0, "Number of ranked paths to show (default from config)")
	findCmd.Flags().Bool("json", false, "Print the report as JSON")
	findCmd.MarkFlagsMutuallyExclusive("ending", "target")
}

// search runs the target search when target is set and the category search otherwise.
func search(ctx context.Context, engine *storypath.Engine, ending, target string) (*domain.SearchResult, error) {
	if target != "" {
		return engine.FindOptimalPathToEnding(ctx, target)
	}
	return engine.FindOptimalPath(ctx, ending)
}

func printResult(w io.Writer, res *domain.SearchResult, top int) {
	switch res.Outcome() {
	case domain.OutcomeInvalidTarget:
		fmt.Fprintf(w, "%q is not an ending of this story.\n", res.Goal().Target)
		return
	case domain.OutcomeNoPath:
		fmt.Fprintln(w, "No complete path found.")
		return
	case domain.OutcomeCategoryFallback:
		fmt.Fprintf(w, "No path reaches a %q ending; showing the best path overall.\n", res.Goal().Ending)
	}

	best, _ := res.Best()
	fmt.Fprintf(w, "Optimal path: %s\n", best)
	for i, c := range best.Choices() {
		fmt.Fprintf(w, "  %d. %s\n", i+1, c.Text)
	}
	fmt.Fprintf(w, "Explored %d paths, %d complete.\n", res.ExploredPaths(), len(res.Paths()))

	ranked := analysis.TopN(res, top)
	if len(ranked) > 1 {
		fmt.Fprintln(w, "\nTop paths:")
		for i, p := range ranked {
			fmt.Fprintf(w, "%d. %s\n", i+1, p)
		}
	}
}
