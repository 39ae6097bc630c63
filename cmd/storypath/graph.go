package main

import (
	"fmt"

	"github.com/aretw0/storypath/internal/presentation/graph"
	"github.com/aretw0/storypath/pkg/domain"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the story graph visualization",
	Long: `Outputs a Mermaid diagram (graph TD) of the story. With --best the optimal
path is highlighted and nodes no search reached are dimmed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd, domain.LifecycleHooks{})
		if err != nil {
			return err
		}
		best, _ := cmd.Flags().GetBool("best")

		var overlay *graph.GraphOverlay
		if best {
			res, err := env.engine.FindOptimalPath(cmd.Context(), "")
			if err != nil {
				return err
			}
			overlay = &graph.GraphOverlay{Visits: res.VisitCounts()}
			if p, ok := res.Best(); ok {
				overlay.Path = p.Nodes()
			}
		}

		fmt.Print(graph.GenerateMermaid(env.engine.Story(), overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().Bool("best", false, "Highlight the optimal path")
}
