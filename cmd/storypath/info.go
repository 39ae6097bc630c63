package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/storypath/internal/cli"
	"github.com/aretw0/storypath/internal/presentation/tui"
	"github.com/aretw0/storypath/pkg/domain"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Describe the story and, with --analyze, every path through it",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd, domain.LifecycleHooks{})
		if err != nil {
			return err
		}
		analyze, _ := cmd.Flags().GetBool("analyze")

		out := cmd.OutOrStdout()
		if cli.IsTerminal(out) {
			tui.PrintBanner(out)
		}
		story := env.engine.Story()
		fmt.Fprintf(out, "Title: %s\n", story.Title())
		if story.Description() != "" {
			fmt.Fprintf(out, "Description: %s\n", story.Description())
		}
		fmt.Fprintf(out, "Nodes: %d\n", story.NodeCount())
		fmt.Fprintf(out, "Endings: %d\n", len(story.EndingNodes()))
		fmt.Fprintf(out, "Markers: %d\n", story.TotalMarkerCount())
		fmt.Fprintf(out, "Ending types: %s\n", strings.Join(story.EndingCategories(), ", "))

		if !analyze {
			return nil
		}
		sc := cli.NewSignalContext(cmd.Context())
		defer sc.Cancel()
		res, err := env.engine.FindOptimalPath(sc, "")
		if err != nil {
			return cli.HandleExecutionError(err)
		}
		cli.PrintAnalysis(out, res, tui.PlainStyles())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().Bool("analyze", false, "Search every path and print statistics")
}
