package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/storypath/internal/cli"
	"github.com/aretw0/storypath/internal/validator"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the story for consistency",
	Long: `Loads the story and reports structural errors: a missing start node,
dangling choices, endings without a category and stories without any ending.
Nodes that cannot be reached from the start node are listed as warnings.

With --path a,b,c the node sequence is also checked against the story.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(cmd); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringSlice("path", nil, "Comma separated node IDs to check as a path")
}

func runValidate(cmd *cobra.Command) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	file, _ := cmd.Flags().GetString("file")
	nodes, _ := cmd.Flags().GetStringSlice("path")

	engine, err := cli.CreateEngine(cfg, cli.EngineOptions{StoryFile: file}, logger)
	if err != nil {
		if errs := validator.Errors(err); len(errs) > 0 {
			for _, e := range errs {
				fmt.Printf("  - %v\n", e)
			}
			return fmt.Errorf("%d structural errors", len(errs))
		}
		return err
	}
	story := engine.Story()

	for _, id := range validator.Unreachable(story) {
		fmt.Printf("warning: node %q is unreachable from %q\n", id, story.StartID())
	}
	fmt.Printf("Story is valid! ✅ (%s)\n", story)

	if len(nodes) == 0 {
		return nil
	}
	path, err := story.WalkPath(nodes)
	if err != nil {
		return err
	}
	state := "open"
	if ending, ok := path.Ending(); ok {
		state = "complete, ending " + ending
	}
	fmt.Printf("Path is valid: %s (%s)\n", strings.Join(path.Nodes(), " -> "), state)
	fmt.Printf("Score: %d\n", path.Score())
	return nil
}

