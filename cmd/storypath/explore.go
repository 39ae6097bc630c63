package main

import (
	"errors"
	"os"

	"github.com/aretw0/storypath/internal/cli"
	"github.com/aretw0/storypath/internal/playback"
	"github.com/aretw0/storypath/pkg/domain"
	"github.com/spf13/cobra"
)

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Walk the story freely, choosing at every scene",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd, domain.LifecycleHooks{})
		if err != nil {
			return err
		}
		sc := cli.NewSignalContext(cmd.Context())
		defer sc.Cancel()

		player := cli.CreatePlayer(env.engine.Story(), env.cfg.Playback, os.Stdin, os.Stdout, env.logger)
		path, err := player.Explore(sc)
		if errors.Is(err, playback.ErrDeadEnd) {
			env.logger.Info("exploration stopped at a dead end", "nodes", path.Len())
			return nil
		}
		return cli.HandleExecutionError(err)
	},
}

func init() {
	rootCmd.AddCommand(exploreCmd)
}
