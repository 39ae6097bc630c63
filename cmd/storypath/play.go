package main

import (
	"fmt"
	"os"

	"github.com/aretw0/storypath/internal/cli"
	"github.com/aretw0/storypath/pkg/domain"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Replay the optimal path scene by scene",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd, domain.LifecycleHooks{})
		if err != nil {
			return err
		}
		ending, _ := cmd.Flags().GetString("ending")
		target, _ := cmd.Flags().GetString("target")
		guided, _ := cmd.Flags().GetBool("guided")
		preview, _ := cmd.Flags().GetBool("preview")

		sc := cli.NewSignalContext(cmd.Context())
		defer sc.Cancel()

		res, err := search(sc, env.engine, ending, target)
		if err != nil {
			return cli.HandleExecutionError(err)
		}
		best, ok := res.Best()
		if !ok {
			return fmt.Errorf("nothing to play: %s", res.Outcome())
		}

		player := cli.CreatePlayer(env.engine.Story(), env.cfg.Playback, os.Stdin, os.Stdout, env.logger)
		switch {
		case preview:
			return player.Preview(best)
		case guided:
			return cli.HandleExecutionError(player.Guide(sc, best))
		default:
			return cli.HandleExecutionError(player.Play(sc, best))
		}
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().StringP("ending", "e", "", "Preferred ending category")
	playCmd.Flags().StringP("target", "t", "", "Only paths reaching this ending node")
	playCmd.Flags().Bool("guided", false, "Ask for each choice and compare it with the optimal one")
	playCmd.Flags().Bool("preview", false, "Print a compact listing without pauses")
	playCmd.MarkFlagsMutuallyExclusive("ending", "target")
	playCmd.MarkFlagsMutuallyExclusive("guided", "preview")
}
