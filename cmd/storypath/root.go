package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/storypath"
	"github.com/aretw0/storypath/internal/cli"
	"github.com/aretw0/storypath/internal/config"
	"github.com/aretw0/storypath/pkg/domain"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "storypath",
	Short: "storypath finds the highest scoring route through a branching story",
	Long: `storypath explores every route through a branching narrative, scores each
complete route by the markers it collects and the ending it reaches, and
replays the best one scene by scene.

Without a subcommand it starts the interactive menu.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd, domain.LifecycleHooks{})
		if err != nil {
			return err
		}
		sc := cli.NewSignalContext(cmd.Context())
		defer sc.Cancel()

		app := cli.NewApp(env.engine, env.cfg, os.Stdin, os.Stdout, env.logger)
		return cli.HandleExecutionError(app.Run(sc))
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("file", "f", "", "Story document (JSON or YAML); overrides story_file")
	rootCmd.PersistentFlags().String("config", "", "Config file (default storypath.yaml if present)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging of search events")
	rootCmd.PersistentFlags().Bool("fallback", false, "Use the built-in fallback story when the story fails to load")
}

// environment is what every command needs after flag parsing.
type environment struct {
	cfg    config.Config
	logger *slog.Logger
	engine *storypath.Engine
}

// loadConfig reads the config file and the logger settings from the persistent flags.
func loadConfig(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	configPath, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")

	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, nil, err
	}
	logger, err := cli.CreateLogger(cfg.LogLevel, debug)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger, nil
}

// setup loads the configuration and the story engine.
func setup(cmd *cobra.Command, hooks domain.LifecycleHooks) (*environment, error) {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	file, _ := cmd.Flags().GetString("file")
	fallback, _ := cmd.Flags().GetBool("fallback")
	debug, _ := cmd.Flags().GetBool("debug")

	engine, err := cli.CreateEngine(cfg, cli.EngineOptions{
		StoryFile: file,
		Fallback:  fallback,
		Debug:     debug,
		Hooks:     hooks,
	}, logger)
	if err != nil {
		return nil, err
	}
	return &environment{cfg: cfg, logger: logger, engine: engine}, nil
}
