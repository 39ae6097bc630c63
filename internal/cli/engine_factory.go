package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/storypath"
	"github.com/aretw0/storypath/internal/config"
	"github.com/aretw0/storypath/internal/playback"
	"github.com/aretw0/storypath/internal/presentation/tui"
	"github.com/aretw0/storypath/pkg/adapters/file"
	"github.com/aretw0/storypath/pkg/adapters/memory"
	"github.com/aretw0/storypath/pkg/adapters/redis"
	"github.com/aretw0/storypath/pkg/domain"
	"github.com/aretw0/storypath/pkg/persistence/middleware"
	"github.com/aretw0/storypath/pkg/ports"
)

// EngineOptions carries the command line switches that shape engine creation.
type EngineOptions struct {
	StoryFile string
	Fallback  bool
	Debug     bool
	Hooks     domain.LifecycleHooks
}

// CreateEngine initializes a storypath engine with standard CLI conventions.
// With Fallback set, a story that fails to load is replaced by the built-in
// fallback story instead of aborting.
func CreateEngine(cfg config.Config, opts EngineOptions, logger *slog.Logger) (*storypath.Engine, error) {
	hooks := opts.Hooks
	if opts.Debug {
		hooks = hooks.Merge(DebugHooks(logger))
	}

	path := opts.StoryFile
	if path == "" {
		path = cfg.StoryFile
	}

	engineOpts := []storypath.Option{
		storypath.WithLogger(logger),
		storypath.WithLifecycleHooks(hooks),
		storypath.WithProgressInterval(cfg.Search.ProgressInterval),
	}

	engine, err := storypath.New(path, engineOpts...)
	if err == nil {
		return engine, nil
	}
	if !opts.Fallback {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}

	logger.Warn("story failed to load, using fallback story", "path", path, "err", err)
	engineOpts = append(engineOpts, storypath.WithLoader(memory.New(memory.FallbackStory())))
	return storypath.New("", engineOpts...)
}

// CreateReportStore opens the report store selected by the configuration.
// The returned close function is always safe to call.
// When an encryption key is configured, reports are sealed before they reach
// the backend.
func CreateReportStore(cfg config.Reports) (ports.ReportStore, func() error, error) {
	noop := func() error { return nil }
	active, fallback, err := cfg.Keys()
	if err != nil {
		return nil, noop, err
	}

	var store ports.ReportStore
	closeFn := noop
	switch cfg.Backend {
	case config.BackendMemory:
		store = memory.NewStore()
	case config.BackendRedis:
		rs := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, redis.WithTTL(cfg.TTL))
		store, closeFn = rs, rs.Close
	case config.BackendFile, "":
		store = file.NewStore(cfg.Dir)
	default:
		return nil, noop, fmt.Errorf("unknown report backend %q", cfg.Backend)
	}

	if active != nil {
		store = middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
			ActiveKey:    active,
			FallbackKeys: fallback,
		})(store)
	}
	return store, closeFn, nil
}

// CreatePlayer builds a playback.Player for the terminal.
// Delays, colors and markdown rendering are only enabled when out is a TTY.
func CreatePlayer(story *domain.Story, cfg config.Playback, in io.Reader, out io.Writer, logger *slog.Logger) *playback.Player {
	opts := []playback.Option{
		playback.WithInput(in),
		playback.WithOutput(out),
		playback.WithWrapWidth(cfg.WrapWidth),
		playback.WithLogger(logger),
	}

	if IsTerminal(out) && cfg.Enabled {
		opts = append(opts,
			playback.WithDelays(cfg.Delay, cfg.InitialDelay),
			playback.WithStyles(tui.DefaultStyles()),
			playback.WithRenderer(tui.NewRenderer(cfg.WrapWidth)),
		)
	} else {
		opts = append(opts, playback.WithDelays(0, 0))
	}
	return playback.New(story, opts...)
}
