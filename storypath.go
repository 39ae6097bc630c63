package storypath

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/aretw0/storypath/internal/runtime"
	"github.com/aretw0/storypath/pkg/adapters/file"
	"github.com/aretw0/storypath/pkg/domain"
	"github.com/aretw0/storypath/pkg/ports"
)

// Engine is the high-level entry point for the storypath library.
// It wraps the internal search runtime and provides a simplified API for consumers.
type Engine struct {
	finder           *runtime.Finder
	story            *domain.Story
	loader           ports.StoryLoader
	hooks            domain.LifecycleHooks
	logger           *slog.Logger
	progressInterval int
	Name             string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLoader injects a custom StoryLoader, bypassing the default file loader.
func WithLoader(l ports.StoryLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithProgressInterval sets how many complete paths are found between
// progress log lines. Zero disables progress logging.
func WithProgressInterval(n int) Option {
	return func(e *Engine) {
		e.progressInterval = n
	}
}

// New loads and validates a story and prepares the search engine.
// By default, it reads the JSON or YAML story document at storyPath.
// If WithLoader option is provided, storyPath can be empty and is only used
// as a descriptive name.
func New(storyPath string, opts ...Option) (*Engine, error) {
	eng := &Engine{progressInterval: runtime.DefaultProgressInterval}

	for _, opt := range opts {
		opt(eng)
	}

	if eng.loader == nil {
		if storyPath == "" {
			return nil, fmt.Errorf("storyPath is required when no custom loader is provided")
		}
		absPath, err := filepath.Abs(storyPath)
		if err != nil {
			return nil, fmt.Errorf("invalid path: %w", err)
		}
		eng.loader = file.NewLoader(absPath)
	}
	if storyPath != "" {
		eng.Name = filepath.Base(storyPath)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("story", eng.Name)
	}

	story, err := eng.loader.Load(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to load story: %w", err)
	}
	eng.story = story
	eng.logger.Debug("story loaded", "title", story.Title(), "nodes", story.NodeCount(), "endings", len(story.EndingNodes()))

	eng.finder = runtime.NewFinder(story,
		runtime.WithLogger(eng.logger),
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithProgressInterval(eng.progressInterval),
	)
	return eng, nil
}

// Story returns the loaded story.
func (e *Engine) Story() *domain.Story {
	return e.story
}

// FindOptimalPath searches every path from the start node and returns the
// ranked result. preferredEnding restricts selection to one ending category
// (exact match); if none matches, the result falls back to all paths and
// reports domain.OutcomeCategoryFallback. Pass "" for no preference.
func (e *Engine) FindOptimalPath(ctx context.Context, preferredEnding string) (*domain.SearchResult, error) {
	return e.finder.FindOptimalPath(ctx, preferredEnding)
}

// FindOptimalPathToEnding searches the paths that reach one terminal node.
// An unknown or non-terminal target yields domain.OutcomeInvalidTarget.
func (e *Engine) FindOptimalPathToEnding(ctx context.Context, targetID string) (*domain.SearchResult, error) {
	return e.finder.FindOptimalPathToEnding(ctx, targetID)
}

// Inspect returns every node of the story for visualization or introspection tools.
func (e *Engine) Inspect() []domain.Node {
	return e.story.Nodes()
}

// Loader returns the underlying StoryLoader used by the engine.
func (e *Engine) Loader() ports.StoryLoader {
	return e.loader
}
