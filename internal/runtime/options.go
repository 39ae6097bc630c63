package runtime

import (
	"log/slog"

	"github.com/aretw0/storypath/pkg/domain"
)

// DefaultProgressInterval is how many complete paths are found between
// progress log lines.
const DefaultProgressInterval = 10

// FinderOption configures a Finder.
type FinderOption func(*Finder)

// WithLogger sets the structured logger used by the finder.
func WithLogger(logger *slog.Logger) FinderOption {
	return func(f *Finder) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) FinderOption {
	return func(f *Finder) {
		f.hooks = hooks
	}
}

// WithProgressInterval sets how often (in complete paths found) progress is
// logged. Zero or negative disables progress logging.
func WithProgressInterval(n int) FinderOption {
	return func(f *Finder) {
		f.progressInterval = n
	}
}
