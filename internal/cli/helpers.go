package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/storypath/internal/logging"
	"github.com/aretw0/storypath/internal/playback"
	"github.com/aretw0/storypath/pkg/domain"
	"golang.org/x/term"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// CreateLogger configures the application logger.
// Debug forces debug level; otherwise the configured level applies.
// Logs go to stderr so they never interleave with playback on stdout.
func CreateLogger(level string, debug bool) (*slog.Logger, error) {
	if debug {
		return logging.New(slog.LevelDebug), nil
	}
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return logging.New(lvl), nil
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// PrintSystemMessage prints a standardized system message.
func PrintSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

// DebugHooks logs every search event at debug level.
func DebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSearchStart: func(ctx context.Context, e *domain.SearchEvent) {
			logger.Debug("Search Start", "mode", e.Mode, "ending", e.Goal.Ending, "target", e.Goal.Target)
		},
		OnNodeVisit: func(ctx context.Context, e *domain.NodeEvent) {
			logger.Debug("Visit Node", "node_id", e.NodeID, "depth", e.Depth)
		},
		OnDeadEnd: func(ctx context.Context, e *domain.NodeEvent) {
			logger.Debug("Dead End", "node_id", e.NodeID, "depth", e.Depth)
		},
		OnPathFound: func(ctx context.Context, e *domain.PathEvent) {
			logger.Debug("Path Found", "count", e.Count, "score", e.Path.Score())
		},
		OnSearchEnd: func(ctx context.Context, e *domain.SearchEvent) {
			logger.Debug("Search End", "outcome", e.Outcome, "paths", e.Paths, "explored", e.Explored, "duration", e.Duration)
		},
	}
}

// IsInterrupted reports whether err means the user stopped the program
// rather than something failing.
func IsInterrupted(err error) bool {
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, playback.ErrQuit) ||
		errors.Is(err, playback.ErrInputClosed)
}

// HandleExecutionError turns interruptions into a clean exit.
func HandleExecutionError(err error) error {
	if err == nil || IsInterrupted(err) {
		return nil
	}
	return err
}
