package runtime

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/storypath/pkg/domain"
)

// Finder runs exhaustive path searches over a Story.
// A Finder holds no per-run state; every search builds its own walker, so a
// Finder may be reused for sequential searches.
type Finder struct {
	story            *domain.Story
	logger           *slog.Logger
	hooks            domain.LifecycleHooks
	progressInterval int
}

// NewFinder creates a finder for an already validated story.
func NewFinder(story *domain.Story, opts ...FinderOption) *Finder {
	f := &Finder{
		story:            story,
		logger:           slog.New(slog.NewJSONHandler(io.Discard, nil)),
		progressInterval: DefaultProgressInterval,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Story returns the story the finder searches.
func (f *Finder) Story() *domain.Story {
	return f.story
}

// FindOptimalPath enumerates every simple path from the start node to any
// terminal node and selects the highest scoring one.
//
// If preferred is not empty, selection is restricted to paths whose ending
// category equals it exactly. When no path matches, selection falls back to
// all complete paths and the result reports OutcomeCategoryFallback.
//
// The only error returned is the context's, when the search is cancelled.
func (f *Finder) FindOptimalPath(ctx context.Context, preferred string) (*domain.SearchResult, error) {
	goal := domain.Goal{Mode: domain.ModeOptimal, Ending: preferred}
	w, err := f.run(ctx, goal, func(domain.Node) bool { return true })
	if err != nil {
		return nil, err
	}

	ranked := w.paths
	outcome := domain.OutcomeFound
	if preferred != "" {
		matching := filterPaths(w.paths, func(p domain.Path) bool {
			e, _ := p.Ending()
			return e == preferred
		})
		if len(matching) > 0 {
			ranked = matching
		} else if len(w.paths) > 0 {
			outcome = domain.OutcomeCategoryFallback
			f.logger.Debug("preferred ending unavailable, using all paths", "ending", preferred)
		}
	}
	if len(ranked) == 0 {
		outcome = domain.OutcomeNoPath
	}

	return f.finish(ctx, w, outcome, ranked), nil
}

// FindOptimalPathToEnding enumerates the simple paths from the start node
// that reach targetID and selects the highest scoring one. Other terminal
// nodes end their branch without recording a path.
//
// An unknown or non-terminal target yields OutcomeInvalidTarget without
// searching.
func (f *Finder) FindOptimalPathToEnding(ctx context.Context, targetID string) (*domain.SearchResult, error) {
	goal := domain.Goal{Mode: domain.ModeTarget, Target: targetID}

	target, ok := f.story.Node(targetID)
	if !ok || !target.Terminal {
		f.logger.Debug("invalid target ending", "target", targetID, "known", ok)
		return domain.NewSearchResult(goal, domain.OutcomeInvalidTarget, nil, nil, nil, 0), nil
	}

	w, err := f.run(ctx, goal, func(n domain.Node) bool { return n.ID == targetID })
	if err != nil {
		return nil, err
	}

	ranked := filterPaths(w.paths, func(p domain.Path) bool {
		last, _ := p.Last()
		return last == targetID
	})
	outcome := domain.OutcomeFound
	if len(ranked) == 0 {
		outcome = domain.OutcomeNoPath
	}

	return f.finish(ctx, w, outcome, ranked), nil
}

func (f *Finder) run(ctx context.Context, goal domain.Goal, accept func(domain.Node) bool) (*walker, error) {
	w := &walker{
		ctx:    ctx,
		story:  f.story,
		goal:   goal,
		accept: accept,
		hooks:  f.hooks,
		logger: f.logger,
		every:  f.progressInterval,
		visits: make(map[string]int),
		onPath: make(map[string]struct{}),
		start:  time.Now(),
	}

	f.logger.Debug("search started", "mode", goal.Mode, "ending", goal.Ending, "target", goal.Target)
	if f.hooks.OnSearchStart != nil {
		f.hooks.OnSearchStart(ctx, &domain.SearchEvent{
			EventBase: domain.EventBase{Timestamp: w.start, Type: domain.EventSearchStart, Mode: goal.Mode},
			Goal:      goal,
		})
	}

	if err := w.traverse(f.story.StartID(), domain.Path{}, 0); err != nil {
		f.logger.Warn("search cancelled", "mode", goal.Mode, "explored", w.explored, "error", err)
		return nil, err
	}
	return w, nil
}

func (f *Finder) finish(ctx context.Context, w *walker, outcome domain.Outcome, ranked []domain.Path) *domain.SearchResult {
	ranked = append([]domain.Path(nil), ranked...)
	domain.SortByScore(ranked)

	result := domain.NewSearchResult(w.goal, outcome, w.paths, ranked, w.visits, w.explored)
	elapsed := time.Since(w.start)

	attrs := []any{"mode", w.goal.Mode, "outcome", outcome, "paths", len(w.paths), "explored", w.explored, "duration", elapsed}
	if best, ok := result.Best(); ok {
		attrs = append(attrs, "best_score", best.Score())
	}
	f.logger.Info("search completed", attrs...)

	if f.hooks.OnSearchEnd != nil {
		f.hooks.OnSearchEnd(ctx, &domain.SearchEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventSearchEnd, Mode: w.goal.Mode},
			Goal:      w.goal,
			Outcome:   outcome,
			Paths:     len(w.paths),
			Explored:  w.explored,
			Duration:  elapsed,
		})
	}
	return result
}

func filterPaths(paths []domain.Path, keep func(domain.Path) bool) []domain.Path {
	var out []domain.Path
	for _, p := range paths {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
