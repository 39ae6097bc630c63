package runtime

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/storypath/pkg/domain"
)

// walker is the state of a single search run.
type walker struct {
	ctx    context.Context
	story  *domain.Story
	goal   domain.Goal
	accept func(domain.Node) bool
	hooks  domain.LifecycleHooks
	logger *slog.Logger
	every  int
	start  time.Time

	paths    []domain.Path
	visits   map[string]int
	explored int

	// onPath holds the nodes of the current branch. Entries are removed
	// on the way back up, so sibling branches never see each other.
	onPath map[string]struct{}
}

// traverse visits nodeID carrying the path that led to it.
func (w *walker) traverse(nodeID string, path domain.Path, depth int) error {
	if err := w.ctx.Err(); err != nil {
		return err
	}
	w.explored++

	node, ok := w.story.Node(nodeID)
	if !ok {
		w.deadEnd(nodeID, depth)
		return nil
	}
	w.visits[nodeID]++
	if w.hooks.OnNodeVisit != nil {
		w.hooks.OnNodeVisit(w.ctx, &domain.NodeEvent{
			EventBase: w.event(domain.EventNodeVisit),
			NodeID:    nodeID,
			Depth:     depth,
		})
	}

	path = path.Extend(nodeID, nil, node.Markers)

	if node.Terminal {
		if w.accept(node) {
			w.record(path.Complete(node.Ending))
		}
		return nil
	}

	if len(node.Choices) == 0 {
		w.deadEnd(nodeID, depth)
		return nil
	}

	w.onPath[nodeID] = struct{}{}
	defer delete(w.onPath, nodeID)

	for _, choice := range node.Choices {
		if _, seen := w.onPath[choice.Destination]; seen {
			continue
		}
		if err := w.traverse(choice.Destination, path.Choose(choice), depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) record(p domain.Path) {
	w.paths = append(w.paths, p)
	n := len(w.paths)

	if w.every > 0 && n%w.every == 0 {
		w.logger.Debug("search progress", "mode", w.goal.Mode, "paths", n, "explored", w.explored)
	}
	if w.hooks.OnPathFound != nil {
		w.hooks.OnPathFound(w.ctx, &domain.PathEvent{
			EventBase: w.event(domain.EventPathFound),
			Path:      p,
			Count:     n,
		})
	}
}

func (w *walker) deadEnd(nodeID string, depth int) {
	if w.hooks.OnDeadEnd != nil {
		w.hooks.OnDeadEnd(w.ctx, &domain.NodeEvent{
			EventBase: w.event(domain.EventDeadEnd),
			NodeID:    nodeID,
			Depth:     depth,
		})
	}
}

func (w *walker) event(t domain.EventType) domain.EventBase {
	return domain.EventBase{Timestamp: time.Now(), Type: t, Mode: w.goal.Mode}
}
