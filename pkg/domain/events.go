package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventNodeVisit   EventType = "node_visit"
	EventDeadEnd     EventType = "dead_end"
	EventPathFound   EventType = "path_found"
	EventSearchStart EventType = "search_start"
	EventSearchEnd   EventType = "search_end"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time  `json:"timestamp"`
	Type      EventType  `json:"type"`
	Mode      SearchMode `json:"mode"`
}

// NodeEvent represents entering a node, or abandoning a branch at it.
type NodeEvent struct {
	EventBase
	NodeID string `json:"node_id"`
	Depth  int    `json:"depth"`
}

// PathEvent represents a complete path being recorded.
type PathEvent struct {
	EventBase
	Path  Path `json:"path"`
	Count int  `json:"count"`
}

// SearchEvent represents the start or end of a search run.
type SearchEvent struct {
	EventBase
	Goal     Goal          `json:"goal"`
	Outcome  Outcome       `json:"outcome,omitempty"`
	Paths    int           `json:"paths"`
	Explored int           `json:"explored"`
	Duration time.Duration `json:"duration,omitempty"`
}

// LifecycleHooks defines callbacks for search observability.
// Hooks run synchronously on the search goroutine and must be cheap.
type LifecycleHooks struct {
	OnSearchStart func(context.Context, *SearchEvent)
	OnSearchEnd   func(context.Context, *SearchEvent)
	OnNodeVisit   func(context.Context, *NodeEvent)
	OnDeadEnd     func(context.Context, *NodeEvent)
	OnPathFound   func(context.Context, *PathEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnSearchStart: chain(h.OnSearchStart, other.OnSearchStart),
		OnSearchEnd:   chain(h.OnSearchEnd, other.OnSearchEnd),
		OnNodeVisit:   chain(h.OnNodeVisit, other.OnNodeVisit),
		OnDeadEnd:     chain(h.OnDeadEnd, other.OnDeadEnd),
		OnPathFound:   chain(h.OnPathFound, other.OnPathFound),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
