package domain

import (
	"cmp"
	"maps"
	"slices"
)

// SearchMode identifies which traversal produced a result.
type SearchMode string

const (
	ModeOptimal SearchMode = "optimal"
	ModeTarget  SearchMode = "target"
)

// Outcome describes how the best path was selected.
type Outcome string

const (
	// OutcomeFound means a best path satisfying the goal exists.
	OutcomeFound Outcome = "found"
	// OutcomeCategoryFallback means no path reached the preferred ending
	// category, so the best path was chosen among all complete paths.
	OutcomeCategoryFallback Outcome = "category_fallback"
	// OutcomeNoPath means the search recorded no complete path.
	OutcomeNoPath Outcome = "no_path"
	// OutcomeInvalidTarget means the target node is unknown or not terminal.
	OutcomeInvalidTarget Outcome = "invalid_target"
)

// Goal is the selection goal of a search run.
type Goal struct {
	Mode SearchMode `json:"mode"`
	// Ending is the preferred ending category (ModeOptimal, optional).
	Ending string `json:"ending,omitempty"`
	// Target is the terminal node to reach (ModeTarget).
	Target string `json:"target,omitempty"`
}

// SearchResult is the outcome of one search run. It is never modified after
// construction and every accessor returns a copy.
type SearchResult struct {
	goal     Goal
	outcome  Outcome
	paths    []Path
	ranked   []Path
	visits   map[string]int
	explored int
}

// NewSearchResult assembles a result. ranked must already be the filtered,
// score-ordered candidate list; its first element is the best path.
func NewSearchResult(goal Goal, outcome Outcome, paths, ranked []Path, visits map[string]int, explored int) *SearchResult {
	return &SearchResult{
		goal:     goal,
		outcome:  outcome,
		paths:    slices.Clone(paths),
		ranked:   slices.Clone(ranked),
		visits:   maps.Clone(visits),
		explored: explored,
	}
}

// Goal returns the goal the search ran with.
func (r *SearchResult) Goal() Goal { return r.goal }

// Outcome returns how the best path was selected.
func (r *SearchResult) Outcome() Outcome { return r.outcome }

// Best returns the optimal path, if any.
func (r *SearchResult) Best() (Path, bool) {
	if len(r.ranked) == 0 {
		return Path{}, false
	}
	return r.ranked[0], true
}

// CategoryUnavailable reports whether the preferred ending category matched
// no complete path.
func (r *SearchResult) CategoryUnavailable() bool {
	return r.outcome == OutcomeCategoryFallback
}

// Paths returns every recorded complete path in discovery order.
func (r *SearchResult) Paths() []Path { return slices.Clone(r.paths) }

// Ranked returns the selection candidates ordered by descending score.
// Ties keep discovery order.
func (r *SearchResult) Ranked() []Path { return slices.Clone(r.ranked) }

// PathsByEnding returns the recorded paths whose ending category equals
// category exactly, ordered by descending score with ties in discovery order.
func (r *SearchResult) PathsByEnding(category string) []Path {
	var out []Path
	for _, p := range r.paths {
		if e, ok := p.Ending(); ok && e == category {
			out = append(out, p)
		}
	}
	SortByScore(out)
	return out
}

// VisitCounts returns how many times each node was entered during the run.
func (r *SearchResult) VisitCounts() map[string]int { return maps.Clone(r.visits) }

// ExploredPaths returns the number of recursive steps the run performed.
func (r *SearchResult) ExploredPaths() int { return r.explored }

// SortByScore orders paths by descending score in place. The sort is stable,
// so equal scores keep their relative order.
func SortByScore(paths []Path) {
	slices.SortStableFunc(paths, func(a, b Path) int {
		return cmp.Compare(b.Score(), a.Score())
	})
}
