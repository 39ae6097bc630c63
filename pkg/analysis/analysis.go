package analysis

import (
	"cmp"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/aretw0/storypath/pkg/domain"
)

// Summary aggregates the complete paths of a search.
type Summary struct {
	Paths       int     `json:"paths"`
	Explored    int     `json:"explored"`
	MinScore    int     `json:"min_score"`
	MaxScore    int     `json:"max_score"`
	MeanScore   float64 `json:"mean_score"`
	MeanMarkers float64 `json:"mean_markers"`
	MeanLength  float64 `json:"mean_length"`
}

// Summarize computes score, marker and length statistics over all complete paths.
func Summarize(res *domain.SearchResult) Summary {
	paths := res.Paths()
	s := Summary{Paths: len(paths), Explored: res.ExploredPaths()}
	if len(paths) == 0 {
		return s
	}

	scores := make([]float64, len(paths))
	markers := make([]float64, len(paths))
	lengths := make([]float64, len(paths))
	for i, p := range paths {
		scores[i] = float64(p.Score())
		markers[i] = float64(p.MarkerCount())
		lengths[i] = float64(p.Len())
	}

	s.MinScore = int(floats.Min(scores))
	s.MaxScore = int(floats.Max(scores))
	s.MeanScore = stat.Mean(scores, nil)
	s.MeanMarkers = stat.Mean(markers, nil)
	s.MeanLength = stat.Mean(lengths, nil)
	return s
}

// TopN returns the first n selection candidates of a search, best first.
// With a preferred category these are the matching paths only, so the head
// of the list is always the result's best path. Ties keep discovery order.
func TopN(res *domain.SearchResult, n int) []domain.Path {
	paths := res.Ranked()
	if n >= 0 && n < len(paths) {
		paths = paths[:n]
	}
	return paths
}

// Count is a labeled tally.
type Count struct {
	Key     string  `json:"key"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// EndingDistribution counts complete paths per ending category, most
// frequent first and alphabetical among equals.
func EndingDistribution(res *domain.SearchResult) []Count {
	paths := res.Paths()
	tally := make(map[string]int)
	for _, p := range paths {
		if e, ok := p.Ending(); ok {
			tally[e]++
		}
	}
	return sorted(tally, len(paths))
}

// MarkerFrequency reports, for each marker, how many complete paths collect
// it and what share of all paths that is. At most n entries are returned;
// n < 0 returns all.
func MarkerFrequency(res *domain.SearchResult, n int) []Count {
	paths := res.Paths()
	tally := make(map[string]int)
	for _, p := range paths {
		for _, m := range p.Markers() {
			tally[m]++
		}
	}
	out := sorted(tally, len(paths))
	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// CollectionRate is the share of the story's markers a path collects, in percent.
func CollectionRate(story *domain.Story, p domain.Path) float64 {
	total := story.TotalMarkerCount()
	if total == 0 {
		return 0
	}
	return float64(p.MarkerCount()) * 100 / float64(total)
}

func sorted(tally map[string]int, total int) []Count {
	out := make([]Count, 0, len(tally))
	for k, c := range tally {
		var pct float64
		if total > 0 {
			pct = float64(c) * 100 / float64(total)
		}
		out = append(out, Count{Key: k, Count: c, Percent: pct})
	}
	slices.SortFunc(out, func(a, b Count) int {
		return cmp.Or(cmp.Compare(b.Count, a.Count), cmp.Compare(a.Key, b.Key))
	})
	return out
}
