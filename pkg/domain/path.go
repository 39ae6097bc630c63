package domain

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Scoring weights. Markers count once per path; bonuses apply to completed paths.
const (
	MarkerPoints = 10

	BonusBest    = 50
	BonusSecret  = 30
	BonusGood    = 20
	BonusDefault = 10
)

// EndingBonus returns the score bonus for an ending category.
// Matching is case-insensitive; unrecognized categories earn BonusDefault.
func EndingBonus(category string) int {
	switch strings.ToLower(category) {
	case "best":
		return BonusBest
	case "secret":
		return BonusSecret
	case "good":
		return BonusGood
	default:
		return BonusDefault
	}
}

// Path is an immutable traversal through a Story.
// Every operation returns a new Path and leaves the receiver untouched.
// The zero value is an empty, open path.
type Path struct {
	nodes    []string
	choices  []Choice
	markers  map[string]struct{}
	ending   string
	complete bool
}

// Extend appends a node, the optional choice that led to it and the
// markers it grants. Extend never completes the path.
func (p Path) Extend(nodeID string, choice *Choice, markers []string) Path {
	next := p.clone(len(markers))
	next.nodes = append(next.nodes, nodeID)
	if choice != nil {
		next.choices = append(next.choices, *choice)
	}
	for _, m := range markers {
		next.markers[m] = struct{}{}
	}
	return next
}

// Choose records the choice taken from the last node, before its
// destination is appended.
func (p Path) Choose(choice Choice) Path {
	next := p.clone(0)
	next.choices = append(next.choices, choice)
	return next
}

// Complete marks the path as finished with the given ending category.
// Nodes, choices and markers are unchanged.
func (p Path) Complete(category string) Path {
	next := p.clone(0)
	next.ending = category
	next.complete = true
	return next
}

// Score is 10 points per distinct marker plus the ending bonus.
// Open paths have no ending and earn no bonus.
func (p Path) Score() int {
	score := MarkerPoints * len(p.markers)
	if p.complete {
		score += EndingBonus(p.ending)
	}
	return score
}

// Nodes returns the visited node IDs in order.
func (p Path) Nodes() []string { return slices.Clone(p.nodes) }

// Choices returns the choices taken in order.
func (p Path) Choices() []Choice { return slices.Clone(p.choices) }

// Markers returns the collected markers, sorted.
func (p Path) Markers() []string { return slices.Sorted(maps.Keys(p.markers)) }

// MarkerCount returns the number of distinct collected markers.
func (p Path) MarkerCount() int { return len(p.markers) }

// HasMarker reports whether the marker was collected.
func (p Path) HasMarker(id string) bool {
	_, ok := p.markers[id]
	return ok
}

// Ending returns the ending category of a completed path.
func (p Path) Ending() (string, bool) { return p.ending, p.complete }

// IsComplete reports whether the path reached a terminal node.
func (p Path) IsComplete() bool { return p.complete }

// Len returns the number of visited nodes.
func (p Path) Len() int { return len(p.nodes) }

// Last returns the last visited node.
func (p Path) Last() (string, bool) {
	if len(p.nodes) == 0 {
		return "", false
	}
	return p.nodes[len(p.nodes)-1], true
}

// Equal reports structural equality.
func (p Path) Equal(o Path) bool {
	return p.complete == o.complete &&
		p.ending == o.ending &&
		slices.Equal(p.nodes, o.nodes) &&
		slices.Equal(p.choices, o.choices) &&
		maps.Equal(p.markers, o.markers)
}

func (p Path) String() string {
	s := fmt.Sprintf("%s (markers: %d, score: %d)", strings.Join(p.nodes, " -> "), len(p.markers), p.Score())
	if p.complete {
		s += " [" + p.ending + "]"
	}
	return s
}

func (p Path) clone(extraMarkers int) Path {
	next := Path{
		nodes:    slices.Clip(p.nodes),
		choices:  slices.Clip(p.choices),
		markers:  make(map[string]struct{}, len(p.markers)+extraMarkers),
		ending:   p.ending,
		complete: p.complete,
	}
	maps.Copy(next.markers, p.markers)
	return next
}

type pathJSON struct {
	Nodes    []string `json:"nodes"`
	Choices  []Choice `json:"choices"`
	Markers  []string `json:"markers"`
	Ending   string   `json:"ending,omitempty"`
	Complete bool     `json:"complete"`
	Score    int      `json:"score"`
}

// MarshalJSON encodes the path with its derived score.
func (p Path) MarshalJSON() ([]byte, error) {
	return json.Marshal(pathJSON{
		Nodes:    p.Nodes(),
		Choices:  p.Choices(),
		Markers:  p.Markers(),
		Ending:   p.ending,
		Complete: p.complete,
		Score:    p.Score(),
	})
}

// UnmarshalJSON decodes a path. The encoded score is ignored and recomputed.
func (p *Path) UnmarshalJSON(data []byte) error {
	var raw pathJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	next := Path{
		nodes:    raw.Nodes,
		choices:  raw.Choices,
		markers:  make(map[string]struct{}, len(raw.Markers)),
		ending:   raw.Ending,
		complete: raw.Complete,
	}
	for _, m := range raw.Markers {
		next.markers[m] = struct{}{}
	}
	*p = next
	return nil
}
