package domain

import (
	"fmt"
	"maps"
	"slices"
)

// DefaultStartID is the start node used when a story document does not name one.
const DefaultStartID = "start"

// Story is the immutable graph a search runs over.
// It is built once by a loader and never modified afterwards.
type Story struct {
	title       string
	description string
	startID     string
	nodes       map[string]Node
	markers     map[string]string
}

// NewStory builds a Story from its parts. The inputs are copied.
// NewStory does not validate the graph; loaders run the validator before
// handing a Story to the engine.
func NewStory(title, description, startID string, nodes []Node, markerDescriptions map[string]string) *Story {
	if startID == "" {
		startID = DefaultStartID
	}
	s := &Story{
		title:       title,
		description: description,
		startID:     startID,
		nodes:       make(map[string]Node, len(nodes)),
		markers:     maps.Clone(markerDescriptions),
	}
	if s.markers == nil {
		s.markers = make(map[string]string)
	}
	for _, n := range nodes {
		s.nodes[n.ID] = n.clone()
	}
	return s
}

// Title returns the story title.
func (s *Story) Title() string { return s.title }

// Description returns the story description.
func (s *Story) Description() string { return s.description }

// StartID returns the identifier of the start node.
func (s *Story) StartID() string { return s.startID }

// Node resolves a node by ID.
func (s *Story) Node(id string) (Node, bool) {
	n, ok := s.nodes[id]
	if !ok {
		return Node{}, false
	}
	return n.clone(), true
}

// NodeCount returns the number of nodes in the story.
func (s *Story) NodeCount() int { return len(s.nodes) }

// Nodes returns every node sorted by ID.
func (s *Story) Nodes() []Node {
	out := make([]Node, 0, len(s.nodes))
	for _, id := range slices.Sorted(maps.Keys(s.nodes)) {
		out = append(out, s.nodes[id].clone())
	}
	return out
}

// EndingNodes returns the terminal nodes sorted by ID.
func (s *Story) EndingNodes() []Node {
	var out []Node
	for _, n := range s.Nodes() {
		if n.Terminal {
			out = append(out, n)
		}
	}
	return out
}

// EndingCategories returns the distinct ending categories declared by
// terminal nodes, sorted.
func (s *Story) EndingCategories() []string {
	set := make(map[string]struct{})
	for _, n := range s.nodes {
		if n.Terminal && n.Ending != "" {
			set[n.Ending] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(set))
}

// MarkerIDs returns the union of all markers granted by any node, sorted.
func (s *Story) MarkerIDs() []string {
	set := make(map[string]struct{})
	for _, n := range s.nodes {
		for _, m := range n.Markers {
			set[m] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(set))
}

// TotalMarkerCount is the size of the union of all node marker sets.
// A marker granted by several nodes counts once.
func (s *Story) TotalMarkerCount() int {
	return len(s.MarkerIDs())
}

// MarkerDescription returns the registered description of a marker, or a
// placeholder for unregistered markers.
func (s *Story) MarkerDescription(id string) string {
	if d, ok := s.markers[id]; ok {
		return d
	}
	return "Unknown: " + id
}

// MarkerDescriptions returns a copy of the registered marker descriptions.
func (s *Story) MarkerDescriptions() map[string]string {
	return maps.Clone(s.markers)
}

// IsValidPath reports whether nodeIDs can be walked in the story: the first
// node must be the start node, and every step must follow a declared choice.
func (s *Story) IsValidPath(nodeIDs []string) bool {
	return s.CheckPath(nodeIDs) == nil
}

// CheckPath is IsValidPath with a reason attached.
func (s *Story) CheckPath(nodeIDs []string) error {
	if len(nodeIDs) == 0 {
		return fmt.Errorf("%w: empty node sequence", ErrInvalidPath)
	}
	if nodeIDs[0] != s.startID {
		return fmt.Errorf("%w: must begin at %q, got %q", ErrInvalidPath, s.startID, nodeIDs[0])
	}
	for i := 0; i < len(nodeIDs)-1; i++ {
		cur, ok := s.nodes[nodeIDs[i]]
		if !ok {
			return fmt.Errorf("%w: %w: %s", ErrInvalidPath, ErrNodeNotFound, nodeIDs[i])
		}
		if !cur.Leads(nodeIDs[i+1]) {
			return fmt.Errorf("%w: no choice from %q to %q", ErrInvalidPath, nodeIDs[i], nodeIDs[i+1])
		}
	}
	if _, ok := s.nodes[nodeIDs[len(nodeIDs)-1]]; !ok {
		return fmt.Errorf("%w: %w: %s", ErrInvalidPath, ErrNodeNotFound, nodeIDs[len(nodeIDs)-1])
	}
	return nil
}

// WalkPath rebuilds the Path that follows nodeIDs through the story,
// completing it when the last node is terminal. When two choices of a node
// lead to the same destination the first declared one is taken.
func (s *Story) WalkPath(nodeIDs []string) (Path, error) {
	if err := s.CheckPath(nodeIDs); err != nil {
		return Path{}, err
	}
	var p Path
	for i, id := range nodeIDs {
		n := s.nodes[id]
		p = p.Extend(id, nil, n.Markers)
		if i == len(nodeIDs)-1 {
			if n.Terminal {
				p = p.Complete(n.Ending)
			}
			break
		}
		for _, c := range n.Choices {
			if c.Destination == nodeIDs[i+1] {
				p = p.Choose(c)
				break
			}
		}
	}
	return p, nil
}

// String returns a short human readable summary.
func (s *Story) String() string {
	return fmt.Sprintf("%s (%d nodes, %d endings, %d markers)", s.title, len(s.nodes), len(s.EndingNodes()), s.TotalMarkerCount())
}
