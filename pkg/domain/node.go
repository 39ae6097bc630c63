package domain

import "slices"

// Node represents a scene in the story.
type Node struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`

	// Markers are the reward markers granted when the node is visited.
	Markers []string `json:"markers,omitempty" yaml:"markers,omitempty"`

	// Choices are the outgoing edges, in declared order.
	// Terminal nodes are never expanded, even if they declare choices.
	Choices []Choice `json:"choices,omitempty" yaml:"choices,omitempty"`

	Terminal bool `json:"terminal" yaml:"terminal"`

	// Ending is the ending category. Set iff Terminal.
	Ending string `json:"ending,omitempty" yaml:"ending,omitempty"`
}

// Choice looks up an outgoing choice by its ID.
func (n Node) Choice(id int) (Choice, bool) {
	for _, c := range n.Choices {
		if c.ID == id {
			return c, true
		}
	}
	return Choice{}, false
}

// Leads reports whether any declared choice targets the given node.
func (n Node) Leads(to string) bool {
	return slices.ContainsFunc(n.Choices, func(c Choice) bool {
		return c.Destination == to
	})
}

func (n Node) clone() Node {
	n.Markers = slices.Clone(n.Markers)
	n.Choices = slices.Clone(n.Choices)
	return n
}
