package validator

import (
	"fmt"

	"github.com/aretw0/storypath/pkg/domain"
)

// ValidateStory checks the structural invariants a story must satisfy before
// it is searched: the start node exists, at least one node is terminal, every
// choice destination resolves, and ending categories are set exactly on
// terminal nodes. All failures are collected into an *AggregateError.
func ValidateStory(story *domain.Story) error {
	var errs []error

	if _, ok := story.Node(story.StartID()); !ok {
		errs = append(errs, &StructuralError{
			Reason: fmt.Sprintf("no node with id %q", story.StartID()),
			Err:    domain.ErrStartNodeNotFound,
		})
	}

	terminals := 0
	for _, n := range story.Nodes() {
		if n.Terminal {
			terminals++
			if n.Ending == "" {
				errs = append(errs, &StructuralError{NodeID: n.ID, Reason: "terminal node has no ending category", Err: domain.ErrEndingCategoryMismatch})
			}
		} else if n.Ending != "" {
			errs = append(errs, &StructuralError{NodeID: n.ID, Reason: fmt.Sprintf("non-terminal node declares ending %q", n.Ending), Err: domain.ErrEndingCategoryMismatch})
		}

		for _, c := range n.Choices {
			if _, ok := story.Node(c.Destination); !ok {
				errs = append(errs, &StructuralError{
					NodeID: n.ID,
					Reason: fmt.Sprintf("choice %d leads to %q", c.ID, c.Destination),
					Err:    domain.ErrDanglingChoice,
				})
			}
		}
	}
	if terminals == 0 {
		errs = append(errs, &StructuralError{Reason: "at least one node must be terminal", Err: domain.ErrNoEndingNodes})
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

// Unreachable returns the IDs of nodes that cannot be reached from the start
// node, sorted. Unreachable nodes are legal but usually an authoring mistake.
func Unreachable(story *domain.Story) []string {
	visited := make(map[string]bool)
	queue := []string{story.StartID()}

	for len(queue) > 0 {
		currentID := queue[0]
		queue = queue[1:]

		if visited[currentID] {
			continue
		}
		visited[currentID] = true

		node, ok := story.Node(currentID)
		if !ok || node.Terminal {
			continue
		}
		for _, c := range node.Choices {
			if !visited[c.Destination] {
				queue = append(queue, c.Destination)
			}
		}
	}

	var out []string
	for _, n := range story.Nodes() {
		if !visited[n.ID] {
			out = append(out, n.ID)
		}
	}
	return out
}
