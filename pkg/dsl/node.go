package dsl

import "github.com/aretw0/storypath/pkg/domain"

// NodeBuilder provides a fluent API for configuring a node.
type NodeBuilder struct {
	node    domain.Node
	builder *Builder
}

// Title sets the scene title.
func (n *NodeBuilder) Title(title string) *NodeBuilder {
	n.node.Title = title
	return n
}

// Text sets the scene description.
func (n *NodeBuilder) Text(description string) *NodeBuilder {
	n.node.Description = description
	return n
}

// Grants adds reward markers collected when the node is visited.
func (n *NodeBuilder) Grants(markers ...string) *NodeBuilder {
	n.node.Markers = append(n.node.Markers, markers...)
	return n
}

// Go adds a choice to the target node. Choice IDs are numbered from 1 in
// declaration order.
func (n *NodeBuilder) Go(text, target string) *NodeBuilder {
	return n.Choice(len(n.node.Choices)+1, text, target)
}

// Choice adds a choice with an explicit ID.
func (n *NodeBuilder) Choice(id int, text, target string) *NodeBuilder {
	n.node.Choices = append(n.node.Choices, domain.Choice{
		ID:          id,
		Text:        text,
		Destination: target,
	})
	return n
}

// Ending marks the node as terminal with the given ending category.
func (n *NodeBuilder) Ending(category string) *NodeBuilder {
	n.node.Terminal = true
	n.node.Ending = category
	return n
}

// Build returns the underlying domain.Node.
// This is primarily used by the Builder, but exposed for advanced usage.
func (n *NodeBuilder) Build() domain.Node {
	node := n.node
	node.Markers = append([]string(nil), n.node.Markers...)
	node.Choices = append([]domain.Choice(nil), n.node.Choices...)
	return node
}
