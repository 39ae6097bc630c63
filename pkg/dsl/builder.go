package dsl

import (
	"context"
	"fmt"

	"github.com/aretw0/storypath/pkg/adapters/memory"
	"github.com/aretw0/storypath/pkg/domain"
)

// Builder manages the story construction.
type Builder struct {
	title       string
	description string
	startID     string
	markers     map[string]string
	nodes       map[string]*NodeBuilder
	order       []string
}

// New creates a new story builder.
func New(title string) *Builder {
	return &Builder{
		title:   title,
		startID: domain.DefaultStartID,
		markers: make(map[string]string),
		nodes:   make(map[string]*NodeBuilder),
	}
}

// Describe sets the story description.
func (b *Builder) Describe(description string) *Builder {
	b.description = description
	return b
}

// Start overrides the start node (default: "start").
func (b *Builder) Start(id string) *Builder {
	b.startID = id
	return b
}

// Marker registers the description of a reward marker.
func (b *Builder) Marker(id, description string) *Builder {
	b.markers[id] = description
	return b
}

// Add creates a new node in the story.
// If the node already exists, it returns the existing builder.
func (b *Builder) Add(id string) *NodeBuilder {
	if nb, ok := b.nodes[id]; ok {
		return nb
	}
	nb := &NodeBuilder{
		node: domain.Node{
			ID: id,
		},
		builder: b,
	}
	b.nodes[id] = nb
	b.order = append(b.order, id)
	return nb
}

// Story assembles the nodes into a domain.Story without validating it.
func (b *Builder) Story() *domain.Story {
	nodes := make([]domain.Node, 0, len(b.order))
	for _, id := range b.order {
		nodes = append(nodes, b.nodes[id].Build())
	}
	return domain.NewStory(b.title, b.description, b.startID, nodes, b.markers)
}

// Build compiles the story into a memory loader, failing if the story
// violates any structural invariant.
func (b *Builder) Build() (*memory.Loader, error) {
	loader := memory.New(b.Story())
	if _, err := loader.Load(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to build story: %w", err)
	}
	return loader, nil
}

// MustStory returns the validated story and panics on structural errors.
// Intended for tests and examples.
func (b *Builder) MustStory() *domain.Story {
	loader, err := b.Build()
	if err != nil {
		panic(err)
	}
	s, _ := loader.Load(context.Background())
	return s
}
