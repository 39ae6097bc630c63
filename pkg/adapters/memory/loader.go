package memory

import (
	"context"
	"fmt"

	"github.com/aretw0/storypath/internal/validator"
	"github.com/aretw0/storypath/pkg/domain"
)

// Loader implements ports.StoryLoader over an in-memory story.
type Loader struct {
	story *domain.Story
}

// New creates a loader serving the given story.
func New(story *domain.Story) *Loader {
	return &Loader{story: story}
}

// NewFromNodes creates a loader from domain nodes, starting at
// domain.DefaultStartID. This improves DX for tests.
func NewFromNodes(nodes ...domain.Node) *Loader {
	return New(domain.NewStory("", "", domain.DefaultStartID, nodes, nil))
}

// Load validates and returns the story.
func (l *Loader) Load(ctx context.Context) (*domain.Story, error) {
	if l.story == nil {
		return nil, fmt.Errorf("memory loader has no story")
	}
	if err := validator.ValidateStory(l.story); err != nil {
		return nil, fmt.Errorf("invalid story: %w", err)
	}
	return l.story, nil
}

// FallbackStory is the minimal story used when no story file can be loaded:
// a single choice from the start node to a "normal" ending.
func FallbackStory() *domain.Story {
	return domain.NewStory("Fallback Story", "A simple fallback story", domain.DefaultStartID, []domain.Node{
		{
			ID:          domain.DefaultStartID,
			Title:       "Simple Story",
			Description: "A basic story for testing purposes.",
			Choices:     []domain.Choice{{ID: 1, Text: "Continue", Destination: "end"}},
		},
		{
			ID:          "end",
			Title:       "The End",
			Description: "Thank you for playing!",
			Terminal:    true,
			Ending:      "normal",
		},
	}, nil)
}
