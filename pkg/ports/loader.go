package ports

import (
	"context"

	"github.com/aretw0/storypath/pkg/domain"
)

// StoryLoader defines how the engine obtains its story graph.
// Implementations must return a Story that passed structural validation, or
// an error; the search engine never receives an invalid graph.
type StoryLoader interface {
	Load(ctx context.Context) (*domain.Story, error)
}
