package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	graphcheck "github.com/aretw0/storypath/internal/validator"
	"github.com/aretw0/storypath/pkg/domain"
)

// Loader implements ports.StoryLoader for story documents on disk.
// Files ending in .yaml or .yml are parsed as YAML, everything else as JSON.
type Loader struct {
	Path string
}

// NewLoader creates a loader for the document at path.
func NewLoader(path string) *Loader {
	return &Loader{Path: path}
}

// Load reads, decodes and validates the story document.
func (l *Loader) Load(ctx context.Context) (*domain.Story, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read story file: %w", err)
	}
	return Parse(data, filepath.Ext(l.Path))
}

// Parse decodes and validates a story document. ext selects the format
// (".yaml"/".yml" for YAML, anything else for JSON).
func Parse(data []byte, ext string) (*domain.Story, error) {
	var raw map[string]any
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse story yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse story json: %w", err)
		}
	}

	doc, err := decodeDocument(raw)
	if err != nil {
		return nil, err
	}
	story, err := doc.toStory()
	if err != nil {
		return nil, err
	}
	if err := graphcheck.ValidateStory(story); err != nil {
		return nil, fmt.Errorf("invalid story %q: %w", doc.Title, err)
	}
	return story, nil
}
