package file

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/storypath/pkg/domain"
)

// storyDocument mirrors the on-disk story schema. Keys follow the
// document format (camelCase, "cgs" for reward markers).
type storyDocument struct {
	Title          string                  `mapstructure:"title" validate:"required"`
	Description    string                  `mapstructure:"description"`
	Start          string                  `mapstructure:"start"`
	Nodes          map[string]nodeDocument `mapstructure:"nodes" validate:"required,min=1,dive"`
	CGDescriptions map[string]string       `mapstructure:"cgDescriptions"`
}

type nodeDocument struct {
	ID          string           `mapstructure:"id"`
	Title       string           `mapstructure:"title"`
	Description string           `mapstructure:"description"`
	CGs         []string         `mapstructure:"cgs" validate:"dive,required"`
	Choices     []choiceDocument `mapstructure:"choices" validate:"dive"`
	IsEnding    bool             `mapstructure:"isEnding"`
	EndingType  string           `mapstructure:"endingType"`
}

type choiceDocument struct {
	ID          int    `mapstructure:"id" validate:"gte=0"`
	Text        string `mapstructure:"text" validate:"required"`
	Destination string `mapstructure:"destination" validate:"required"`
}

var documentValidate = validator.New()

// decodeDocument turns a generic JSON/YAML tree into a typed document.
func decodeDocument(raw map[string]any) (*storyDocument, error) {
	var doc storyDocument
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &doc,
		WeaklyTypedInput: true,
		ErrorUnused:      false,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidDocument, err)
	}

	if err := documentValidate.Struct(&doc); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := make([]error, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, fmt.Errorf("%s: failed %q", fe.Namespace(), fe.Tag()))
			}
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidDocument, errors.Join(msgs...))
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidDocument, err)
	}
	return &doc, nil
}

// toStory maps the document onto the domain model. The map key is the
// node's identity; an explicit id must agree with it.
func (d *storyDocument) toStory() (*domain.Story, error) {
	nodes := make([]domain.Node, 0, len(d.Nodes))
	for key, n := range d.Nodes {
		if n.ID != "" && n.ID != key {
			return nil, fmt.Errorf("%w: node key %q declares id %q", domain.ErrInvalidDocument, key, n.ID)
		}
		node := domain.Node{
			ID:          key,
			Title:       n.Title,
			Description: n.Description,
			Markers:     n.CGs,
			Terminal:    n.IsEnding,
			Ending:      n.EndingType,
		}
		for _, c := range n.Choices {
			node.Choices = append(node.Choices, domain.Choice{ID: c.ID, Text: c.Text, Destination: c.Destination})
		}
		nodes = append(nodes, node)
	}
	return domain.NewStory(d.Title, d.Description, d.Start, nodes, d.CGDescriptions), nil
}
