package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/storypath/pkg/domain"
)

// GraphOverlay contains search data to visualize on the graph.
type GraphOverlay struct {
	// Path is the route to highlight, usually the optimal one.
	Path []string
	// Visits colors explored nodes; nodes absent from it were never reached.
	Visits map[string]int
}

// GenerateMermaid produces a Mermaid flowchart syntax string from a story.
// It applies semantic styling:
// - Start: ((Circle))
// - Ending: ([Stadium]), labeled with the ending category
// - Default: [Rectangle]
// Edges are labeled with the choice id and text. Nodes granting markers show
// the marker count.
// It also applies overlay styles (Optimal/Unreached) if provided.
func GenerateMermaid(story *domain.Story, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, node := range story.Nodes() {
		safeID := sanitizeMermaidID(node.ID)

		opener, closer := "[", "]"
		switch {
		case node.ID == story.StartID():
			opener, closer = "((", "))"
		case node.Terminal:
			opener, closer = "([", "])"
		}

		text := node.ID
		if node.Title != "" {
			text = node.Title
		}
		text = escapeLabel(text)
		if node.Terminal {
			text += " <br/> 🏁 " + escapeLabel(node.Ending)
		}
		if len(node.Markers) > 0 {
			text += fmt.Sprintf(" <br/> ★ %d", len(node.Markers))
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, text, closer)

		if node.Terminal {
			continue
		}
		for _, c := range node.Choices {
			fmt.Fprintf(&sb, "    %s -- \"%d. %s\" --> %s\n", safeID, c.ID, escapeLabel(c.Text), sanitizeMermaidID(c.Destination))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Black text keeps contrast on light fills regardless of theme.
		sb.WriteString("    classDef optimal fill:#c8e6c9,stroke:#1b5e20,stroke-width:3px,color:#000;\n")
		sb.WriteString("    classDef unreached fill:#eeeeee,stroke:#9e9e9e,stroke-dasharray:4,color:#616161;\n")

		seen := make(map[string]bool)
		for _, id := range overlay.Path {
			safeID := sanitizeMermaidID(id)
			if !seen[safeID] && safeID != "" {
				seen[safeID] = true
				fmt.Fprintf(&sb, "    class %s optimal;\n", safeID)
			}
		}

		if overlay.Visits != nil {
			for _, node := range story.Nodes() {
				if overlay.Visits[node.ID] == 0 {
					fmt.Fprintf(&sb, "    class %s unreached;\n", sanitizeMermaidID(node.ID))
				}
			}
		}
	}

	return sb.String()
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
