package analysis

import (
	"slices"
	"strings"

	"github.com/aretw0/storypath/pkg/domain"
)

// Characters are the routes the interactive menu offers.
var Characters = []string{"jumin", "seven", "zen"}

const endingSuffix = "_ending"

// EndingID builds the conventional terminal node id for a character route,
// e.g. EndingID("zen", "good") is "zen_good_ending".
func EndingID(character, kind string) string {
	return character + "_" + kind + endingSuffix
}

// CharacterEndings lists the ending kinds available for a character, derived
// from terminal node ids of the form <character>_<kind>_ending. The result is
// sorted.
func CharacterEndings(story *domain.Story, character string) []string {
	prefix := character + "_"
	var kinds []string
	for _, n := range story.EndingNodes() {
		// <character>_ending shares its "_" with the suffix and has no kind.
		if len(n.ID) <= len(prefix)+len(endingSuffix) ||
			!strings.HasPrefix(n.ID, prefix) || !strings.HasSuffix(n.ID, endingSuffix) {
			continue
		}
		kinds = append(kinds, n.ID[len(prefix):len(n.ID)-len(endingSuffix)])
	}
	slices.Sort(kinds)
	return kinds
}
