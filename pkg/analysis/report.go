package analysis

import (
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/storypath/pkg/domain"
)

// DefaultTopN is how many paths a report keeps.
const DefaultTopN = 5

// BuildReport summarizes a search into a persistable report with a fresh ID.
func BuildReport(story *domain.Story, res *domain.SearchResult, topN int) *domain.Report {
	if topN <= 0 {
		topN = DefaultTopN
	}
	r := &domain.Report{
		ID:        uuid.NewString(),
		Story:     story.Title(),
		CreatedAt: time.Now().UTC(),
		Goal:      res.Goal(),
		Outcome:   res.Outcome(),
		Explored:  res.ExploredPaths(),
		Complete:  len(res.Paths()),
	}
	if best, ok := res.Best(); ok {
		r.Best = &best
	}
	r.Top = TopN(res, topN)
	return r
}
