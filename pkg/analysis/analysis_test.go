package analysis_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/storypath/internal/runtime"
	"github.com/aretw0/storypath/pkg/analysis"
	"github.com/aretw0/storypath/pkg/domain"
	"github.com/aretw0/storypath/pkg/dsl"
)

func routeStory() *domain.Story {
	b := dsl.New("Routes")
	b.Add("start").Go("Zen", "zen").Go("Seven", "seven")
	b.Add("zen").Grants("cg_a", "cg_b").Go("Good", "zen_good_ending").Go("Bad", "zen_bad_ending")
	b.Add("seven").Grants("cg_a").Go("Best", "seven_best_ending")
	b.Add("zen_good_ending").Ending("good")
	b.Add("zen_bad_ending").Ending("bad")
	b.Add("seven_best_ending").Ending("best")
	b.Add("lonely_ending_x").Ending("bad")
	return b.MustStory()
}

func search(t *testing.T, s *domain.Story) *domain.SearchResult {
	t.Helper()
	res, err := runtime.NewFinder(s).FindOptimalPath(context.Background(), "")
	require.NoError(t, err)
	return res
}

func TestSummarize(t *testing.T) {
	res := search(t, routeStory())
	// zen good: 2*10+20=40, zen bad: 2*10+10=30, seven best: 10+50=60
	s := analysis.Summarize(res)

	assert.Equal(t, 3, s.Paths)
	assert.Equal(t, 30, s.MinScore)
	assert.Equal(t, 60, s.MaxScore)
	assert.InDelta(t, 43.333, s.MeanScore, 0.001)
	assert.InDelta(t, 5.0/3, s.MeanMarkers, 0.001)
	assert.InDelta(t, 3.0, s.MeanLength, 0.001)
}

func TestSummarize_Empty(t *testing.T) {
	res := domain.NewSearchResult(domain.Goal{}, domain.OutcomeNoPath, nil, nil, nil, 4)
	s := analysis.Summarize(res)
	assert.Equal(t, analysis.Summary{Explored: 4}, s)
}

func TestTopN(t *testing.T) {
	res := search(t, routeStory())
	top := analysis.TopN(res, 2)
	require.Len(t, top, 2)
	assert.Equal(t, 60, top[0].Score())
	assert.Equal(t, 40, top[1].Score())
	assert.Len(t, analysis.TopN(res, 10), 3)
}

func TestTopN_PreferredCategory(t *testing.T) {
	res, err := runtime.NewFinder(routeStory()).FindOptimalPath(context.Background(), "good")
	require.NoError(t, err)

	best, ok := res.Best()
	require.True(t, ok)
	top := analysis.TopN(res, 5)
	require.Len(t, top, 1)
	assert.Equal(t, best.Nodes(), top[0].Nodes())
	assert.Equal(t, 40, top[0].Score())
}

func TestDistributions(t *testing.T) {
	res := search(t, routeStory())

	endings := analysis.EndingDistribution(res)
	require.Len(t, endings, 3)
	assert.Equal(t, "bad", endings[0].Key)
	assert.InDelta(t, 33.33, endings[0].Percent, 0.01)

	markers := analysis.MarkerFrequency(res, 1)
	require.Len(t, markers, 1)
	assert.Equal(t, analysis.Count{Key: "cg_a", Count: 3, Percent: 100}, markers[0])
	assert.Len(t, analysis.MarkerFrequency(res, -1), 2)
}

func TestCharacterEndings(t *testing.T) {
	s := routeStory()
	assert.Equal(t, []string{"bad", "good"}, analysis.CharacterEndings(s, "zen"))
	assert.Equal(t, []string{"best"}, analysis.CharacterEndings(s, "seven"))
	assert.Empty(t, analysis.CharacterEndings(s, "jumin"))
	assert.Equal(t, "zen_good_ending", analysis.EndingID("zen", "good"))
}

func TestCharacterEndings_BareEndingID(t *testing.T) {
	b := dsl.New("Bare")
	b.Add("start").Go("Plain", "jumin_ending").Go("Kind", "jumin_good_ending")
	b.Add("jumin_ending").Ending("normal")
	b.Add("jumin_good_ending").Ending("good")
	assert.Equal(t, []string{"good"}, analysis.CharacterEndings(b.MustStory(), "jumin"))
}

func TestCollectionRate(t *testing.T) {
	s := routeStory()
	res := search(t, s)
	best, _ := res.Best()
	assert.InDelta(t, 50.0, analysis.CollectionRate(s, best), 0.001)
}

func TestBuildReport(t *testing.T) {
	s := routeStory()
	res := search(t, s)

	r := analysis.BuildReport(s, res, 2)
	_, err := uuid.Parse(r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Routes", r.Story)
	assert.Equal(t, domain.OutcomeFound, r.Outcome)
	assert.Equal(t, 3, r.Complete)
	require.NotNil(t, r.Best)
	assert.Equal(t, 60, r.Best.Score())
	assert.Len(t, r.Top, 2)
	assert.False(t, r.CreatedAt.IsZero())
}
