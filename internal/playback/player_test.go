package playback_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/aretw0/storypath/internal/playback"
	"github.com/aretw0/storypath/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *domain.Story {
	return domain.NewStory("Sample", "", "start", []domain.Node{
		{ID: "start", Title: "Opening", Description: "It begins.", Choices: []domain.Choice{
			{ID: 1, Text: "Stay home", Destination: "home"},
			{ID: 2, Text: "Go to the party", Destination: "party"},
		}},
		{ID: "home", Title: "Home", Choices: []domain.Choice{{ID: 1, Text: "Sleep", Destination: "end1"}}},
		{ID: "party", Title: "Party", Markers: []string{"cg_party"}, Choices: []domain.Choice{{ID: 1, Text: "Dance", Destination: "end2"}}},
		{ID: "stuck", Title: "Stuck"},
		{ID: "end1", Title: "Quiet Night", Terminal: true, Ending: "normal"},
		{ID: "end2", Title: "Big Night", Markers: []string{"cg_dance"}, Terminal: true, Ending: "best"},
	}, map[string]string{"cg_party": "Party invitation", "cg_dance": "Last dance"})
}

func bestPath(t *testing.T, s *domain.Story) domain.Path {
	t.Helper()
	p, err := s.WalkPath([]string{"start", "party", "end2"})
	require.NoError(t, err)
	return p
}

func newPlayer(s *domain.Story, out *bytes.Buffer, input string) *playback.Player {
	return playback.New(s,
		playback.WithOutput(out),
		playback.WithInput(strings.NewReader(input)),
		playback.WithDelays(0, 0),
	)
}

func TestPlay_RendersScenesAndResults(t *testing.T) {
	s := sample()
	var out bytes.Buffer

	require.NoError(t, newPlayer(s, &out, "").Play(context.Background(), bestPath(t, s)))

	text := out.String()
	assert.Contains(t, text, "SCENE 1/3")
	assert.Contains(t, text, "* Party")
	assert.Contains(t, text, "cg_party - Party invitation")
	assert.Contains(t, text, ">>> 2. Go to the party <-- SELECTED")
	assert.Contains(t, text, "--> Dance")
	assert.Contains(t, text, "Ending Type: BEST")
	assert.Contains(t, text, "Markers collected: 2/2")
	assert.Contains(t, text, "Collection rate: 100.0%")
	assert.Contains(t, text, "Journey: 3 scenes, ending best, score 70")
}

func TestPlay_RejectsIncompletePath(t *testing.T) {
	s := sample()
	var out bytes.Buffer
	open := domain.Path{}.Extend("start", nil, nil)

	err := newPlayer(s, &out, "").Play(context.Background(), open)
	assert.ErrorIs(t, err, domain.ErrIncompletePath)
	assert.Empty(t, out.String())
}

func TestPlay_Cancelled(t *testing.T) {
	s := sample()
	var out bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := playback.New(s, playback.WithOutput(&out), playback.WithDelays(0, 0))
	assert.ErrorIs(t, p.Play(ctx, bestPath(t, s)), context.Canceled)
}

func TestPreview(t *testing.T) {
	s := sample()
	var out bytes.Buffer

	require.NoError(t, newPlayer(s, &out, "").Preview(bestPath(t, s)))

	text := out.String()
	assert.Contains(t, text, " 2. Party (party) [+cg_party]")
	assert.Contains(t, text, "-> Go to the party")
	assert.Contains(t, text, "Ending: best, score 70")
}

func TestGuide_FollowsOptimalPath(t *testing.T) {
	s := sample()
	var out bytes.Buffer
	// Invalid number, out of range, then the optimal choice; Enter; then the only choice; Enter.
	input := "abc\n9\n2\n\n1\n\n"

	require.NoError(t, newPlayer(s, &out, input).Guide(context.Background(), bestPath(t, s)))

	text := out.String()
	assert.Contains(t, text, "Tip: choice 2 is optimal")
	assert.Contains(t, text, "Please enter a valid number.")
	assert.Contains(t, text, "Invalid choice. Please select 1-2.")
	assert.Contains(t, text, "Great choice!")
	assert.NotContains(t, text, "Deviations")
}

func TestGuide_DeviationStaysOnPath(t *testing.T) {
	s := sample()
	var out bytes.Buffer

	require.NoError(t, newPlayer(s, &out, "1\n\n1\n\n").Guide(context.Background(), bestPath(t, s)))

	text := out.String()
	assert.Contains(t, text, "not the optimal choice")
	assert.Contains(t, text, "You chose: Stay home")
	assert.Contains(t, text, "* Big Night")
	assert.Contains(t, text, "Deviations from the optimal path: 1")
}

func TestGuide_InputClosed(t *testing.T) {
	s := sample()
	var out bytes.Buffer

	err := newPlayer(s, &out, "").Guide(context.Background(), bestPath(t, s))
	assert.ErrorIs(t, err, playback.ErrInputClosed)
}

func TestExplore_ReachesEnding(t *testing.T) {
	s := sample()
	var out bytes.Buffer

	path, err := newPlayer(s, &out, "1\n1\n").Explore(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"start", "home", "end1"}, path.Nodes())
	assert.True(t, path.IsComplete())
	assert.Equal(t, 10, path.Score())
	assert.Contains(t, out.String(), "Ending Type: NORMAL")
}

func TestExplore_Quit(t *testing.T) {
	s := sample()
	var out bytes.Buffer

	path, err := newPlayer(s, &out, "2\nq\n").Explore(context.Background())
	assert.ErrorIs(t, err, playback.ErrQuit)
	assert.Equal(t, []string{"start", "party"}, path.Nodes())
	assert.True(t, path.HasMarker("cg_party"))
}

func TestExplore_DeadEnd(t *testing.T) {
	s := domain.NewStory("Stuck", "", "start", []domain.Node{
		{ID: "start", Title: "Start", Choices: []domain.Choice{{ID: 1, Text: "Wander", Destination: "stuck"}}},
		{ID: "stuck", Title: "Stuck"},
	}, nil)
	var out bytes.Buffer

	path, err := newPlayer(s, &out, "1\n").Explore(context.Background())
	assert.ErrorIs(t, err, playback.ErrDeadEnd)
	assert.Equal(t, 2, path.Len())
	assert.False(t, path.IsComplete())
}
