package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/aretw0/storypath"
	"github.com/aretw0/storypath/internal/config"
	"github.com/aretw0/storypath/internal/logging"
	"github.com/aretw0/storypath/internal/playback"
	"github.com/aretw0/storypath/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func routeEngine(t *testing.T) *storypath.Engine {
	t.Helper()
	b := dsl.New("Routes").Describe("A short dating sim.")
	b.Marker("cg_j", "Jumin's office").Marker("cg_jg", "Jumin's smile")
	b.Add("start").Title("Chat Room").Text("Who do you call?").
		Go("Call Jumin", "jumin_route").
		Go("Call Zen", "zen_bad_ending")
	b.Add("jumin_route").Title("Office").Grants("cg_j").
		Go("Stay", "jumin_good_ending").
		Go("Leave", "jumin_bad_ending")
	b.Add("jumin_good_ending").Title("Together").Grants("cg_jg").Ending("good")
	b.Add("jumin_bad_ending").Title("Alone").Ending("bad")
	b.Add("zen_bad_ending").Title("Missed Call").Ending("bad")

	loader, err := b.Build()
	require.NoError(t, err)
	engine, err := storypath.New("", storypath.WithLoader(loader))
	require.NoError(t, err)
	return engine
}

func runApp(t *testing.T, input string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := NewApp(routeEngine(t), config.Default(), strings.NewReader(input), &out, logging.NewNop())
	err := app.Run(context.Background())
	return out.String(), err
}

func TestApp_StoryInfo(t *testing.T) {
	out, err := runApp(t, "4\n6\n")
	require.NoError(t, err)

	assert.Contains(t, out, "Title: Routes")
	assert.Contains(t, out, "Description: A short dating sim.")
	assert.Contains(t, out, "Nodes: 5")
	assert.Contains(t, out, "Endings: 3")
	assert.Contains(t, out, "Ending types: bad, good")
	assert.Contains(t, out, "Goodbye!")
}

func TestApp_FindByCharacterEnding(t *testing.T) {
	// jumin, then the second kind in sorted order: good
	out, err := runApp(t, "1\n1\n2\n6\n")
	require.NoError(t, err)

	assert.Contains(t, out, "1. bad\n2. good\n3. any")
	assert.Contains(t, out, "start -> jumin_route -> jumin_good_ending (markers: 2, score: 40) [good]")
}

func TestApp_FindByCharacterAnyEnding(t *testing.T) {
	out, err := runApp(t, "1\n1\n3\n6\n")
	require.NoError(t, err)
	assert.Contains(t, out, "jumin_good_ending (markers: 2, score: 40)")
}

func TestApp_NoEndingsForCharacter(t *testing.T) {
	out, err := runApp(t, "1\n2\n6\n")
	require.NoError(t, err)
	assert.Contains(t, out, "No endings found for seven.")
}

func TestApp_CategoryThenPreview(t *testing.T) {
	// any character, ending type "bad", then simulate as a quick preview
	out, err := runApp(t, "1\n4\n1\n2\n3\n6\n")
	require.NoError(t, err)

	assert.Contains(t, out, "start -> jumin_route -> jumin_bad_ending (markers: 1, score: 20) [bad]")
	assert.Contains(t, out, "PATH PREVIEW")
	assert.Contains(t, out, "Ending: bad, score 20")
}

func TestApp_SimulateWithoutSearch(t *testing.T) {
	out, err := runApp(t, "2\n1\n6\n")
	require.NoError(t, err)

	assert.Contains(t, out, "OPTIMAL PATH SIMULATION")
	assert.Contains(t, out, "Ending Type: GOOD")
	assert.Contains(t, out, "Markers collected: 2/2")
}

func TestApp_DetailedAnalysis(t *testing.T) {
	out, err := runApp(t, "5\n6\n")
	require.NoError(t, err)

	assert.Contains(t, out, "Complete paths: 3")
	assert.Contains(t, out, "Score: min 10, max 40")
	assert.Contains(t, out, "1. start -> jumin_route -> jumin_good_ending")
	assert.Contains(t, out, "  bad: 2 (66.7%)")
}

func TestApp_ExploreQuitReturnsToMenu(t *testing.T) {
	out, err := runApp(t, "3\nq\n6\n")
	require.NoError(t, err)

	assert.Contains(t, out, "FREE EXPLORATION")
	assert.Equal(t, 2, strings.Count(out, "MAIN MENU"))
}

func TestApp_InvalidSelection(t *testing.T) {
	out, err := runApp(t, "9\nabc\n6\n")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "Please enter a number between 1 and 6."))
}

func TestApp_InputClosed(t *testing.T) {
	_, err := runApp(t, "")
	assert.ErrorIs(t, err, playback.ErrInputClosed)
	assert.NoError(t, HandleExecutionError(err))
}
