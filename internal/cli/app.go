package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/aretw0/storypath"
	"github.com/aretw0/storypath/internal/config"
	"github.com/aretw0/storypath/internal/playback"
	"github.com/aretw0/storypath/internal/presentation/tui"
	"github.com/aretw0/storypath/pkg/analysis"
	"github.com/aretw0/storypath/pkg/domain"
	"github.com/aretw0/storypath/pkg/sanitizer"
)

// App is the interactive menu around an engine.
type App struct {
	engine *storypath.Engine
	player *playback.Player
	in     *bufio.Reader
	out    io.Writer
	styles tui.Styles
	logger *slog.Logger

	// last is the most recent selection, replayed by the simulate entry.
	last *domain.Path
	// all caches the unrestricted search, shared by simulate and analysis.
	all *domain.SearchResult
}

// NewApp wires the menu to the engine. in and out are shared with the player.
func NewApp(engine *storypath.Engine, cfg config.Config, in io.Reader, out io.Writer, logger *slog.Logger) *App {
	br := bufio.NewReader(in)
	styles := tui.PlainStyles()
	if IsTerminal(out) {
		styles = tui.DefaultStyles()
	}
	return &App{
		engine: engine,
		player: CreatePlayer(engine.Story(), cfg.Playback, br, out, logger),
		in:     br,
		out:    out,
		styles: styles,
		logger: logger,
	}
}

// Run shows the main menu until the user exits or input ends.
func (a *App) Run(ctx context.Context) error {
	story := a.engine.Story()
	a.printf("%s\n", a.styles.Title.Render("STORYPATH"))
	a.printf("Story: %s\n", story.Title())

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		a.printf("\n%s\n", a.styles.Header.Render("MAIN MENU"))
		a.printf("1. Find optimal path\n")
		a.printf("2. Simulate optimal path\n")
		a.printf("3. Free exploration\n")
		a.printf("4. Story info\n")
		a.printf("5. Detailed analysis\n")
		a.printf("6. Exit\n")

		n, err := a.choose(ctx, "Select an option", 6)
		if err != nil {
			return err
		}

		switch n {
		case 1:
			err = a.findOptimal(ctx)
		case 2:
			err = a.simulate(ctx)
		case 3:
			err = a.explore(ctx)
		case 4:
			a.info()
		case 5:
			err = a.analyze(ctx)
		case 6:
			a.printf("Goodbye!\n")
			return nil
		}

		if err != nil {
			if errors.Is(err, playback.ErrQuit) || errors.Is(err, playback.ErrDeadEnd) {
				continue
			}
			return err
		}
	}
}

func (a *App) findOptimal(ctx context.Context) error {
	a.printf("\nSelect a character:\n")
	for i, c := range analysis.Characters {
		a.printf("%d. %s\n", i+1, c)
	}
	a.printf("%d. any\n", len(analysis.Characters)+1)
	n, err := a.choose(ctx, "Character", len(analysis.Characters)+1)
	if err != nil {
		return err
	}

	if n > len(analysis.Characters) {
		return a.findByCategory(ctx)
	}
	return a.findByCharacter(ctx, analysis.Characters[n-1])
}

func (a *App) findByCategory(ctx context.Context) error {
	categories := a.engine.Story().EndingCategories()
	a.printf("\nSelect an ending type:\n")
	for i, c := range categories {
		a.printf("%d. %s\n", i+1, c)
	}
	a.printf("%d. any\n", len(categories)+1)
	n, err := a.choose(ctx, "Ending", len(categories)+1)
	if err != nil {
		return err
	}

	preferred := ""
	if n <= len(categories) {
		preferred = categories[n-1]
	}
	res, err := a.engine.FindOptimalPath(ctx, preferred)
	if err != nil {
		return err
	}
	if preferred == "" {
		a.all = res
	}
	a.show(res)
	return nil
}

func (a *App) findByCharacter(ctx context.Context, character string) error {
	kinds := analysis.CharacterEndings(a.engine.Story(), character)
	if len(kinds) == 0 {
		a.printf("%s\n", a.styles.Warning.Render("No endings found for "+character+"."))
		return nil
	}

	a.printf("\nSelect an ending for %s:\n", character)
	for i, k := range kinds {
		a.printf("%d. %s\n", i+1, k)
	}
	a.printf("%d. any\n", len(kinds)+1)
	n, err := a.choose(ctx, "Ending", len(kinds)+1)
	if err != nil {
		return err
	}

	if n <= len(kinds) {
		res, err := a.engine.FindOptimalPathToEnding(ctx, analysis.EndingID(character, kinds[n-1]))
		if err != nil {
			return err
		}
		a.show(res)
		return nil
	}

	// Any ending of the character: best among paths ending on its routes.
	res, err := a.unrestricted(ctx)
	if err != nil {
		return err
	}
	targets := make([]string, len(kinds))
	for i, k := range kinds {
		targets[i] = analysis.EndingID(character, k)
	}
	for _, p := range res.Ranked() {
		if last, ok := p.Last(); ok && slices.Contains(targets, last) {
			a.last = &p
			a.printf("\n%s\n", a.styles.Success.Render("Optimal path found"))
			a.printf("%s\n", p)
			return nil
		}
	}
	a.last = nil
	a.printf("%s\n", a.styles.Warning.Render("No path reaches an ending for "+character+"."))
	return nil
}

func (a *App) show(res *domain.SearchResult) {
	best, ok := res.Best()
	switch res.Outcome() {
	case domain.OutcomeInvalidTarget:
		a.printf("%s\n", a.styles.Error.Render("That ending does not exist in this story."))
	case domain.OutcomeNoPath:
		a.printf("%s\n", a.styles.Warning.Render("No complete path reaches that ending."))
	case domain.OutcomeCategoryFallback:
		a.printf("%s\n", a.styles.Warning.Render("No path reaches that ending type; showing the best path overall."))
	}
	if !ok {
		a.last = nil
		return
	}
	a.last = &best
	a.printf("\n%s\n", a.styles.Success.Render("Optimal path found"))
	a.printf("%s\n", best)
	a.printf("Explored %d paths, %d complete.\n", res.ExploredPaths(), len(res.Paths()))
}

func (a *App) simulate(ctx context.Context) error {
	if a.last == nil {
		res, err := a.unrestricted(ctx)
		if err != nil {
			return err
		}
		best, ok := res.Best()
		if !ok {
			a.printf("%s\n", a.styles.Warning.Render("No complete path to simulate."))
			return nil
		}
		a.last = &best
	}

	a.printf("\nSimulation mode:\n")
	a.printf("1. Automatic playback\n")
	a.printf("2. Guided playthrough\n")
	a.printf("3. Quick preview\n")
	n, err := a.choose(ctx, "Mode", 3)
	if err != nil {
		return err
	}
	switch n {
	case 1:
		return a.player.Play(ctx, *a.last)
	case 2:
		return a.player.Guide(ctx, *a.last)
	default:
		return a.player.Preview(*a.last)
	}
}

func (a *App) explore(ctx context.Context) error {
	path, err := a.player.Explore(ctx)
	if err != nil {
		return err
	}
	a.printf("Collection rate: %.1f%%\n", analysis.CollectionRate(a.engine.Story(), path))
	return nil
}

func (a *App) info() {
	story := a.engine.Story()
	a.printf("\n%s\n", a.styles.Header.Render("STORY INFO"))
	a.printf("Title: %s\n", story.Title())
	if story.Description() != "" {
		a.printf("Description: %s\n", story.Description())
	}
	a.printf("Nodes: %d\n", story.NodeCount())
	a.printf("Endings: %d\n", len(story.EndingNodes()))
	a.printf("Markers: %d\n", story.TotalMarkerCount())
	a.printf("Ending types: %s\n", strings.Join(story.EndingCategories(), ", "))
}

func (a *App) analyze(ctx context.Context) error {
	res, err := a.unrestricted(ctx)
	if err != nil {
		return err
	}
	PrintAnalysis(a.out, res, a.styles)
	return nil
}

// PrintAnalysis writes the detailed analysis of an unrestricted search.
func PrintAnalysis(w io.Writer, res *domain.SearchResult, styles tui.Styles) {
	s := analysis.Summarize(res)
	fmt.Fprintf(w, "\n%s\n", styles.Header.Render("DETAILED ANALYSIS"))
	fmt.Fprintf(w, "Explored paths: %d\n", s.Explored)
	fmt.Fprintf(w, "Complete paths: %d\n", s.Paths)
	if s.Paths == 0 {
		return
	}
	fmt.Fprintf(w, "Score: min %d, max %d, mean %.1f\n", s.MinScore, s.MaxScore, s.MeanScore)
	fmt.Fprintf(w, "Mean markers per path: %.1f\n", s.MeanMarkers)
	fmt.Fprintf(w, "Mean path length: %.1f\n", s.MeanLength)

	fmt.Fprintf(w, "\nTop paths:\n")
	for i, p := range analysis.TopN(res, 3) {
		fmt.Fprintf(w, "%d. %s\n", i+1, p)
	}

	fmt.Fprintf(w, "\nEnding distribution:\n")
	for _, c := range analysis.EndingDistribution(res) {
		fmt.Fprintf(w, "  %s: %d (%.1f%%)\n", c.Key, c.Count, c.Percent)
	}

	fmt.Fprintf(w, "\nMost collected markers:\n")
	for _, c := range analysis.MarkerFrequency(res, 5) {
		fmt.Fprintf(w, "  %s: %d (%.1f%%)\n", c.Key, c.Count, c.Percent)
	}
}

func (a *App) unrestricted(ctx context.Context) (*domain.SearchResult, error) {
	if a.all != nil {
		return a.all, nil
	}
	res, err := a.engine.FindOptimalPath(ctx, "")
	if err != nil {
		return nil, err
	}
	a.all = res
	return res, nil
}

// choose prompts until the answer is a number in [1, max].
func (a *App) choose(ctx context.Context, label string, max int) (int, error) {
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		a.printf("%s (1-%d): ", label, max)
		line, err := a.in.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			if errors.Is(err, io.EOF) {
				return 0, playback.ErrInputClosed
			}
			return 0, fmt.Errorf("read input: %w", err)
		}
		answer, err := sanitizer.SanitizeInput(line)
		if err != nil {
			a.logger.Warn("input rejected", "err", err)
			continue
		}
		n, err := strconv.Atoi(answer)
		if err != nil || n < 1 || n > max {
			a.printf("%s\n", a.styles.Error.Render(fmt.Sprintf("Please enter a number between 1 and %d.", max)))
			continue
		}
		return n, nil
	}
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
