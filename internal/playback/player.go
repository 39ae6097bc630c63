package playback

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/storypath/internal/presentation/tui"
	"github.com/aretw0/storypath/pkg/domain"
	"github.com/aretw0/storypath/pkg/sanitizer"
	"github.com/muesli/reflow/wordwrap"
)

const (
	DefaultDelay        = 1500 * time.Millisecond
	DefaultInitialDelay = 3 * time.Second
	DefaultWrapWidth    = 60
)

var (
	// ErrInputClosed is returned when input ends while a prompt is waiting.
	ErrInputClosed = errors.New("input closed")
	// ErrQuit is returned by Explore when the reader asks to leave.
	ErrQuit = errors.New("exploration aborted")
	// ErrDeadEnd is returned by Explore when a non-terminal node offers no choices.
	ErrDeadEnd = errors.New("dead end reached")
)

// Player replays paths scene by scene on a terminal.
type Player struct {
	story        *domain.Story
	out          io.Writer
	in           *bufio.Reader
	delay        time.Duration
	initialDelay time.Duration
	width        int
	render       tui.ContentRenderer
	styles       tui.Styles
	logger       *slog.Logger
}

// Option configures a Player.
type Option func(*Player)

// WithOutput sets the writer scenes are printed to.
func WithOutput(w io.Writer) Option {
	return func(p *Player) { p.out = w }
}

// WithInput sets the reader used by the interactive modes.
func WithInput(r io.Reader) Option {
	return func(p *Player) { p.in = bufio.NewReader(r) }
}

// WithDelays sets the pause between scenes and before the first one.
// Zero disables the pause.
func WithDelays(scene, initial time.Duration) Option {
	return func(p *Player) {
		p.delay = scene
		p.initialDelay = initial
	}
}

// WithWrapWidth sets the column scene text is wrapped at.
func WithWrapWidth(width int) Option {
	return func(p *Player) {
		if width > 0 {
			p.width = width
		}
	}
}

// WithRenderer sets the scene text renderer. Without one, text is word-wrapped.
func WithRenderer(r tui.ContentRenderer) Option {
	return func(p *Player) { p.render = r }
}

// WithStyles sets the styles used for headers and highlights.
func WithStyles(s tui.Styles) Option {
	return func(p *Player) { p.styles = s }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Player) {
		if l != nil {
			p.logger = l
		}
	}
}

// New creates a Player for the story.
func New(story *domain.Story, opts ...Option) *Player {
	p := &Player{
		story:        story,
		out:          os.Stdout,
		in:           bufio.NewReader(os.Stdin),
		delay:        DefaultDelay,
		initialDelay: DefaultInitialDelay,
		width:        DefaultWrapWidth,
		styles:       tui.PlainStyles(),
		logger:       slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Play replays a complete path with pauses between scenes.
func (p *Player) Play(ctx context.Context, path domain.Path) error {
	if !path.IsComplete() {
		return fmt.Errorf("play: %w", domain.ErrIncompletePath)
	}
	p.logger.Debug("playback started", "nodes", path.Len(), "score", path.Score())

	p.banner("OPTIMAL PATH SIMULATION")
	p.printf("Story: %s\n", p.story.Title())
	p.printf("Total scenes: %d\n", path.Len())
	p.printf("Markers to collect: %d\n", path.MarkerCount())
	p.printf("Final score: %d\n", path.Score())
	if err := p.sleep(ctx, p.initialDelay); err != nil {
		return err
	}

	nodes := path.Nodes()
	choices := path.Choices()
	seen := make(map[string]bool)
	for i, id := range nodes {
		node, ok := p.story.Node(id)
		if !ok {
			p.printf("%s\n", p.styles.Error.Render("Error: scene not found: "+id))
			continue
		}
		p.scene(i+1, len(nodes), node)
		p.unlock(node, seen)

		if node.Terminal {
			p.printf("\n%s\n", p.styles.Success.Render("STORY ENDING REACHED"))
			p.printf("Ending Type: %s\n", strings.ToUpper(node.Ending))
		} else if i < len(choices) {
			p.taken(node, choices[i])
		}

		if err := p.sleep(ctx, p.delay); err != nil {
			return err
		}
	}

	p.results(path)
	return nil
}

// Preview prints a compact listing of the path without pauses.
func (p *Player) Preview(path domain.Path) error {
	if path.Len() == 0 {
		return fmt.Errorf("preview: %w", domain.ErrInvalidPath)
	}
	p.printf("%s\n", p.styles.Header.Render("PATH PREVIEW"))
	choices := path.Choices()
	for i, id := range path.Nodes() {
		title := id
		var markers []string
		if node, ok := p.story.Node(id); ok {
			title = node.Title
			markers = node.Markers
		}
		line := fmt.Sprintf("%2d. %s (%s)", i+1, title, id)
		if len(markers) > 0 {
			line += " " + p.styles.Highlight.Render("[+"+strings.Join(markers, ", +")+"]")
		}
		p.printf("%s\n", line)
		if i < len(choices) {
			p.printf("      %s\n", p.styles.Muted.Render("-> "+choices[i].Text))
		}
	}
	if ending, ok := path.Ending(); ok {
		p.printf("Ending: %s, score %d\n", ending, path.Score())
	} else {
		p.printf("Open path, score %d\n", path.Score())
	}
	return nil
}

// Guide walks the reader through the path, marking the optimal choice at
// each step and asking for theirs. A different answer is reported but the
// walk stays on the optimal path.
func (p *Player) Guide(ctx context.Context, path domain.Path) error {
	if !path.IsComplete() {
		return fmt.Errorf("guide: %w", domain.ErrIncompletePath)
	}

	p.banner("GUIDED PLAYTHROUGH")
	p.printf("Follow the highlighted choices to collect every marker on the way.\n")

	nodes := path.Nodes()
	choices := path.Choices()
	seen := make(map[string]bool)
	deviations := 0
	for i, id := range nodes {
		node, ok := p.story.Node(id)
		if !ok {
			return fmt.Errorf("guide: %s: %w", id, domain.ErrNodeNotFound)
		}
		p.scene(i+1, len(nodes), node)
		p.unlock(node, seen)

		if node.Terminal {
			p.printf("\n%s\n", p.styles.Success.Render("STORY ENDING REACHED"))
			p.printf("Ending Type: %s\n", strings.ToUpper(node.Ending))
			break
		}
		if i >= len(choices) {
			break
		}

		optimal := choices[i]
		p.printf("\nChoices:\n")
		for n, c := range node.Choices {
			marker := "   "
			if c.ID == optimal.ID {
				marker = p.styles.Highlight.Render(">>>")
			}
			p.printf("%s %d. %s\n", marker, n+1, c.Text)
		}
		if pos := indexOf(node.Choices, optimal.ID); pos > 0 {
			p.printf("%s\n", p.styles.Tip.Render(fmt.Sprintf("Tip: choice %d is optimal", pos)))
		}

		picked, err := p.pick(ctx, node.Choices)
		if err != nil {
			return err
		}
		if picked.ID == optimal.ID {
			p.printf("%s\n", p.styles.Success.Render("Great choice!"))
		} else {
			deviations++
			p.printf("%s\n", p.styles.Warning.Render("That's not the optimal choice, continuing on the optimal path."))
		}
		p.printf("You chose: %s\n", picked.Text)

		if _, err := p.prompt(ctx, "Press Enter to continue..."); err != nil {
			return err
		}
	}

	p.results(path)
	if deviations > 0 {
		p.printf("Deviations from the optimal path: %d\n", deviations)
	}
	return nil
}

// Explore lets the reader choose freely from the start node until an ending,
// a dead end or "q". It returns the path taken so far in every case.
func (p *Player) Explore(ctx context.Context) (domain.Path, error) {
	p.banner("FREE EXPLORATION")
	p.printf("Choose freely. Enter q to stop.\n")

	var path domain.Path
	seen := make(map[string]bool)
	id := p.story.StartID()
	for step := 1; ; step++ {
		node, ok := p.story.Node(id)
		if !ok {
			return path, fmt.Errorf("explore: %s: %w", id, domain.ErrNodeNotFound)
		}
		path = path.Extend(id, nil, node.Markers)
		p.scene(step, 0, node)
		p.unlock(node, seen)

		if node.Terminal {
			path = path.Complete(node.Ending)
			p.printf("\n%s\n", p.styles.Success.Render("STORY ENDING REACHED"))
			p.printf("Ending Type: %s\n", strings.ToUpper(node.Ending))
			p.results(path)
			return path, nil
		}
		if len(node.Choices) == 0 {
			p.printf("%s\n", p.styles.Warning.Render("Dead end: this scene has no way forward."))
			return path, ErrDeadEnd
		}

		p.printf("\nChoices:\n")
		for n, c := range node.Choices {
			p.printf("    %d. %s\n", n+1, c.Text)
		}
		picked, err := p.pick(ctx, node.Choices)
		if err != nil {
			return path, err
		}
		path = path.Choose(picked)
		id = picked.Destination
	}
}

func (p *Player) banner(title string) {
	rule := strings.Repeat("=", p.width)
	p.printf("\n%s\n%s\n%s\n", rule, p.styles.Title.Render(center(title, p.width)), rule)
}

func (p *Player) scene(index, total int, node domain.Node) {
	rule := strings.Repeat("-", p.width)
	label := fmt.Sprintf("SCENE %d", index)
	if total > 0 {
		label = fmt.Sprintf("SCENE %d/%d", index, total)
	}
	p.printf("\n%s\n%s\n%s\n", rule, p.styles.Header.Render(center(label, p.width)), rule)
	p.printf("%s\n%s\n", p.styles.Title.Render("* "+node.Title), rule)
	p.printf("%s\n", p.text(node.Description))
}

func (p *Player) text(s string) string {
	if p.render != nil {
		out, err := p.render(s)
		if err == nil {
			return out
		}
		p.logger.Warn("render failed, falling back to plain text", "err", err)
	}
	return wordwrap.String(s, p.width)
}

func (p *Player) unlock(node domain.Node, seen map[string]bool) {
	var fresh []string
	for _, m := range node.Markers {
		if !seen[m] {
			seen[m] = true
			fresh = append(fresh, m)
		}
	}
	if len(fresh) == 0 {
		return
	}
	p.printf("\n%s\n", p.styles.Highlight.Render("MARKER UNLOCKED"))
	for _, m := range fresh {
		p.printf("  %s - %s\n", m, p.story.MarkerDescription(m))
	}
}

func (p *Player) taken(node domain.Node, choice domain.Choice) {
	p.printf("\n")
	if len(node.Choices) <= 1 {
		p.printf("--> %s\n", choice.Text)
		return
	}
	p.printf("Choices:\n")
	for n, c := range node.Choices {
		if c.ID == choice.ID {
			p.printf("%s %d. %s %s\n", p.styles.Highlight.Render(">>>"), n+1, c.Text, p.styles.Muted.Render("<-- SELECTED"))
			continue
		}
		p.printf("    %d. %s\n", n+1, c.Text)
	}
}

func (p *Player) results(path domain.Path) {
	total := p.story.TotalMarkerCount()
	rate := 0.0
	if total > 0 {
		rate = float64(path.MarkerCount()) / float64(total) * 100
	}

	p.banner("FINAL RESULTS")
	p.printf("Markers collected: %d/%d\n", path.MarkerCount(), total)
	p.printf("Collection rate: %.1f%%\n", rate)
	if markers := path.Markers(); len(markers) > 0 {
		p.printf("Markers:\n")
		for _, m := range markers {
			p.printf("  %s - %s\n", m, p.story.MarkerDescription(m))
		}
	}
	ending, ok := path.Ending()
	if !ok {
		ending = "none"
	}
	p.printf("Journey: %d scenes, ending %s, score %d\n", path.Len(), ending, path.Score())
}

// pick prompts until the reader enters the number of one of the choices.
func (p *Player) pick(ctx context.Context, choices []domain.Choice) (domain.Choice, error) {
	for {
		answer, err := p.prompt(ctx, fmt.Sprintf("Enter your choice (1-%d): ", len(choices)))
		if err != nil {
			return domain.Choice{}, err
		}
		if strings.EqualFold(answer, "q") {
			return domain.Choice{}, ErrQuit
		}
		n, err := strconv.Atoi(answer)
		if err != nil {
			p.printf("%s\n", p.styles.Error.Render("Please enter a valid number."))
			continue
		}
		if n < 1 || n > len(choices) {
			p.printf("%s\n", p.styles.Error.Render(fmt.Sprintf("Invalid choice. Please select 1-%d.", len(choices))))
			continue
		}
		return choices[n-1], nil
	}
}

func (p *Player) prompt(ctx context.Context, label string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p.printf("%s", label)
	line, err := p.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		if errors.Is(err, io.EOF) {
			return "", ErrInputClosed
		}
		return "", fmt.Errorf("read input: %w", err)
	}
	clean, err := sanitizer.SanitizeInput(line)
	if err != nil {
		p.logger.Warn("input rejected", "err", err)
		p.printf("%s\n", p.styles.Error.Render("Input rejected."))
		return "", nil
	}
	return clean, nil
}

func (p *Player) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (p *Player) printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

func indexOf(choices []domain.Choice, id int) int {
	for i, c := range choices {
		if c.ID == id {
			return i + 1
		}
	}
	return 0
}

func center(s string, width int) string {
	pad := (width - len(s)) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}
