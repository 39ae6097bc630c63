package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []string{
	`      _                              _   _     `,
	`  ___| |_ ___  _ __ _   _ _ __   __ _| |_| |__  `,
	` / __| __/ _ \| '__| | | | '_ \ / _' | __| '_ \ `,
	` \__ \ || (_) | |  | |_| | |_) | (_| | |_| | | |`,
	` |___/\__\___/|_|   \__, | .__/ \__,_|\__|_| |_|`,
	`                    |___/|_|                    `,
}

// Gradient from teal to violet, one color per banner line.
var bannerColors = []string{"#2dd4bf", "#38bdf8", "#60a5fa", "#818cf8", "#a78bfa", "#c084fc"}

// PrintBanner writes the ASCII art banner for storypath.
// Colors degrade automatically when w is not a color terminal.
func PrintBanner(w io.Writer) {
	p := termenv.NewOutput(w).ColorProfile()

	fmt.Fprintln(w)
	for i, line := range bannerLines {
		fmt.Fprintln(w, p.String(line).Foreground(p.Color(bannerColors[i])))
	}
	fmt.Fprintln(w)
}
