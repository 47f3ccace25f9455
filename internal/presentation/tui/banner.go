package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the ASCII art banner and the version to w. Colours follow
// the terminal profile of w, so a redirected stream gets plain text.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text  string
		color string
	}{
		{"   ___ _                 _", "#38bdf8"},
		{"  / __| |___ _  _ __| |", "#60a5fa"},
		{" | (__| / _ \\ || / _` |", "#818cf8"},
		{"  \\___|_\\___/\\_,_\\__,_| diagram", "#a78bfa"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w, out.String("  "+version).Faint())
	fmt.Fprintln(w)
}
