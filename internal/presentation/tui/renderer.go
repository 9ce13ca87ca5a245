package tui

import (
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

const defaultWrap = 80

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// Width returns the column count of f, or 80 when it is not a terminal.
func Width(f *os.File) int {
	if !IsTerminal(f) {
		return defaultWrap
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return defaultWrap
	}
	return w
}

// NewRenderer returns a function that renders markdown using glamour,
// wrapped to width columns.
func NewRenderer(width int) (func(string) (string, error), error) {
	if width <= 0 {
		width = defaultWrap
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}, nil
}

// RendererFor returns a glamour renderer sized to f, or nil when f is not a
// terminal and plain Markdown should be printed instead.
func RendererFor(f *os.File) func(string) (string, error) {
	if !IsTerminal(f) {
		return nil
	}
	r, err := NewRenderer(Width(f))
	if err != nil {
		return nil
	}
	return r
}
