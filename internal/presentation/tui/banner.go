package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

var bannerColors = []string{"#818cf8", "#a78bfa", "#c084fc", "#e879f9", "#f472b6"}

var bannerLines = []string{
	` _   _                                _`,
	`| \ | |_   _ _ __ ___   ___ _ __ ___ | | ___   __ _ _   _`,
	`|  \| | | | | '_ ' _ \ / _ \ '__/ _ \| |/ _ \ / _' | | | |`,
	`| |\  | |_| | | | | | |  __/ | | (_) | | (_) | (_| | |_| |`,
	`|_| \_|\__,_|_| |_| |_|\___|_|  \___/|_|\___/ \__, |\__, |`,
}

// PrintBanner writes the coloured banner and the version to w. Colours are
// dropped when w is not a terminal.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	p := out.ColorProfile()

	fmt.Fprintln(w)
	for i, line := range bannerLines {
		fmt.Fprintln(w, out.String(line).Foreground(p.Color(bannerColors[i%len(bannerColors)])))
	}
	fmt.Fprintln(w, out.String(fmt.Sprintf("%57s", "v"+strings.TrimSpace(version))).Faint())
	fmt.Fprintln(w)
}

// ErrorStyle returns a function that paints messages red on w's terminal.
func ErrorStyle(w io.Writer) func(string) string {
	out := termenv.NewOutput(w)
	p := out.ColorProfile()
	return func(msg string) string {
		return out.String(msg).Foreground(p.Color("#f87171")).Bold().String()
	}
}
