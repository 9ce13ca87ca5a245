package tui

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintBanner_PlainWhenNotATerminal(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "1.2.3\n")

	out := buf.String()
	assert.Contains(t, out, "v1.2.3")
	assert.NotContains(t, out, "\x1b[", "a buffer has no colour profile")
	assert.Equal(t, len(bannerLines)+3, strings.Count(out, "\n"))
}

func TestErrorStyle_PlainWhenNotATerminal(t *testing.T) {
	assert.Equal(t, "oops", ErrorStyle(&bytes.Buffer{})("oops"))
}

func TestRendererFor_NonTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, IsTerminal(f))
	assert.Equal(t, defaultWrap, Width(f))
	assert.Nil(t, RendererFor(f))
}

func TestNewRenderer(t *testing.T) {
	render, err := NewRenderer(0)
	require.NoError(t, err)

	out, err := render("## Life Path Number: 5\n\n**Freedom**: change")
	require.NoError(t, err)
	assert.Contains(t, out, "Life Path Number: 5")
}
