package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf)

	out := buf.String()
	assert.Len(t, strings.Split(strings.Trim(out, "\n"), "\n"), len(bannerLines))
	assert.Contains(t, out, `|___/|_|`)
}

func TestPlainStyles(t *testing.T) {
	s := PlainStyles()
	assert.Equal(t, ">>> 1. Go", s.Highlight.Render(">>> 1. Go"))
	assert.Equal(t, "ok", s.Success.Render("ok"))
}

func TestRenderers(t *testing.T) {
	out, err := PlainRenderer("**bold**")
	require.NoError(t, err)
	assert.Equal(t, "**bold**", out)

	out, err = NewRenderer(60)("Hello **world**")
	require.NoError(t, err)
	assert.Contains(t, out, "world")
}
