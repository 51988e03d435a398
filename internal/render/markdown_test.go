package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownRenderer_ConvertCollectsHeadings(t *testing.T) {
	src := []byte("# Title\n\nIntro text.\n\n## Second *part*\n\n| a | b |\n|---|---|\n| 1 | 2 |\n")

	res, err := NewMarkdownRenderer().Convert(src)
	require.NoError(t, err)

	html := string(res.HTML)
	assert.Contains(t, html, `<h1 id="title">Title</h1>`)
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "<p>Intro text.</p>")

	require.Len(t, res.Headings, 2)
	assert.Equal(t, Heading{Level: 1, ID: "title", Text: "Title"}, res.Headings[0])
	assert.Equal(t, 2, res.Headings[1].Level)
	assert.Equal(t, "Second part", res.Headings[1].Text)
}

func TestMarkdownRenderer_EmptyBody(t *testing.T) {
	res, err := NewMarkdownRenderer().Convert(nil)
	require.NoError(t, err)
	assert.Empty(t, res.HTML)
	assert.Empty(t, res.Headings)
}

func TestMarkdownRenderer_GFM(t *testing.T) {
	res, err := NewMarkdownRenderer().Convert([]byte("~~old~~ see https://example.com\n\n- [x] done\n"))
	require.NoError(t, err)

	html := string(res.HTML)
	assert.Contains(t, html, "<del>old</del>")
	assert.Contains(t, html, `<a href="https://example.com">https://example.com</a>`)
	assert.Contains(t, html, `type="checkbox"`)
}
