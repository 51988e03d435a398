package render

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitegen/internal/domain/content"
	domainerr "sitegen/internal/domain/errors"
)

func writeTemplates(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	}
	return dir
}

func TestTemplateRenderer_NamesByRelativePath(t *testing.T) {
	dir := writeTemplates(t, map[string]string{
		"default.html":       `{{template "partials/head.html" .}}<main>{{.Content}}</main>`,
		"partials/head.html": `<title>{{.Title}}</title>`,
	})
	tr, err := NewTemplateRenderer(dir, time.Time{})
	require.NoError(t, err)

	assert.True(t, tr.Has("default.html"))
	assert.True(t, tr.Has("partials/head.html"))
	assert.False(t, tr.Has("missing.html"))
	assert.False(t, tr.Has(""))

	out, err := tr.Render(context.Background(), "default.html", PageContext{Title: "A & B", Content: "<p>x</p>"})
	require.NoError(t, err)
	assert.Equal(t, "<title>A &amp; B</title><main><p>x</p></main>", string(out))
}

func TestTemplateRenderer_MissingTemplate(t *testing.T) {
	tr, err := NewTemplateRenderer(writeTemplates(t, map[string]string{"default.html": "x"}), time.Time{})
	require.NoError(t, err)

	_, err = tr.Render(context.Background(), "other.html", PageContext{})
	require.ErrorIs(t, err, domainerr.ErrTemplateNotFound)
}

func TestTemplateRenderer_MissingDirectory(t *testing.T) {
	_, err := NewTemplateRenderer(filepath.Join(t.TempDir(), "nope"), time.Time{})
	require.ErrorIs(t, err, domainerr.ErrTemplateNotFound)
}

func TestTemplateRenderer_ParseError(t *testing.T) {
	_, err := NewTemplateRenderer(writeTemplates(t, map[string]string{"default.html": "{{.Title"}), time.Time{})
	require.Error(t, err)
}

func TestTemplateRenderer_CollectionAndSampleFuncs(t *testing.T) {
	dir := writeTemplates(t, map[string]string{
		"list.html": `{{range collection .AllPages "blog"}}[{{.Title}}]{{end}}|{{len (sample .AllPages 2 .URL)}}`,
	})
	tr, err := NewTemplateRenderer(dir, time.Time{})
	require.NoError(t, err)

	page := PageContext{
		URL: "/index.html",
		AllPages: []content.NavigationEntry{
			{Title: "One", Collection: "blog", URL: "/blog/one.html"},
			{Title: "About", Collection: "pages", URL: "/pages/about.html"},
			{Title: "Two", Collection: "blog", URL: "/blog/two.html"},
		},
	}
	out, err := tr.Render(context.Background(), "list.html", page)
	require.NoError(t, err)
	assert.Equal(t, "[One][Two]|2", string(out))
}

func TestTemplateRenderer_NowYearUsesBuildClock(t *testing.T) {
	dir := writeTemplates(t, map[string]string{"footer.html": `(c) {{nowYear}}`})
	tr, err := NewTemplateRenderer(dir, time.Date(1999, 12, 31, 23, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	out, err := tr.Render(context.Background(), "footer.html", PageContext{})
	require.NoError(t, err)
	assert.Equal(t, "(c) 1999", string(out))
}
