package render

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitegen/internal/domain/config"
	"sitegen/internal/domain/content"
	domainerr "sitegen/internal/domain/errors"
	"sitegen/internal/domain/site"
)

type fakeConverter struct {
	err error
}

func (f fakeConverter) Convert(src []byte) (MarkdownResult, error) {
	if f.err != nil {
		return MarkdownResult{}, f.err
	}
	return MarkdownResult{HTML: append([]byte("<p>"), append(src, []byte("</p>")...)...)}, nil
}

type fakeEngine struct {
	names map[string]bool
	got   PageContext
	name  string
}

func (f *fakeEngine) Has(name string) bool { return f.names[name] }

func (f *fakeEngine) Render(_ context.Context, name string, page PageContext) ([]byte, error) {
	f.name = name
	f.got = page
	return []byte(name + ":" + page.Title), nil
}

func lookupOf(names ...string) *fakeEngine {
	m := map[string]bool{}
	for _, n := range names {
		m[n] = true
	}
	return &fakeEngine{names: m}
}

func TestResolveTemplate_Precedence(t *testing.T) {
	cfg := config.Default()
	engine := lookupOf("default.html", "index.html", "custom.html")

	home := content.Item{Collection: "root", Slug: "index"}
	name, err := ResolveTemplate(home, cfg, engine)
	require.NoError(t, err)
	assert.Equal(t, "index.html", name)

	home.Meta.Template = "custom"
	name, err = ResolveTemplate(home, cfg, engine)
	require.NoError(t, err)
	assert.Equal(t, "custom.html", name)

	page := content.Item{Collection: "pages", Slug: "about"}
	name, err = ResolveTemplate(page, cfg, engine)
	require.NoError(t, err)
	assert.Equal(t, "default.html", name)

	nestedIndex := content.Item{Collection: "pages", Slug: "index"}
	name, err = ResolveTemplate(nestedIndex, cfg, engine)
	require.NoError(t, err)
	assert.Equal(t, "default.html", name)
}

func TestResolveTemplate_SuffixNotDoubled(t *testing.T) {
	cfg := config.Default()
	item := content.Item{Collection: "pages", Slug: "x", Meta: content.Meta{Template: "custom.html"}}

	name, err := ResolveTemplate(item, cfg, lookupOf("custom.html"))
	require.NoError(t, err)
	assert.Equal(t, "custom.html", name)
}

func TestResolveTemplate_Missing(t *testing.T) {
	cfg := config.Default()
	item := content.Item{SourcePath: "source/pages/x.md", Collection: "pages", Slug: "x", Meta: content.Meta{Template: "nope"}}

	_, err := ResolveTemplate(item, cfg, lookupOf("default.html"))
	require.ErrorIs(t, err, domainerr.ErrTemplateNotFound)

	var tnf *domainerr.TemplateNotFoundError
	require.ErrorAs(t, err, &tnf)
	assert.Equal(t, "nope.html", tnf.Name)
	assert.Equal(t, "source/pages/x.md", tnf.Source)
}

func TestPageRenderer_ComposesContext(t *testing.T) {
	engine := lookupOf("default.html")
	r := &PageRenderer{
		Converter: fakeConverter{},
		Engine:    engine,
		Site:      config.SiteConfig{Title: "Site"},
		BaseURL:   "https://example.com",
	}
	item := content.Item{
		SourcePath: "source/pages/about.md",
		Collection: "pages",
		Slug:       "about",
		Body:       []byte("hello"),
		Meta:       content.Meta{Desc: "d", CSSClass: "wide", Extra: map[string]any{"hero": "x"}},
	}
	route := site.Route{Collection: "pages", Slug: "about", URL: "/pages/about.html"}
	nav := []content.NavigationEntry{
		{Title: "About", URL: "/pages/about.html"},
		{Title: "Contact", URL: "/pages/contact.html"},
	}

	out, err := r.Render(context.Background(), item, route, "default.html", nav)
	require.NoError(t, err)
	assert.Equal(t, "default.html:About", string(out))

	got := engine.got
	assert.Equal(t, "About", got.Title)
	assert.Equal(t, "d", got.Desc)
	assert.Equal(t, "wide", got.CSSClass)
	assert.Equal(t, "<p>hello</p>", string(got.Content))
	assert.Equal(t, "/pages/about.html", got.URL)
	assert.Equal(t, "x", got.Extra["hero"])
	assert.False(t, got.IsHome)
	require.Len(t, got.AllPages, 1)
	assert.Equal(t, "Contact", got.AllPages[0].Title)
	assert.Len(t, nav, 2)
}

func TestPageRenderer_ConvertError(t *testing.T) {
	r := &PageRenderer{Converter: fakeConverter{err: errors.New("boom")}, Engine: lookupOf()}
	_, err := r.Render(context.Background(), content.Item{}, site.Route{}, "default.html", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}
