package app

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitegen/internal/domain/content"
	domainerr "sitegen/internal/domain/errors"
)

func TestResolveRoute(t *testing.T) {
	src := filepath.Join("site", "source")

	cases := []struct {
		rel        string
		collection string
		slug       string
		url        string
	}{
		{"index.md", "root", "index", "/index.html"},
		{"pages/about.md", "pages", "about", "/pages/about.html"},
		{"pages/index.md", "pages", "index", "/pages/index.html"},
		{"blog/2024/first.markdown", "blog", "first", "/blog/first.html"},
	}

	for _, tc := range cases {
		t.Run(tc.rel, func(t *testing.T) {
			r, err := ResolveRoute(filepath.Join(src, filepath.FromSlash(tc.rel)), src)
			require.NoError(t, err)
			assert.Equal(t, tc.collection, r.Collection)
			assert.Equal(t, tc.slug, r.Slug)
			assert.Equal(t, tc.url, r.URL)
			assert.Equal(t, filepath.FromSlash(tc.url[1:]), r.OutPath)
		})
	}
}

func TestResolveRoute_OutsideSource(t *testing.T) {
	_, err := ResolveRoute(filepath.Join("elsewhere", "a.md"), "source")
	require.ErrorIs(t, err, domainerr.ErrDiscovery)
}

func TestRouteBuilder_AssignsCollectionAndSlug(t *testing.T) {
	items := []content.Item{
		{SourcePath: filepath.Join("src", "index.md")},
		{SourcePath: filepath.Join("src", "pages", "about.md")},
	}
	rb := &RouteBuilder{SourceDir: "src"}

	routes, err := rb.Build(items)
	require.NoError(t, err)
	require.Len(t, routes, 2)
	assert.Equal(t, "root", items[0].Collection)
	assert.Equal(t, "index", items[0].Slug)
	assert.True(t, items[0].IsHome("root"))
	assert.Equal(t, "pages", items[1].Collection)
	assert.Equal(t, "/pages/about.html", routes[1].URL)
}

func TestRouteBuilder_Collision(t *testing.T) {
	first := filepath.Join("src", "pages", "about.md")
	second := filepath.Join("src", "pages", "about.markdown")
	items := []content.Item{{SourcePath: first}, {SourcePath: second}}
	rb := &RouteBuilder{SourceDir: "src"}

	_, err := rb.Build(items)
	require.ErrorIs(t, err, domainerr.ErrRouteCollision)

	var ce *domainerr.RouteCollisionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, first, ce.First)
	assert.Equal(t, second, ce.Second)
	assert.Equal(t, filepath.Join("pages", "about.html"), ce.OutPath)
}

func TestRouteBuilder_NestedCollision(t *testing.T) {
	items := []content.Item{
		{SourcePath: filepath.Join("src", "pages", "x.md")},
		{SourcePath: filepath.Join("src", "pages", "sub", "x.md")},
	}
	_, err := (&RouteBuilder{SourceDir: "src"}).Build(items)
	require.ErrorIs(t, err, domainerr.ErrRouteCollision)
}
