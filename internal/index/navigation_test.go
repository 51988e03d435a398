package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitegen/internal/domain/content"
	"sitegen/internal/domain/site"
)

func navFixture(specs ...[3]string) ([]content.Item, []site.Route) {
	var items []content.Item
	var routes []site.Route
	for _, s := range specs {
		collection, slug, sortClass := s[0], s[1], s[2]
		items = append(items, content.Item{
			Collection: collection,
			Slug:       slug,
			Meta:       content.Meta{Title: content.Titleize(slug), SortClass: sortClass},
		})
		url := "/" + slug + ".html"
		if collection != "root" {
			url = "/" + collection + "/" + slug + ".html"
		}
		routes = append(routes, site.Route{Collection: collection, Slug: slug, URL: url})
	}
	return items, routes
}

func titles(nav []content.NavigationEntry) []string {
	out := make([]string, 0, len(nav))
	for _, e := range nav {
		out = append(out, e.Title)
	}
	return out
}

func TestBuildNavigation_SortsBySortClass(t *testing.T) {
	items, routes := navFixture(
		[3]string{"pages", "c", "C"},
		[3]string{"pages", "b", "B"},
		[3]string{"pages", "a", "A"},
	)
	nav := BuildNavigation(items, routes)
	assert.Equal(t, []string{"A", "B", "C"}, titles(nav))
}

func TestBuildNavigation_SortedBeforeUnsorted(t *testing.T) {
	items, routes := navFixture(
		[3]string{"pages", "zeta", ""},
		[3]string{"pages", "beta", "2"},
		[3]string{"pages", "alpha", ""},
		[3]string{"pages", "gamma", "1"},
		[3]string{"pages", "delta", "  "},
	)
	nav := BuildNavigation(items, routes)
	assert.Equal(t, []string{"Gamma", "Beta", "Zeta", "Alpha", "Delta"}, titles(nav))
}

func TestBuildNavigation_StableForEqualKeys(t *testing.T) {
	items, routes := navFixture(
		[3]string{"pages", "first", "x"},
		[3]string{"pages", "second", "x"},
		[3]string{"pages", "third", "x"},
	)
	nav := BuildNavigation(items, routes)
	assert.Equal(t, []string{"First", "Second", "Third"}, titles(nav))
}

func TestBuildNavigation_ByteWiseCompare(t *testing.T) {
	items, routes := navFixture(
		[3]string{"pages", "ten", "10"},
		[3]string{"pages", "two", "2"},
	)
	nav := BuildNavigation(items, routes)
	assert.Equal(t, []string{"Ten", "Two"}, titles(nav))
}

func TestBuildNavigation_ExcludesHomeOnly(t *testing.T) {
	items, routes := navFixture(
		[3]string{"root", "index", ""},
		[3]string{"pages", "index", ""},
		[3]string{"root", "about", ""},
	)
	nav := BuildNavigation(items, routes)
	require.Len(t, nav, 2)
	assert.Equal(t, "/pages/index.html", nav[0].URL)
	assert.Equal(t, "/about.html", nav[1].URL)
}

func TestBuildNavigation_FallsBackToSlugTitle(t *testing.T) {
	items := []content.Item{{Collection: "pages", Slug: "contact-us"}}
	routes := []site.Route{{URL: "/pages/contact-us.html"}}
	nav := BuildNavigation(items, routes)
	require.Len(t, nav, 1)
	assert.Equal(t, "Contact-Us", nav[0].Title)
}

func TestExcluding_RemovesSelfOnly(t *testing.T) {
	items, routes := navFixture(
		[3]string{"pages", "about", ""},
		[3]string{"pages", "contact", ""},
	)
	nav := BuildNavigation(items, routes)

	got := Excluding(nav, "/pages/about.html")
	assert.Equal(t, []string{"Contact"}, titles(got))
	assert.Len(t, nav, 2)

	assert.Len(t, Excluding(nav, "/index.html"), 2)
}

func TestCollection_Filters(t *testing.T) {
	items, routes := navFixture(
		[3]string{"pages", "about", ""},
		[3]string{"blog", "post", ""},
		[3]string{"pages", "contact", ""},
	)
	nav := BuildNavigation(items, routes)

	assert.Equal(t, []string{"About", "Contact"}, titles(Collection(nav, "pages")))
	assert.Empty(t, Collection(nav, "missing"))
}

func TestSample_DeterministicAndBounded(t *testing.T) {
	items, routes := navFixture(
		[3]string{"pages", "a", ""},
		[3]string{"pages", "b", ""},
		[3]string{"pages", "c", ""},
		[3]string{"pages", "d", ""},
		[3]string{"pages", "e", ""},
	)
	nav := BuildNavigation(items, routes)

	first := Sample(nav, 3, "/pages/a.html")
	second := Sample(nav, 3, "/pages/a.html")
	assert.Len(t, first, 3)
	assert.Equal(t, first, second)

	seen := map[string]bool{}
	for _, e := range first {
		assert.False(t, seen[e.URL], "duplicate pick %s", e.URL)
		seen[e.URL] = true
	}

	assert.Len(t, Sample(nav, 10, "x"), 5)
	assert.Empty(t, Sample(nav, 0, "x"))
	assert.Empty(t, Sample(nil, 2, "x"))
}
