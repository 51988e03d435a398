package index

import (
	"hash/fnv"
	"math/rand/v2"
	"slices"
	"strings"

	"sitegen/internal/domain/config"
	"sitegen/internal/domain/content"
	"sitegen/internal/domain/site"
)

// BuildNavigation projects items into the listing shown on every page.
// The home document is left out. Entries carrying a sort_class come first,
// ordered by it; the rest keep discovery order. routes[i] belongs to items[i].
func BuildNavigation(items []content.Item, routes []site.Route) []content.NavigationEntry {
	var sorted, unsorted []content.NavigationEntry
	for i, it := range items {
		if it.IsHome(config.RootCollection) {
			continue
		}
		e := content.NavigationEntry{
			Title:      it.DisplayTitle(),
			Desc:       it.Meta.Desc,
			Imago:      it.Meta.Imago,
			CSSClass:   it.Meta.CSSClass,
			URL:        routes[i].URL,
			SortClass:  strings.TrimSpace(it.Meta.SortClass),
			Collection: it.Collection,
		}
		if e.HasSortKey() {
			sorted = append(sorted, e)
		} else {
			unsorted = append(unsorted, e)
		}
	}

	slices.SortStableFunc(sorted, func(a, b content.NavigationEntry) int {
		return strings.Compare(a.SortClass, b.SortClass)
	})

	out := make([]content.NavigationEntry, 0, len(sorted)+len(unsorted))
	out = append(out, sorted...)
	return append(out, unsorted...)
}

// Excluding returns nav without the entry for url. nav is not modified.
func Excluding(nav []content.NavigationEntry, url string) []content.NavigationEntry {
	out := make([]content.NavigationEntry, 0, len(nav))
	for _, e := range nav {
		if e.URL == url {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Collection keeps the entries of one collection, in navigation order.
func Collection(nav []content.NavigationEntry, name string) []content.NavigationEntry {
	out := make([]content.NavigationEntry, 0)
	for _, e := range nav {
		if e.Collection == name {
			out = append(out, e)
		}
	}
	return out
}

// Sample picks up to n entries in a pseudo-random order derived from seed.
// The same seed always yields the same picks.
func Sample(nav []content.NavigationEntry, n int, seed string) []content.NavigationEntry {
	if n <= 0 || len(nav) == 0 {
		return []content.NavigationEntry{}
	}
	n = min(n, len(nav))

	h := fnv.New64a()
	h.Write([]byte(seed))
	s := h.Sum64()
	r := rand.New(rand.NewPCG(s, s>>32|s<<32))

	out := make([]content.NavigationEntry, 0, n)
	for _, i := range r.Perm(len(nav))[:n] {
		out = append(out, nav[i])
	}
	return out
}
