package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"sitegen/internal/domain/config"
	"sitegen/internal/domain/content"
	domainerr "sitegen/internal/domain/errors"
	"sitegen/internal/domain/site"
)

// ResolveRoute derives collection, slug and output location from a source
// path alone. Files directly under sourceDir belong to the root collection;
// anything deeper belongs to its top-level directory.
func ResolveRoute(path, sourceDir string) (site.Route, error) {
	rel, err := filepath.Rel(sourceDir, path)
	if err != nil {
		return site.Route{}, fmt.Errorf("%w: %w", domainerr.ErrDiscovery, err)
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return site.Route{}, fmt.Errorf("%w: %s is outside %s", domainerr.ErrDiscovery, path, sourceDir)
	}

	segs := strings.Split(rel, "/")
	base := segs[len(segs)-1]
	slug := strings.TrimSuffix(base, filepath.Ext(base))

	collection := config.RootCollection
	out := slug + ".html"
	if len(segs) > 1 {
		collection = segs[0]
		out = filepath.Join(collection, out)
	}

	return site.Route{
		Collection: collection,
		Slug:       slug,
		OutPath:    out,
		URL:        "/" + filepath.ToSlash(out),
	}, nil
}

type RouteBuilder struct {
	SourceDir string
}

// Build assigns a route to every item, filling in Collection and Slug, and
// returns the routes in item order. Two items landing on the same output
// file are reported as a RouteCollisionError.
func (rb *RouteBuilder) Build(items []content.Item) ([]site.Route, error) {
	routes := make([]site.Route, 0, len(items))
	owner := make(map[string]string, len(items))

	for i := range items {
		r, err := ResolveRoute(items[i].SourcePath, rb.SourceDir)
		if err != nil {
			return nil, err
		}
		key := r.OutPath
		if first, ok := owner[key]; ok {
			return nil, &domainerr.RouteCollisionError{
				OutPath: r.OutPath,
				First:   first,
				Second:  items[i].SourcePath,
			}
		}
		owner[key] = items[i].SourcePath

		items[i].Collection = r.Collection
		items[i].Slug = r.Slug
		routes = append(routes, r)
	}
	return routes, nil
}
