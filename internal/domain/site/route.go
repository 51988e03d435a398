package site

import (
	"strings"
)

// Route is where one content item lands in the output tree.
type Route struct {
	Collection string
	Slug       string
	// OutPath is relative to the build directory, OS separators.
	OutPath string
	// URL is the site-absolute path, always forward slashes.
	URL string
}

func (r Route) String() string {
	var parts []string
	if r.Collection != "" {
		parts = append(parts, "collection="+r.Collection)
	}
	if r.Slug != "" {
		parts = append(parts, "slug="+r.Slug)
	}
	if r.OutPath != "" {
		parts = append(parts, "out="+r.OutPath)
	}
	if r.URL != "" {
		parts = append(parts, "url="+r.URL)
	}
	return strings.Join(parts, " ")
}

// AbsoluteURL joins the site base URL and the route URL.
func (r Route) AbsoluteURL(baseURL string) string {
	return strings.TrimRight(strings.TrimSpace(baseURL), "/") + r.URL
}
