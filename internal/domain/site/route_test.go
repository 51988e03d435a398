package site

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoute_String(t *testing.T) {
	r := Route{Collection: "pages", Slug: "about", OutPath: "pages/about.html", URL: "/pages/about.html"}
	assert.Equal(t, "collection=pages slug=about out=pages/about.html url=/pages/about.html", r.String())
	assert.Equal(t, "", Route{}.String())
}

func TestRoute_AbsoluteURL(t *testing.T) {
	r := Route{URL: "/pages/about.html"}
	assert.Equal(t, "https://example.com/pages/about.html", r.AbsoluteURL("https://example.com/"))
	assert.Equal(t, "https://example.com/pages/about.html", r.AbsoluteURL("https://example.com"))
}
