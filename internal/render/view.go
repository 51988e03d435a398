package render

import (
	"html/template"

	"sitegen/internal/domain/config"
	"sitegen/internal/domain/content"
)

type Heading struct {
	Level int
	ID    string
	Text  string
}

// PageContext is everything a page template can see.
type PageContext struct {
	Site    config.SiteConfig
	BaseURL string

	Title     string
	Desc      string
	Imago     string
	CSSClass  string
	SortClass string
	Template  string
	Content   template.HTML
	TOC       []Heading

	URL        string
	Collection string
	Slug       string
	IsHome     bool

	// AllPages is the navigation index without the page itself.
	AllPages []content.NavigationEntry
	Extra    map[string]any
}
