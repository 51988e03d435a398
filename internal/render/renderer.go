package render

import (
	"context"
	"fmt"
	"html/template"

	"sitegen/internal/domain/config"
	"sitegen/internal/domain/content"
	domainerr "sitegen/internal/domain/errors"
	"sitegen/internal/domain/site"
	"sitegen/internal/index"
)

// Converter turns a Markdown body into HTML.
type Converter interface {
	Convert(src []byte) (MarkdownResult, error)
}

type TemplateLookup interface {
	Has(name string) bool
}

// Engine executes a named template against a page.
type Engine interface {
	TemplateLookup
	Render(ctx context.Context, name string, page PageContext) ([]byte, error)
}

// ResolveTemplate picks the template for item. An explicit template key wins,
// then the index template for the home document, then the default template.
func ResolveTemplate(item content.Item, cfg config.Config, lookup TemplateLookup) (string, error) {
	var name string
	switch {
	case item.Meta.Template != "":
		name = cfg.TemplateName(item.Meta.Template)
	case item.IsHome(config.RootCollection):
		name = cfg.TemplateName(cfg.IndexTemplate)
	default:
		name = cfg.TemplateName(cfg.DefaultTemplate)
	}
	if !lookup.Has(name) {
		return "", &domainerr.TemplateNotFoundError{Name: name, Source: item.SourcePath}
	}
	return name, nil
}

// PageRenderer composes a page from an item and the navigation index. It does
// not touch the filesystem.
type PageRenderer struct {
	Converter Converter
	Engine    Engine
	Site      config.SiteConfig
	BaseURL   string
}

func (r *PageRenderer) Render(ctx context.Context, item content.Item, route site.Route, templateName string, nav []content.NavigationEntry) ([]byte, error) {
	md, err := r.Converter.Convert(item.Body)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", item.SourcePath, err)
	}

	extra := item.Meta.Extra
	if extra == nil {
		extra = map[string]any{}
	}

	page := PageContext{
		Site:       r.Site,
		BaseURL:    r.BaseURL,
		Title:      item.DisplayTitle(),
		Desc:       item.Meta.Desc,
		Imago:      item.Meta.Imago,
		CSSClass:   item.Meta.CSSClass,
		SortClass:  item.Meta.SortClass,
		Template:   templateName,
		Content:    template.HTML(md.HTML),
		TOC:        md.Headings,
		URL:        route.URL,
		Collection: item.Collection,
		Slug:       item.Slug,
		IsHome:     item.IsHome(config.RootCollection),
		AllPages:   index.Excluding(nav, route.URL),
		Extra:      extra,
	}

	out, err := r.Engine.Render(ctx, templateName, page)
	if err != nil {
		return nil, fmt.Errorf("render %s with %s: %w", item.SourcePath, templateName, err)
	}
	return out, nil
}
