package build

import (
	"encoding/xml"
	"strings"
	"time"

	"sitegen/internal/domain/content"
)

const sitemapFile = "sitemap.xml"

var lastModLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	time.DateTime,
	"2006-01-02 15:04",
}

// lastModified prefers a parseable "lastmod" metadata value over the source
// file's modification time.
func lastModified(it content.Item) time.Time {
	switch v := it.Meta.Extra["lastmod"].(type) {
	case time.Time:
		return v
	case string:
		s := strings.TrimSpace(v)
		for _, layout := range lastModLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t
			}
		}
	}
	return it.ModTime
}

func buildSitemap(entries []content.SitemapEntry) string {
	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")
	for _, entry := range entries {
		builder.WriteString("<url><loc>")
		_ = xml.EscapeText(&builder, []byte(entry.Loc))
		builder.WriteString("</loc><lastmod>")
		builder.WriteString(entry.LastMod.UTC().Format(time.DateOnly))
		builder.WriteString("</lastmod></url>\n")
	}
	builder.WriteString(`</urlset>` + "\n")
	return builder.String()
}
