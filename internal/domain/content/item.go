package content

import (
	"fmt"
	"strings"
	"time"
)

// Recognized metadata keys. Everything else lands in Meta.Extra.
const (
	KeyTitle     = "title"
	KeyDesc      = "desc"
	KeyImago     = "imago"
	KeyCSSClass  = "css_class"
	KeySortClass = "sort_class"
	KeyTemplate  = "template"
)

type Meta struct {
	Title     string
	Desc      string
	Imago     string
	CSSClass  string
	SortClass string
	Template  string

	// Extra holds unrecognized keys, passed through to templates untouched.
	Extra map[string]any
}

type Item struct {
	SourcePath string
	Meta       Meta
	// Raw is the decoded header mapping as written by the author.
	Raw  map[string]any
	Body []byte

	Collection string
	Slug       string
	ModTime    time.Time
}

// IsHome reports whether the item is the site's root index document.
func (it Item) IsHome(rootCollection string) bool {
	return it.Collection == rootCollection && it.Slug == "index"
}

// MetaFromMap splits a decoded header into recognized fields and extras.
func MetaFromMap(raw map[string]any) Meta {
	m := Meta{Extra: make(map[string]any)}
	for k, v := range raw {
		switch k {
		case KeyTitle:
			m.Title = scalarString(v)
		case KeyDesc:
			m.Desc = scalarString(v)
		case KeyImago:
			m.Imago = scalarString(v)
		case KeyCSSClass:
			m.CSSClass = scalarString(v)
		case KeySortClass:
			m.SortClass = scalarString(v)
		case KeyTemplate:
			m.Template = scalarString(v)
		default:
			m.Extra[k] = v
		}
	}
	return m
}

func scalarString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case time.Time:
		return x.Format(time.DateOnly)
	default:
		return strings.TrimSpace(fmt.Sprint(x))
	}
}

// NavigationEntry is the read-only listing projection of an Item.
type NavigationEntry struct {
	Title      string
	Desc       string
	Imago      string
	CSSClass   string
	URL        string
	SortClass  string
	Collection string
}

func (e NavigationEntry) HasSortKey() bool {
	return e.SortClass != ""
}

type SitemapEntry struct {
	Loc     string
	LastMod time.Time
}
