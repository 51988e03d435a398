package content

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Titleize capitalizes every word of a slug and keeps its separators:
// "getting_started-guide" becomes "Getting_Started-Guide".
func Titleize(slug string) string {
	caser := cases.Title(language.Und)
	var b strings.Builder
	start := 0
	for i, r := range slug {
		if r == '-' || r == '_' || unicode.IsSpace(r) {
			b.WriteString(caser.String(slug[start:i]))
			b.WriteRune(r)
			start = i + len(string(r))
		}
	}
	b.WriteString(caser.String(slug[start:]))
	return b.String()
}

// DisplayTitle is the metadata title, or the titleized slug when none is set.
func (it Item) DisplayTitle() string {
	if it.Meta.Title != "" {
		return it.Meta.Title
	}
	return Titleize(it.Slug)
}
