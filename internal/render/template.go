package render

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"sitegen/internal/domain/content"
	domainerr "sitegen/internal/domain/errors"
	"sitegen/internal/index"
)

// TemplateRenderer is an html/template engine over every file of a template
// directory. Templates are named by their slash-separated path relative to
// that directory, so "partials/head.html" can be included from "default.html".
type TemplateRenderer struct {
	tpl *template.Template
}

// NewTemplateRenderer loads every template under dir. now is the build
// clock seen by the nowYear func; zero means the wall clock.
func NewTemplateRenderer(dir string, now time.Time) (*TemplateRenderer, error) {
	if now.IsZero() {
		now = time.Now()
	}

	st, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: template directory: %w", domainerr.ErrTemplateNotFound, err)
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domainerr.ErrTemplateNotFound, dir)
	}

	root := template.New("").Funcs(templateFuncs(now))
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		if _, err := root.New(name).Parse(string(data)); err != nil {
			return fmt.Errorf("template %s: %w", name, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &TemplateRenderer{tpl: root}, nil
}

func templateFuncs(now time.Time) template.FuncMap {
	return template.FuncMap{
		"date": func(t interface{}, layout string) string {
			switch v := t.(type) {
			case nil:
				return ""
			case string:
				return v
			case interface{ Format(string) string }:
				return v.Format(layout)
			default:
				return ""
			}
		},
		"collection": func(nav []content.NavigationEntry, name string) []content.NavigationEntry {
			return index.Collection(nav, name)
		},
		"sample": func(nav []content.NavigationEntry, n int, seed string) []content.NavigationEntry {
			return index.Sample(nav, n, seed)
		},
		"nowYear": func() int {
			return now.Year()
		},
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
	}
}

func (r *TemplateRenderer) Has(name string) bool {
	return name != "" && r.tpl.Lookup(name) != nil
}

func (r *TemplateRenderer) Render(ctx context.Context, name string, page PageContext) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.exec(name, page)
}

func (r *TemplateRenderer) exec(name string, data interface{}) ([]byte, error) {
	t := r.tpl.Lookup(name)
	if name == "" || t == nil {
		return nil, &domainerr.TemplateNotFoundError{Name: name}
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
