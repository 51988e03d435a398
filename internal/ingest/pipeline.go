package ingest

import (
	"context"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"sitegen/internal/domain/content"
)

type Warning struct {
	Path string
	Msg  string
}

func (w Warning) String() string {
	return w.Path + ": " + w.Msg
}

type Options struct {
	SourceDir string
	SkipDirs  []string
	Workers   int
}

type Result struct {
	Items []content.Item
	Warns []Warning
}

// Ingest discovers and loads every source document. Items come back in
// discovery order whatever the worker count; the first failure cancels the
// remaining loads.
func Ingest(ctx context.Context, opts Options) (Result, error) {
	files, err := Discover(opts.SourceDir, opts.SkipDirs)
	if err != nil {
		return Result{}, err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	items := make([]content.Item, len(files))
	warns := make([][]Warning, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, sf := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			it, err := Load(sf.Path)
			if err != nil {
				return err
			}
			if strings.TrimSpace(it.Meta.Title) == "" {
				warns[i] = append(warns[i], Warning{Path: sf.Path, Msg: "title is empty, falling back to slug"})
			}
			items[i] = it
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	var flat []Warning
	for _, w := range warns {
		flat = append(flat, w...)
	}
	return Result{Items: items, Warns: flat}, nil
}
