package build

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"sitegen/internal/app"
	domainbuild "sitegen/internal/domain/build"
	"sitegen/internal/domain/config"
	"sitegen/internal/domain/content"
	domainerr "sitegen/internal/domain/errors"
	"sitegen/internal/domain/site"
	"sitegen/internal/index"
	"sitegen/internal/ingest"
	"sitegen/internal/logfields"
	"sitegen/internal/metrics"
	"sitegen/internal/render"
)

// Director runs one full build. Converter and Engine default to goldmark and
// the html/template engine over Cfg.TemplateDir.
type Director struct {
	Cfg       config.Config
	Converter render.Converter
	Engine    render.Engine
	Metrics   metrics.Recorder
	Logger    *slog.Logger
}

type Report struct {
	BuildID     string
	Items       int
	Warnings    []ingest.Warning
	SitemapPath string
	OutputDir   string
	Duration    time.Duration
	FinishedAt  time.Time
	Collections map[string]int
	Pages       []domainbuild.PageRecord
	// Navigation holds page URLs in navigation order.
	Navigation []string
}

func (d *Director) log() *slog.Logger {
	if d.Logger == nil {
		return slog.Default()
	}
	return d.Logger
}

func (d *Director) recorder() metrics.Recorder {
	if d.Metrics == nil {
		return metrics.NoopRecorder{}
	}
	return d.Metrics
}

// Run builds the whole site into a staging directory and promotes it over
// the build directory only when every step succeeded.
func (d *Director) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	rec := d.recorder()
	id := uuid.NewString()
	log := d.log().With(logfields.BuildID(id))

	rep, err := d.run(ctx, id, log)
	rec.ObserveBuildDuration(time.Since(start))
	if err != nil {
		outcome := metrics.OutcomeFailed
		if ctx.Err() != nil {
			outcome = metrics.OutcomeCanceled
		}
		rec.IncBuildOutcome(outcome)
		log.Error("build failed", logfields.Error(err))
		return nil, err
	}

	finished := time.Now()
	rep.FinishedAt = finished.UTC()
	rep.Duration = finished.Sub(start)
	if len(rep.Warnings) > 0 {
		rec.IncBuildOutcome(metrics.OutcomeWarning)
	} else {
		rec.IncBuildOutcome(metrics.OutcomeSuccess)
	}
	rec.AddWarnings(len(rep.Warnings))
	for name, n := range rep.Collections {
		rec.SetPages(name, n)
	}

	if d.Cfg.ManifestPath != "" {
		if err := d.recordManifest(rep); err != nil {
			log.Warn("could not record build manifest", logfields.Path(d.Cfg.ManifestPath), logfields.Error(err))
		}
	}

	log.Info("build finished",
		logfields.Count(rep.Items),
		logfields.Path(rep.OutputDir),
		logfields.Duration(rep.Duration),
		slog.Int("warnings", len(rep.Warnings)),
	)
	return rep, nil
}

func (d *Director) run(ctx context.Context, id string, log *slog.Logger) (rep *Report, err error) {
	cfg := d.Cfg
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	stg, err := beginStaging(cfg.BuildDir, id)
	if err != nil {
		return nil, fmt.Errorf("%w: staging: %w", domainerr.ErrWrite, err)
	}
	log.Debug("staging build", logfields.Path(stg.dir))
	defer func() {
		if err != nil {
			stg.abort(log)
		}
	}()

	var res ingest.Result
	err = d.stage(log, "ingest", func() error {
		var ierr error
		res, ierr = ingest.Ingest(ctx, ingest.Options{
			SourceDir: cfg.SourceDir,
			SkipDirs:  cfg.SkipDirs,
			Workers:   cfg.WorkerCount(),
		})
		return ierr
	})
	if err != nil {
		return nil, err
	}
	items := res.Items

	var routes []site.Route
	err = d.stage(log, "routes", func() error {
		rb := &app.RouteBuilder{SourceDir: cfg.SourceDir}
		var rerr error
		routes, rerr = rb.Build(items)
		return rerr
	})
	if err != nil {
		return nil, err
	}

	nav := index.BuildNavigation(items, routes)

	engine := d.Engine
	if engine == nil {
		tr, terr := render.NewTemplateRenderer(cfg.TemplateDir, cfg.Now)
		if terr != nil {
			return nil, terr
		}
		engine = tr
	}
	converter := d.Converter
	if converter == nil {
		converter = render.NewMarkdownRenderer()
	}
	pr := &render.PageRenderer{
		Converter: converter,
		Engine:    engine,
		Site:      cfg.Site,
		BaseURL:   cfg.BaseURL,
	}

	var pages []domainbuild.PageRecord
	err = d.stage(log, "render", func() error {
		var perr error
		pages, perr = d.renderAll(ctx, pr, stg.dir, items, routes, nav)
		return perr
	})
	if err != nil {
		return nil, err
	}

	err = d.stage(log, "sitemap", func() error {
		entries := make([]content.SitemapEntry, 0, len(items))
		for i, it := range items {
			entries = append(entries, content.SitemapEntry{
				Loc:     routes[i].AbsoluteURL(cfg.BaseURL),
				LastMod: lastModified(it),
			})
		}
		return writeFile(stg.dir, sitemapFile, []byte(buildSitemap(entries)))
	})
	if err != nil {
		return nil, err
	}

	err = d.stage(log, "static", func() error {
		for _, dir := range cfg.StaticDirs {
			if err := copyStaticDir(dir, stg.dir, log); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := stg.promote(cfg.BuildDir, log); err != nil {
		return nil, fmt.Errorf("%w: %w", domainerr.ErrWrite, err)
	}

	collections := make(map[string]int)
	for _, it := range items {
		collections[it.Collection]++
	}
	navURLs := make([]string, 0, len(nav))
	for _, e := range nav {
		navURLs = append(navURLs, e.URL)
	}

	return &Report{
		BuildID:     id,
		Items:       len(items),
		Warnings:    res.Warns,
		SitemapPath: filepath.Join(cfg.BuildDir, sitemapFile),
		OutputDir:   cfg.BuildDir,
		Collections: collections,
		Pages:       pages,
		Navigation:  navURLs,
	}, nil
}

// stage times fn and records its result under name.
func (d *Director) stage(log *slog.Logger, name string, fn func() error) error {
	rec := d.recorder()
	start := time.Now()
	err := fn()
	rec.ObserveStageDuration(name, time.Since(start))
	switch {
	case err == nil:
		rec.IncStageResult(name, metrics.ResultSuccess)
	case errors.Is(err, context.Canceled):
		rec.IncStageResult(name, metrics.ResultCanceled)
	default:
		rec.IncStageResult(name, metrics.ResultFatal)
	}
	log.Debug("stage done", logfields.Stage(name), logfields.Duration(time.Since(start)))
	return err
}

// renderAll renders every item into root, concurrently. Records come back
// in item order.
func (d *Director) renderAll(
	ctx context.Context,
	pr *render.PageRenderer,
	root string,
	items []content.Item,
	routes []site.Route,
	nav []content.NavigationEntry,
) ([]domainbuild.PageRecord, error) {
	records := make([]domainbuild.PageRecord, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.Cfg.WorkerCount())
	for i := range items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			it, route := items[i], routes[i]

			tplName, err := render.ResolveTemplate(it, d.Cfg, pr.Engine)
			if err != nil {
				return err
			}
			out, err := pr.Render(gctx, it, route, tplName, nav)
			if err != nil {
				return err
			}
			if err := writeFile(root, route.OutPath, out); err != nil {
				return err
			}

			fp := domainbuild.Fingerprint{Template: tplName, OutputHash: domainbuild.OutputHash(out)}
			if fp.ContentHash, err = domainbuild.ContentHash(it.Raw, it.Body); err != nil {
				return fmt.Errorf("fingerprint %s: %w", it.SourcePath, err)
			}
			fp.ComputeRenderHash()

			records[i] = domainbuild.PageRecord{
				Source:      it.SourcePath,
				Collection:  route.Collection,
				Slug:        route.Slug,
				OutPath:     filepath.ToSlash(route.OutPath),
				URL:         route.URL,
				Template:    tplName,
				ContentHash: fp.ContentHash,
				RenderHash:  fp.RenderHash,
			}
			d.log().Debug("rendered", logfields.File(it.SourcePath), logfields.Route(route.URL), logfields.Template(tplName))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

func (d *Director) recordManifest(rep *Report) error {
	st, err := index.Open(index.OpenOptions{Path: d.Cfg.ManifestPath})
	if err != nil {
		return err
	}
	defer st.Close()

	return st.Rebuild(domainbuild.Manifest{
		BuildID:    rep.BuildID,
		FinishedAt: rep.FinishedAt,
		BaseURL:    d.Cfg.BaseURL,
		Pages:      rep.Pages,
		Navigation: rep.Navigation,
	})
}

func writeFile(root, rel string, data []byte) error {
	full := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("%w: %w", domainerr.ErrWrite, err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fmt.Errorf("%w: %w", domainerr.ErrWrite, err)
	}
	return nil
}
