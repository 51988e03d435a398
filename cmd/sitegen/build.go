package main

import (
	"context"
	"fmt"
	"log/slog"

	"sitegen/internal/build"
	"sitegen/internal/logfields"
	"sitegen/internal/metrics"
)

type BuildCmd struct {
	MetricsTextfile string `name:"metrics-textfile" help:"Write Prometheus metrics for this build to a textfile" type:"path"`
}

func (b *BuildCmd) Run(ctx context.Context, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var rec metrics.Recorder = metrics.NoopRecorder{}
	var prom *metrics.PrometheusRecorder
	if b.MetricsTextfile != "" {
		prom = metrics.NewPrometheusRecorder(nil)
		rec = prom
	}

	d := &build.Director{Cfg: cfg, Metrics: rec, Logger: slog.Default()}
	rep, runErr := d.Run(ctx)

	if prom != nil {
		if err := prom.WriteTextfile(b.MetricsTextfile); err != nil {
			slog.Warn("could not write metrics textfile", logfields.Path(b.MetricsTextfile), logfields.Error(err))
		}
	}
	if runErr != nil {
		return runErr
	}

	for _, w := range rep.Warnings {
		slog.Warn(w.Msg, logfields.File(w.Path))
	}
	for name, n := range rep.Collections {
		slog.Info("collection", logfields.Collection(name), logfields.Count(n))
	}
	slog.Info("site built",
		logfields.BuildID(rep.BuildID),
		logfields.Count(rep.Items),
		logfields.Path(rep.OutputDir),
		slog.String("sitemap", rep.SitemapPath),
	)
	return nil
}
