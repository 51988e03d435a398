package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"sitegen/internal/domain/config"
)

type CLI struct {
	Config  string `short:"c" help:"Configuration file path (YAML or JSON)" default:"site.yaml" type:"path"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Build  BuildCmd  `cmd:"" help:"Build the site into the build directory"`
	Routes RoutesCmd `cmd:"" help:"Show the pages recorded by the last successful build"`
	Serve  ServeCmd  `cmd:"" help:"Serve the build directory for local preview"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

func (c *CLI) loadConfig() (config.Config, error) {
	return config.LoadOrDefault(c.Config)
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("sitegen"),
		kong.Description("Static site generator: Markdown collections in, HTML pages and a sitemap out."),
		kong.UsageOnError(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	kctx.BindTo(ctx, (*context.Context)(nil))

	if err := kctx.Run(&cli); err != nil {
		slog.Error("sitegen failed", "error", err)
		stop()
		os.Exit(1)
	}
}
