package main

import (
	"context"
	"fmt"
	"log/slog"

	"sitegen/internal/serve"
)

type ServeCmd struct {
	Addr  string `help:"Listen address" default:":8080"`
	Build bool   `help:"Build once before serving" default:"true" negatable:""`
}

func (s *ServeCmd) Run(ctx context.Context, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	srv, err := serve.New(ctx, cfg, serve.Options{Build: s.Build, Logger: slog.Default()})
	if err != nil {
		return err
	}
	defer srv.Close()

	return srv.ListenAndServe(ctx, s.Addr)
}
