package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"sitegen/internal/index"
)

type RoutesCmd struct {
	Collections bool `help:"Summarise per collection instead of listing pages"`
}

func (r *RoutesCmd) Run(root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.ManifestPath == "" {
		return errors.New("manifest_path is empty, no build manifest is kept")
	}
	if _, err := os.Stat(cfg.ManifestPath); err != nil {
		return fmt.Errorf("no build manifest at %s, run build first", cfg.ManifestPath)
	}

	st, err := index.Open(index.OpenOptions{Path: cfg.ManifestPath, ReadOnly: true})
	if err != nil {
		return fmt.Errorf("open manifest: %w", err)
	}
	defer st.Close()

	return r.print(os.Stdout, st)
}

func (r *RoutesCmd) print(out io.Writer, st *index.Store) error {
	rec, err := st.LastBuild()
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}
	fmt.Fprintf(out, "build %s at %s (%d pages)\n\n", rec.BuildID, rec.FinishedAt.Format("2006-01-02 15:04:05"), rec.PageCount)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	if r.Collections {
		colls, err := st.ListCollections()
		if err != nil {
			return err
		}
		fmt.Fprintln(tw, "COLLECTION\tPAGES")
		for _, c := range colls {
			fmt.Fprintf(tw, "%s\t%d\n", c.Name, c.Count)
		}
		return tw.Flush()
	}

	pages, err := st.ListPages()
	if err != nil {
		return err
	}
	fmt.Fprintln(tw, "URL\tCOLLECTION\tTEMPLATE\tSOURCE")
	for _, p := range pages {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.URL, p.Collection, p.Template, p.Source)
	}
	return tw.Flush()
}
