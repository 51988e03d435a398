package ingest

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	domainerr "sitegen/internal/domain/errors"
)

type SourceFile struct {
	Path string
	// Rel is Path relative to the source root.
	Rel string
}

// IsMarkdown reports whether name carries a Markdown extension.
func IsMarkdown(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".md" || ext == ".markdown"
}

// Discover walks root in lexical order and returns every Markdown file that
// does not live under a skipped directory. A directory is pruned when its
// name matches an entry of skip, at any depth.
func Discover(root string, skip []string) ([]SourceFile, error) {
	st, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domainerr.ErrDiscovery, err)
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domainerr.ErrDiscovery, root)
	}

	skipSet := make(map[string]struct{}, len(skip))
	for _, s := range skip {
		skipSet[s] = struct{}{}
	}

	var out []SourceFile
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == root {
				return nil
			}
			if _, ok := skipSet[d.Name()]; ok {
				return fs.SkipDir
			}
			return nil
		}
		if !IsMarkdown(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		out = append(out, SourceFile{Path: path, Rel: rel})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domainerr.ErrDiscovery, err)
	}
	return out, nil
}
