package ingest

import (
	"fmt"
	"os"

	"sitegen/internal/domain/content"
	domainerr "sitegen/internal/domain/errors"
)

// Load reads one source file into an Item. Collection and Slug are left for
// the route resolver.
func Load(path string) (content.Item, error) {
	st, err := os.Stat(path)
	if err != nil {
		return content.Item{}, fmt.Errorf("%w: %w", domainerr.ErrDiscovery, err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return content.Item{}, fmt.Errorf("%w: %w", domainerr.ErrDiscovery, err)
	}

	meta, body, err := ParseFrontMatter(raw)
	if err != nil {
		return content.Item{}, &domainerr.ParseError{Path: path, Err: err}
	}

	return content.Item{
		SourcePath: path,
		Meta:       content.MetaFromMap(meta),
		Raw:        meta,
		Body:       body,
		ModTime:    st.ModTime(),
	}, nil
}
