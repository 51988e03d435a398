package build

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	domainerr "sitegen/internal/domain/errors"
	"sitegen/internal/logfields"
)

// copyStaticDir copies src to <root>/<basename of src>. A missing src is
// skipped.
func copyStaticDir(src, root string, log *slog.Logger) error {
	info, err := os.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug("static directory not found, skipping", logfields.Path(src))
			return nil
		}
		return fmt.Errorf("%w: %w", domainerr.ErrWrite, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: static path %s is not a directory", domainerr.ErrWrite, src)
	}

	dstRoot := filepath.Join(root, filepath.Base(filepath.Clean(src)))
	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		dst := filepath.Join(dstRoot, rel)
		if d.IsDir() {
			return os.MkdirAll(dst, 0o755)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		return copyFile(path, dst)
	})
	if err != nil {
		return fmt.Errorf("%w: copy static %s: %w", domainerr.ErrWrite, src, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
