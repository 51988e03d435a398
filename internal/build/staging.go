package build

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"sitegen/internal/logfields"
)

type staging struct {
	dir string
}

// beginStaging creates a fresh sibling of buildDir to write the build into:
// <build>.staging-<id>.
func beginStaging(buildDir, id string) (*staging, error) {
	dir := filepath.Clean(buildDir) + ".staging-" + id
	if err := os.RemoveAll(dir); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &staging{dir: dir}, nil
}

// promote swaps the staging directory into place.
//  1. Move the existing build directory to <build>.prev.
//  2. Rename staging to the build directory.
//  3. Remove the backup.
//
// If step 2 fails the backup is moved back.
func (s *staging) promote(buildDir string, log *slog.Logger) error {
	if s.dir == "" {
		return errors.New("no staging directory initialized")
	}
	if _, err := os.Stat(s.dir); err != nil {
		return fmt.Errorf("staging directory missing: %w", err)
	}

	out := filepath.Clean(buildDir)
	prev := out + ".prev"
	if err := os.RemoveAll(prev); err != nil {
		return fmt.Errorf("remove stale backup: %w", err)
	}

	backedUp := false
	if _, err := os.Stat(out); err == nil {
		if err := os.Rename(out, prev); err != nil {
			return fmt.Errorf("backup existing output: %w", err)
		}
		backedUp = true
	}
	if err := os.Rename(s.dir, out); err != nil {
		if backedUp {
			if rerr := os.Rename(prev, out); rerr != nil {
				log.Error("could not restore previous output", logfields.Path(prev), logfields.Error(rerr))
			}
		}
		return fmt.Errorf("promote staging: %w", err)
	}
	s.dir = ""

	if backedUp {
		if err := os.RemoveAll(prev); err != nil {
			log.Warn("failed to remove previous output", logfields.Path(prev), logfields.Error(err))
		}
	}
	log.Debug("promoted staging directory", logfields.Path(out))
	return nil
}

// abort removes the staging directory after a failed build.
func (s *staging) abort(log *slog.Logger) {
	if s.dir == "" {
		return
	}
	dir := s.dir
	s.dir = ""
	if err := os.RemoveAll(dir); err != nil {
		log.Warn("failed to remove staging directory", logfields.Path(dir), logfields.Error(err))
	}
}
