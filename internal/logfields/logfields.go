package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field names.
const (
	KeyPath       = "path"
	KeyFile       = "file"
	KeyCollection = "collection"
	KeyRoute      = "route"
	KeyTemplate   = "template"
	KeyStage      = "stage"
	KeyBuildID    = "build_id"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

func Path(p string) slog.Attr            { return slog.String(KeyPath, p) }
func File(f string) slog.Attr            { return slog.String(KeyFile, f) }
func Collection(c string) slog.Attr      { return slog.String(KeyCollection, c) }
func Route(r string) slog.Attr           { return slog.String(KeyRoute, r) }
func Template(t string) slog.Attr        { return slog.String(KeyTemplate, t) }
func Stage(name string) slog.Attr        { return slog.String(KeyStage, name) }
func BuildID(id string) slog.Attr        { return slog.String(KeyBuildID, id) }
func Count(n int) slog.Attr              { return slog.Int(KeyCount, n) }
func Duration(d time.Duration) slog.Attr { return slog.Int64(KeyDurationMS, d.Milliseconds()) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
