package serve

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"sitegen/internal/build"
	"sitegen/internal/domain/config"
	"sitegen/internal/index"
	"sitegen/internal/logfields"
)

// Server serves a finished build directory for local preview. It never
// rebuilds on its own.
type Server struct {
	cfg config.Config
	idx *index.Store
	log *slog.Logger
}

type Options struct {
	// Build runs one build before serving.
	Build    bool
	Director *build.Director
	Logger   *slog.Logger
}

func New(ctx context.Context, cfg config.Config, opts Options) (*Server, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if opts.Build {
		d := opts.Director
		if d == nil {
			d = &build.Director{Cfg: cfg, Logger: logger}
		}
		if _, err := d.Run(ctx); err != nil {
			return nil, fmt.Errorf("serve: initial build: %w", err)
		}
	}

	if st, err := os.Stat(cfg.BuildDir); err != nil || !st.IsDir() {
		return nil, fmt.Errorf("serve: build directory %s not found, run build first", cfg.BuildDir)
	}

	s := &Server{cfg: cfg, log: logger}
	if cfg.ManifestPath != "" {
		if _, err := os.Stat(cfg.ManifestPath); err == nil {
			st, err := index.Open(index.OpenOptions{Path: cfg.ManifestPath, ReadOnly: true})
			if err != nil {
				return nil, fmt.Errorf("serve: failed to open manifest: %w", err)
			}
			s.idx = st
		}
	}
	return s, nil
}

func (s *Server) Close() error {
	if s.idx != nil {
		return s.idx.Close()
	}
	return nil
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/_sitegen/pages", s.handlePages)
	mux.Handle("/", s.withLogging(s.files()))
	return mux
}

func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	// 支持 ctx 取消
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.log.Info("serving build directory", logfields.Path(s.cfg.BuildDir), slog.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// files serves the build tree. "/" maps to the home document and paths
// without an extension fall back to their .html page.
func (s *Server) files() http.Handler {
	root := http.Dir(s.cfg.BuildDir)
	fs := http.FileServer(root)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := path.Clean("/" + r.URL.Path)
		if p != "/" && path.Ext(p) == "" && !s.isDir(p) {
			if s.exists(p + ".html") {
				r2 := r.Clone(r.Context())
				r2.URL.Path = p + ".html"
				fs.ServeHTTP(w, r2)
				return
			}
		}
		fs.ServeHTTP(w, r)
	})
}

func (s *Server) exists(urlPath string) bool {
	st, err := os.Stat(filepath.Join(s.cfg.BuildDir, filepath.FromSlash(strings.TrimPrefix(urlPath, "/"))))
	return err == nil && !st.IsDir()
}

func (s *Server) isDir(urlPath string) bool {
	st, err := os.Stat(filepath.Join(s.cfg.BuildDir, filepath.FromSlash(strings.TrimPrefix(urlPath, "/"))))
	return err == nil && st.IsDir()
}

func (s *Server) handlePages(w http.ResponseWriter, r *http.Request) {
	if s.idx == nil {
		http.Error(w, "no manifest recorded", http.StatusNotFound)
		return
	}
	m, err := s.idx.ReadManifest()
	if err != nil {
		if errors.Is(err, index.ErrNotFound) {
			http.Error(w, "no manifest recorded", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(m)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Debug("request",
			slog.String("method", r.Method),
			logfields.Route(r.URL.Path),
			slog.Int("status", rec.status),
			logfields.Duration(time.Since(start)),
		)
	})
}
