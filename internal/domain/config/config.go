package config

import (
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
	domainerr "sitegen/internal/domain/errors"
)

// RootCollection names the collection of items living directly in the
// source directory.
const RootCollection = "root"

type Config struct {
	SourceDir       string   `yaml:"source_directory"`
	BuildDir        string   `yaml:"build_directory"`
	TemplateDir     string   `yaml:"template_directory"`
	SkipDirs        []string `yaml:"skip_directories"`
	StaticDirs      []string `yaml:"static_directories"`
	BaseURL         string   `yaml:"base_url"`
	DefaultTemplate string   `yaml:"default_template"`
	IndexTemplate   string   `yaml:"index_template"`
	TemplateSuffix  string   `yaml:"template_suffix"`
	Workers         int      `yaml:"workers"`
	ManifestPath    string   `yaml:"manifest_path"`

	Site SiteConfig `yaml:"site"`

	Now time.Time `yaml:"-"`
}

type SiteConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Language    string `yaml:"language"`
}

func Default() Config {
	return Config{
		SourceDir:       "source",
		BuildDir:        "build",
		TemplateDir:     "templates",
		SkipDirs:        []string{},
		StaticDirs:      []string{"static"},
		DefaultTemplate: "default",
		IndexTemplate:   "index",
		TemplateSuffix:  ".html",
		Workers:         runtime.GOMAXPROCS(0),
		ManifestPath:    filepath.Join(".sitegen", "manifest.db"),
		Site: SiteConfig{
			Language: "en",
		},
		Now: time.Now(),
	}
}

func (c Config) Validate() error {
	var ve domainerr.ValidationError

	if strings.TrimSpace(c.SourceDir) == "" {
		ve.Add("source_directory", "must not be empty")
	}
	if strings.TrimSpace(c.BuildDir) == "" {
		ve.Add("build_directory", "must not be empty")
	}
	if strings.TrimSpace(c.TemplateDir) == "" {
		ve.Add("template_directory", "must not be empty")
	}
	if c.SourceDir != "" && c.BuildDir != "" && filepath.Clean(c.SourceDir) == filepath.Clean(c.BuildDir) {
		ve.Add("build_directory", "must differ from source_directory")
	}
	if b := filepath.Clean(c.BuildDir); b == "." || b == string(filepath.Separator) {
		ve.Add("build_directory", "must not be the working directory or filesystem root")
	}
	if strings.TrimSpace(c.BuildDir) != "" {
		if within(c.BuildDir, c.SourceDir) {
			ve.Add("source_directory", "must not lie inside build_directory")
		}
		if within(c.BuildDir, c.TemplateDir) {
			ve.Add("template_directory", "must not lie inside build_directory")
		}
		for _, d := range c.StaticDirs {
			if within(c.BuildDir, d) {
				ve.Add("static_directories", "entries must not lie inside build_directory")
				break
			}
		}
		if within(c.BuildDir, c.ManifestPath) {
			ve.Add("manifest_path", "must not lie inside build_directory")
		}
	}

	if strings.TrimSpace(c.BaseURL) == "" {
		ve.Add("base_url", "must not be empty")
	} else if !isValidAbsURL(c.BaseURL) {
		ve.Add("base_url", "must be a valid absolute URL")
	}

	if strings.TrimSpace(c.DefaultTemplate) == "" {
		ve.Add("default_template", "must not be empty")
	}
	if strings.TrimSpace(c.IndexTemplate) == "" {
		ve.Add("index_template", "must not be empty")
	}
	if s := c.TemplateSuffix; s != "" && !strings.HasPrefix(s, ".") {
		ve.Add("template_suffix", "must start with '.'")
	}
	if c.Workers < 0 {
		ve.Add("workers", "must not be negative")
	}
	for _, d := range c.SkipDirs {
		if strings.TrimSpace(d) == "" || strings.ContainsAny(d, `/\`) {
			ve.Add("skip_directories", "entries must be plain directory names")
			break
		}
	}

	if ve.HasAny() {
		return ve
	}
	return nil
}

// TemplateName appends the configured suffix unless name already carries it.
func (c Config) TemplateName(name string) string {
	name = strings.TrimSpace(name)
	if c.TemplateSuffix == "" || strings.HasSuffix(name, c.TemplateSuffix) {
		return name
	}
	return name + c.TemplateSuffix
}

func (c Config) WorkerCount() int {
	if c.Workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return c.Workers
}

// within reports whether p is base itself or lies below it. The build
// directory is replaced wholesale on every build.
func within(base, p string) bool {
	if strings.TrimSpace(p) == "" {
		return false
	}
	absBase, err := filepath.Abs(base)
	if err != nil {
		return false
	}
	absP, err := filepath.Abs(p)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absBase, absP)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func isValidAbsURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}

// Load reads a YAML (or JSON) config file over the defaults, then applies
// .env files and SITEGEN_* environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	// 文件里写到的字段覆盖默认值
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return finish(cfg)
}

// LoadOrDefault behaves like Load but falls back to defaults when path does
// not exist.
func LoadOrDefault(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return finish(cfg)
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return finish(cfg)
}

func finish(cfg Config) (Config, error) {
	if err := LoadEnvFiles(".env", ".env.local"); err != nil {
		return cfg, err
	}
	ApplyEnv(&cfg)

	if cfg.Now.IsZero() {
		cfg.Now = time.Now()
	}
	if cfg.SkipDirs == nil {
		cfg.SkipDirs = []string{}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
