package config

import (
	"os"

	"github.com/joho/godotenv"
)

const envPrefix = "SITEGEN_"

// LoadEnvFiles loads the given dotenv files that exist. Variables already
// present in the process environment are not overwritten.
func LoadEnvFiles(paths ...string) error {
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// ApplyEnv overrides directory and URL settings from SITEGEN_* variables.
func ApplyEnv(cfg *Config) {
	overrides := map[string]*string{
		"SOURCE_DIRECTORY":   &cfg.SourceDir,
		"BUILD_DIRECTORY":    &cfg.BuildDir,
		"TEMPLATE_DIRECTORY": &cfg.TemplateDir,
		"BASE_URL":           &cfg.BaseURL,
	}
	for key, dst := range overrides {
		if v, ok := os.LookupEnv(envPrefix + key); ok && v != "" {
			*dst = v
		}
	}
}
