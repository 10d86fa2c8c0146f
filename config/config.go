// Package config loads the awesomedocs project configuration.
// Settings live in .awesomedocs/config.yml at the project root; every
// field has a default so a project works without any config file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DirName is the per-project directory holding config and stats.
const DirName = ".awesomedocs"

// FileName is the config file name inside DirName.
const FileName = "config.yml"

// Config holds the pipeline settings.
type Config struct {
	// Source is the awesome-list README the catalog is parsed from.
	Source string `yaml:"source"`
	// Output is the directory project pages are written to.
	Output string `yaml:"output"`
	// Homepage is the markdown file regenerated from gathered pages.
	Homepage string `yaml:"homepage"`
	// SiteDir is where the built site (and its search index) lives.
	SiteDir string `yaml:"site_dir"`
	// TokenEnv names the environment variable holding the GitHub token.
	TokenEnv string `yaml:"token_env"`
}

// Default returns a Config with every field set to its default value.
func Default() Config {
	return Config{
		Source:   "docs/awesome-llm-apps/README.md",
		Output:   "output",
		Homepage: "docs/index.md",
		SiteDir:  "site",
		TokenEnv: "GITHUB_TOKEN",
	}
}

// Dir returns the path of the .awesomedocs directory under projectRoot.
func Dir(projectRoot string) string {
	return filepath.Join(projectRoot, DirName)
}

// FindProjectRoot walks up from the current directory looking for a
// .awesomedocs directory. When none is found the current directory is
// returned, so commands work in a fresh project before any init.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	dir := cwd
	for {
		info, err := os.Stat(filepath.Join(dir, DirName))
		if err == nil && info.IsDir() {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd, nil
		}
		dir = parent
	}
}

// Load reads the config file under projectRoot, applying defaults for
// any missing field. A missing file yields the defaults.
func Load(projectRoot string) (Config, error) {
	cfg := Default()

	path := filepath.Join(Dir(projectRoot), FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	applyDefaults(&cfg)
	return cfg, nil
}

// Save writes cfg to the config file under projectRoot, creating the
// .awesomedocs directory if needed.
func Save(projectRoot string, cfg Config) error {
	dir := Dir(projectRoot)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, FileName), data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Token resolves the GitHub token from the configured environment
// variable. Empty means unauthenticated access.
func (c Config) Token() string {
	env := c.TokenEnv
	if env == "" {
		env = Default().TokenEnv
	}
	return os.Getenv(env)
}

func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Source == "" {
		cfg.Source = def.Source
	}
	if cfg.Output == "" {
		cfg.Output = def.Output
	}
	if cfg.Homepage == "" {
		cfg.Homepage = def.Homepage
	}
	if cfg.SiteDir == "" {
		cfg.SiteDir = def.SiteDir
	}
	if cfg.TokenEnv == "" {
		cfg.TokenEnv = def.TokenEnv
	}
}
