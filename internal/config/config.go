// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Log      LogConfig      `toml:"log"`
	TMDB     TMDBConfig     `toml:"tmdb"`
	GitHub   GitHubConfig   `toml:"github"`
	Probe    ProbeConfig    `toml:"probe"`
	Bulk     BulkConfig     `toml:"bulk"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type TMDBConfig struct {
	APIKey string `toml:"api_key"`
}

type GitHubConfig struct {
	Token    string `toml:"token"`
	Repo     string `toml:"repo"`
	FilePath string `toml:"file_path"`
}

type ProbeConfig struct {
	Timeout  time.Duration `toml:"timeout"`
	CacheTTL time.Duration `toml:"cache_ttl"`
	Retries  int           `toml:"retries"`
}

type BulkConfig struct {
	Workers int `toml:"workers"`
}

// Default returns a configuration with every default applied, used when
// no config file exists on disk.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads, substitutes, validates and defaults the configuration file.
// Unresolved environment variables and validation failures are folded
// into a single *ConfigError.
func Load(path string) (*Config, error) {
	cfg, missing, err := load(path)
	if err != nil {
		return nil, err
	}

	cerr := &ConfigError{Path: path, Missing: missing, Errors: cfg.Validate()}
	if cerr.HasErrors() {
		return nil, cerr
	}

	cfg.applyDefaults()
	return cfg, nil
}

// LoadWithoutValidation parses the file and applies defaults but skips
// validation. Used when writing config back or inspecting a broken file.
func LoadWithoutValidation(path string) (*Config, error) {
	cfg, _, err := load(path)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func load(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, missing, nil
}

func (c *Config) applyDefaults() {
	if c.Database.Path == "" {
		c.Database.Path = "./data/catman.db"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.GitHub.FilePath == "" {
		c.GitHub.FilePath = "playlist.json"
	}
	if c.Probe.Timeout == 0 {
		c.Probe.Timeout = 15 * time.Second
	}
	if c.Probe.CacheTTL == 0 {
		c.Probe.CacheTTL = 5 * time.Minute
	}
	if c.Probe.Retries == 0 {
		c.Probe.Retries = 3
	}
	if c.Bulk.Workers == 0 {
		c.Bulk.Workers = 4
	}
}

// substituteEnvVars replaces ${VAR} with the environment value and
// ${VAR:-default} with the default when VAR is unset or empty. Plain
// references to unset variables are reported in the second return.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-([^}]*))?\}`)

func substituteEnvVars(content string) (string, []string) {
	var missing []string
	out := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		parts := envVarPattern.FindStringSubmatch(match)
		name, hasDefault, def := parts[1], parts[2] != "", parts[3]

		if value, ok := os.LookupEnv(name); ok && value != "" {
			return value
		}
		if hasDefault {
			return def
		}
		if _, ok := os.LookupEnv(name); ok {
			// Set but empty, take it literally.
			return ""
		}
		missing = append(missing, name)
		return match
	})
	return out, missing
}
