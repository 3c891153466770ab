// internal/config/validate_test.go
package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Database: DatabaseConfig{Path: "./data/catman.db"},
		Log:      LogConfig{Level: "info"},
		GitHub:   GitHubConfig{Token: "ghp_x", Repo: "user/playlists"},
	}
}

func TestValidate_Valid(t *testing.T) {
	errs := validConfig().Validate()
	if len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestValidate_LogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.Log.Level = "loud"
	errs := cfg.Validate()
	if len(errs) != 1 || !strings.Contains(errs[0], "log.level") {
		t.Errorf("expected log.level error, got %v", errs)
	}
}

func TestValidate_GitHubRepoForm(t *testing.T) {
	for _, repo := range []string{"noslash", "/leading", "trailing/", "a/b/c"} {
		cfg := validConfig()
		cfg.GitHub.Repo = repo
		errs := cfg.Validate()
		if len(errs) != 1 || !strings.Contains(errs[0], "github.repo") {
			t.Errorf("repo %q: expected github.repo error, got %v", repo, errs)
		}
	}
}

func TestValidate_TokenWithoutRepo(t *testing.T) {
	cfg := validConfig()
	cfg.GitHub.Repo = ""
	errs := cfg.Validate()
	if len(errs) != 1 || !strings.Contains(errs[0], "github.repo") {
		t.Errorf("expected github.repo error, got %v", errs)
	}
}

func TestValidate_NegativeProbeValues(t *testing.T) {
	cfg := validConfig()
	cfg.Probe.Timeout = -1
	cfg.Probe.Retries = -3
	errs := cfg.Validate()
	if len(errs) != 2 {
		t.Errorf("expected 2 errors, got %v", errs)
	}
}

func TestValidate_NegativeWorkers(t *testing.T) {
	cfg := validConfig()
	cfg.Bulk.Workers = -1
	errs := cfg.Validate()
	if len(errs) != 1 || !strings.Contains(errs[0], "bulk.workers") {
		t.Errorf("expected bulk.workers error, got %v", errs)
	}
}
