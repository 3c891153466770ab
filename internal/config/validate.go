// internal/config/validate.go
package config

import (
	"fmt"
	"strings"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}

	// GitHub repo must be owner/repo when anything github is configured.
	if c.GitHub.Repo != "" {
		parts := strings.Split(c.GitHub.Repo, "/")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			errs = append(errs, fmt.Sprintf("github.repo: must be in owner/repo form, got %q", c.GitHub.Repo))
		}
	}
	if c.GitHub.Token != "" && c.GitHub.Repo == "" {
		errs = append(errs, "github.repo: required when github.token is set")
	}

	if c.Probe.Timeout < 0 {
		errs = append(errs, "probe.timeout: must not be negative")
	}
	if c.Probe.CacheTTL < 0 {
		errs = append(errs, "probe.cache_ttl: must not be negative")
	}
	if c.Probe.Retries < 0 {
		errs = append(errs, "probe.retries: must not be negative")
	}

	if c.Bulk.Workers < 0 {
		errs = append(errs, fmt.Sprintf("bulk.workers: must be positive, got %d", c.Bulk.Workers))
	}

	return errs
}
