package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"github.com/cinecraze/catman/internal/config"
	"github.com/cinecraze/catman/internal/store"
)

var version = "dev"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "catman",
	Short: "Manage a streaming content catalog",
	Long: `catman - streaming content catalog manager

Imports and exports nested playlist documents, fetches metadata
from TMDB, generates embed server links, and publishes the
playlist to a GitHub repository.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("catman {{.Version}}\n")
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// app bundles everything a command needs: resolved config, logger and
// the open catalog store.
type app struct {
	cfg   *config.Config
	log   *slog.Logger
	db    *sql.DB
	store *store.Store
}

// openApp loads configuration (explicit flag, discovery, or built-in
// defaults when no file exists) and opens the catalog database.
func openApp() (*app, error) {
	cfg, err := resolveConfig()
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	kv, err := store.NewKV(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &app{
		cfg:   cfg,
		log:   logger,
		db:    db,
		store: store.Open(kv, logger),
	}, nil
}

func (a *app) Close() {
	_ = a.db.Close()
}

func resolveConfig() (*config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}
	path, err := config.Discover()
	if err != nil {
		// No config file anywhere; run on defaults.
		return config.Default(), nil
	}
	return config.Load(path)
}

// tmdbKey prefers the key saved in the catalog settings over the config
// file, so a key entered once keeps working without a config file.
func (a *app) tmdbKey() (string, error) {
	if key := a.store.TMDBAPIKey(); key != "" {
		return key, nil
	}
	if a.cfg.TMDB.APIKey != "" {
		return a.cfg.TMDB.APIKey, nil
	}
	return "", errors.New("no TMDB API key: run 'catman settings tmdb-key <key>' or set tmdb.api_key in the config")
}

// githubTarget merges saved settings with the config file, settings first.
func (a *app) githubTarget() (store.GitHubConfig, error) {
	gh := a.store.GitHubConfig()
	if gh.Token == "" {
		gh.Token = a.cfg.GitHub.Token
	}
	if gh.Repo == "" {
		gh.Repo = a.cfg.GitHub.Repo
	}
	if gh.FilePath == "playlist.json" && a.cfg.GitHub.FilePath != "" {
		gh.FilePath = a.cfg.GitHub.FilePath
	}
	if gh.Token == "" || gh.Repo == "" {
		return gh, errors.New("no GitHub target: run 'catman settings github' or set github.token and github.repo in the config")
	}
	return gh, nil
}
