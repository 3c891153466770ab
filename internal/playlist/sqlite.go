package playlist

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cinecraze/catman/internal/catalog"
	"github.com/cinecraze/catman/internal/migrations"
)

// SQLiteExporter writes the catalog as a portable playlist.db artifact,
// an alternative transport to the JSON document for players that consume
// sqlite directly. Rating and year are stored as text and nested data as
// embedded JSON, matching the schema those players expect.
type SQLiteExporter struct {
	log *slog.Logger
}

func NewSQLiteExporter(logger *slog.Logger) *SQLiteExporter {
	return &SQLiteExporter{log: logger.With("component", "playlist")}
}

// ExportFile writes the database to path, replacing any existing file.
func (e *SQLiteExporter) ExportFile(items []*catalog.Item, path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("replace %s: %w", path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("create database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(migrations.PlaylistExportSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if err := e.insertCategories(db, items); err != nil {
		return err
	}
	if err := e.insertEntries(db, items); err != nil {
		return err
	}
	if err := e.insertMetadata(db, len(items)); err != nil {
		return err
	}

	e.log.Info("exported sqlite playlist", "path", path, "items", len(items))
	return nil
}

// Bytes builds the database in a temporary file and returns its raw
// contents, for callers that upload the artifact instead of keeping it.
func (e *SQLiteExporter) Bytes(items []*catalog.Item) ([]byte, error) {
	dir, err := os.MkdirTemp("", "catman-export-")
	if err != nil {
		return nil, fmt.Errorf("temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "playlist.db")
	if err := e.ExportFile(items, path); err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

func (e *SQLiteExporter) insertCategories(db *sql.DB, items []*catalog.Item) error {
	subs := make(map[catalog.ContentType][]string)
	var order []catalog.ContentType
	for _, it := range items {
		if it.Type == "" {
			continue
		}
		if _, seen := subs[it.Type]; !seen {
			order = append(order, it.Type)
			subs[it.Type] = []string{}
		}
		if it.Subcategory != "" && !contains(subs[it.Type], it.Subcategory) {
			subs[it.Type] = append(subs[it.Type], it.Subcategory)
		}
	}

	for _, typ := range order {
		subsJSON, err := json.Marshal(subs[typ])
		if err != nil {
			return fmt.Errorf("encode subcategories: %w", err)
		}
		_, err = db.Exec(
			`INSERT INTO categories (main_category, sub_categories) VALUES (?, ?)`,
			string(typ), string(subsJSON))
		if err != nil {
			return fmt.Errorf("insert category %s: %w", typ, err)
		}
	}
	return nil
}

func (e *SQLiteExporter) insertEntries(db *sql.DB, items []*catalog.Item) error {
	for _, it := range items {
		serversJSON := ""
		if len(it.Servers) > 0 {
			data, err := json.Marshal(serverObjects(it.Servers))
			if err != nil {
				return fmt.Errorf("encode servers for %q: %w", it.Title, err)
			}
			serversJSON = string(data)
		}

		seasonsJSON := ""
		if it.Type == catalog.TypeSeries && it.Season != nil {
			data, err := json.Marshal(episodeSeasonBlob(it))
			if err != nil {
				return fmt.Errorf("encode season for %q: %w", it.Title, err)
			}
			seasonsJSON = string(data)
		}

		_, err := db.Exec(
			`INSERT INTO entries (title, sub_category, country, description, poster,
			  thumbnail, rating, duration, year, main_category, servers_json, seasons_json, related_json)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			it.Title, it.Subcategory, it.Country, it.Description, it.ImageURL,
			it.ImageURL, ratingText(it), it.Duration, yearText(it), string(it.Type),
			serversJSON, seasonsJSON, "")
		if err != nil {
			return fmt.Errorf("insert entry %q: %w", it.Title, err)
		}
	}
	return nil
}

func (e *SQLiteExporter) insertMetadata(db *sql.DB, total int) error {
	_, err := db.Exec(
		`INSERT INTO metadata (last_updated, source_url, total_entries, version) VALUES (?, ?, ?, ?)`,
		time.Now().Format(time.RFC3339), "Generated by catman", total, "1.0")
	if err != nil {
		return fmt.Errorf("insert metadata: %w", err)
	}
	return nil
}

// episodeSeasonBlob is the per-episode season descriptor embedded in the
// seasons_json column.
func episodeSeasonBlob(it *catalog.Item) map[string]any {
	episode := 1
	if it.Episode != nil {
		episode = *it.Episode
	}
	blob := map[string]any{
		"season":      *it.Season,
		"episode":     episode,
		"title":       it.Title,
		"description": it.Description,
		"thumbnail":   it.ImageURL,
		"duration":    it.Duration,
	}
	if len(it.Servers) > 0 {
		blob["servers"] = serverObjects(it.Servers)
	}
	return blob
}

func ratingText(it *catalog.Item) string {
	if it.Rating != nil {
		return fmt.Sprintf("%g", *it.Rating)
	}
	return "0.0"
}

func yearText(it *catalog.Item) string {
	if it.Year != nil {
		return fmt.Sprintf("%d", *it.Year)
	}
	return "0"
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
