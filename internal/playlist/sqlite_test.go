package playlist

import (
	"bytes"
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinecraze/catman/internal/catalog"
)

func TestSQLiteExporter_ExportFile(t *testing.T) {
	items := []*catalog.Item{
		movieItem("Heat", "Crime"),
		episodeItem("Dark", 1, 1, "https://img/e1.jpg"),
	}
	items[0].Servers = []catalog.Server{{Name: "VidSrc", URL: "https://s/heat"}}
	rating := 8.3
	items[0].Rating = &rating

	exporter := NewSQLiteExporter(slog.New(slog.NewTextHandler(io.Discard, nil)))
	path := filepath.Join(t.TempDir(), "playlist.db")
	require.NoError(t, exporter.ExportFile(items, path))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var entries int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM entries`).Scan(&entries))
	assert.Equal(t, 2, entries)

	var cats int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM categories`).Scan(&cats))
	assert.Equal(t, 2, cats)

	var ratingText, yearText, serversJSON string
	require.NoError(t, db.QueryRow(
		`SELECT rating, year, servers_json FROM entries WHERE title = ?`, "Heat").
		Scan(&ratingText, &yearText, &serversJSON))
	assert.Equal(t, "8.3", ratingText)
	assert.Equal(t, "0", yearText)
	assert.Contains(t, serversJSON, `"url":"https://s/heat"`)

	var seasonsJSON string
	require.NoError(t, db.QueryRow(
		`SELECT seasons_json FROM entries WHERE main_category = ?`, "TV Series").
		Scan(&seasonsJSON))
	assert.Contains(t, seasonsJSON, `"season":1`)

	var total int
	require.NoError(t, db.QueryRow(`SELECT total_entries FROM metadata`).Scan(&total))
	assert.Equal(t, 2, total)
}

func TestSQLiteExporter_Bytes(t *testing.T) {
	exporter := NewSQLiteExporter(slog.New(slog.NewTextHandler(io.Discard, nil)))
	data, err := exporter.Bytes([]*catalog.Item{movieItem("Heat", "Crime")})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("SQLite format 3")))
}
