// Package migrations provides embedded SQL schema files.
package migrations

import (
	_ "embed"
)

//go:embed sql/001_store.sql
var StoreSQL string

//go:embed sql/002_playlist_export.sql
var PlaylistExportSQL string
