// Package playlist converts between the in-memory catalog and the portable
// nested playlist document (Categories, Entries, Seasons, Episodes,
// Servers) published to remote repositories, plus an equivalent sqlite
// rendition.
package playlist

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Document is the root of the export schema.
type Document struct {
	Categories []CategoryOut `json:"Categories"`
}

// CategoryOut is one exported top-level category. Entries hold flat entry
// objects for Live TV and Movies, grouped series objects for TV Series.
type CategoryOut struct {
	MainCategory  string   `json:"MainCategory"`
	SubCategories []string `json:"SubCategories"`
	Entries       any      `json:"Entries"`
}

type flatEntry struct {
	Title       string      `json:"Title"`
	SubCategory string      `json:"SubCategory"`
	Country     string      `json:"Country"`
	Description string      `json:"Description"`
	Poster      string      `json:"Poster"`
	Thumbnail   string      `json:"Thumbnail"`
	Rating      float64     `json:"Rating"`
	Duration    string      `json:"Duration"`
	Year        int         `json:"Year"`
	Servers     []serverObj `json:"Servers,omitempty"`
}

type seriesEntry struct {
	Title       string      `json:"Title"`
	SubCategory string      `json:"SubCategory"`
	Country     string      `json:"Country"`
	Description string      `json:"Description"`
	Poster      string      `json:"Poster"`
	Thumbnail   string      `json:"Thumbnail"`
	Rating      float64     `json:"Rating"`
	Year        int         `json:"Year"`
	Seasons     []seasonOut `json:"Seasons"`
}

type seasonOut struct {
	Season       int          `json:"Season"`
	SeasonPoster string       `json:"SeasonPoster"`
	Episodes     []episodeOut `json:"Episodes"`
}

type episodeOut struct {
	Episode     int         `json:"Episode"`
	Title       string      `json:"Title"`
	Duration    string      `json:"Duration"`
	Description string      `json:"Description"`
	Thumbnail   string      `json:"Thumbnail"`
	Servers     []serverObj `json:"Servers,omitempty"`
}

type serverObj struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	DRM     bool   `json:"drm,omitempty"`
	License string `json:"license,omitempty"`
}

// object is one decoded JSON level during import; keeping the raw messages
// lets the importer tolerate wrong-typed fields and report keys it does
// not recognize.
type object map[string]json.RawMessage

// looseString decodes string, number and boolean scalars as text. Arrays,
// objects and nulls decode as empty. It never returns an error.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '"':
		var v string
		if json.Unmarshal(data, &v) == nil {
			*s = looseString(v)
		}
	case '[', '{', 'n':
		// absent
	default:
		*s = looseString(data)
	}
	return nil
}

// looseInt decodes integers, float-formatted integers and numeric strings.
// Anything else leaves ok false.
type looseInt struct {
	val int
	ok  bool
}

func (i *looseInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	raw := string(data)
	if data[0] == '"' {
		var s string
		if json.Unmarshal(data, &s) != nil {
			return nil
		}
		raw = strings.TrimSpace(s)
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		i.val, i.ok = int(f), true
	}
	return nil
}

// looseFloat mirrors looseInt for fractional values.
type looseFloat struct {
	val float64
	ok  bool
}

func (f *looseFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	raw := string(data)
	if data[0] == '"' {
		var s string
		if json.Unmarshal(data, &s) != nil {
			return nil
		}
		raw = strings.TrimSpace(s)
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		f.val, f.ok = v, true
	}
	return nil
}

// looseBool accepts JSON booleans plus the string and numeric spellings
// "true"/"false"/"1"/"0" that appear in hand-edited playlists.
type looseBool struct {
	val bool
	ok  bool
}

func (b *looseBool) UnmarshalJSON(data []byte) error {
	switch strings.Trim(strings.TrimSpace(string(data)), `"`) {
	case "true", "1":
		b.val, b.ok = true, true
	case "false", "0":
		b.val, b.ok = false, true
	}
	return nil
}
