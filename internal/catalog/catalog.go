// Package catalog defines the content entities tracked by catman: playable
// items (movies, live channels, series episodes) and streaming-provider
// configurations.
package catalog

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// ContentType distinguishes the three top-level catalog categories.
type ContentType string

const (
	TypeMovie  ContentType = "Movie"
	TypeSeries ContentType = "TV Series"
	TypeLiveTV ContentType = "Live TV"
)

// Item is one playable catalog record. For TV series an Item represents a
// single episode; the series grouping lives in SeriesTitle (or is derived
// from Title via ExtractSeriesTitle when SeriesTitle is empty).
type Item struct {
	ID          int64       `json:"id,omitempty"`
	Title       string      `json:"title"`
	Type        ContentType `json:"type"`
	Subcategory string      `json:"subcategory,omitempty"`
	Country     string      `json:"country,omitempty"`
	Description string      `json:"description,omitempty"`
	ImageURL    string      `json:"image_url,omitempty"`
	Duration    string      `json:"duration,omitempty"`
	Year        *int        `json:"year,omitempty"`
	Rating      *float64    `json:"rating,omitempty"`
	Servers     []Server    `json:"servers,omitempty"`
	Season      *int        `json:"season,omitempty"`
	Episode     *int        `json:"episode,omitempty"`
	SeriesTitle string      `json:"series_title,omitempty"`
	TMDBID      *int64      `json:"tmdb_id,omitempty"`
	CreatedAt   int64       `json:"created_at,omitempty"`
	UpdatedAt   int64       `json:"updated_at,omitempty"`
}

// NewItem constructs an Item with CreatedAt/UpdatedAt stamped to now.
func NewItem(title string, typ ContentType) *Item {
	now := time.Now().UnixMilli()
	return &Item{Title: title, Type: typ, CreatedAt: now, UpdatedAt: now}
}

// Touch records a mutation time. Callers invoke it explicitly; field
// assignments alone do not move UpdatedAt.
func (it *Item) Touch() {
	it.UpdatedAt = time.Now().UnixMilli()
}

// Equal reports whether two items denote the same catalog entity. Only
// (Title, Type, TMDBID, Season, Episode, SeriesTitle) participate; metadata
// such as description, image or servers never affects identity, so partial
// updates do not spawn duplicates.
func (it *Item) Equal(other *Item) bool {
	if other == nil {
		return false
	}
	return it.Title == other.Title &&
		it.Type == other.Type &&
		eqInt64Ptr(it.TMDBID, other.TMDBID) &&
		eqIntPtr(it.Season, other.Season) &&
		eqIntPtr(it.Episode, other.Episode) &&
		it.SeriesTitle == other.SeriesTitle
}

// EntityKey is the comparable projection of the fields Equal inspects,
// usable as a map key when collapsing duplicates.
type EntityKey struct {
	Title       string
	Type        ContentType
	TMDBID      int64
	HasTMDBID   bool
	Season      int
	HasSeason   bool
	Episode     int
	HasEpisode  bool
	SeriesTitle string
}

// Key returns the entity identity of the item. Equal(a, b) holds exactly
// when a.Key() == b.Key().
func (it *Item) Key() EntityKey {
	k := EntityKey{Title: it.Title, Type: it.Type, SeriesTitle: it.SeriesTitle}
	if it.TMDBID != nil {
		k.TMDBID, k.HasTMDBID = *it.TMDBID, true
	}
	if it.Season != nil {
		k.Season, k.HasSeason = *it.Season, true
	}
	if it.Episode != nil {
		k.Episode, k.HasEpisode = *it.Episode, true
	}
	return k
}

// Clone returns a deep copy; the caller may mutate it freely without
// touching the original.
func (it *Item) Clone() *Item {
	out := *it
	out.Year = clonePtr(it.Year)
	out.Rating = clonePtr(it.Rating)
	out.Season = clonePtr(it.Season)
	out.Episode = clonePtr(it.Episode)
	out.TMDBID = clonePtr(it.TMDBID)
	if it.Servers != nil {
		out.Servers = make([]Server, len(it.Servers))
		copy(out.Servers, it.Servers)
	}
	return &out
}

// DisplayTitle renders the item for lists: series episodes show the series
// title plus an SxxEyy suffix, everything else shows the plain title.
func (it *Item) DisplayTitle() string {
	base := it.Title
	if it.Type == TypeSeries && strings.TrimSpace(it.SeriesTitle) != "" {
		base = it.SeriesTitle
	}
	switch {
	case it.Season != nil && it.Episode != nil:
		return fmt.Sprintf("%s S%02dE%02d", base, *it.Season, *it.Episode)
	case it.Season != nil:
		return fmt.Sprintf("%s S%02d", base, *it.Season)
	}
	return base
}

// HasServers reports whether at least one server record is attached.
func (it *Item) HasServers() bool { return len(it.Servers) > 0 }

// AddServer appends a server record, preserving order and duplicates.
func (it *Item) AddServer(s Server) { it.Servers = append(it.Servers, s) }

var titleFolder = cases.Fold()

// FoldTitle normalizes a title for case-insensitive comparison.
func FoldTitle(s string) string {
	return titleFolder.String(strings.TrimSpace(s))
}

func eqIntPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func eqInt64Ptr(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
