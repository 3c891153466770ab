package playlist

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cinecraze/catman/internal/catalog"
)

var (
	// ErrBadDocument indicates the root JSON could not be parsed at all.
	ErrBadDocument = errors.New("playlist: document is not valid JSON")
	// ErrNoItems indicates the document parsed but produced no catalog
	// items.
	ErrNoItems = errors.New("playlist: document contains no items")
)

// Importer decodes playlist documents into catalog items. Parsing is
// lenient throughout: a field of the wrong JSON type reads as absent, a
// malformed server, episode or season is skipped without discarding its
// siblings, and unrecognized keys are recorded as warnings rather than
// rejected. Only an unparseable root document or an empty result is an
// error.
type Importer struct {
	log      *slog.Logger
	warnings []string
}

func NewImporter(logger *slog.Logger) *Importer {
	return &Importer{log: logger.With("component", "playlist")}
}

// Warnings returns the audit trail of unrecognized or malformed fields
// gathered by the last Import call.
func (im *Importer) Warnings() []string {
	return im.warnings
}

// Import parses a playlist document into catalog items. Grouped series
// entries expand into one item per episode with SeriesTitle set
// explicitly. The caller appends the result to its store; Import itself
// never touches storage.
func (im *Importer) Import(data []byte) ([]*catalog.Item, error) {
	im.warnings = nil

	var root struct {
		Categories []json.RawMessage `json:"Categories"`
	}
	if err := json.Unmarshal(data, &root); err != nil {
		// The document may be a bare item list produced by older
		// exports.
		if legacy, ok := im.legacyList(data); ok {
			return legacy, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrBadDocument, err)
	}
	if root.Categories == nil {
		if legacy, ok := im.legacyList(data); ok {
			return legacy, nil
		}
		return nil, ErrNoItems
	}

	var items []*catalog.Item
	for _, rawCat := range root.Categories {
		var cat object
		if err := json.Unmarshal(rawCat, &cat); err != nil {
			im.warn("skipping malformed category: %v", err)
			continue
		}
		im.auditKeys(cat, categoryKeys, "category")

		mainCategory := im.str(cat, "MainCategory")
		var entries []json.RawMessage
		if raw, present := cat["Entries"]; present {
			if err := json.Unmarshal(raw, &entries); err != nil {
				im.warn("category %q: Entries is not an array", mainCategory)
				continue
			}
		}

		for _, rawEntry := range entries {
			var entry object
			if err := json.Unmarshal(rawEntry, &entry); err != nil {
				im.warn("category %q: skipping malformed entry: %v", mainCategory, err)
				continue
			}
			if _, grouped := entry["Seasons"]; grouped {
				items = append(items, im.parseSeries(entry)...)
			} else if it := im.parseFlat(entry, mainCategory); it != nil {
				items = append(items, it)
			}
		}
	}

	if len(items) == 0 {
		return nil, ErrNoItems
	}
	im.log.Info("imported playlist document", "items", len(items), "warnings", len(im.warnings))
	return items, nil
}

// legacyList tries the pre-category format, a bare JSON array of items.
func (im *Importer) legacyList(data []byte) ([]*catalog.Item, bool) {
	var items []*catalog.Item
	if err := json.Unmarshal(data, &items); err != nil || len(items) == 0 {
		return nil, false
	}
	im.log.Info("imported legacy item list", "items", len(items))
	return items, true
}

// itemType maps an exported MainCategory back to the entity type.
func itemType(mainCategory string) catalog.ContentType {
	switch mainCategory {
	case "Live TV":
		return catalog.TypeLiveTV
	case "Movies":
		return catalog.TypeMovie
	case "TV Series":
		return catalog.TypeSeries
	default:
		return catalog.ContentType(mainCategory)
	}
}

func (im *Importer) parseFlat(entry object, mainCategory string) *catalog.Item {
	im.auditKeys(entry, flatEntryKeys, "entry")

	it := catalog.NewItem(im.str(entry, "Title"), itemType(mainCategory))
	it.Subcategory = im.str(entry, "SubCategory")
	it.Country = im.str(entry, "Country")
	it.Description = im.str(entry, "Description")
	it.ImageURL = im.str(entry, "Poster")
	it.Duration = im.str(entry, "Duration")
	if v, ok := im.floatVal(entry, "Rating"); ok {
		it.Rating = &v
	}
	if v, ok := im.intVal(entry, "Year"); ok {
		it.Year = &v
	}
	it.Servers = im.parseServers(entry)
	return it
}

// parseSeries expands one grouped series entry into per-episode items.
// Series-level metadata is copied onto every episode; the episode object
// overrides description, duration and thumbnail, and supplies the episode
// number. SeriesTitle is set explicitly on each item so downstream code
// never re-derives the grouping.
func (im *Importer) parseSeries(entry object) []*catalog.Item {
	im.auditKeys(entry, seriesEntryKeys, "series")

	seriesTitle := im.str(entry, "Title")
	subcategory := im.str(entry, "SubCategory")
	country := im.str(entry, "Country")
	description := im.str(entry, "Description")
	poster := im.str(entry, "Poster")
	rating, hasRating := im.floatVal(entry, "Rating")
	year, hasYear := im.intVal(entry, "Year")

	var rawSeasons []json.RawMessage
	if raw, present := entry["Seasons"]; present {
		if err := json.Unmarshal(raw, &rawSeasons); err != nil {
			im.warn("series %q: Seasons is not an array", seriesTitle)
			return nil
		}
	}

	var items []*catalog.Item
	for _, rawSeason := range rawSeasons {
		var season object
		if err := json.Unmarshal(rawSeason, &season); err != nil {
			im.warn("series %q: skipping malformed season: %v", seriesTitle, err)
			continue
		}
		im.auditKeys(season, seasonKeys, "season")

		seasonNumber, hasSeason := im.intVal(season, "Season")
		seasonPoster := im.str(season, "SeasonPoster")

		var rawEpisodes []json.RawMessage
		if raw, present := season["Episodes"]; present {
			if err := json.Unmarshal(raw, &rawEpisodes); err != nil {
				im.warn("series %q season %d: Episodes is not an array", seriesTitle, seasonNumber)
				continue
			}
		}

		for _, rawEpisode := range rawEpisodes {
			var episode object
			if err := json.Unmarshal(rawEpisode, &episode); err != nil {
				im.warn("series %q: skipping malformed episode: %v", seriesTitle, err)
				continue
			}
			im.auditKeys(episode, episodeKeys, "episode")

			episodeNumber, hasEpisode := im.intVal(episode, "Episode")
			title := im.str(episode, "Title")
			if title == "" {
				if hasEpisode && hasSeason {
					title = fmt.Sprintf("Episode %d", episodeNumber)
				} else {
					title = "Episode"
				}
			}

			it := catalog.NewItem(title, catalog.TypeSeries)
			it.SeriesTitle = seriesTitle
			it.Subcategory = subcategory
			it.Country = country
			it.Description = im.str(episode, "Description")
			it.Duration = im.str(episode, "Duration")
			it.ImageURL = firstNonEmpty(im.str(episode, "Thumbnail"), seasonPoster, poster)
			if hasRating {
				r := rating
				it.Rating = &r
			}
			if hasYear {
				y := year
				it.Year = &y
			}
			if hasSeason {
				n := seasonNumber
				it.Season = &n
			}
			if hasEpisode {
				n := episodeNumber
				it.Episode = &n
			}
			it.Servers = im.parseServers(episode)
			items = append(items, it)
		}
	}
	return items
}

// parseServers reads the Servers array of an entry or episode. Records
// missing a name or url are dropped; nothing here infers DRM from URLs,
// the drm and license fields are taken as written.
func (im *Importer) parseServers(owner object) []catalog.Server {
	raw, present := owner["Servers"]
	if !present {
		return nil
	}
	var rawServers []json.RawMessage
	if err := json.Unmarshal(raw, &rawServers); err != nil {
		im.warn("Servers is not an array")
		return nil
	}

	var out []catalog.Server
	for _, rawServer := range rawServers {
		var server object
		if err := json.Unmarshal(rawServer, &server); err != nil {
			im.warn("skipping malformed server: %v", err)
			continue
		}
		im.auditKeys(server, serverKeys, "server")

		name := im.str(server, "name")
		url := im.str(server, "url")
		if name == "" || url == "" {
			im.warn("skipping server with missing name or url")
			continue
		}
		s := catalog.Server{Name: name, URL: url}
		if drm, ok := im.boolVal(server, "drm"); ok && drm {
			s.DRM = &catalog.DRM{License: im.str(server, "license")}
		}
		out = append(out, s)
	}
	return out
}

// Known key sets per nesting level, for forward-compatibility auditing.
var (
	categoryKeys    = keySet("MainCategory", "SubCategories", "Entries")
	flatEntryKeys   = keySet("Title", "SubCategory", "Country", "Description", "Poster", "Thumbnail", "Rating", "Duration", "Year", "Servers")
	seriesEntryKeys = keySet("Title", "SubCategory", "Country", "Description", "Poster", "Thumbnail", "Rating", "Year", "Seasons")
	seasonKeys      = keySet("Season", "SeasonPoster", "Episodes")
	episodeKeys     = keySet("Episode", "Title", "Duration", "Description", "Thumbnail", "Servers")
	serverKeys      = keySet("name", "url", "drm", "license")
)

func keySet(keys ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}

func (im *Importer) auditKeys(o object, known map[string]struct{}, level string) {
	for key := range o {
		if _, ok := known[key]; !ok {
			im.warn("unrecognized %s key %q", level, key)
		}
	}
}

func (im *Importer) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	im.warnings = append(im.warnings, msg)
	im.log.Debug("import warning", "detail", msg)
}

// Field readers. A missing key or a value of the wrong JSON type reads as
// absent.

func (im *Importer) str(o object, key string) string {
	raw, present := o[key]
	if !present {
		return ""
	}
	var v looseString
	_ = v.UnmarshalJSON(raw)
	return string(v)
}

func (im *Importer) intVal(o object, key string) (int, bool) {
	raw, present := o[key]
	if !present {
		return 0, false
	}
	var v looseInt
	_ = v.UnmarshalJSON(raw)
	if !v.ok {
		return 0, false
	}
	return v.val, true
}

func (im *Importer) floatVal(o object, key string) (float64, bool) {
	raw, present := o[key]
	if !present {
		return 0, false
	}
	var v looseFloat
	_ = v.UnmarshalJSON(raw)
	if !v.ok {
		return 0, false
	}
	return v.val, true
}

func (im *Importer) boolVal(o object, key string) (bool, bool) {
	raw, present := o[key]
	if !present {
		return false, false
	}
	var v looseBool
	_ = v.UnmarshalJSON(raw)
	if !v.ok {
		return false, false
	}
	return v.val, true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
