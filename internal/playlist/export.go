package playlist

import (
	"encoding/json"
	"sort"

	"github.com/cinecraze/catman/internal/catalog"
)

// Export renders the catalog as the nested playlist document. Categories
// appear in the fixed order Live TV, Movies, TV Series; a category with no
// items is omitted entirely. The result is stable for a given input: series
// and subcategory groupings keep first-seen order and episodes are sorted,
// so exporting the same catalog twice yields identical bytes.
func Export(items []*catalog.Item) ([]byte, error) {
	doc := Document{Categories: []CategoryOut{}}

	if live := itemsOfType(items, catalog.TypeLiveTV); len(live) > 0 {
		doc.Categories = append(doc.Categories, CategoryOut{
			MainCategory:  "Live TV",
			SubCategories: subCategories(live),
			Entries:       flatEntries(live),
		})
	}
	if movies := itemsOfType(items, catalog.TypeMovie); len(movies) > 0 {
		doc.Categories = append(doc.Categories, CategoryOut{
			MainCategory:  "Movies",
			SubCategories: subCategories(movies),
			Entries:       flatEntries(movies),
		})
	}
	if series := itemsOfType(items, catalog.TypeSeries); len(series) > 0 {
		doc.Categories = append(doc.Categories, CategoryOut{
			MainCategory:  "TV Series",
			SubCategories: subCategories(series),
			Entries:       seriesEntries(series),
		})
	}

	return json.MarshalIndent(doc, "", "  ")
}

func itemsOfType(items []*catalog.Item, typ catalog.ContentType) []*catalog.Item {
	var out []*catalog.Item
	for _, it := range items {
		if it.Type == typ {
			out = append(out, it)
		}
	}
	return out
}

// subCategories collects the distinct non-empty subcategory values in
// first-seen order.
func subCategories(items []*catalog.Item) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, it := range items {
		if it.Subcategory == "" {
			continue
		}
		if _, dup := seen[it.Subcategory]; dup {
			continue
		}
		seen[it.Subcategory] = struct{}{}
		out = append(out, it.Subcategory)
	}
	return out
}

func flatEntries(items []*catalog.Item) []flatEntry {
	out := make([]flatEntry, 0, len(items))
	for _, it := range items {
		out = append(out, flatEntry{
			Title:       it.Title,
			SubCategory: it.Subcategory,
			Country:     it.Country,
			Description: it.Description,
			Poster:      it.ImageURL,
			Thumbnail:   it.ImageURL,
			Rating:      ratingOrZero(it),
			Duration:    it.Duration,
			Year:        yearOrZero(it),
			Servers:     serverObjects(it.Servers),
		})
	}
	return out
}

// seriesEntries regroups episode items into the nested series shape. The
// grouping key is the explicit series title when set, otherwise the
// heuristic extraction from the episode title. Series-level fields come
// from the first episode seen for each series.
func seriesEntries(items []*catalog.Item) []seriesEntry {
	groups := make(map[string][]*catalog.Item)
	var order []string
	for _, it := range items {
		key := catalog.SeriesKey(it)
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], it)
	}

	out := make([]seriesEntry, 0, len(order))
	for _, key := range order {
		eps := groups[key]
		first := eps[0]
		entry := seriesEntry{
			Title:       key,
			SubCategory: first.Subcategory,
			Country:     first.Country,
			Description: first.Description,
			Poster:      first.ImageURL,
			Thumbnail:   first.ImageURL,
			Rating:      ratingOrZero(first),
			Year:        yearOrZero(first),
			Seasons:     seasons(eps, first.ImageURL),
		}
		out = append(out, entry)
	}
	return out
}

func seasons(eps []*catalog.Item, seriesPoster string) []seasonOut {
	bySeason := make(map[int][]*catalog.Item)
	for _, ep := range eps {
		n := 0
		if ep.Season != nil {
			n = *ep.Season
		} else {
			n = catalog.SeasonNumber(ep.Title)
		}
		bySeason[n] = append(bySeason[n], ep)
	}

	numbers := make([]int, 0, len(bySeason))
	for n := range bySeason {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	out := make([]seasonOut, 0, len(numbers))
	for _, n := range numbers {
		group := bySeason[n]
		sort.SliceStable(group, func(i, j int) bool {
			return episodeNumber(group[i]) < episodeNumber(group[j])
		})

		poster := group[0].ImageURL
		if poster == "" {
			poster = seriesPoster
		}
		season := seasonOut{Season: n, SeasonPoster: poster}
		for _, ep := range group {
			season.Episodes = append(season.Episodes, episodeOut{
				Episode:     episodeNumber(ep),
				Title:       ep.Title,
				Duration:    ep.Duration,
				Description: ep.Description,
				Thumbnail:   ep.ImageURL,
				Servers:     serverObjects(ep.Servers),
			})
		}
		out = append(out, season)
	}
	return out
}

func episodeNumber(it *catalog.Item) int {
	if it.Episode != nil {
		return *it.Episode
	}
	return catalog.EpisodeNumber(it.Title)
}

// serverObjects re-encodes structured server records as wire objects. DRM
// state is taken from the record as parsed; export never re-inspects URLs.
func serverObjects(servers []catalog.Server) []serverObj {
	if len(servers) == 0 {
		return nil
	}
	out := make([]serverObj, 0, len(servers))
	for _, s := range servers {
		o := serverObj{Name: s.Name, URL: s.URL}
		if s.DRM != nil {
			o.DRM = true
			o.License = s.DRM.License
		}
		out = append(out, o)
	}
	return out
}

func ratingOrZero(it *catalog.Item) float64 {
	if it.Rating != nil {
		return *it.Rating
	}
	return 0.0
}

func yearOrZero(it *catalog.Item) int {
	if it.Year != nil {
		return *it.Year
	}
	return 0
}
