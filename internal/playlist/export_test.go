package playlist

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinecraze/catman/internal/catalog"
)

func TestExport_CategoryOrderAndOmission(t *testing.T) {
	items := []*catalog.Item{
		movieItem("Heat", "Crime"),
		liveItem("CNN", "News"),
	}

	data, err := Export(items)
	require.NoError(t, err)

	var doc struct {
		Categories []struct {
			MainCategory  string   `json:"MainCategory"`
			SubCategories []string `json:"SubCategories"`
		} `json:"Categories"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))

	// No series items, so the TV Series category is absent and Live TV
	// leads regardless of input order.
	require.Len(t, doc.Categories, 2)
	assert.Equal(t, "Live TV", doc.Categories[0].MainCategory)
	assert.Equal(t, "Movies", doc.Categories[1].MainCategory)
	assert.Equal(t, []string{"News"}, doc.Categories[0].SubCategories)
}

func TestExport_FlatEntryDefaults(t *testing.T) {
	it := catalog.NewItem("Untitled", catalog.TypeMovie)

	data, err := Export([]*catalog.Item{it})
	require.NoError(t, err)

	var doc struct {
		Categories []struct {
			Entries []map[string]json.RawMessage `json:"Entries"`
		} `json:"Categories"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	entry := doc.Categories[0].Entries[0]

	assert.JSONEq(t, "0", string(entry["Rating"]))
	assert.JSONEq(t, "0", string(entry["Year"]))
	// Absent servers omit the key entirely rather than writing [].
	_, present := entry["Servers"]
	assert.False(t, present)
}

func TestExport_SeriesRegrouping(t *testing.T) {
	ep1 := episodeItem("Wednesday", 1, 1, "https://img/e1.jpg")
	ep2 := episodeItem("Wednesday", 1, 2, "https://img/e2.jpg")
	ep3 := episodeItem("Wednesday", 2, 1, "https://img/e3.jpg")
	// Episode out of order on input; export sorts within the season.
	data, err := Export([]*catalog.Item{ep2, ep1, ep3})
	require.NoError(t, err)

	var doc struct {
		Categories []struct {
			Entries []struct {
				Title   string `json:"Title"`
				Seasons []struct {
					Season       int    `json:"Season"`
					SeasonPoster string `json:"SeasonPoster"`
					Episodes     []struct {
						Episode int `json:"Episode"`
					} `json:"Episodes"`
				} `json:"Seasons"`
			} `json:"Entries"`
		} `json:"Categories"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Len(t, doc.Categories, 1)
	require.Len(t, doc.Categories[0].Entries, 1)

	series := doc.Categories[0].Entries[0]
	assert.Equal(t, "Wednesday", series.Title)
	require.Len(t, series.Seasons, 2)
	assert.Equal(t, 1, series.Seasons[0].Season)
	assert.Equal(t, []int{1, 2}, episodeNumbers(series.Seasons[0].Episodes))
	// The season poster comes from its first episode.
	assert.Equal(t, "https://img/e1.jpg", series.Seasons[0].SeasonPoster)
}

func TestExport_SeriesKeyFallsBackToHeuristic(t *testing.T) {
	// No explicit SeriesTitle; grouping derives from the episode titles.
	a := catalog.NewItem("Lost 1x01", catalog.TypeSeries)
	b := catalog.NewItem("Lost 1x02", catalog.TypeSeries)

	data, err := Export([]*catalog.Item{a, b})
	require.NoError(t, err)

	var doc struct {
		Categories []struct {
			Entries []struct {
				Title string `json:"Title"`
			} `json:"Entries"`
		} `json:"Categories"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Len(t, doc.Categories[0].Entries, 1)
	assert.Equal(t, "Lost", doc.Categories[0].Entries[0].Title)
}

func TestExport_Deterministic(t *testing.T) {
	items := []*catalog.Item{
		movieItem("Heat", "Crime"),
		episodeItem("Dark", 1, 2, ""),
		episodeItem("Dark", 1, 1, ""),
		liveItem("CNN", "News"),
	}
	first, err := Export(items)
	require.NoError(t, err)
	second, err := Export(items)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(first, second))
}

func TestExport_DRMServerObjects(t *testing.T) {
	it := movieItem("Locked", "Drama")
	it.Servers = []catalog.Server{
		{Name: "Clear", URL: "https://s/clear"},
		{Name: "Protected", URL: "https://s/p.mpd", DRM: &catalog.DRM{License: "https://lic"}},
		{Name: "ProtectedNoLicense", URL: "https://s/p2", DRM: &catalog.DRM{}},
	}

	data, err := Export([]*catalog.Item{it})
	require.NoError(t, err)

	var doc struct {
		Categories []struct {
			Entries []struct {
				Servers []map[string]json.RawMessage `json:"Servers"`
			} `json:"Entries"`
		} `json:"Categories"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	servers := doc.Categories[0].Entries[0].Servers
	require.Len(t, servers, 3)

	_, clearDRM := servers[0]["drm"]
	assert.False(t, clearDRM)
	assert.JSONEq(t, "true", string(servers[1]["drm"]))
	assert.JSONEq(t, `"https://lic"`, string(servers[1]["license"]))
	assert.JSONEq(t, "true", string(servers[2]["drm"]))
	_, hasLicense := servers[2]["license"]
	assert.False(t, hasLicense)
}

func episodeNumbers(eps []struct {
	Episode int `json:"Episode"`
}) []int {
	out := make([]int, len(eps))
	for i, e := range eps {
		out[i] = e.Episode
	}
	return out
}

func movieItem(title, sub string) *catalog.Item {
	it := catalog.NewItem(title, catalog.TypeMovie)
	it.Subcategory = sub
	return it
}

func liveItem(title, sub string) *catalog.Item {
	it := catalog.NewItem(title, catalog.TypeLiveTV)
	it.Subcategory = sub
	return it
}

func episodeItem(series string, season, episode int, image string) *catalog.Item {
	it := catalog.NewItem(series+" S01E01", catalog.TypeSeries)
	it.SeriesTitle = series
	it.Season = &season
	it.Episode = &episode
	it.ImageURL = image
	return it
}
