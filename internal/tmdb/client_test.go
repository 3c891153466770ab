package tmdb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinecraze/catman/internal/catalog"
)

func TestClient_Movie(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/movie/550", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))

		resp := Movie{
			ID:          550,
			Title:       "Fight Club",
			Overview:    "An insomniac office worker...",
			ReleaseDate: "1999-10-15",
			PosterPath:  "/pB8BM7pdSp6B6Ih7QZ4DrQ3PmJK.jpg",
			VoteAverage: 8.4,
			Runtime:     139,
			Genres:      []Genre{{ID: 18, Name: "Drama"}},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	it, err := client.Movie(context.Background(), 550)
	require.NoError(t, err)
	assert.Equal(t, "Fight Club", it.Title)
	assert.Equal(t, catalog.TypeMovie, it.Type)
	assert.Equal(t, int64(550), *it.TMDBID)
	assert.Equal(t, 1999, *it.Year)
	assert.Equal(t, 8.4, *it.Rating)
	assert.Equal(t, "Drama", it.Subcategory)
	assert.Contains(t, it.ImageURL, "/pB8BM7pdSp6B6Ih7QZ4DrQ3PmJK.jpg")
	// Playback servers come from the generator, never from here.
	assert.Empty(t, it.Servers)
}

func TestClient_Movie_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status_code":34,"status_message":"The resource you requested could not be found."}`))
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	it, err := client.Movie(context.Background(), 99999999)
	assert.Nil(t, it)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_Movie_Cached(t *testing.T) {
	callCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callCount++
		_ = json.NewEncoder(w).Encode(Movie{ID: 550, Title: "Fight Club"})
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL), WithCacheTTL(time.Hour))

	_, err := client.Movie(context.Background(), 550)
	require.NoError(t, err)
	assert.Equal(t, 1, callCount)

	_, err = client.Movie(context.Background(), 550)
	require.NoError(t, err)
	assert.Equal(t, 1, callCount, "should use cache, not call API again")
}

func TestClient_SeriesEpisodes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/3/tv/119051":
			_, _ = w.Write([]byte(`{
				"id": 119051, "name": "Wednesday",
				"overview": "A sleuthing, supernaturally infused mystery.",
				"first_air_date": "2022-11-23", "poster_path": "/w.jpg",
				"vote_average": 8.6,
				"genres": [{"id": 9648, "name": "Mystery"}],
				"seasons": [{"season_number": 1}, {"season_number": 2}]
			}`))
		case "/3/tv/119051/season/1":
			_, _ = w.Write([]byte(`{"episodes": [
				{"episode_number": 1, "name": "Wednesday's Child is Full of Woe",
				 "overview": "Smart, sarcastic and a little dead inside.",
				 "air_date": "2022-11-23", "vote_average": 8.1, "still_path": "/e1.jpg"},
				{"episode_number": 2, "name": "Woe Is the Loneliest Number",
				 "air_date": "2022-11-23"}
			]}`))
		case "/3/tv/119051/season/2":
			// Season endpoint down; this season degrades to a fallback.
			w.WriteHeader(http.StatusInternalServerError)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	items, err := client.SeriesEpisodes(context.Background(), 119051, nil)
	require.NoError(t, err)
	require.Len(t, items, 3)

	first := items[0]
	assert.Equal(t, "Wednesday S01E01", first.Title)
	assert.Equal(t, catalog.TypeSeries, first.Type)
	assert.Equal(t, "Wednesday", first.SeriesTitle)
	assert.Equal(t, "Mystery", first.Subcategory)
	assert.Equal(t, 1, *first.Season)
	assert.Equal(t, 1, *first.Episode)
	assert.Equal(t, 8.1, *first.Rating)
	assert.Contains(t, first.ImageURL, "/e1.jpg")

	// Episode 2 has no overview or still; series-level values fill in.
	second := items[1]
	assert.Equal(t, "Wednesday S01E02", second.Title)
	assert.Equal(t, "A sleuthing, supernaturally infused mystery.", second.Description)
	assert.Contains(t, second.ImageURL, "/w.jpg")
	assert.Equal(t, 8.6, *second.Rating)

	// Season 2 failed to fetch, leaving the single-episode skeleton.
	fallback := items[2]
	assert.Equal(t, "Wednesday S02E01", fallback.Title)
	assert.Equal(t, 2, *fallback.Season)
	assert.Equal(t, 1, *fallback.Episode)
}

func TestClient_SeriesEpisodes_SeasonFilter(t *testing.T) {
	var seasonPaths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/3/tv/1399":
			_, _ = w.Write([]byte(`{"id": 1399, "name": "Game of Thrones",
				"seasons": [{"season_number": 1}, {"season_number": 2}, {"season_number": 3}]}`))
		default:
			seasonPaths = append(seasonPaths, r.URL.Path)
			_, _ = w.Write([]byte(`{"episodes": [{"episode_number": 1, "name": "Pilot"}]}`))
		}
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	items, err := client.SeriesEpisodes(context.Background(), 1399, []int{2})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Game of Thrones S02E01", items[0].Title)
	assert.Equal(t, []string{"/3/tv/1399/season/2"}, seasonPaths)
}

func TestClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/search/tv", r.URL.Path)
		assert.Equal(t, "wednesday", r.URL.Query().Get("query"))
		_, _ = w.Write([]byte(`{"results": [
			{"id": 119051, "name": "Wednesday", "first_air_date": "2022-11-23",
			 "vote_average": 8.6, "poster_path": "/w.jpg"}
		]}`))
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	results, err := client.Search(context.Background(), "wednesday", "tv")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Wednesday", results[0].Title)
	assert.Equal(t, 2022, results[0].Year())
	assert.Equal(t, "tv", results[0].MediaType)
	assert.Contains(t, results[0].PosterURL(), "/w.jpg")
}
