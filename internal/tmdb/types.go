// Package tmdb provides a client for The Movie Database API, normalizing
// its responses into catalog items.
package tmdb

import "strconv"

const imageBaseURL = "https://image.tmdb.org/t/p/w500"

// Movie represents TMDB movie metadata.
type Movie struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	ReleaseDate string  `json:"release_date"` // "2024-03-01"
	PosterPath  string  `json:"poster_path"`  // "/abc123.jpg"
	VoteAverage float64 `json:"vote_average"`
	Runtime     int     `json:"runtime"` // minutes
	Genres      []Genre `json:"genres"`
}

// Year extracts the year from ReleaseDate.
func (m *Movie) Year() int {
	return yearOf(m.ReleaseDate)
}

// Genre represents a TMDB genre.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Series represents TMDB TV show metadata.
type Series struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	FirstAirDate string  `json:"first_air_date"`
	PosterPath   string  `json:"poster_path"`
	VoteAverage  float64 `json:"vote_average"`
	Genres       []Genre `json:"genres"`
	Seasons      []struct {
		SeasonNumber int `json:"season_number"`
	} `json:"seasons"`
}

// seasonDetail is the per-season endpoint response.
type seasonDetail struct {
	Episodes []episodeDetail `json:"episodes"`
}

type episodeDetail struct {
	EpisodeNumber int     `json:"episode_number"`
	Name          string  `json:"name"`
	Overview      string  `json:"overview"`
	AirDate       string  `json:"air_date"`
	VoteAverage   float64 `json:"vote_average"`
	StillPath     string  `json:"still_path"`
}

// SearchResult is one hit from the search endpoints, normalized across
// the movie and tv shapes.
type SearchResult struct {
	ID          int64
	Title       string
	MediaType   string // "movie" or "tv"
	Overview    string
	PosterPath  string
	VoteAverage float64
	ReleaseDate string
}

// Year extracts the year from ReleaseDate.
func (r SearchResult) Year() int {
	return yearOf(r.ReleaseDate)
}

// PosterURL returns the full poster image URL, empty when TMDB has none.
func (r SearchResult) PosterURL() string {
	return posterURL(r.PosterPath)
}

// searchResponse is the raw search endpoint payload; Title and
// ReleaseDate live under different keys for movies and tv shows.
type searchResponse struct {
	Results []struct {
		ID           int64   `json:"id"`
		Title        string  `json:"title"`
		Name         string  `json:"name"`
		Overview     string  `json:"overview"`
		PosterPath   string  `json:"poster_path"`
		VoteAverage  float64 `json:"vote_average"`
		ReleaseDate  string  `json:"release_date"`
		FirstAirDate string  `json:"first_air_date"`
	} `json:"results"`
}

func yearOf(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}

func posterURL(path string) string {
	if path == "" {
		return ""
	}
	return imageBaseURL + path
}
