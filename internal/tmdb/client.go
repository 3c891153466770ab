package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/cinecraze/catman/internal/catalog"
)

const defaultBaseURL = "https://api.themoviedb.org"
const defaultCacheTTL = 24 * time.Hour

// ErrNotFound is returned when the requested title doesn't exist in TMDB.
var ErrNotFound = errors.New("title not found")

// Client is a TMDB API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	cache      *cache
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithCacheTTL sets the cache TTL.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = newCache(ttl)
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new TMDB client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache: newCache(defaultCacheTTL),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Movie fetches movie metadata by TMDB ID and normalizes it into one
// catalog item. Playback servers are not populated here; callers attach
// them through the autoembed generator.
func (c *Client) Movie(ctx context.Context, tmdbID int64) (*catalog.Item, error) {
	var movie Movie
	if err := c.getJSON(ctx, fmt.Sprintf("/3/movie/%d", tmdbID), nil, &movie); err != nil {
		return nil, err
	}

	it := catalog.NewItem(movie.Title, catalog.TypeMovie)
	it.TMDBID = &movie.ID
	it.Description = movie.Overview
	it.ImageURL = posterURL(movie.PosterPath)
	if y := movie.Year(); y > 0 {
		it.Year = &y
	}
	rating := movie.VoteAverage
	it.Rating = &rating
	if len(movie.Genres) > 0 {
		it.Subcategory = movie.Genres[0].Name
	}
	if movie.Runtime > 0 {
		it.Duration = fmt.Sprintf("%dm", movie.Runtime)
	}
	return it, nil
}

// SeriesEpisodes fetches TV show metadata by TMDB ID and expands it into
// one catalog item per episode, titled "<Series> SxxEyy". seasonFilter
// limits which seasons are expanded; nil or empty means all seasons TMDB
// lists. A season whose episode list cannot be fetched degrades to a
// single episode-1 item built from series-level metadata, so a partial
// TMDB outage still yields a usable skeleton.
func (c *Client) SeriesEpisodes(ctx context.Context, tmdbID int64, seasonFilter []int) ([]*catalog.Item, error) {
	var series Series
	if err := c.getJSON(ctx, fmt.Sprintf("/3/tv/%d", tmdbID), nil, &series); err != nil {
		return nil, err
	}

	genre := "Drama"
	if len(series.Genres) > 0 {
		genre = series.Genres[0].Name
	}

	wanted := make(map[int]bool, len(seasonFilter))
	for _, n := range seasonFilter {
		wanted[n] = true
	}

	var items []*catalog.Item
	for _, s := range series.Seasons {
		if len(wanted) > 0 && !wanted[s.SeasonNumber] {
			continue
		}

		var detail seasonDetail
		err := c.getJSON(ctx, fmt.Sprintf("/3/tv/%d/season/%d", tmdbID, s.SeasonNumber), nil, &detail)
		if err != nil || len(detail.Episodes) == 0 {
			if ctx.Err() != nil {
				return items, ctx.Err()
			}
			items = append(items, c.fallbackEpisode(&series, genre, s.SeasonNumber))
			continue
		}

		for _, ep := range detail.Episodes {
			items = append(items, episodeItem(&series, genre, s.SeasonNumber, ep))
		}
	}
	return items, nil
}

func episodeItem(series *Series, genre string, seasonNumber int, ep episodeDetail) *catalog.Item {
	it := catalog.NewItem(
		fmt.Sprintf("%s S%02dE%02d", series.Name, seasonNumber, ep.EpisodeNumber),
		catalog.TypeSeries)
	it.TMDBID = &series.ID
	it.SeriesTitle = series.Name
	it.Subcategory = genre

	season := seasonNumber
	it.Season = &season
	episode := ep.EpisodeNumber
	it.Episode = &episode

	it.Description = ep.Overview
	if it.Description == "" {
		it.Description = series.Overview
	}
	if y := yearOf(ep.AirDate); y > 0 {
		it.Year = &y
	} else if y := yearOf(series.FirstAirDate); y > 0 {
		it.Year = &y
	}
	rating := ep.VoteAverage
	if rating == 0 {
		rating = series.VoteAverage
	}
	it.Rating = &rating
	it.ImageURL = posterURL(ep.StillPath)
	if it.ImageURL == "" {
		it.ImageURL = posterURL(series.PosterPath)
	}
	return it
}

func (c *Client) fallbackEpisode(series *Series, genre string, seasonNumber int) *catalog.Item {
	return episodeItem(series, genre, seasonNumber, episodeDetail{EpisodeNumber: 1})
}

// Search queries TMDB. mediaType is "movie" or "tv"; anything else
// searches both and concatenates movie hits before tv hits.
func (c *Client) Search(ctx context.Context, query, mediaType string) ([]SearchResult, error) {
	switch mediaType {
	case "movie", "tv":
		return c.search(ctx, query, mediaType)
	}
	movies, err := c.search(ctx, query, "movie")
	if err != nil {
		return nil, err
	}
	shows, err := c.search(ctx, query, "tv")
	if err != nil {
		return nil, err
	}
	return append(movies, shows...), nil
}

func (c *Client) search(ctx context.Context, query, mediaType string) ([]SearchResult, error) {
	var resp searchResponse
	params := url.Values{"query": {query}}
	if err := c.getJSON(ctx, "/3/search/"+mediaType, params, &resp); err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(resp.Results))
	for _, r := range resp.Results {
		sr := SearchResult{
			ID:          r.ID,
			MediaType:   mediaType,
			Overview:    r.Overview,
			PosterPath:  r.PosterPath,
			VoteAverage: r.VoteAverage,
		}
		if mediaType == "movie" {
			sr.Title, sr.ReleaseDate = r.Title, r.ReleaseDate
		} else {
			sr.Title, sr.ReleaseDate = r.Name, r.FirstAirDate
		}
		results = append(results, sr)
	}
	return results, nil
}

// getJSON performs a cached GET against one API path and decodes the
// response into out.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	if params == nil {
		params = url.Values{}
	}
	cacheKey := path + "?" + params.Encode()

	if payload, ok := c.cache.get(cacheKey); ok {
		return json.Unmarshal(payload, out)
	}

	params.Set("api_key", c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("TMDB API error: %s", resp.Status)
	}

	var payload json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	c.cache.set(cacheKey, payload)
	return json.Unmarshal(payload, out)
}
