package catalog

import (
	"encoding/json"
	"testing"
)

// ptr is a helper to create pointer to value
func ptr[T any](v T) *T {
	return &v
}

func TestItemEqual_IdentityFieldsOnly(t *testing.T) {
	a := &Item{Title: "Dune", Type: TypeMovie, TMDBID: ptr(int64(438631))}
	b := &Item{
		Title:       "Dune",
		Type:        TypeMovie,
		TMDBID:      ptr(int64(438631)),
		Description: "different metadata",
		ImageURL:    "https://img/x.jpg",
		Rating:      ptr(8.1),
		Servers:     []Server{{Name: "VidSrc", URL: "https://vidsrc.to/embed/Dune"}},
	}
	if !a.Equal(b) {
		t.Error("items differing only in metadata should be equal")
	}
	if !b.Equal(a) {
		t.Error("Equal must be symmetric")
	}

	c := b.Clone()
	c.Episode = ptr(2)
	if a.Equal(c) {
		t.Error("differing episode must break equality")
	}
}

func TestItemEqual_NilPointers(t *testing.T) {
	a := &Item{Title: "X", Type: TypeSeries, Season: ptr(1)}
	b := &Item{Title: "X", Type: TypeSeries}
	if a.Equal(b) || b.Equal(a) {
		t.Error("nil vs non-nil season must not be equal")
	}
}

func TestItemKey_MatchesEqual(t *testing.T) {
	items := []*Item{
		{Title: "A", Type: TypeMovie},
		{Title: "A", Type: TypeMovie, TMDBID: ptr(int64(1))},
		{Title: "A", Type: TypeSeries, Season: ptr(1), Episode: ptr(2), SeriesTitle: "A"},
		{Title: "A", Type: TypeSeries, Season: ptr(1), Episode: ptr(2), SeriesTitle: "A"},
	}
	for i, a := range items {
		for j, b := range items {
			if a.Equal(b) != (a.Key() == b.Key()) {
				t.Errorf("Equal(%d,%d)=%v disagrees with key equality", i, j, a.Equal(b))
			}
		}
	}
}

func TestItemClone_Independent(t *testing.T) {
	orig := &Item{
		Title:   "Show",
		Type:    TypeSeries,
		Season:  ptr(1),
		Servers: []Server{{Name: "VidSrc", URL: "https://vidsrc.to/embed/Show"}},
	}
	cp := orig.Clone()
	*cp.Season = 9
	cp.Servers[0].Name = "Other"
	if *orig.Season != 1 {
		t.Error("clone shares season pointer")
	}
	if orig.Servers[0].Name != "VidSrc" {
		t.Error("clone shares servers slice")
	}
}

func TestDisplayTitle(t *testing.T) {
	it := &Item{Title: "Pilot", Type: TypeSeries, SeriesTitle: "Wednesday", Season: ptr(1), Episode: ptr(3)}
	if got := it.DisplayTitle(); got != "Wednesday S01E03" {
		t.Errorf("DisplayTitle = %q", got)
	}
	movie := &Item{Title: "Heat", Type: TypeMovie}
	if got := movie.DisplayTitle(); got != "Heat" {
		t.Errorf("DisplayTitle = %q", got)
	}
}

func TestItemJSONRoundTrip_ServersAsStrings(t *testing.T) {
	it := &Item{
		Title: "Test DRM Content",
		Type:  TypeLiveTV,
		Servers: []Server{
			{Name: "HD", URL: "https://test.com/stream.mpd", DRM: &DRM{License: "testlicense123"}},
			{Name: "720p", URL: "https://test.com/stream.m3u8"},
		},
	}
	data, err := json.Marshal(it)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Item
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(back.Servers) != 2 {
		t.Fatalf("got %d servers, want 2", len(back.Servers))
	}
	if back.Servers[0].String() != "HD|https://test.com/stream.mpd|drm:testlicense123" {
		t.Errorf("drm server round trip = %q", back.Servers[0].String())
	}
}

func TestFoldTitle(t *testing.T) {
	if FoldTitle("  The MATRIX ") != FoldTitle("the matrix") {
		t.Error("FoldTitle should normalize case and surrounding space")
	}
}
