package catalog

import (
	"regexp"
	"strconv"
	"strings"
)

// UnknownSeries is the grouping key assigned when no series title can be
// derived from an episode title.
const UnknownSeries = "Unknown Series"

var (
	reSxxExx     = regexp.MustCompile(`\s+S\d+E\d+.*$`)
	reSeasonN    = regexp.MustCompile(`\s+Season\s+\d+.*$`)
	reDashSplit  = regexp.MustCompile(`\s+-\s+`)
	reEpisodeN   = regexp.MustCompile(`\s+(Episode|Ep)\s+\d+.*$`)
	reNxN        = regexp.MustCompile(`\s+\d+x\d+.*$`)
	reSeasonNum  = regexp.MustCompile(`S(\d+)`)
	reEpisodeNum = regexp.MustCompile(`E(\d+)`)
)

// ExtractSeriesTitle strips common season/episode decorations from an
// episode display title to recover the series name. It is a best-effort
// heuristic tuned against titles like "Breaking Bad S01E05 - Ozymandias",
// "The Office Season 3" or "Lost 1x01", not a parser. Every step runs
// unconditionally on the previous step's output.
func ExtractSeriesTitle(episodeTitle string) string {
	title := strings.TrimSpace(episodeTitle)
	if title == "" {
		return UnknownSeries
	}

	title = reSxxExx.ReplaceAllString(title, "")
	title = reSeasonN.ReplaceAllString(title, "")

	// Keep only the part before " - " when it is long enough to be a real
	// series name rather than a short prefix.
	if parts := reDashSplit.Split(title, 2); len(parts) > 1 {
		if first := strings.TrimSpace(parts[0]); len(first) > 3 {
			title = first
		}
	}

	title = reEpisodeN.ReplaceAllString(title, "")
	title = reNxN.ReplaceAllString(title, "")

	return strings.TrimSpace(title)
}

// SeasonNumber pulls a season number out of a title ("Show S03" -> 3),
// defaulting to 1.
func SeasonNumber(title string) int {
	if m := reSeasonNum.FindStringSubmatch(title); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	return 1
}

// EpisodeNumber pulls an episode number out of a title ("Show S03E07" -> 7),
// defaulting to 1.
func EpisodeNumber(title string) int {
	if m := reEpisodeNum.FindStringSubmatch(title); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	return 1
}

// SeriesKey resolves the grouping key for a series episode: the explicit
// SeriesTitle when present, else the heuristic applied to the display
// title. This is the single derivation point; callers propagate the result
// onto the item rather than re-deriving downstream.
func SeriesKey(it *Item) string {
	if t := strings.TrimSpace(it.SeriesTitle); t != "" {
		return t
	}
	return ExtractSeriesTitle(it.Title)
}
