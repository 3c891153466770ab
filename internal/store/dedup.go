package store

import (
	"github.com/hbollon/go-edlib"

	"github.com/cinecraze/catman/internal/catalog"
)

// IsDuplicate reports whether the candidate matches any stored item. The
// predicate is broader than entity equality: it also matches on
// (tmdbID, type), requiring season/episode/series agreement for series,
// and, when either side lacks a tmdbID, on case-insensitive trimmed
// (title, type), again with series agreement for series and year agreement
// for everything else when both carry a year. Used to gate imports and
// bulk generation against re-adding the same logical content.
func (s *Store) IsDuplicate(candidate *catalog.Item) bool {
	if candidate == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.items {
		if existing.Equal(candidate) {
			return true
		}
		if matchByTMDB(candidate, existing) {
			return true
		}
		if matchByTitle(candidate, existing) {
			return true
		}
	}
	return false
}

func matchByTMDB(a, b *catalog.Item) bool {
	if a.TMDBID == nil || b.TMDBID == nil || *a.TMDBID != *b.TMDBID {
		return false
	}
	if a.Type == "" || b.Type == "" || a.Type != b.Type {
		return false
	}
	if a.Type == catalog.TypeSeries {
		return seriesFieldsAgree(a, b)
	}
	return true
}

func matchByTitle(a, b *catalog.Item) bool {
	if a.TMDBID != nil && b.TMDBID != nil {
		return false
	}
	if a.Title == "" || b.Title == "" || a.Type == "" || b.Type == "" {
		return false
	}
	if catalog.FoldTitle(a.Title) != catalog.FoldTitle(b.Title) || a.Type != b.Type {
		return false
	}
	if a.Type == catalog.TypeSeries {
		return seriesFieldsAgree(a, b)
	}
	if a.Year != nil && b.Year != nil {
		return *a.Year == *b.Year
	}
	return true
}

// seriesFieldsAgree requires season, episode and series title to be either
// both absent or equal.
func seriesFieldsAgree(a, b *catalog.Item) bool {
	season := (a.Season == nil && b.Season == nil) ||
		(a.Season != nil && b.Season != nil && *a.Season == *b.Season)
	episode := (a.Episode == nil && b.Episode == nil) ||
		(a.Episode != nil && b.Episode != nil && *a.Episode == *b.Episode)
	series := a.SeriesTitle == b.SeriesTitle
	return season && episode && series
}

// RemoveDuplicates collapses the catalog using entity equality as the set
// key, keeping the first occurrence of each entity, and returns how many
// items were dropped. Note this is narrower than IsDuplicate: pairs that
// only the broad predicate would flag survive the collapse.
func (s *Store) RemoveDuplicates() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[catalog.EntityKey]struct{}, len(s.items))
	kept := s.items[:0]
	for _, it := range s.items {
		k := it.Key()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		kept = append(kept, it)
	}
	dropped := len(s.items) - len(kept)
	s.items = kept
	if dropped > 0 {
		s.saveItems()
	}
	return dropped
}

// NearDuplicate is a pair of distinct entities whose titles are suspiciously
// similar.
type NearDuplicate struct {
	A, B       *catalog.Item
	Similarity float32
}

// NearDuplicates reports same-type item pairs that entity equality and
// IsDuplicate both miss but whose folded titles score at or above threshold
// under Jaro-Winkler similarity. It is a review aid only; nothing is
// removed.
func (s *Store) NearDuplicates(threshold float32) []NearDuplicate {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []NearDuplicate
	for i := 0; i < len(s.items); i++ {
		for j := i + 1; j < len(s.items); j++ {
			a, b := s.items[i], s.items[j]
			if a.Type != b.Type || a.Equal(b) {
				continue
			}
			score := edlib.JaroWinklerSimilarity(catalog.FoldTitle(a.Title), catalog.FoldTitle(b.Title))
			if score >= threshold {
				out = append(out, NearDuplicate{A: a.Clone(), B: b.Clone(), Similarity: score})
			}
		}
	}
	return out
}
