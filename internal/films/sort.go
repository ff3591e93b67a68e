package films

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// SortKey selects one of the list orderings.
type SortKey int

const (
	// ByEpisode orders by episode number, ascending.
	ByEpisode SortKey = iota
	// ByReleaseDate orders by release date string, ascending.
	ByReleaseDate
	// ByRating orders by average rating, descending.
	ByRating
)

func (k SortKey) String() string {
	switch k {
	case ByEpisode:
		return "episode"
	case ByReleaseDate:
		return "year"
	case ByRating:
		return "rating"
	default:
		return "unknown"
	}
}

// ParseSortKey maps a user-facing name to a SortKey.
func ParseSortKey(name string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "episode", "episode_id":
		return ByEpisode, nil
	case "year", "release", "release_date":
		return ByReleaseDate, nil
	case "rating", "average_rating":
		return ByRating, nil
	default:
		return 0, fmt.Errorf("unknown sort key %q (valid: episode, year, rating)", name)
	}
}

// Sort reorders the list in place. The sort is stable and never changes
// which film is selected.
func (c *Controller) Sort(key SortKey) {
	SortFilms(c.films, key)
}

// SortFilms stably sorts films by key.
func SortFilms(list []*EnrichedFilm, key SortKey) {
	slices.SortStableFunc(list, func(a, b *EnrichedFilm) int {
		switch key {
		case ByReleaseDate:
			return strings.Compare(a.ReleaseDate, b.ReleaseDate)
		case ByRating:
			return cmp.Compare(b.AverageRating, a.AverageRating)
		default:
			return cmp.Compare(a.EpisodeID, b.EpisodeID)
		}
	})
}
