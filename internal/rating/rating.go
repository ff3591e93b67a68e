// Package rating normalizes third-party film ratings to a common 0-10 scale.
package rating

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/lepinkainen/holocron/internal/omdb"
)

// Known rating sources as reported by OMDB
const (
	SourceIMDb           = "Internet Movie Database"
	SourceRottenTomatoes = "Rotten Tomatoes"
	SourceMetacritic     = "Metacritic"
)

// leadingNumber matches the numeric prefix of a rating value, e.g. "8.3" in "8.3/10".
var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// Average returns the mean of all parseable ratings on a 0-10 scale, rounded to
// one decimal place. Unknown sources and unparseable values are skipped; 0 is
// returned when nothing could be parsed.
func Average(ratings []omdb.Rating) float64 {
	var total float64
	var count int

	for _, r := range ratings {
		value, ok := Normalize(r)
		if !ok {
			continue
		}
		total += value
		count++
	}

	if count == 0 {
		return 0
	}
	return roundTenth(total / float64(count))
}

// Normalize converts a single rating to the 0-10 scale.
// The second return value is false for unknown sources or unparseable values.
func Normalize(r omdb.Rating) (float64, bool) {
	switch r.Source {
	case SourceIMDb:
		// "8.3/10"
		return parseLeading(numerator(r.Value))
	case SourceRottenTomatoes:
		// "89%"
		v, ok := parseLeading(r.Value)
		return v / 10, ok
	case SourceMetacritic:
		// "82/100"
		v, ok := parseLeading(numerator(r.Value))
		return v / 10, ok
	default:
		return 0, false
	}
}

func numerator(value string) string {
	before, _, _ := strings.Cut(value, "/")
	return before
}

func parseLeading(value string) (float64, bool) {
	match := leadingNumber.FindString(strings.TrimSpace(value))
	if match == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
