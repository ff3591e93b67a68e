// Package films holds the list/detail state for the film browser: the catalog
// list, the current selection and the per-title rating detail cache.
package films

import (
	"context"

	"github.com/lepinkainen/holocron/internal/omdb"
	"github.com/lepinkainen/holocron/internal/swapi"
)

// CatalogSource provides the base film list.
type CatalogSource interface {
	Films(ctx context.Context) ([]swapi.Film, error)
}

// RatingSource looks up rating details by exact title. A nil response with a
// nil error means the title is unknown.
type RatingSource interface {
	FetchByTitle(ctx context.Context, title string) (*omdb.Response, error)
}

// Detail is the rating payload attached to a film once fetched.
type Detail struct {
	Poster        string        `json:"poster" yaml:"poster"`
	Ratings       []omdb.Rating `json:"ratings" yaml:"ratings"`
	AverageRating float64       `json:"average_rating" yaml:"average_rating"`
}

// EnrichedFilm is a catalog film plus its computed rating data.
type EnrichedFilm struct {
	swapi.Film    `yaml:",inline"`
	AverageRating float64 `json:"average_rating" yaml:"average_rating"`
	Detail        *Detail `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// HasDetail reports whether rating detail has already been fetched.
func (f *EnrichedFilm) HasDetail() bool {
	return f.Detail != nil
}

// State is the controller's position in the list/detail lifecycle.
type State int

const (
	// StateLoadingList is the initial state while the catalog is fetched.
	StateLoadingList State = iota
	// StateListReady means the list is loaded and nothing is being fetched.
	StateListReady
	// StateDetailLoading means rating detail for the selection is in flight.
	StateDetailLoading
	// StateDetailReady means the selection's detail view is settled.
	StateDetailReady
	// StateError means the catalog could not be loaded.
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoadingList:
		return "loading-list"
	case StateListReady:
		return "list-ready"
	case StateDetailLoading:
		return "detail-loading"
	case StateDetailReady:
		return "detail-ready"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}
