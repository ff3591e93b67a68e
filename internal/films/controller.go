package films

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lepinkainen/holocron/internal/rating"
	"github.com/lepinkainen/holocron/internal/swapi"
)

// ErrLoadFilms is the user-visible message for a failed catalog fetch.
const ErrLoadFilms = "Failed to load films"

// Controller owns the film list and the current selection.
// It is not safe for concurrent use; callers drive it from a single loop.
type Controller struct {
	catalog CatalogSource
	ratings RatingSource

	films    []*EnrichedFilm
	selected *EnrichedFilm
	detail   *Detail
	state    State
	err      error

	// titles with a detail lookup in flight
	pending map[string]bool
}

// New creates a controller in the loading-list state.
func New(catalog CatalogSource, ratings RatingSource) *Controller {
	return &Controller{
		catalog: catalog,
		ratings: ratings,
		state:   StateLoadingList,
		pending: map[string]bool{},
	}
}

// Load fetches the catalog and resets the list.
func (c *Controller) Load(ctx context.Context) error {
	c.state = StateLoadingList
	c.err = nil

	list, err := c.FetchList(ctx)
	if err != nil {
		c.FailList(err)
		return c.err
	}

	c.SetFilms(list)
	return nil
}

// FetchList fetches the catalog without touching controller state.
func (c *Controller) FetchList(ctx context.Context) ([]swapi.Film, error) {
	return c.catalog.Films(ctx)
}

// SetFilms installs a freshly fetched catalog and moves to list-ready.
func (c *Controller) SetFilms(list []swapi.Film) {
	c.films = make([]*EnrichedFilm, len(list))
	for i, f := range list {
		c.films[i] = &EnrichedFilm{Film: f}
	}
	c.selected = nil
	c.detail = nil
	c.err = nil
	c.state = StateListReady

	slog.Debug("Film list ready", "count", len(c.films))
}

// FailList records a catalog failure. The list is left empty.
func (c *Controller) FailList(cause error) {
	slog.Error("Failed to load film catalog", "error", cause)

	c.films = nil
	c.selected = nil
	c.detail = nil
	c.err = fmt.Errorf("%s: %w", ErrLoadFilms, cause)
	c.state = StateError
}

// Select makes the film with the given title the current selection.
// It reports whether rating detail still has to be fetched for it. A title
// whose lookup is already in flight shows as loading but is not fetched again.
func (c *Controller) Select(title string) (bool, error) {
	film := c.find(title)
	if film == nil {
		return false, fmt.Errorf("film not found in list: %q", title)
	}

	c.selected = film
	if film.HasDetail() {
		c.detail = film.Detail
		c.state = StateDetailReady
		return false, nil
	}

	c.detail = nil
	c.state = StateDetailLoading
	if c.pending[title] {
		return false, nil
	}
	c.pending[title] = true
	return true, nil
}

// FetchDetail looks up ratings for title and computes the normalized average.
// It does not touch controller state.
func (c *Controller) FetchDetail(ctx context.Context, title string) (*Detail, error) {
	return LookupDetail(ctx, c.ratings, title)
}

// LookupDetail fetches rating detail for title from src. A title unknown to
// the ratings source returns (nil, nil).
func LookupDetail(ctx context.Context, src RatingSource, title string) (*Detail, error) {
	if src == nil {
		return nil, fmt.Errorf("no rating source configured")
	}

	resp, err := src.FetchByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, nil
	}

	return &Detail{
		Poster:        resp.Poster,
		Ratings:       resp.Ratings,
		AverageRating: rating.Average(resp.Ratings),
	}, nil
}

// ApplyDetail merges fetched detail into the list entry matching title.
// The selection shares that entry, so it sees the update as well. The detail
// view only changes when title is still the current selection.
func (c *Controller) ApplyDetail(title string, detail *Detail) {
	if detail == nil {
		c.FailDetail(title, nil)
		return
	}
	delete(c.pending, title)

	if film := c.find(title); film != nil {
		film.Detail = detail
		film.AverageRating = detail.AverageRating
	}

	if c.isSelected(title) {
		c.detail = detail
		c.state = StateDetailReady
	}
}

// FailDetail clears the detail view for title without blocking the list.
// Nothing is cached, so a later selection will try again.
func (c *Controller) FailDetail(title string, cause error) {
	if cause != nil {
		slog.Warn("Failed to fetch rating detail", "title", title, "error", cause)
	} else {
		slog.Debug("No rating detail available", "title", title)
	}
	delete(c.pending, title)

	if c.isSelected(title) {
		c.detail = nil
		c.state = StateDetailReady
	}
}

// SelectAndLoad selects title and, if needed, fetches and applies its detail
// synchronously. Detail failures are absorbed like in the interactive flow.
func (c *Controller) SelectAndLoad(ctx context.Context, title string) (*EnrichedFilm, error) {
	needsFetch, err := c.Select(title)
	if err != nil {
		return nil, err
	}

	if needsFetch {
		detail, err := c.FetchDetail(ctx, title)
		if err != nil {
			c.FailDetail(title, err)
		} else {
			c.ApplyDetail(title, detail)
		}
	}

	return c.selected, nil
}

// State returns the current lifecycle state.
func (c *Controller) State() State { return c.state }

// Films returns the list in its current order.
func (c *Controller) Films() []*EnrichedFilm { return c.films }

// Selected returns the selected film, or nil.
func (c *Controller) Selected() *EnrichedFilm { return c.selected }

// Detail returns the detail currently shown for the selection, or nil.
func (c *Controller) Detail() *Detail { return c.detail }

// Pending reports whether a detail lookup for title is in flight.
func (c *Controller) Pending(title string) bool { return c.pending[title] }

// Err returns the catalog error, if the controller is in the error state.
func (c *Controller) Err() error { return c.err }

func (c *Controller) find(title string) *EnrichedFilm {
	for _, f := range c.films {
		if f.Title == title {
			return f
		}
	}
	return nil
}

func (c *Controller) isSelected(title string) bool {
	return c.selected != nil && c.selected.Title == title
}
