package films

import (
	"context"
	"errors"
	"testing"

	"github.com/lepinkainen/holocron/internal/omdb"
	"github.com/lepinkainen/holocron/internal/swapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	films []swapi.Film
	err   error
	calls int
}

func (f *fakeCatalog) Films(context.Context) ([]swapi.Film, error) {
	f.calls++
	return f.films, f.err
}

type fakeRatings struct {
	responses map[string]*omdb.Response
	errs      map[string]error
	calls     map[string]int
}

func newFakeRatings() *fakeRatings {
	return &fakeRatings{
		responses: map[string]*omdb.Response{},
		errs:      map[string]error{},
		calls:     map[string]int{},
	}
}

func (f *fakeRatings) FetchByTitle(_ context.Context, title string) (*omdb.Response, error) {
	f.calls[title]++
	if err := f.errs[title]; err != nil {
		return nil, err
	}
	return f.responses[title], nil
}

func testCatalog() *fakeCatalog {
	return &fakeCatalog{films: []swapi.Film{
		{Title: "A New Hope", EpisodeID: 4, ReleaseDate: "1977-05-25", Director: "George Lucas"},
		{Title: "The Empire Strikes Back", EpisodeID: 5, ReleaseDate: "1980-05-17", Director: "Irvin Kershner"},
		{Title: "The Phantom Menace", EpisodeID: 1, ReleaseDate: "1999-05-19", Director: "George Lucas"},
	}}
}

func loadedController(t *testing.T, ratings *fakeRatings) *Controller {
	t.Helper()
	c := New(testCatalog(), ratings)
	require.NoError(t, c.Load(context.Background()))
	return c
}

func TestNewStartsLoading(t *testing.T) {
	c := New(testCatalog(), newFakeRatings())
	assert.Equal(t, StateLoadingList, c.State())
	assert.Empty(t, c.Films())
	assert.Nil(t, c.Selected())
}

func TestLoadSuccess(t *testing.T) {
	c := loadedController(t, newFakeRatings())

	assert.Equal(t, StateListReady, c.State())
	require.Len(t, c.Films(), 3)
	for _, f := range c.Films() {
		assert.Zero(t, f.AverageRating)
		assert.False(t, f.HasDetail())
	}
	assert.NoError(t, c.Err())
}

func TestLoadFailureSurfacesError(t *testing.T) {
	catalog := &fakeCatalog{err: errors.New("connection refused")}
	c := New(catalog, newFakeRatings())

	err := c.Load(context.Background())
	require.Error(t, err)

	assert.Equal(t, StateError, c.State())
	assert.Empty(t, c.Films())
	assert.Contains(t, err.Error(), ErrLoadFilms)
	assert.ErrorIs(t, c.Err(), catalog.err)
}

func TestSelectFetchesDetailOnce(t *testing.T) {
	ratings := newFakeRatings()
	ratings.responses["A New Hope"] = &omdb.Response{
		Response: "True",
		Poster:   "https://example.test/anh.jpg",
		Ratings: []omdb.Rating{
			{Source: "Internet Movie Database", Value: "8.6/10"},
			{Source: "Rotten Tomatoes", Value: "93%"},
			{Source: "Metacritic", Value: "90/100"},
		},
	}
	c := loadedController(t, ratings)
	ctx := context.Background()

	film, err := c.SelectAndLoad(ctx, "A New Hope")
	require.NoError(t, err)
	require.NotNil(t, film)
	assert.Equal(t, StateDetailReady, c.State())
	assert.Equal(t, 9.0, film.AverageRating)
	require.NotNil(t, c.Detail())
	assert.Equal(t, "https://example.test/anh.jpg", c.Detail().Poster)

	// Select another film then come back: cached, no second call.
	_, err = c.SelectAndLoad(ctx, "The Phantom Menace")
	require.NoError(t, err)
	_, err = c.SelectAndLoad(ctx, "A New Hope")
	require.NoError(t, err)

	assert.Equal(t, 1, ratings.calls["A New Hope"])
	assert.Equal(t, StateDetailReady, c.State())
	assert.Equal(t, 9.0, c.Detail().AverageRating)
}

func TestSelectCachedSkipsFetch(t *testing.T) {
	c := loadedController(t, newFakeRatings())
	c.ApplyDetail("The Empire Strikes Back", &Detail{AverageRating: 8.8})

	needsFetch, err := c.Select("The Empire Strikes Back")
	require.NoError(t, err)
	assert.False(t, needsFetch)
	assert.Equal(t, StateDetailReady, c.State())
	assert.Equal(t, 8.8, c.Detail().AverageRating)
}

func TestSelectUnknownTitle(t *testing.T) {
	c := loadedController(t, newFakeRatings())

	_, err := c.Select("Rogue One")
	require.Error(t, err)
	assert.Equal(t, StateListReady, c.State())
	assert.Nil(t, c.Selected())
}

func TestSelectionSharesListEntry(t *testing.T) {
	c := loadedController(t, newFakeRatings())

	needsFetch, err := c.Select("A New Hope")
	require.NoError(t, err)
	require.True(t, needsFetch)
	assert.Equal(t, StateDetailLoading, c.State())

	c.ApplyDetail("A New Hope", &Detail{AverageRating: 8.1})

	var listEntry *EnrichedFilm
	for _, f := range c.Films() {
		if f.Title == "A New Hope" {
			listEntry = f
		}
	}
	require.NotNil(t, listEntry)
	assert.Same(t, listEntry, c.Selected())
	assert.Equal(t, 8.1, c.Selected().AverageRating)
}

func TestStaleDetailDoesNotOverwriteSelection(t *testing.T) {
	c := loadedController(t, newFakeRatings())

	_, err := c.Select("A New Hope")
	require.NoError(t, err)
	_, err = c.Select("The Empire Strikes Back")
	require.NoError(t, err)

	// The first lookup resolves after the user moved on.
	c.ApplyDetail("A New Hope", &Detail{AverageRating: 8.5})

	assert.Equal(t, "The Empire Strikes Back", c.Selected().Title)
	assert.Equal(t, StateDetailLoading, c.State())
	assert.Nil(t, c.Detail())
	assert.Zero(t, c.Selected().AverageRating)

	// But the list entry still got cached.
	needsFetch, err := c.Select("A New Hope")
	require.NoError(t, err)
	assert.False(t, needsFetch)
	assert.Equal(t, 8.5, c.Detail().AverageRating)
}

func TestDetailFailureClearsViewWithoutCaching(t *testing.T) {
	ratings := newFakeRatings()
	ratings.errs["A New Hope"] = errors.New("timeout")
	c := loadedController(t, ratings)
	ctx := context.Background()

	film, err := c.SelectAndLoad(ctx, "A New Hope")
	require.NoError(t, err)
	assert.Equal(t, StateDetailReady, c.State())
	assert.Nil(t, c.Detail())
	assert.False(t, film.HasDetail())

	// List interaction still works.
	_, err = c.SelectAndLoad(ctx, "The Phantom Menace")
	require.NoError(t, err)

	// Failure was not cached, so reselection tries again.
	_, err = c.SelectAndLoad(ctx, "A New Hope")
	require.NoError(t, err)
	assert.Equal(t, 2, ratings.calls["A New Hope"])
}

func TestDetailNotFoundClearsView(t *testing.T) {
	ratings := newFakeRatings()
	c := loadedController(t, ratings)

	film, err := c.SelectAndLoad(context.Background(), "The Phantom Menace")
	require.NoError(t, err)
	assert.Equal(t, StateDetailReady, c.State())
	assert.Nil(t, c.Detail())
	assert.Zero(t, film.AverageRating)
}

func TestFetchDetailDoesNotMutateState(t *testing.T) {
	ratings := newFakeRatings()
	ratings.responses["A New Hope"] = &omdb.Response{
		Response: "True",
		Ratings:  []omdb.Rating{{Source: "Rotten Tomatoes", Value: "89%"}},
	}
	c := loadedController(t, ratings)

	detail, err := c.FetchDetail(context.Background(), "A New Hope")
	require.NoError(t, err)
	require.NotNil(t, detail)
	assert.Equal(t, 8.9, detail.AverageRating)

	assert.Equal(t, StateListReady, c.State())
	assert.False(t, c.Films()[0].HasDetail())
}

func TestLoadResetsSelection(t *testing.T) {
	c := loadedController(t, newFakeRatings())
	_, err := c.Select("A New Hope")
	require.NoError(t, err)

	require.NoError(t, c.Load(context.Background()))
	assert.Nil(t, c.Selected())
	assert.Equal(t, StateListReady, c.State())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "loading-list", StateLoadingList.String())
	assert.Equal(t, "list-ready", StateListReady.String())
	assert.Equal(t, "detail-loading", StateDetailLoading.String())
	assert.Equal(t, "detail-ready", StateDetailReady.String())
	assert.Equal(t, "error", StateError.String())
	assert.Equal(t, "unknown", State(42).String())
}

func TestLookupDetailWithoutSource(t *testing.T) {
	_, err := LookupDetail(context.Background(), nil, "A New Hope")
	require.Error(t, err)
}

func TestReselectWhileLookupInFlight(t *testing.T) {
	c := loadedController(t, newFakeRatings())

	needsFetch, err := c.Select("A New Hope")
	require.NoError(t, err)
	require.True(t, needsFetch)
	assert.True(t, c.Pending("A New Hope"))

	needsFetch, err = c.Select("A New Hope")
	require.NoError(t, err)
	assert.False(t, needsFetch)
	assert.Equal(t, StateDetailLoading, c.State())

	// Moving away and back before the lookup resolves does not refetch.
	needsFetch, err = c.Select("The Empire Strikes Back")
	require.NoError(t, err)
	assert.True(t, needsFetch)
	needsFetch, err = c.Select("A New Hope")
	require.NoError(t, err)
	assert.False(t, needsFetch)
	assert.Equal(t, StateDetailLoading, c.State())
	assert.Nil(t, c.Detail())

	c.ApplyDetail("A New Hope", &Detail{AverageRating: 8.7})
	assert.False(t, c.Pending("A New Hope"))
	assert.True(t, c.Pending("The Empire Strikes Back"))
	assert.Equal(t, StateDetailReady, c.State())
	assert.Equal(t, 8.7, c.Detail().AverageRating)
}

func TestFailedLookupCanBeRetried(t *testing.T) {
	c := loadedController(t, newFakeRatings())

	needsFetch, err := c.Select("A New Hope")
	require.NoError(t, err)
	require.True(t, needsFetch)

	c.FailDetail("A New Hope", errors.New("timeout"))
	assert.False(t, c.Pending("A New Hope"))

	needsFetch, err = c.Select("A New Hope")
	require.NoError(t, err)
	assert.True(t, needsFetch)
}
