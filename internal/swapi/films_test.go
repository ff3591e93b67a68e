package swapi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lepinkainen/holocron/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const filmsPayload = `{
	"count": 2,
	"results": [
		{
			"title": "A New Hope",
			"episode_id": 4,
			"opening_crawl": "It is a period of civil war.",
			"director": "George Lucas",
			"producer": "Gary Kurtz, Rick McCallum",
			"release_date": "1977-05-25"
		},
		{
			"title": "The Empire Strikes Back",
			"episode_id": 5,
			"director": "Irvin Kershner",
			"release_date": "1980-05-17"
		}
	]
}`

func TestFilmsDecodesResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/films/", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(filmsPayload))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL+"/"), WithHTTPClient(server.Client()))

	films, err := client.Films(context.Background())
	require.NoError(t, err)
	require.Len(t, films, 2)

	assert.Equal(t, Film{
		Title:        "A New Hope",
		EpisodeID:    4,
		ReleaseDate:  "1977-05-25",
		Director:     "George Lucas",
		Producer:     "Gary Kurtz, Rick McCallum",
		OpeningCrawl: "It is a period of civil war.",
	}, films[0])
	assert.Equal(t, 5, films[1].EpisodeID)
	assert.Equal(t, "Irvin Kershner", films[1].Director)
}

func TestFilmsEmptyResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"count":0}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithHTTPClient(server.Client()))

	films, err := client.Films(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, films)
	assert.Empty(t, films)
}

func TestFilmsStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("oops"))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithHTTPClient(server.Client()))

	films, err := client.Films(context.Background())
	require.Error(t, err)
	assert.Nil(t, films)
	assert.Contains(t, err.Error(), "unexpected status 500")

	apiErr, ok := errors.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}

func TestFilmsMalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results": [`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithHTTPClient(server.Client()))

	_, err := client.Films(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}

type failingDoer struct {
	calls int
}

func (f *failingDoer) Do(*http.Request) (*http.Response, error) {
	f.calls++
	return nil, io.ErrUnexpectedEOF
}

func TestFilmsTransportErrorIsNotRetried(t *testing.T) {
	doer := &failingDoer{}
	client := NewClient(WithHTTPClient(doer))

	_, err := client.Films(context.Background())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "failed to fetch data"))
	assert.Equal(t, 1, doer.calls)
}

func TestClientOptions(t *testing.T) {
	client := NewClient(WithBaseURL(""), WithHTTPClient(nil), WithTimeout(0))
	assert.Equal(t, defaultBaseURL, client.baseURL)
	assert.NotNil(t, client.httpClient)

	client = NewClient(WithTimeout(2 * time.Second))
	httpClient, ok := client.httpClient.(*http.Client)
	require.True(t, ok)
	assert.Equal(t, 2*time.Second, httpClient.Timeout)
}
