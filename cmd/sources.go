package cmd

import (
	"github.com/lepinkainen/holocron/internal/config"
	"github.com/lepinkainen/holocron/internal/films"
	"github.com/lepinkainen/holocron/internal/omdb"
	"github.com/lepinkainen/holocron/internal/swapi"
)

// Source constructors are variables so tests can swap in fakes.
var (
	newCatalog = func() films.CatalogSource {
		return swapi.NewClient(
			swapi.WithBaseURL(config.CatalogURL),
			swapi.WithTimeout(config.HTTPTimeout),
		)
	}

	newRatings = func() (films.RatingSource, error) {
		client, err := omdb.NewClient(config.OMDBAPIKey,
			omdb.WithBaseURL(config.OMDBURL),
			omdb.WithTimeout(config.HTTPTimeout),
		)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
)
