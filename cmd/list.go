package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/lepinkainen/holocron/internal/films"
)

// ListCmd prints the film catalog
type ListCmd struct {
	Sort    string `short:"s" help:"Sort order: episode, year, rating" default:"episode" enum:"episode,year,rating"`
	Ratings bool   `short:"r" help:"Fetch and include normalized ratings for every film"`
	Format  string `short:"F" help:"Output format: table, json, yaml" default:"table" enum:"table,json,yaml"`
}

func (l *ListCmd) Run() error {
	key, err := films.ParseSortKey(l.Sort)
	if err != nil {
		return err
	}

	var ratings films.RatingSource
	if l.Ratings {
		if ratings, err = newRatings(); err != nil {
			return err
		}
	}

	ctx := context.Background()
	ctrl := films.New(newCatalog(), ratings)
	if err := ctrl.Load(ctx); err != nil {
		return err
	}

	if l.Ratings {
		for _, f := range ctrl.Films() {
			if _, err := ctrl.SelectAndLoad(ctx, f.Title); err != nil {
				return err
			}
		}
		slog.Debug("Ratings loaded", "count", len(ctrl.Films()))
	}

	ctrl.Sort(key)

	return writeFilms(os.Stdout, l.Format, ctrl.Films(), l.Ratings)
}

// RateCmd looks up the ratings for a single title
type RateCmd struct {
	Title  string `arg:"" help:"Exact film title to look up"`
	Format string `short:"F" help:"Output format: table, json, yaml" default:"table" enum:"table,json,yaml"`
}

func (r *RateCmd) Run() error {
	ratings, err := newRatings()
	if err != nil {
		return err
	}

	detail, err := films.LookupDetail(context.Background(), ratings, r.Title)
	if err != nil {
		return fmt.Errorf("failed to fetch ratings for %q: %w", r.Title, err)
	}
	if detail == nil {
		return fmt.Errorf("no ratings found for %q", r.Title)
	}

	return writeDetail(os.Stdout, r.Format, r.Title, detail)
}
