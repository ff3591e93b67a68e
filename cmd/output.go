package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/lepinkainen/holocron/internal/films"
	"gopkg.in/yaml.v3"
)

type ratedTitle struct {
	Title        string `json:"title" yaml:"title"`
	films.Detail `yaml:",inline"`
}

func writeFilms(w io.Writer, format string, list []*films.EnrichedFilm, withRatings bool) error {
	switch format {
	case "json":
		return writeJSON(w, list)
	case "yaml":
		return writeYAML(w, list)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if withRatings {
		_, _ = fmt.Fprintln(tw, "EPISODE\tTITLE\tRELEASED\tDIRECTOR\tRATING")
	} else {
		_, _ = fmt.Fprintln(tw, "EPISODE\tTITLE\tRELEASED\tDIRECTOR")
	}
	for _, f := range list {
		if withRatings {
			_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", f.EpisodeID, f.Title, f.ReleaseDate, f.Director, formatRating(f))
		} else {
			_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", f.EpisodeID, f.Title, f.ReleaseDate, f.Director)
		}
	}
	return tw.Flush()
}

func writeDetail(w io.Writer, format, title string, detail *films.Detail) error {
	switch format {
	case "json":
		return writeJSON(w, ratedTitle{Title: title, Detail: *detail})
	case "yaml":
		return writeYAML(w, ratedTitle{Title: title, Detail: *detail})
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "Title:\t%s\n", title)
	if detail.Poster != "" && detail.Poster != "N/A" {
		_, _ = fmt.Fprintf(tw, "Poster:\t%s\n", detail.Poster)
	}
	for _, r := range detail.Ratings {
		_, _ = fmt.Fprintf(tw, "%s:\t%s\n", r.Source, r.Value)
	}
	_, _ = fmt.Fprintf(tw, "Average Rating:\t%.1f / 10\n", detail.AverageRating)
	return tw.Flush()
}

func formatRating(f *films.EnrichedFilm) string {
	if !f.HasDetail() {
		return "-"
	}
	return fmt.Sprintf("%.1f", f.AverageRating)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}
