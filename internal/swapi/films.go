package swapi

import (
	"context"
	"fmt"
	"log/slog"
)

// Films fetches the complete film list from the catalog.
func (c *Client) Films(ctx context.Context) ([]Film, error) {
	endpoint := fmt.Sprintf("%s/films/?format=json", c.baseURL)

	slog.Debug("Fetching film catalog", "url", endpoint)

	var payload filmsResponse
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}

	if payload.Results == nil {
		return []Film{}, nil
	}

	slog.Debug("Fetched film catalog", "count", len(payload.Results))
	return payload.Results, nil
}
