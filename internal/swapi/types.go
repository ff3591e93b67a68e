package swapi

// Film is a single catalog entry as returned by the films endpoint.
type Film struct {
	Title        string `json:"title" yaml:"title"`
	EpisodeID    int    `json:"episode_id" yaml:"episode_id"`
	ReleaseDate  string `json:"release_date" yaml:"release_date"`
	Director     string `json:"director" yaml:"director"`
	Producer     string `json:"producer,omitempty" yaml:"producer,omitempty"`
	OpeningCrawl string `json:"opening_crawl,omitempty" yaml:"opening_crawl,omitempty"`
}

type filmsResponse struct {
	Count   int    `json:"count"`
	Results []Film `json:"results"`
}
