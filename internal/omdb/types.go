package omdb

// Response represents the subset of the OMDB title lookup response we use
type Response struct {
	Title      string   `json:"Title"`
	Year       string   `json:"Year"`
	Director   string   `json:"Director"`
	Plot       string   `json:"Plot"`
	Poster     string   `json:"Poster"`
	Ratings    []Rating `json:"Ratings"`
	ImdbRating string   `json:"imdbRating"`
	ImdbID     string   `json:"imdbID"`
	Response   string   `json:"Response"` // "True" or "False"
	Error      string   `json:"Error"`    // Present if Response is "False"
}

// Rating represents a rating from a specific source
type Rating struct {
	Source string `json:"Source" yaml:"source"`
	Value  string `json:"Value" yaml:"value"`
}
