package config

import (
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultCatalogURL  = "https://swapi.dev/api"
	DefaultOMDBURL     = "https://www.omdbapi.com"
	DefaultHTTPTimeout = 10 * time.Second
	DefaultLogFile     = "./holocron.log"
)

// Global configuration variables
var (
	// CatalogURL is the base URL of the film catalog API
	CatalogURL string
	// OMDBURL is the base URL of the OMDB ratings API
	OMDBURL string
	// OMDBAPIKey is the API key for OMDB (Open Movie Database)
	OMDBAPIKey string
	// HTTPTimeout bounds every outgoing request
	HTTPTimeout time.Duration
	// LogFile receives log output while the interactive browser owns the terminal
	LogFile string
)

// SetDefaults registers default values for every known key.
func SetDefaults() {
	viper.SetDefault("catalog.url", DefaultCatalogURL)
	viper.SetDefault("omdb.url", DefaultOMDBURL)
	viper.SetDefault("http.timeout", DefaultHTTPTimeout.String())
	viper.SetDefault("log.file", DefaultLogFile)
}

// InitConfig initializes the global configuration
func InitConfig() {
	SetDefaults()

	CatalogURL = viper.GetString("catalog.url")
	OMDBURL = viper.GetString("omdb.url")
	OMDBAPIKey = viper.GetString("omdb.api_key")
	LogFile = viper.GetString("log.file")

	HTTPTimeout = viper.GetDuration("http.timeout")
	if HTTPTimeout <= 0 {
		HTTPTimeout = DefaultHTTPTimeout
	}
}

// SetOMDBAPIKey overrides the OMDB API key, e.g. from a CLI flag
func SetOMDBAPIKey(key string) {
	if key != "" {
		OMDBAPIKey = key
	}
}
