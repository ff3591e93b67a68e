package testutil

import (
	"testing"
	"time"

	"github.com/lepinkainen/holocron/internal/config"
	"github.com/spf13/viper"
)

// ConfigState holds the state of the config package variables.
type ConfigState struct {
	CatalogURL  string
	OMDBURL     string
	OMDBAPIKey  string
	HTTPTimeout time.Duration
	LogFile     string
}

// SaveConfigState captures the current state of config package variables.
func SaveConfigState() ConfigState {
	return ConfigState{
		CatalogURL:  config.CatalogURL,
		OMDBURL:     config.OMDBURL,
		OMDBAPIKey:  config.OMDBAPIKey,
		HTTPTimeout: config.HTTPTimeout,
		LogFile:     config.LogFile,
	}
}

// RestoreConfigState restores the config package variables to a saved state.
func RestoreConfigState(state ConfigState) {
	config.CatalogURL = state.CatalogURL
	config.OMDBURL = state.OMDBURL
	config.OMDBAPIKey = state.OMDBAPIKey
	config.HTTPTimeout = state.HTTPTimeout
	config.LogFile = state.LogFile
}

// ResetConfig saves the current config state and schedules restoration
// when the test completes. It also resets viper.
func ResetConfig(t *testing.T) {
	t.Helper()

	state := SaveConfigState()
	viper.Reset()

	t.Cleanup(func() {
		RestoreConfigState(state)
		viper.Reset()
	})
}

// SetTestConfigOption is a functional option for configuring test config.
type SetTestConfigOption func(*ConfigState)

// WithCatalogURL points the catalog client at a test server.
func WithCatalogURL(url string) SetTestConfigOption {
	return func(s *ConfigState) {
		s.CatalogURL = url
	}
}

// WithOMDBURL points the ratings client at a test server.
func WithOMDBURL(url string) SetTestConfigOption {
	return func(s *ConfigState) {
		s.OMDBURL = url
	}
}

// WithOMDBAPIKey sets the OMDB API key.
func WithOMDBAPIKey(key string) SetTestConfigOption {
	return func(s *ConfigState) {
		s.OMDBAPIKey = key
	}
}

// SetTestConfig installs a test configuration with defaults plus opts.
// The previous state is restored when the test completes.
func SetTestConfig(t *testing.T, opts ...SetTestConfigOption) {
	t.Helper()

	ResetConfig(t)

	state := ConfigState{
		CatalogURL:  config.DefaultCatalogURL,
		OMDBURL:     config.DefaultOMDBURL,
		OMDBAPIKey:  "test-omdb-key",
		HTTPTimeout: 2 * time.Second,
		LogFile:     config.DefaultLogFile,
	}
	for _, opt := range opts {
		opt(&state)
	}

	RestoreConfigState(state)
}
