package cmd

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/holocron/internal/config"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"
)

// CLI represents the complete command structure for the holocron application
type CLI struct {
	// Global flags
	Debug      bool   `help:"Enable debug logging"`
	APIKey     string `name:"api-key" help:"OMDB API key (overrides omdb.api_key / OMDB_API_KEY)"`
	CatalogURL string `name:"catalog-url" help:"Base URL of the film catalog API"`
	OMDBURL    string `name:"omdb-url" help:"Base URL of the OMDB API"`
	LogFile    string `name:"log-file" help:"Log file used while the interactive browser is running"`

	Browse BrowseCmd `cmd:"" default:"1" help:"Browse films interactively (default)"`
	List   ListCmd   `cmd:"" help:"Print the film list"`
	Rate   RateCmd   `cmd:"" help:"Fetch and average the ratings for a single title"`
}

// Execute runs the Kong-based CLI
func Execute() {
	initLogging(os.Stdout, slog.LevelInfo)
	initConfig()

	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("holocron"),
		kong.Description("Browse the Star Wars film catalog with normalized critic ratings."),
		kong.UsageOnError(),
	)

	updateGlobalConfig(&cli)

	if cli.Debug {
		initLogging(os.Stdout, slog.LevelDebug)
	}

	err := ctx.Run()
	if err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig() {
	config.SetDefaults()

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	if err := viper.BindEnv("omdb.api_key", "OMDB_API_KEY"); err != nil {
		slog.Error("Failed to bind environment variable", "error", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	// The config file is optional; everything has a default or an env var.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Debug("Config file not found, using defaults and environment")
		} else {
			slog.Error("Fatal error config file", "error", err)
			os.Exit(1)
		}
	}

	config.InitConfig()
}

func updateGlobalConfig(cli *CLI) {
	if cli.CatalogURL != "" {
		viper.Set("catalog.url", cli.CatalogURL)
	}
	if cli.OMDBURL != "" {
		viper.Set("omdb.url", cli.OMDBURL)
	}
	if cli.LogFile != "" {
		viper.Set("log.file", cli.LogFile)
	}

	config.InitConfig()
	config.SetOMDBAPIKey(cli.APIKey)
}

var logLevel slog.Level = slog.LevelInfo

func initLogging(w io.Writer, level slog.Level) {
	logLevel = level

	handler := humanlog.NewHandler(w, &humanlog.Options{
		Level: level,
	})

	slog.SetDefault(slog.New(handler))
}
