package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/lepinkainen/holocron/internal/config"
	"github.com/lepinkainen/holocron/internal/films"
	"github.com/lepinkainen/holocron/internal/tui"
	"github.com/mattn/go-isatty"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	runBrowser = tui.Browse
	isTerminal = func(fd uintptr) bool {
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
)

// BrowseCmd runs the interactive film browser
type BrowseCmd struct{}

func (b *BrowseCmd) Run() error {
	if !isTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("browse needs an interactive terminal; use 'holocron list' instead")
	}

	ratings, err := newRatings()
	if err != nil {
		return err
	}

	// The browser owns the terminal, so logs go to a rotating file instead.
	logFile := &lumberjack.Logger{
		Filename:   config.LogFile,
		MaxSize:    5, // megabytes
		MaxBackups: 2,
		MaxAge:     14, // days
	}
	defer func() { _ = logFile.Close() }()
	initLogging(logFile, logLevel)
	// Errors returned from here are reported on the terminal again.
	defer initLogging(os.Stdout, logLevel)

	slog.Info("Starting film browser", "catalog", config.CatalogURL)

	return runBrowser(context.Background(), films.New(newCatalog(), ratings))
}
