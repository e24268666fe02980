package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/showtunes/internal/repositories"
	"github.com/desertthunder/showtunes/internal/services"
	"github.com/desertthunder/showtunes/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	var generator services.Generator
	if config.Credentials.OpenAI.APIKey != "" {
		if client, err := services.NewOpenAIClient(config.Credentials.OpenAI.APIKey, nil, logger); err == nil {
			generator = client
		}
	}

	var catalog services.Catalog
	if config.Credentials.Spotify.ClientID != "" {
		var store services.SessionStore
		if db, err := shared.NewDatabase(config.Database.Path); err == nil {
			shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
			if repo, err := repositories.NewSessionRepository(db); err == nil {
				store = repo
			}
		}

		if client, err := services.NewSpotifyClient(
			config.Credentials.Spotify.ClientID,
			config.Credentials.Spotify.RedirectURI,
			store, nil, logger,
		); err == nil {
			catalog = client
		}
	}

	runner := NewRunner(RunnerOpts{
		Config:    config,
		Generator: generator,
		Catalog:   catalog,
		Logger:    logger,
	})

	app := &cli.Command{
		Name:     "showtunes",
		Usage:    "Turn a TV show into a Spotify playlist",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
