package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/showtunes/internal/formatter"
	"github.com/desertthunder/showtunes/internal/shared"
	"github.com/desertthunder/showtunes/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Fulfill generates a song list and creates it as a Spotify playlist.
func (r *Runner) Fulfill(ctx context.Context, cmd *cli.Command) error {
	show := cmd.StringArg("show")
	mood := cmd.String("mood")
	name := cmd.String("name")
	description := cmd.String("description")
	useJSON := cmd.Bool("json")

	if show == "" {
		return fmt.Errorf("%w: show title", shared.ErrMissingArgument)
	}
	if r.generator == nil {
		return fmt.Errorf("%w: generation service not initialized, set openai.api_key in config.toml", shared.ErrServiceUnavailable)
	}
	if r.catalog == nil {
		return fmt.Errorf("%w: Spotify client not initialized, set spotify.client_id in config.toml", shared.ErrServiceUnavailable)
	}
	if !r.catalog.IsLoggedIn() {
		return fmt.Errorf("%w: run 'showtunes auth login' first", shared.ErrAuthRequired)
	}

	progress := make(chan tasks.ProgressUpdate, 50)
	progressDone := make(chan struct{})
	go func() {
		defer close(progressDone)
		for update := range progress {
			if update.Total > 0 {
				r.writePlain("  [%s] %s (%d/%d)\n", update.Phase, update.Message, update.Step, update.Total)
			} else {
				r.writePlain("  [%s] %s\n", update.Phase, update.Message)
			}
		}
	}()

	r.writePlain("→ Generating song list for '%s'...\n", show)

	result, err := r.engine.Generate(ctx, show, mood, progress)
	if err != nil {
		close(progress)
		<-progressDone
		return err
	}

	r.writePlain("→ Creating playlist (%d songs, genre: %s)...\n", len(result.Songs), result.Genre)

	summary, err := r.engine.Fulfill(ctx, result, name, description, progress)
	close(progress)
	<-progressDone
	if err != nil {
		return err
	}

	if useJSON {
		return r.writeJSON(summary, true)
	}

	r.writePlainln("✓ Playlist created")
	return r.writePlain("%s", string(formatter.SummaryToText(summary)))
}
