package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/showtunes/internal/shared"
	"github.com/desertthunder/showtunes/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for playlist creation.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.generator == nil {
		return fmt.Errorf("%w: generation service not initialized", shared.ErrServiceUnavailable)
	}
	if r.catalog == nil {
		return fmt.Errorf("%w: Spotify client not initialized", shared.ErrServiceUnavailable)
	}
	if !r.catalog.IsLoggedIn() {
		return fmt.Errorf("%w: run 'showtunes auth login' first", shared.ErrAuthRequired)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/showtunes-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, r.engine)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
