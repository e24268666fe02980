// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// generateCommand generates a song list for a show without touching Spotify
func generateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "generate",
		Aliases: []string{"gen"},
		Usage:   "Generate a song list for a TV show",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "show"},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "mood",
				Usage: "Mood label attached to the result",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format (text, json, markdown, csv)",
				Value:   "text",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print JSON output",
				Value: true,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write output to a file instead of stdout",
			},
		},
		Action: r.Generate,
	}
}

// estimateCommand reports the projected cost of a generation call
func estimateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "estimate",
		Usage: "Estimate the token cost of generating a playlist",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "show"},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Estimate,
	}
}

// authCommand handles Spotify authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage Spotify authentication",
		Commands: []*cli.Command{
			{
				Name:   "login",
				Usage:  "Authenticate with Spotify in the browser",
				Action: r.AuthLogin,
			},
			{
				Name:   "status",
				Usage:  "Check current authentication state",
				Action: r.AuthStatus,
			},
			{
				Name:   "logout",
				Usage:  "Discard the stored Spotify session",
				Action: r.AuthLogout,
			},
		},
	}
}

// fulfillCommand runs the full pipeline: generate, then create the playlist on Spotify
func fulfillCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "fulfill",
		Aliases: []string{"create"},
		Usage:   "Generate a song list and create it as a Spotify playlist",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "show"},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "mood",
				Usage: "Mood label attached to the result",
			},
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "Playlist name (defaults to \"<show> Playlist\")",
			},
			&cli.StringFlag{
				Name:    "description",
				Aliases: []string{"d"},
				Usage:   "Playlist description",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output the summary as JSON",
			},
		},
		Action: r.Fulfill,
	}
}

// serveCommand starts the playlist generation web service
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the HTTP API server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to bind to (overrides config)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on (overrides config)",
			},
		},
		Action: r.Serve,
	}
}

// setupCommand handles configuration and database initialization
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and the session database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// tuiCommand returns the top-level TUI command for interactive playlist creation.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for playlist creation",
		Action:  r.TUI,
	}
}
