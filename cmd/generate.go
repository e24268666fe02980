package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/showtunes/internal/curator"
	"github.com/desertthunder/showtunes/internal/formatter"
	"github.com/desertthunder/showtunes/internal/shared"
	"github.com/urfave/cli/v3"
)

// Generate runs the generation pipeline and prints the song list.
func (r *Runner) Generate(ctx context.Context, cmd *cli.Command) error {
	show := cmd.StringArg("show")
	mood := cmd.String("mood")
	format := cmd.String("format")
	pretty := cmd.Bool("pretty")
	outputFile := cmd.String("output")

	if show == "" {
		return fmt.Errorf("%w: show title", shared.ErrMissingArgument)
	}
	if r.generator == nil {
		return fmt.Errorf("%w: generation service not initialized, set openai.api_key in config.toml", shared.ErrServiceUnavailable)
	}

	r.logger.Infof("generating song list for %v", show)

	if format == "text" || format == "" {
		estimate := curator.EstimateCost(show)
		r.writePlain("Estimated cost: $%.4f (%d tokens)\n\n", estimate.EstimatedCost, estimate.EstimatedTokens)
	}

	result, err := r.engine.Generate(ctx, show, mood, nil)
	if err != nil {
		return err
	}

	var data []byte
	switch format {
	case "json":
		data, err = shared.MarshalJSON(result, pretty)
	case "markdown", "md":
		data, err = formatter.ExportToMarkdown(result)
	case "csv":
		data, err = formatter.ExportToCSV(result)
	case "text", "":
		data, err = formatter.ExportToText(result)
	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}
	if err != nil {
		return err
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, data, 0644); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
		r.writePlain("✓ Song list written to %s\n", outputFile)
		return nil
	}

	return r.writePlain("%s", string(data))
}

// Estimate prints the projected cost of a single generation call.
func (r *Runner) Estimate(ctx context.Context, cmd *cli.Command) error {
	estimate := curator.EstimateCost(cmd.StringArg("show"))

	if cmd.Bool("json") {
		return r.writeJSON(estimate, true)
	}

	r.writePlain("Estimated tokens: %d\n", estimate.EstimatedTokens)
	r.writePlain("Estimated cost:   $%.4f\n", estimate.EstimatedCost)
	return nil
}
