package tasks

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/showtunes/internal/curator"
	"github.com/desertthunder/showtunes/internal/models"
	"github.com/desertthunder/showtunes/internal/services"
	"github.com/desertthunder/showtunes/internal/shared"
	"golang.org/x/time/rate"
)

// defaultSearchRate caps catalog searches per second. An actual 429 from the
// catalog is still surfaced, never retried.
const defaultSearchRate = 10

// GenerationConfig holds the fixed sampling parameters applied to every
// generation call.
type GenerationConfig struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// CuratorEngine orchestrates the generation and fulfillment pipelines.
// Contains dependencies on the generation and catalog providers.
type CuratorEngine struct {
	generator services.Generator
	catalog   services.Catalog
	genConfig GenerationConfig
	limiter   *rate.Limiter
	logger    *log.Logger
}

// NewCuratorEngine creates a new CuratorEngine with the provided services.
func NewCuratorEngine(generator services.Generator, catalog services.Catalog, genConfig GenerationConfig, logger *log.Logger) *CuratorEngine {
	if genConfig.Model == "" {
		genConfig.Model = "gpt-3.5-turbo"
	}
	if genConfig.MaxTokens == 0 {
		genConfig.MaxTokens = 150
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &CuratorEngine{
		generator: generator,
		catalog:   catalog,
		genConfig: genConfig,
		limiter:   rate.NewLimiter(rate.Limit(defaultSearchRate), 1),
		logger:    logger,
	}
}

// SetLogger replaces the engine's logger.
func (e *CuratorEngine) SetLogger(l *log.Logger) {
	if l != nil {
		e.logger = l
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *CuratorEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Generate runs the full generation pipeline for a show title and returns an
// immutable PlaylistResult with at most ten suggestions in generation order.
func (e *CuratorEngine) Generate(ctx context.Context, show, mood string, progress chan<- ProgressUpdate) (*models.PlaylistResult, error) {
	if e.generator == nil {
		return nil, fmt.Errorf("%w: generation service not initialized", shared.ErrServiceUnavailable)
	}

	show = strings.TrimSpace(show)
	if show == "" {
		return nil, fmt.Errorf("%w: show name is required", shared.ErrInvalidInput)
	}

	genre := curator.DetectGenre(show)
	e.sendProgress(progress, ProgressUpdate{Phase: DetectGenre, Step: 1, Total: 1, Message: string(genre), Data: genre})

	system, user, err := curator.BuildPrompt(show, genre)
	if err != nil {
		return nil, err
	}

	e.sendProgress(progress, generateUpdate(show))

	raw, err := e.generator.Complete(ctx, services.GenerationRequest{
		Title:       show,
		Genre:       genre,
		System:      system,
		User:        user,
		Model:       e.genConfig.Model,
		Temperature: e.genConfig.Temperature,
		MaxTokens:   e.genConfig.MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	songs := curator.ParseSuggestions(raw)
	if len(songs) == 0 {
		return nil, fmt.Errorf("%w: generation produced no usable suggestions", shared.ErrProvider)
	}
	e.sendProgress(progress, parseUpdate(len(songs)))

	if mood == "" {
		mood = "mixed"
	}

	return &models.PlaylistResult{
		Show:  show,
		Genre: genre,
		Songs: songs,
		Mood:  mood,
	}, nil
}

// Fulfill materializes a PlaylistResult as a remote playlist.
//
// Per-song search failures and empty results are recorded as "not found" and
// never abort the run; playlist creation and the final batch add are the only
// fatal steps. The created playlist is not rolled back when the batch add
// fails.
func (e *CuratorEngine) Fulfill(ctx context.Context, result *models.PlaylistResult, name, description string, progress chan<- ProgressUpdate) (*models.FulfillmentSummary, error) {
	if e.catalog == nil {
		return nil, fmt.Errorf("%w: catalog service not initialized", shared.ErrServiceUnavailable)
	}
	if result == nil || len(result.Songs) == 0 {
		return nil, fmt.Errorf("%w: nothing to fulfill", shared.ErrInvalidInput)
	}

	if name == "" {
		name = fmt.Sprintf("%s Playlist", result.Show)
	}
	if description == "" {
		description = fmt.Sprintf("Songs inspired by %s (%s)", result.Show, result.Genre)
	}

	e.sendProgress(progress, createPlaylistUpdate(name))

	playlist, err := e.catalog.CreatePlaylist(ctx, name, description)
	if err != nil {
		return nil, fmt.Errorf("failed to create playlist: %w", err)
	}

	matches := e.resolveTracks(ctx, result.Songs, progress)

	uris := make([]string, 0, len(matches))
	found := 0
	for _, match := range matches {
		if match.Found() {
			uris = append(uris, match.Track.URI)
			found++
		}
	}

	if len(uris) > 0 {
		e.sendProgress(progress, addTracksUpdate(len(uris)))
		if err := e.catalog.AddTracksToPlaylist(ctx, playlist.ID, uris); err != nil {
			return nil, fmt.Errorf("failed to add tracks: %w", err)
		}
	}

	summary := &models.FulfillmentSummary{
		PlaylistID:  playlist.ID,
		PlaylistURL: playlist.URL,
		TracksFound: found,
		TotalTracks: len(result.Songs),
	}

	e.sendProgress(progress, doneUpdate(summary.TracksFound, summary.TotalTracks))
	return summary, nil
}

// resolveTracks searches the catalog for every song concurrently. Results
// are written into a fixed-size slice by song index so the output aligns
// with generation order, not completion order.
func (e *CuratorEngine) resolveTracks(ctx context.Context, songs []string, progress chan<- ProgressUpdate) []models.TrackMatch {
	matches := make([]models.TrackMatch, len(songs))

	var wg sync.WaitGroup
	for i, song := range songs {
		parsed := curator.SplitSong(song)
		query := curator.SearchQuery(parsed)
		matches[i] = models.TrackMatch{Query: query}

		e.sendProgress(progress, searchTracksUpdate(i+1, len(songs), query))

		wg.Add(1)
		go func(i int, query string) {
			defer wg.Done()

			if err := e.limiter.Wait(ctx); err != nil {
				return
			}

			tracks, err := e.catalog.SearchTracks(ctx, query, 1)
			if err != nil {
				e.logger.Warn("track search failed", "query", query, "error", err)
				return
			}
			if len(tracks) == 0 {
				return
			}

			matches[i].Track = &tracks[0]
		}(i, query)
	}
	wg.Wait()

	return matches
}
