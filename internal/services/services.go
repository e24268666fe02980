package services

import (
	"context"

	"github.com/desertthunder/showtunes/internal/models"
)

// GenerationRequest carries one prompt to the generation provider. Built
// once, consumed exactly once; the zero value is not valid.
type GenerationRequest struct {
	Title       string       // show title, for validation and logging
	Genre       models.Genre // detected genre, for logging only
	System      string       // system instruction
	User        string       // filled prompt template
	Model       string
	Temperature float64
	MaxTokens   int
}

// Generator defines the interface for the generative text provider.
type Generator interface {
	// Complete sends the request and returns the full generated text.
	// There are no partial results: a call yields text or an error.
	Complete(ctx context.Context, req GenerationRequest) (string, error)

	// Name returns the provider name (e.g. "OpenAI")
	Name() string
}

// Catalog defines the interface for the music catalog and playlist provider.
type Catalog interface {
	// IsLoggedIn reports whether a live session exists. Pure read.
	IsLoggedIn() bool

	// BeginLogin records a fresh anti-forgery state value and returns the
	// provider authorization URL the user agent should visit.
	BeginLogin() (string, error)

	// CompleteLogin verifies the anti-forgery state and installs the access
	// token returned by the provider redirect.
	CompleteLogin(state, accessToken string, expiresIn int) error

	// Logout clears the session unconditionally; idempotent.
	Logout() error

	// SearchTracks returns candidate tracks for a query, best match first.
	// Zero matches is an empty slice, not an error.
	SearchTracks(ctx context.Context, query string, limit int) ([]models.Track, error)

	// CreatePlaylist creates a private playlist under the current user.
	CreatePlaylist(ctx context.Context, name, description string) (*models.Playlist, error)

	// AddTracksToPlaylist appends track URIs to a playlist in one call.
	AddTracksToPlaylist(ctx context.Context, playlistID string, uris []string) error

	// Name returns the provider name (e.g. "Spotify")
	Name() string
}
