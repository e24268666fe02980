package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/desertthunder/showtunes/internal/models"
	"github.com/desertthunder/showtunes/internal/services"
	"github.com/desertthunder/showtunes/internal/shared"
)

type mockGenerator struct {
	response    string
	err         error
	callCount   int
	lastRequest services.GenerationRequest
}

func (m *mockGenerator) Complete(ctx context.Context, req services.GenerationRequest) (string, error) {
	m.callCount++
	m.lastRequest = req
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockGenerator) Name() string { return "mock-generator" }

type mockCatalog struct {
	mu sync.Mutex

	loggedIn      bool
	searchResults map[string]*models.Track // query -> match (missing means not found)
	searchErrs    map[string]error
	createErr     error
	addErr        error

	createdName string
	addedURIs   []string
	addCalls    int
	searchCalls int
}

func (m *mockCatalog) IsLoggedIn() bool { return m.loggedIn }

func (m *mockCatalog) BeginLogin() (string, error) { return "", nil }

func (m *mockCatalog) CompleteLogin(state, token string, expiresIn int) error { return nil }

func (m *mockCatalog) Logout() error { return nil }

func (m *mockCatalog) Name() string { return "mock-catalog" }

func (m *mockCatalog) SearchTracks(ctx context.Context, query string, limit int) ([]models.Track, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.searchCalls++
	if err, ok := m.searchErrs[query]; ok {
		return nil, err
	}
	if track, ok := m.searchResults[query]; ok {
		return []models.Track{*track}, nil
	}
	return []models.Track{}, nil
}

func (m *mockCatalog) CreatePlaylist(ctx context.Context, name, description string) (*models.Playlist, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.createdName = name
	return &models.Playlist{ID: "pl1", Name: name, URL: "https://open.spotify.com/playlist/pl1"}, nil
}

func (m *mockCatalog) AddTracksToPlaylist(ctx context.Context, playlistID string, uris []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.addCalls++
	if m.addErr != nil {
		return m.addErr
	}
	m.addedURIs = uris
	return nil
}

func numberedLines(n int) string {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "%d. Song %d - Artist %d\n", i, i, i)
	}
	return b.String()
}

func TestEngineGenerate(t *testing.T) {
	t.Run("Empty Title Rejected Before Provider Call", func(t *testing.T) {
		gen := &mockGenerator{response: "Song - Artist"}
		engine := NewCuratorEngine(gen, nil, GenerationConfig{}, shared.NewLogger(io.Discard))

		_, err := engine.Generate(context.Background(), "   ", "", nil)
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
		if gen.callCount != 0 {
			t.Errorf("expected no provider call, got %d", gen.callCount)
		}
	})

	t.Run("Pipeline Produces Bounded Ordered Result", func(t *testing.T) {
		gen := &mockGenerator{response: numberedLines(12)}
		engine := NewCuratorEngine(gen, nil, GenerationConfig{}, shared.NewLogger(io.Discard))

		result, err := engine.Generate(context.Background(), "Stranger Things", "", nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if result.Show != "Stranger Things" {
			t.Errorf("show = %q", result.Show)
		}
		if result.Genre != models.GenreDefault {
			t.Errorf("expected default genre, got %v", result.Genre)
		}
		if len(result.Songs) != 10 {
			t.Fatalf("expected 10 songs, got %d", len(result.Songs))
		}
		if result.Songs[0] != "Song 1 - Artist 1" || result.Songs[9] != "Song 10 - Artist 10" {
			t.Errorf("order not preserved: %v", result.Songs)
		}
		if result.Mood != "mixed" {
			t.Errorf("expected default mood mixed, got %q", result.Mood)
		}
	})

	t.Run("Request Carries Genre Template And Sampling Config", func(t *testing.T) {
		gen := &mockGenerator{response: "Song - Artist"}
		engine := NewCuratorEngine(gen, nil, GenerationConfig{Model: "gpt-3.5-turbo", Temperature: 0.7, MaxTokens: 150}, shared.NewLogger(io.Discard))

		if _, err := engine.Generate(context.Background(), "A Space Odyssey", "upbeat", nil); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		req := gen.lastRequest
		if req.Genre != models.GenreSciFi {
			t.Errorf("expected scifi genre, got %v", req.Genre)
		}
		if !strings.Contains(req.User, "A Space Odyssey") {
			t.Errorf("expected title in user prompt: %q", req.User)
		}
		if req.Model != "gpt-3.5-turbo" || req.Temperature != 0.7 || req.MaxTokens != 150 {
			t.Errorf("unexpected sampling config: %+v", req)
		}
	})

	t.Run("Provider Error Propagates", func(t *testing.T) {
		gen := &mockGenerator{err: fmt.Errorf("%w: overloaded", shared.ErrProvider)}
		engine := NewCuratorEngine(gen, nil, GenerationConfig{}, shared.NewLogger(io.Discard))

		_, err := engine.Generate(context.Background(), "Breaking Bad", "", nil)
		if !errors.Is(err, shared.ErrProvider) {
			t.Errorf("expected ErrProvider, got %v", err)
		}
	})

	t.Run("Blank Generation Fails", func(t *testing.T) {
		gen := &mockGenerator{response: "\n\n\n"}
		engine := NewCuratorEngine(gen, nil, GenerationConfig{}, shared.NewLogger(io.Discard))

		if _, err := engine.Generate(context.Background(), "Breaking Bad", "", nil); err == nil {
			t.Error("expected error for unusable generation")
		}
	})
}

func TestEngineFulfill(t *testing.T) {
	playlistResult := func(n int) *models.PlaylistResult {
		songs := make([]string, n)
		for i := range songs {
			songs[i] = fmt.Sprintf("Song %d - Artist %d", i+1, i+1)
		}
		return &models.PlaylistResult{Show: "Stranger Things", Genre: models.GenreDefault, Songs: songs}
	}

	// catalogMatching returns a catalog that resolves the first m songs of
	// the fixture and misses the rest.
	catalogMatching := func(m int) *mockCatalog {
		results := map[string]*models.Track{}
		for i := 1; i <= m; i++ {
			query := fmt.Sprintf("Song %d Artist %d", i, i)
			results[query] = &models.Track{URI: fmt.Sprintf("spotify:track:%d", i)}
		}
		return &mockCatalog{loggedIn: true, searchResults: results}
	}

	t.Run("Partial Match Reports Counts", func(t *testing.T) {
		catalog := catalogMatching(7)
		engine := NewCuratorEngine(nil, catalog, GenerationConfig{}, shared.NewLogger(io.Discard))

		summary, err := engine.Fulfill(context.Background(), playlistResult(10), "", "", nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if summary.TracksFound != 7 || summary.TotalTracks != 10 {
			t.Errorf("expected 7/10, got %d/%d", summary.TracksFound, summary.TotalTracks)
		}
		if summary.PlaylistID != "pl1" || summary.PlaylistURL == "" {
			t.Errorf("unexpected summary: %+v", summary)
		}
		if len(catalog.addedURIs) != 7 {
			t.Errorf("expected batch add with 7 uris, got %d", len(catalog.addedURIs))
		}
		if catalog.addCalls != 1 {
			t.Errorf("expected a single batch add, got %d", catalog.addCalls)
		}
	})

	t.Run("Zero Matches Skips Batch Add", func(t *testing.T) {
		catalog := catalogMatching(0)
		engine := NewCuratorEngine(nil, catalog, GenerationConfig{}, shared.NewLogger(io.Discard))

		summary, err := engine.Fulfill(context.Background(), playlistResult(3), "", "", nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if summary.TracksFound != 0 || summary.TotalTracks != 3 {
			t.Errorf("expected 0/3, got %d/%d", summary.TracksFound, summary.TotalTracks)
		}
		if catalog.addCalls != 0 {
			t.Errorf("expected no batch add call, got %d", catalog.addCalls)
		}
	})

	t.Run("Search Failure Is Not Fatal", func(t *testing.T) {
		catalog := catalogMatching(3)
		catalog.searchErrs = map[string]error{
			"Song 2 Artist 2": shared.ErrRateLimited,
		}
		engine := NewCuratorEngine(nil, catalog, GenerationConfig{}, shared.NewLogger(io.Discard))

		summary, err := engine.Fulfill(context.Background(), playlistResult(3), "", "", nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if summary.TracksFound != 2 || summary.TotalTracks != 3 {
			t.Errorf("expected 2/3, got %d/%d", summary.TracksFound, summary.TotalTracks)
		}
	})

	t.Run("Create Failure Is Fatal", func(t *testing.T) {
		catalog := catalogMatching(1)
		catalog.createErr = shared.ErrSessionExpired
		engine := NewCuratorEngine(nil, catalog, GenerationConfig{}, shared.NewLogger(io.Discard))

		_, err := engine.Fulfill(context.Background(), playlistResult(1), "", "", nil)
		if !errors.Is(err, shared.ErrSessionExpired) {
			t.Errorf("expected ErrSessionExpired, got %v", err)
		}
		if catalog.searchCalls != 0 {
			t.Errorf("expected no searches after create failure, got %d", catalog.searchCalls)
		}
	})

	t.Run("Batch Add Failure Is Fatal", func(t *testing.T) {
		catalog := catalogMatching(2)
		catalog.addErr = shared.ErrAPIRequest
		engine := NewCuratorEngine(nil, catalog, GenerationConfig{}, shared.NewLogger(io.Discard))

		_, err := engine.Fulfill(context.Background(), playlistResult(2), "", "", nil)
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})

	t.Run("Default Name Derived From Show", func(t *testing.T) {
		catalog := catalogMatching(1)
		engine := NewCuratorEngine(nil, catalog, GenerationConfig{}, shared.NewLogger(io.Discard))

		if _, err := engine.Fulfill(context.Background(), playlistResult(1), "", "", nil); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if catalog.createdName != "Stranger Things Playlist" {
			t.Errorf("unexpected playlist name %q", catalog.createdName)
		}
	})

	t.Run("Empty Result Rejected", func(t *testing.T) {
		engine := NewCuratorEngine(nil, catalogMatching(0), GenerationConfig{}, shared.NewLogger(io.Discard))

		_, err := engine.Fulfill(context.Background(), &models.PlaylistResult{Show: "X"}, "", "", nil)
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}

// TestEndToEnd exercises the full pipeline: a title with no genre keyword,
// twelve generated lines parsed down to ten, and a catalog matching seven.
func TestEndToEnd(t *testing.T) {
	gen := &mockGenerator{response: numberedLines(12)}

	results := map[string]*models.Track{}
	for i := 1; i <= 7; i++ {
		query := fmt.Sprintf("Song %d Artist %d", i, i)
		results[query] = &models.Track{URI: fmt.Sprintf("spotify:track:%d", i)}
	}
	catalog := &mockCatalog{loggedIn: true, searchResults: results}

	engine := NewCuratorEngine(gen, catalog, GenerationConfig{}, shared.NewLogger(io.Discard))

	result, err := engine.Generate(context.Background(), "Stranger Things", "", nil)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if result.Genre != models.GenreDefault {
		t.Errorf("expected default genre, got %v", result.Genre)
	}
	if len(result.Songs) != 10 {
		t.Fatalf("expected 10 songs, got %d", len(result.Songs))
	}

	summary, err := engine.Fulfill(context.Background(), result, "", "", nil)
	if err != nil {
		t.Fatalf("fulfill failed: %v", err)
	}
	if summary.TracksFound != 7 || summary.TotalTracks != 10 {
		t.Errorf("expected 7/10, got %d/%d", summary.TracksFound, summary.TotalTracks)
	}
}
