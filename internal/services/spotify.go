// Spotify Web API implementation of [Catalog]
//
// Response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/showtunes/internal/models"
	"github.com/desertthunder/showtunes/internal/shared"
	"golang.org/x/oauth2"
)

const (
	spotifyAuthURL = "https://accounts.spotify.com/authorize"
	spotifyBaseURL = "https://api.spotify.com/v1"

	// defaultTokenLifetime is assumed when the redirect omits expires_in.
	defaultTokenLifetime = 3600
)

// scopes required for playlist creation and track addition.
var spotifyScopes = []string{
	"playlist-read-private",
	"playlist-modify-private",
	"playlist-modify-public",
	"user-read-private",
}

// SpotifyUser represents the current user profile.
type SpotifyUser struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

type externalURLs struct {
	Spotify string `json:"spotify"`
}

// spotifyTrack represents a Spotify track.
type spotifyTrack struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Artists []struct {
		Name string `json:"name"`
	} `json:"artists"`
	Album struct {
		Name string `json:"name"`
	} `json:"album"`
	URI string `json:"uri"`
}

type searchResponse struct {
	Tracks struct {
		Items []spotifyTrack `json:"items"`
	} `json:"tracks"`
}

// spotifyPlaylist represents a created playlist.
type spotifyPlaylist struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Public       bool         `json:"public"`
	ExternalURLs externalURLs `json:"external_urls"`
}

type spotifyError struct {
	Error struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

// SpotifyClient implements [Catalog] for the Spotify Web API using the
// implicit grant flow. It is the sole owner of its AuthSession; concurrent
// calls read the same token, and only the 401 path and Logout write it.
type SpotifyClient struct {
	config     *oauth2.Config
	baseURL    string
	httpClient *http.Client
	store      SessionStore
	logger     *log.Logger

	mu      sync.Mutex
	session *AuthSession
	now     func() time.Time
}

// NewSpotifyClient creates a Spotify client. When store holds a persisted
// session it is restored so logins survive process restarts.
func NewSpotifyClient(clientID, redirectURI string, store SessionStore, httpClient *http.Client, logger *log.Logger) (*SpotifyClient, error) {
	if clientID == "" {
		return nil, fmt.Errorf("%w: missing Spotify client_id", shared.ErrMissingCredentials)
	}
	if redirectURI == "" {
		redirectURI = "http://localhost:8080/callback"
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	client := &SpotifyClient{
		config: &oauth2.Config{
			ClientID:    clientID,
			RedirectURL: redirectURI,
			Scopes:      spotifyScopes,
			Endpoint:    oauth2.Endpoint{AuthURL: spotifyAuthURL},
		},
		baseURL:    spotifyBaseURL,
		httpClient: httpClient,
		store:      store,
		logger:     logger,
		session:    &AuthSession{Phase: LoggedOut},
		now:        time.Now,
	}

	if store != nil {
		if persisted, err := store.Load(); err != nil {
			logger.Warn("failed to load persisted session", "error", err)
		} else if persisted != nil {
			client.session = persisted
		}
	}

	return client, nil
}

func (s *SpotifyClient) Name() string {
	return "Spotify"
}

// IsLoggedIn reports whether a token is present and unexpired.
func (s *SpotifyClient) IsLoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Live(s.now())
}

// BeginLogin generates a fresh anti-forgery state value, records it, and
// returns the implicit-flow authorization URL. The session moves to
// PendingRedirect; login can only be retried by calling BeginLogin again.
func (s *SpotifyClient) BeginLogin() (string, error) {
	state := shared.GenerateID()

	s.mu.Lock()
	s.session = &AuthSession{Phase: PendingRedirect, OAuthState: state}
	if err := s.persistLocked(); err != nil {
		s.mu.Unlock()
		return "", err
	}
	s.mu.Unlock()

	return s.config.AuthCodeURL(state, oauth2.SetAuthURLParam("response_type", "token")), nil
}

// CompleteLogin installs the token returned in the redirect fragment after
// verifying the anti-forgery state recorded by BeginLogin.
func (s *SpotifyClient) CompleteLogin(state, accessToken string, expiresIn int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session.Phase != PendingRedirect {
		return fmt.Errorf("%w: no login in progress", shared.ErrAuthFailed)
	}
	if state == "" || state != s.session.OAuthState {
		return fmt.Errorf("%w: state mismatch", shared.ErrAuthFailed)
	}
	if accessToken == "" {
		return fmt.Errorf("%w: redirect carried no access token", shared.ErrAuthFailed)
	}

	if expiresIn <= 0 {
		expiresIn = defaultTokenLifetime
	}

	s.session = &AuthSession{
		AccessToken: accessToken,
		Expiry:      s.now().Add(time.Duration(expiresIn) * time.Second),
		Phase:       LoggedIn,
	}
	return s.persistLocked()
}

// Logout clears the session unconditionally. Idempotent.
func (s *SpotifyClient) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logoutLocked()
}

func (s *SpotifyClient) logoutLocked() error {
	s.session = &AuthSession{Phase: LoggedOut}
	if s.store != nil {
		if err := s.store.Clear(); err != nil {
			return fmt.Errorf("failed to clear persisted session: %w", err)
		}
	}
	return nil
}

func (s *SpotifyClient) persistLocked() error {
	if s.store == nil {
		return nil
	}
	if err := s.store.Save(s.session); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

// Request is the sole authenticated transport primitive. It fails without a
// network call when no live session exists, surfaces 429 as a rate-limit
// error (never retried here), and force-logs-out on 401.
func (s *SpotifyClient) Request(ctx context.Context, method, endpoint string, body, result any) error {
	s.mu.Lock()
	if !s.session.Live(s.now()) {
		s.mu.Unlock()
		return fmt.Errorf("%w: log in with Spotify first", shared.ErrAuthRequired)
	}
	token := s.session.AccessToken
	s.mu.Unlock()

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrConnectivity, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			return fmt.Errorf("%w: retry after %s seconds", shared.ErrRateLimited, retryAfter)
		}
		return shared.ErrRateLimited

	case resp.StatusCode == http.StatusUnauthorized:
		s.mu.Lock()
		if err := s.logoutLocked(); err != nil {
			s.logger.Warn("failed to clear session after 401", "error", err)
		}
		s.mu.Unlock()
		return fmt.Errorf("%w: log in with Spotify again", shared.ErrSessionExpired)

	case resp.StatusCode == http.StatusNoContent:
		return nil

	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		respBody, _ := io.ReadAll(resp.Body)
		var errPayload spotifyError
		if json.Unmarshal(respBody, &errPayload) == nil && errPayload.Error.Message != "" {
			return fmt.Errorf("%w: %s", shared.ErrAPIRequest, errPayload.Error.Message)
		}
		return fmt.Errorf("%w: %s", shared.ErrAPIRequest, resp.Status)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// SearchTracks searches the catalog for tracks matching query. An empty
// result is a valid outcome, not an error.
func (s *SpotifyClient) SearchTracks(ctx context.Context, query string, limit int) ([]models.Track, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}

	endpoint := fmt.Sprintf("/search?q=%s&type=track&limit=%d", url.QueryEscape(query), limit)

	var response searchResponse
	if err := s.Request(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return nil, err
	}

	tracks := make([]models.Track, 0, len(response.Tracks.Items))
	for _, item := range response.Tracks.Items {
		track := models.Track{
			ID:    item.ID,
			Title: item.Name,
			Album: item.Album.Name,
			URI:   item.URI,
		}
		if len(item.Artists) > 0 {
			track.Artist = item.Artists[0].Name
		}
		tracks = append(tracks, track)
	}

	return tracks, nil
}

// CurrentUser retrieves the authenticated user's profile.
func (s *SpotifyClient) CurrentUser(ctx context.Context) (*SpotifyUser, error) {
	var user SpotifyUser
	if err := s.Request(ctx, http.MethodGet, "/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreatePlaylist creates a private playlist under the current user. The user
// identity is resolved with one additional authenticated call.
func (s *SpotifyClient) CreatePlaylist(ctx context.Context, name, description string) (*models.Playlist, error) {
	user, err := s.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	payload := map[string]any{
		"name":        name,
		"description": description,
		"public":      false,
	}

	var created spotifyPlaylist
	endpoint := fmt.Sprintf("/users/%s/playlists", url.PathEscape(user.ID))
	if err := s.Request(ctx, http.MethodPost, endpoint, payload, &created); err != nil {
		return nil, err
	}

	return &models.Playlist{
		ID:          created.ID,
		Name:        created.Name,
		Description: created.Description,
		URL:         created.ExternalURLs.Spotify,
		Public:      created.Public,
	}, nil
}

// AddTracksToPlaylist appends the given track URIs in one batch call.
// Callers skip the call for an empty batch; an empty slice here is a no-op.
func (s *SpotifyClient) AddTracksToPlaylist(ctx context.Context, playlistID string, uris []string) error {
	if len(uris) == 0 {
		return nil
	}

	endpoint := fmt.Sprintf("/playlists/%s/tracks", url.PathEscape(playlistID))
	return s.Request(ctx, http.MethodPost, endpoint, map[string]any{"uris": uris}, nil)
}
