package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/desertthunder/showtunes/internal/server"
	"github.com/desertthunder/showtunes/internal/services"
	"github.com/desertthunder/showtunes/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthLogin performs the implicit-grant login flow for Spotify.
//
// Starts a local HTTP server, opens the browser for user authorization, and
// stores the received access token in the session database.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if r.catalog == nil {
		return fmt.Errorf("%w: Spotify client not initialized, set spotify.client_id in config.toml", shared.ErrServiceUnavailable)
	}

	authURL, err := r.catalog.BeginLogin()
	if err != nil {
		return fmt.Errorf("failed to start login: %w", err)
	}

	callbackHandler := server.NewCallbackHandler()
	router := server.NewBasicRouter()
	router.Handler(callbackHandler)

	serverAddr := fmt.Sprintf("%s:%d", r.config.Server.Host, r.config.Server.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("starting callback server at %v", serverAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	time.Sleep(100 * time.Millisecond)

	r.writePlain("→ Opening browser for Spotify authorization...\n")
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (2 minute timeout)...\n")

	timeout := time.NewTimer(2 * time.Minute)
	defer timeout.Stop()

	var result server.AuthResult

	select {
	case result = <-callbackHandler.Result():
		// Got result from callback
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		return fmt.Errorf("%w: authorization timed out after 2 minutes", shared.ErrTimeout)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("error shutting down server", "error", err)
	}

	if result.Error() != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, result.Error())
	}

	if err := r.catalog.CompleteLogin(result.State, result.AccessToken, result.ExpiresIn); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	r.writePlainln("✓ Authorization successful")
	r.writePlain("You can now use: showtunes fulfill \"<show name>\"\n")

	return nil
}

// AuthStatus reports the current authentication state.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if r.catalog == nil {
		return fmt.Errorf("%w: Spotify client not initialized", shared.ErrServiceUnavailable)
	}

	if !r.catalog.IsLoggedIn() {
		r.writePlain("Authentication: ✗ Not logged in\n")
		r.writePlain("Run 'showtunes auth login' to authenticate\n")
		return nil
	}

	r.writePlain("Authentication: ✓ Logged in\n")

	if client, ok := r.catalog.(*services.SpotifyClient); ok {
		user, err := client.CurrentUser(ctx)
		if err != nil {
			r.logger.Warn("failed to fetch profile", "error", err)
			return nil
		}
		name := user.DisplayName
		if name == "" {
			name = user.ID
		}
		r.writePlain("Account: %s\n", name)
	}

	return nil
}

// AuthLogout discards the in-memory and persisted session.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if r.catalog == nil {
		return fmt.Errorf("%w: Spotify client not initialized", shared.ErrServiceUnavailable)
	}

	if err := r.catalog.Logout(); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}

	r.writePlain("✓ Logged out\n")
	return nil
}
