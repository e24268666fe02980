package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/desertthunder/showtunes/internal/server"
	"github.com/desertthunder/showtunes/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve starts the playlist generation HTTP server and blocks until it stops.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	if r.generator == nil {
		return fmt.Errorf("%w: generation service not initialized, set openai.api_key in config.toml", shared.ErrServiceUnavailable)
	}

	host := cmd.String("host")
	if host == "" {
		host = r.config.Server.Host
	}
	port := cmd.Int("port")
	if port == 0 {
		port = r.config.Server.Port
	}

	router := server.NewBasicRouter()
	router.Use(server.LoggingMiddleware(r.logger))
	router.Handler(server.NewPlaylistHandler(r.engine, r.logger))

	addr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	r.logger.Infof("listening on %v", addr)
	r.writePlain("Serving playlist API at http://%s/api/playlist\n", addr)

	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
