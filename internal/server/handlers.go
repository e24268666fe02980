package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/showtunes/internal/models"
	"github.com/desertthunder/showtunes/internal/shared"
	"github.com/desertthunder/showtunes/internal/tasks"
)

// SongListGenerator produces a song list for a show title.
//
// Satisfied by [tasks.CuratorEngine].
type SongListGenerator interface {
	Generate(ctx context.Context, show, mood string, progress chan<- tasks.ProgressUpdate) (*models.PlaylistResult, error)
}

// PlaylistHandler serves song list generation requests over HTTP.
type PlaylistHandler struct {
	engine SongListGenerator
	logger *log.Logger
}

// NewPlaylistHandler creates a handler backed by the given engine.
func NewPlaylistHandler(engine SongListGenerator, logger *log.Logger) *PlaylistHandler {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &PlaylistHandler{engine: engine, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *PlaylistHandler) Routes() []string {
	return []string{"/api/playlist"}
}

type playlistRequest struct {
	Show string `json:"show"`
	Mood string `json:"mood"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ServeHTTP handles POST /api/playlist.
func (h *PlaylistHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	var req playlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if req.Show == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "show name is required"})
		return
	}

	result, err := h.engine.Generate(r.Context(), req.Show, req.Mood, nil)
	if err != nil {
		if errors.Is(err, shared.ErrInvalidInput) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		h.logger.Error("generation failed", "show", req.Show, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "failed to generate playlist",
			Details: err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// LoggingMiddleware logs each request with method, path, status, and duration.
func LoggingMiddleware(logger *log.Logger) Middleware {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(recorder, r)

			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", recorder.status,
				"duration", time.Since(start),
			)
		})
	}
}

// statusRecorder captures the response status code for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
