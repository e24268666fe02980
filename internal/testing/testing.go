// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/desertthunder/showtunes/internal/models"
	"github.com/desertthunder/showtunes/internal/services"
)

// MockGenerator is a test double for [services.Generator]
type MockGenerator struct {
	Response string
	Err      error
}

func (m *MockGenerator) Complete(ctx context.Context, req services.GenerationRequest) (string, error) {
	return m.Response, m.Err
}

func (m *MockGenerator) Name() string { return "mock" }

// MockCatalog is a test double for [services.Catalog]
type MockCatalog struct {
	LoggedIn bool
}

func (m *MockCatalog) IsLoggedIn() bool { return m.LoggedIn }

func (m *MockCatalog) BeginLogin() (string, error) {
	return "https://accounts.example.com/authorize?state=mock", nil
}

func (m *MockCatalog) CompleteLogin(state, accessToken string, expiresIn int) error {
	m.LoggedIn = true
	return nil
}

func (m *MockCatalog) Logout() error {
	m.LoggedIn = false
	return nil
}

func (m *MockCatalog) SearchTracks(ctx context.Context, query string, limit int) ([]models.Track, error) {
	return []models.Track{}, nil
}

func (m *MockCatalog) CreatePlaylist(ctx context.Context, name, description string) (*models.Playlist, error) {
	return &models.Playlist{ID: "mock", Name: name, Description: description}, nil
}

func (m *MockCatalog) AddTracksToPlaylist(ctx context.Context, playlistID string, uris []string) error {
	return nil
}

func (m *MockCatalog) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
