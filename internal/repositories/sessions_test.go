package repositories

import (
	"testing"
	"time"

	"github.com/desertthunder/showtunes/internal/services"
	"github.com/desertthunder/showtunes/internal/shared"
)

func newTestRepo(t *testing.T) *SessionRepository {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo, err := NewSessionRepository(db)
	if err != nil {
		t.Fatalf("failed to create repository: %v", err)
	}
	return repo
}

func TestSessionRepository(t *testing.T) {
	t.Run("Load Empty Store", func(t *testing.T) {
		repo := newTestRepo(t)

		session, err := repo.Load()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if session != nil {
			t.Errorf("expected nil session, got %+v", session)
		}
	})

	t.Run("Save And Load Round Trip", func(t *testing.T) {
		repo := newTestRepo(t)

		expiry := time.Now().Add(time.Hour).Truncate(time.Second)
		saved := &services.AuthSession{
			AccessToken: "token123",
			Expiry:      expiry,
			OAuthState:  "state456",
			Phase:       services.LoggedIn,
		}

		if err := repo.Save(saved); err != nil {
			t.Fatalf("save failed: %v", err)
		}

		loaded, err := repo.Load()
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if loaded == nil {
			t.Fatal("expected a session")
		}

		if loaded.AccessToken != "token123" {
			t.Errorf("token = %q, want token123", loaded.AccessToken)
		}
		if !loaded.Expiry.Equal(expiry) {
			t.Errorf("expiry = %v, want %v", loaded.Expiry, expiry)
		}
		if loaded.OAuthState != "state456" {
			t.Errorf("state = %q, want state456", loaded.OAuthState)
		}
		if loaded.Phase != services.LoggedIn {
			t.Errorf("phase = %v, want LoggedIn", loaded.Phase)
		}
	})

	t.Run("Save Overwrites Previous Session", func(t *testing.T) {
		repo := newTestRepo(t)

		first := &services.AuthSession{AccessToken: "old", Phase: services.LoggedIn, Expiry: time.Now()}
		second := &services.AuthSession{AccessToken: "new", Phase: services.LoggedIn, Expiry: time.Now()}

		if err := repo.Save(first); err != nil {
			t.Fatalf("first save failed: %v", err)
		}
		if err := repo.Save(second); err != nil {
			t.Fatalf("second save failed: %v", err)
		}

		loaded, err := repo.Load()
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if loaded.AccessToken != "new" {
			t.Errorf("expected latest session, got %q", loaded.AccessToken)
		}
	})

	t.Run("Clear", func(t *testing.T) {
		repo := newTestRepo(t)

		if err := repo.Save(&services.AuthSession{AccessToken: "t", Expiry: time.Now()}); err != nil {
			t.Fatalf("save failed: %v", err)
		}
		if err := repo.Clear(); err != nil {
			t.Fatalf("clear failed: %v", err)
		}

		session, err := repo.Load()
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if session != nil {
			t.Error("expected session cleared")
		}

		// clearing an empty store succeeds
		if err := repo.Clear(); err != nil {
			t.Errorf("second clear should succeed, got %v", err)
		}
	})
}
