package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/showtunes/internal/services"
)

// sessionSchema holds a single row; the fixed id makes writes an upsert.
const sessionSchema = `
CREATE TABLE IF NOT EXISTS auth_sessions (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	access_token TEXT NOT NULL DEFAULT '',
	expiry INTEGER NOT NULL DEFAULT 0,
	oauth_state TEXT NOT NULL DEFAULT '',
	phase INTEGER NOT NULL DEFAULT 0,
	updated_at INTEGER NOT NULL
);
`

// SessionRepository implements [services.SessionStore] on sqlite.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates the repository and ensures its schema exists.
func NewSessionRepository(db *sql.DB) (*SessionRepository, error) {
	if _, err := db.Exec(sessionSchema); err != nil {
		return nil, fmt.Errorf("failed to create session schema: %w", err)
	}
	return &SessionRepository{db: db}, nil
}

// Load returns the persisted session, or nil when none has been saved.
func (r *SessionRepository) Load() (*services.AuthSession, error) {
	row := r.db.QueryRow(`SELECT access_token, expiry, oauth_state, phase FROM auth_sessions WHERE id = 1`)

	var (
		token  string
		expiry int64
		state  string
		phase  int
	)

	if err := row.Scan(&token, &expiry, &state, &phase); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	return &services.AuthSession{
		AccessToken: token,
		Expiry:      time.Unix(expiry, 0),
		OAuthState:  state,
		Phase:       services.SessionPhase(phase),
	}, nil
}

// Save upserts the single session row.
func (r *SessionRepository) Save(session *services.AuthSession) error {
	query := `
		INSERT INTO auth_sessions (id, access_token, expiry, oauth_state, phase, updated_at)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			access_token = excluded.access_token,
			expiry = excluded.expiry,
			oauth_state = excluded.oauth_state,
			phase = excluded.phase,
			updated_at = excluded.updated_at
	`

	_, err := r.db.Exec(query, session.AccessToken, session.Expiry.Unix(), session.OAuthState, int(session.Phase), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// Clear removes the persisted session. Clearing an empty store succeeds.
func (r *SessionRepository) Clear() error {
	if _, err := r.db.Exec(`DELETE FROM auth_sessions WHERE id = 1`); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
