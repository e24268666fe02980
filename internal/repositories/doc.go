// Package repositories provides sqlite-backed persistence.
//
// The only durable state in the application is the Spotify auth session;
// SessionRepository stores it so a login survives process restarts. The
// repository is a side-store, not a second writer: the catalog client owns
// the in-memory session and pushes every transition here.
package repositories
