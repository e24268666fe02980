// Package services contains the HTTP clients for the two external providers:
// the OpenAI chat completions API that generates song suggestions, and the
// Spotify Web API that resolves suggestions into real tracks and playlists.
//
// The Spotify client owns the only long-lived mutable state in the
// application, an AuthSession with an explicit lifecycle:
//
//	LoggedOut -> BeginLogin -> PendingRedirect -> CompleteLogin -> LoggedIn
//	LoggedIn  -> expiry reached | HTTP 401 | Logout -> LoggedOut
//
// Sessions persist across process restarts through a SessionStore; the
// repositories package provides the sqlite-backed implementation.
package services
