// Package server provides HTTP routing, middleware, and the playlist API for CLI and web interfaces.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # OAuth Callback Handler
//
// CallbackHandler implements the implicit-grant redirect flow.
//
// Because the access token arrives in the URL fragment, /callback serves a small
// relay page that forwards the fragment parameters back to /callback/token,
// where the handler validates them and sends the result through a channel.
//
// It only processes one callback to prevent replay attacks.
//
// When the user runs the auth login command, a temporary HTTP server starts on
// localhost, handles the redirect, and shuts down after receiving the token.
//
// # Playlist API
//
// PlaylistHandler exposes song list generation over HTTP. A POST to /api/playlist
// with a show title and optional mood returns the detected genre and the
// generated song list as JSON.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
