package server

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
)

// AuthResult contains the outcome of an implicit-grant authorization flow.
type AuthResult struct {
	State       string
	AccessToken string
	ExpiresIn   int
	err         error
}

func (r *AuthResult) Error() error {
	return r.err
}

// CallbackHandler receives the provider redirect for the implicit grant
// flow. Implements the Handler interface for registration with a Router.
//
// The access token arrives in the URL fragment, which never reaches the
// server, so /callback serves a small relay page that re-posts the fragment
// parameters to /callback/token where they can be read.
type CallbackHandler struct {
	resultChan chan AuthResult
	once       sync.Once
	mu         sync.Mutex
	done       bool
}

// NewCallbackHandler creates a handler for one login round-trip.
func NewCallbackHandler() *CallbackHandler {
	return &CallbackHandler{
		resultChan: make(chan AuthResult, 1),
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *CallbackHandler) Routes() []string {
	return []string{"/callback", "/callback/token"}
}

// ServeHTTP handles the redirect page and the fragment relay request.
func (h *CallbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/callback" {
		h.serveRelay(w, r)
		return
	}

	h.mu.Lock()
	if h.done {
		h.mu.Unlock()
		http.Error(w, "Callback already processed", http.StatusBadRequest)
		return
	}
	h.done = true
	h.mu.Unlock()

	query := r.URL.Query()
	token := query.Get("access_token")
	if token == "" {
		err := fmt.Errorf("redirect carried no access token")
		h.Send(AuthResult{err: err})
		http.Error(w, "Authorization failed", http.StatusBadRequest)
		return
	}

	expiresIn, _ := strconv.Atoi(query.Get("expires_in"))

	h.Send(AuthResult{
		State:       query.Get("state"),
		AccessToken: token,
		ExpiresIn:   expiresIn,
	})

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, `
<!DOCTYPE html>
<html>
<head>
    <title>Login Successful</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               display: flex; align-items: center; justify-content: center; height: 100vh;
               margin: 0; background: #f5f5f5; }
        .container { text-align: center; background: white; padding: 2rem;
                     border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        h1 { color: #1DB954; margin: 0 0 1rem 0; }
        p { color: #666; margin: 0; }
    </style>
</head>
<body>
    <div class="container">
        <h1>&#10003; Login Successful</h1>
        <p>You can close this window and return to the terminal.</p>
    </div>
</body>
</html>
`)
}

// serveRelay handles the provider redirect. Denials arrive as query
// parameters; tokens arrive in the fragment and are relayed by the page.
func (h *CallbackHandler) serveRelay(w http.ResponseWriter, r *http.Request) {
	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.Send(AuthResult{err: fmt.Errorf("authorization failed: %s", errParam)})
		http.Error(w, "Authorization failed", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, `
<!DOCTYPE html>
<html>
<head><title>Logging in...</title></head>
<body>
    <p>Completing login...</p>
    <script>
        var params = window.location.hash.substring(1);
        window.location.replace("/callback/token?" + params);
    </script>
</body>
</html>
`)
}

// Send sends the auth result through the channel (only once).
func (h *CallbackHandler) Send(result AuthResult) {
	h.once.Do(func() {
		h.resultChan <- result
		close(h.resultChan)
	})
}

// Result returns the result channel for receiving flow completion.
//
// Channel will receive exactly one result and then be closed.
func (h *CallbackHandler) Result() <-chan AuthResult {
	return h.resultChan
}
