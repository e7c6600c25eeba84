package goConsole

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/OpenAdminHQ/goConsole/storage"
)

func forgeToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()

	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`))
	payload, err := json.Marshal(map[string]any{
		"exp": expiresAt.Unix(),
		"sub": "1",
	})
	if err != nil {
		t.Fatalf("marshal claims: %v", err)
	}
	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + ".sig"
}

// stubAuthServer fakes the three auth endpoints the session client talks to.
type stubAuthServer struct {
	mu           sync.Mutex
	loginCalls   int
	refreshCalls int
	logoutCalls  int

	failLogin   bool
	failRefresh bool
	failLogout  bool

	userJSON      string
	tokenLifetime time.Duration
	nextToken     func() string
}

func newStubAuthServer() *stubAuthServer {
	return &stubAuthServer{
		userJSON:      `{"id":7,"username":"alice","email":"alice@example.com","is_active":true,"roles":["admin"],"permissions":["users.read","dashboard.read"]}`,
		tokenLifetime: 30 * time.Minute,
	}
}

func (s *stubAuthServer) start(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", s.handleLogin)
	mux.HandleFunc("/api/auth/refresh", s.handleRefresh)
	mux.HandleFunc("/api/auth/logout", s.handleLogout)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func (s *stubAuthServer) mintToken() string {
	if s.nextToken != nil {
		return s.nextToken()
	}
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`))
	payload, _ := json.Marshal(map[string]any{
		"exp": time.Now().Add(s.tokenLifetime).Unix(),
		"iat": time.Now().UnixNano(),
	})
	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + ".sig"
}

func (s *stubAuthServer) handleLogin(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	s.loginCalls++
	fail := s.failLogin
	user := s.userJSON
	s.mu.Unlock()

	if fail {
		http.Error(w, `{"detail":"invalid credentials"}`, http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"access_token":"` + s.mintToken() +
		`","refresh_token":"refresh-1","token_type":"bearer","expires_in":1800,"user":` + user + `}`))
}

func (s *stubAuthServer) handleRefresh(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	s.refreshCalls++
	fail := s.failRefresh
	s.mu.Unlock()

	if fail {
		http.Error(w, `{"detail":"invalid refresh token"}`, http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"access_token":"` + s.mintToken() + `","token_type":"bearer","expires_in":1800}`))
}

func (s *stubAuthServer) handleLogout(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	s.logoutCalls++
	fail := s.failLogout
	s.mu.Unlock()

	if fail {
		http.Error(w, `{"detail":"backend down"}`, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *stubAuthServer) counts() (login, refresh, logout int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loginCalls, s.refreshCalls, s.logoutCalls
}

func sessionTestConfig(baseURL string) Config {
	cfg := defaultConfig()
	cfg.API.BaseURL = baseURL
	return cfg
}

func buildSessionTestClient(t *testing.T, cfg Config, store storage.Store) *Client {
	t.Helper()

	builder := New().WithConfig(cfg).WithMetricsEnabled(true)
	if store != nil {
		builder = builder.WithStorage(store)
	}

	client, err := builder.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(client.Close)
	return client
}

// checkSessionInvariant asserts the user record and access token are either
// both present or both absent.
func checkSessionInvariant(t *testing.T, c *Client) {
	t.Helper()

	user := c.CurrentUser()
	tok := c.AccessToken()
	if (user != nil) != (tok != "") {
		t.Fatalf("invariant broken: user=%v token=%q", user, tok)
	}
}
