package goConsole

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/OpenAdminHQ/goConsole/storage"
)

func TestLoginSuccessPopulatesSession(t *testing.T) {
	stub := newStubAuthServer()
	server := stub.start(t)
	store := storage.NewMemoryStore()
	client := buildSessionTestClient(t, sessionTestConfig(server.URL), store)

	user, err := client.Login(context.Background(), "alice", "secret")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if user.Username != "alice" || user.ID != 7 {
		t.Fatalf("unexpected user record: %+v", user)
	}
	if !client.IsAuthenticated() {
		t.Fatal("expected authenticated session after login")
	}
	if client.IsLoading() {
		t.Fatal("loading must end after login")
	}
	checkSessionInvariant(t, client)

	creds, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if creds.AccessToken != client.AccessToken() || creds.RefreshToken != "refresh-1" {
		t.Fatalf("durable storage out of sync: %+v", creds)
	}
	var stored UserRecord
	if err := json.Unmarshal(creds.User, &stored); err != nil || stored.Username != "alice" {
		t.Fatalf("stored user blob unusable: %v %+v", err, stored)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	stub := newStubAuthServer()
	stub.failLogin = true
	server := stub.start(t)
	store := storage.NewMemoryStore()
	client := buildSessionTestClient(t, sessionTestConfig(server.URL), store)

	if _, err := client.Login(context.Background(), "alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if client.IsAuthenticated() {
		t.Fatal("failed login must not authenticate")
	}
	checkSessionInvariant(t, client)

	creds, _ := store.Load(context.Background())
	if creds.AccessToken != "" {
		t.Fatal("failed login must not persist credentials")
	}
}

func TestLoginRejectsCorruptUserRecord(t *testing.T) {
	stub := newStubAuthServer()
	stub.userJSON = `"not-an-object"`
	server := stub.start(t)
	client := buildSessionTestClient(t, sessionTestConfig(server.URL), nil)

	if _, err := client.Login(context.Background(), "alice", "secret"); !errors.Is(err, ErrInvalidUserRecord) {
		t.Fatalf("expected ErrInvalidUserRecord, got %v", err)
	}
	if client.IsAuthenticated() {
		t.Fatal("corrupt user record must not authenticate")
	}
	checkSessionInvariant(t, client)
}

func TestRestoreEmptyStore(t *testing.T) {
	stub := newStubAuthServer()
	server := stub.start(t)
	client := buildSessionTestClient(t, sessionTestConfig(server.URL), nil)

	if !client.IsLoading() {
		t.Fatal("fresh client should report loading")
	}
	if err := client.Restore(context.Background()); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if client.IsLoading() {
		t.Fatal("loading must end after restore")
	}
	if client.IsAuthenticated() {
		t.Fatal("empty store must not authenticate")
	}
	if _, refreshes, _ := stub.counts(); refreshes != 0 {
		t.Fatalf("empty restore must not call refresh, got %d", refreshes)
	}
}

func TestRestoreValidToken(t *testing.T) {
	stub := newStubAuthServer()
	server := stub.start(t)
	store := storage.NewMemoryStore()

	access := forgeToken(t, time.Now().Add(20*time.Minute))
	seedStore(t, store, access, "refresh-1", `{"id":7,"username":"alice","permissions":["users.read"]}`)

	client := buildSessionTestClient(t, sessionTestConfig(server.URL), store)
	if err := client.Restore(context.Background()); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	if !client.IsAuthenticated() {
		t.Fatal("valid stored session must authenticate")
	}
	if client.AccessToken() != access {
		t.Fatal("restore must keep the stored access token")
	}
	if client.CurrentUser().Username != "alice" {
		t.Fatalf("unexpected restored user: %+v", client.CurrentUser())
	}
	if _, refreshes, _ := stub.counts(); refreshes != 0 {
		t.Fatalf("valid restore must not refresh, got %d calls", refreshes)
	}
	checkSessionInvariant(t, client)
}

func TestRestoreExpiredTokenRefreshes(t *testing.T) {
	stub := newStubAuthServer()
	server := stub.start(t)
	store := storage.NewMemoryStore()

	expired := forgeToken(t, time.Now().Add(-time.Minute))
	seedStore(t, store, expired, "refresh-1", `{"id":7,"username":"alice"}`)

	client := buildSessionTestClient(t, sessionTestConfig(server.URL), store)
	if err := client.Restore(context.Background()); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	if !client.IsAuthenticated() {
		t.Fatal("expired restore with working refresh must authenticate")
	}
	if client.AccessToken() == expired {
		t.Fatal("access token must be replaced after refresh")
	}
	if _, refreshes, _ := stub.counts(); refreshes != 1 {
		t.Fatalf("expected exactly one refresh call, got %d", refreshes)
	}

	creds, _ := store.Load(context.Background())
	if creds.AccessToken != client.AccessToken() {
		t.Fatal("refreshed token must be persisted")
	}
	checkSessionInvariant(t, client)
}

func TestRestoreExpiredTokenRefreshFailurePurges(t *testing.T) {
	stub := newStubAuthServer()
	stub.failRefresh = true
	server := stub.start(t)
	store := storage.NewMemoryStore()

	expired := forgeToken(t, time.Now().Add(-time.Minute))
	seedStore(t, store, expired, "refresh-1", `{"id":7,"username":"alice"}`)

	client := buildSessionTestClient(t, sessionTestConfig(server.URL), store)
	if err := client.Restore(context.Background()); err != nil {
		t.Fatalf("Restore must not fail the caller on a dead session: %v", err)
	}

	if client.IsAuthenticated() {
		t.Fatal("failed refresh must leave the client signed out")
	}
	if client.IsLoading() {
		t.Fatal("loading must end even when restore gives up")
	}
	creds, _ := store.Load(context.Background())
	if creds.AccessToken != "" || creds.RefreshToken != "" {
		t.Fatalf("dead session must be purged from storage, got %+v", creds)
	}
	checkSessionInvariant(t, client)
}

func TestRestorePurgesCorruptUserBlob(t *testing.T) {
	stub := newStubAuthServer()
	server := stub.start(t)
	store := storage.NewMemoryStore()

	access := forgeToken(t, time.Now().Add(20*time.Minute))
	seedStore(t, store, access, "refresh-1", `{{{not json`)

	client := buildSessionTestClient(t, sessionTestConfig(server.URL), store)
	if err := client.Restore(context.Background()); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	if client.IsAuthenticated() {
		t.Fatal("corrupt user blob must not authenticate")
	}
	creds, _ := store.Load(context.Background())
	if creds.AccessToken != "" {
		t.Fatal("corrupt session must be purged")
	}
}

func TestLoginRestoreRoundTrip(t *testing.T) {
	stub := newStubAuthServer()
	server := stub.start(t)
	store := storage.NewMemoryStore()

	first := buildSessionTestClient(t, sessionTestConfig(server.URL), store)
	if _, err := first.Login(context.Background(), "alice", "secret"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	second := buildSessionTestClient(t, sessionTestConfig(server.URL), store)
	if err := second.Restore(context.Background()); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	if !second.IsAuthenticated() {
		t.Fatal("second client must recover the session")
	}
	if second.CurrentUser().Username != first.CurrentUser().Username {
		t.Fatal("restored user does not match logged-in user")
	}
	if second.AccessToken() != first.AccessToken() {
		t.Fatal("restored token does not match logged-in token")
	}
}

func TestLogoutClearsDespiteNetworkFailure(t *testing.T) {
	stub := newStubAuthServer()
	stub.failLogout = true
	server := stub.start(t)
	store := storage.NewMemoryStore()
	client := buildSessionTestClient(t, sessionTestConfig(server.URL), store)

	if _, err := client.Login(context.Background(), "alice", "secret"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	client.Logout(context.Background())

	if client.IsAuthenticated() {
		t.Fatal("logout must clear the session even when the backend call fails")
	}
	creds, _ := store.Load(context.Background())
	if creds.AccessToken != "" || creds.RefreshToken != "" || creds.User != nil {
		t.Fatalf("logout must purge storage, got %+v", creds)
	}
	if client.MetricsSnapshot().Counters[MetricLogoutNotifyFailure] != 1 {
		t.Fatal("expected logout notify failure to be counted")
	}
	checkSessionInvariant(t, client)
}

func TestLogoutWhenSignedOutSkipsBackend(t *testing.T) {
	stub := newStubAuthServer()
	server := stub.start(t)
	client := buildSessionTestClient(t, sessionTestConfig(server.URL), nil)

	client.Logout(context.Background())

	if _, _, logouts := stub.counts(); logouts != 0 {
		t.Fatalf("signed-out logout must not call the backend, got %d calls", logouts)
	}
}

func TestRefreshReplacesAccessToken(t *testing.T) {
	stub := newStubAuthServer()
	server := stub.start(t)
	store := storage.NewMemoryStore()
	client := buildSessionTestClient(t, sessionTestConfig(server.URL), store)

	if _, err := client.Login(context.Background(), "alice", "secret"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	before := client.AccessToken()

	if err := client.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	after := client.AccessToken()
	if after == before || after == "" {
		t.Fatalf("expected a replacement access token, before=%q after=%q", before, after)
	}
	if client.CurrentUser().Username != "alice" {
		t.Fatal("refresh must not disturb the user record")
	}

	creds, _ := store.Load(context.Background())
	if creds.AccessToken != after {
		t.Fatal("refreshed token must be persisted")
	}
	if creds.RefreshToken != "refresh-1" {
		t.Fatal("refresh token must survive an access-token refresh")
	}
	checkSessionInvariant(t, client)
}

func TestRefreshMissingTokenLogsOut(t *testing.T) {
	stub := newStubAuthServer()
	server := stub.start(t)
	client := buildSessionTestClient(t, sessionTestConfig(server.URL), nil)

	access := forgeToken(t, time.Now().Add(20*time.Minute))
	if err := client.LoginWithTokens(context.Background(), access, "", UserRecord{ID: 7, Username: "alice"}); err != nil {
		t.Fatalf("LoginWithTokens failed: %v", err)
	}

	if err := client.Refresh(context.Background()); !errors.Is(err, ErrRefreshTokenMissing) {
		t.Fatalf("expected ErrRefreshTokenMissing, got %v", err)
	}
	if client.IsAuthenticated() {
		t.Fatal("missing refresh token must end the session")
	}
	checkSessionInvariant(t, client)
}

func TestRefreshFailureLogsOut(t *testing.T) {
	stub := newStubAuthServer()
	server := stub.start(t)
	store := storage.NewMemoryStore()
	client := buildSessionTestClient(t, sessionTestConfig(server.URL), store)

	if _, err := client.Login(context.Background(), "alice", "secret"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	stub.mu.Lock()
	stub.failRefresh = true
	stub.mu.Unlock()

	if err := client.Refresh(context.Background()); !errors.Is(err, ErrRefreshFailed) {
		t.Fatalf("expected ErrRefreshFailed, got %v", err)
	}
	if client.IsAuthenticated() {
		t.Fatal("failed refresh must end the session")
	}
	creds, _ := store.Load(context.Background())
	if creds.AccessToken != "" {
		t.Fatal("failed refresh must purge storage")
	}
	checkSessionInvariant(t, client)
}

func TestLoginWithTokensAdoptsSession(t *testing.T) {
	stub := newStubAuthServer()
	server := stub.start(t)
	store := storage.NewMemoryStore()
	client := buildSessionTestClient(t, sessionTestConfig(server.URL), store)

	access := forgeToken(t, time.Now().Add(20*time.Minute))
	user := UserRecord{ID: 7, Username: "alice", Permissions: []string{"users.read"}}
	if err := client.LoginWithTokens(context.Background(), access, "refresh-ext", user); err != nil {
		t.Fatalf("LoginWithTokens failed: %v", err)
	}

	if !client.IsAuthenticated() || client.AccessToken() != access {
		t.Fatal("adopted session not active")
	}
	creds, _ := store.Load(context.Background())
	if creds.RefreshToken != "refresh-ext" {
		t.Fatal("adopted session must be persisted")
	}
}

func TestLoginWithTokensRejectsEmptyToken(t *testing.T) {
	stub := newStubAuthServer()
	server := stub.start(t)
	client := buildSessionTestClient(t, sessionTestConfig(server.URL), nil)

	err := client.LoginWithTokens(context.Background(), "", "r", UserRecord{Username: "alice"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if client.IsAuthenticated() {
		t.Fatal("empty token must not authenticate")
	}
}

func TestBackgroundRenewalTicksAndStopsOnLogout(t *testing.T) {
	stub := newStubAuthServer()
	server := stub.start(t)

	cfg := sessionTestConfig(server.URL)
	cfg.Session.RefreshInterval = 40 * time.Millisecond
	cfg.Session.TokenLifetime = 500 * time.Millisecond

	client := buildSessionTestClient(t, cfg, nil)
	if _, err := client.Login(context.Background(), "alice", "secret"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	time.Sleep(150 * time.Millisecond)
	_, refreshes, _ := stub.counts()
	if refreshes < 2 {
		t.Fatalf("expected at least 2 background refreshes, got %d", refreshes)
	}

	client.Logout(context.Background())
	_, afterLogout, _ := stub.counts()
	time.Sleep(150 * time.Millisecond)
	_, later, _ := stub.counts()
	if later != afterLogout {
		t.Fatalf("renewal must stop after logout: %d -> %d", afterLogout, later)
	}
}

func TestSubscribeReceivesSessionChanges(t *testing.T) {
	stub := newStubAuthServer()
	server := stub.start(t)
	client := buildSessionTestClient(t, sessionTestConfig(server.URL), nil)

	snaps := make(chan Snapshot, 16)
	cancel := client.Subscribe(func(s Snapshot) {
		snaps <- s
	})

	if _, err := client.Login(context.Background(), "alice", "secret"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	var sawAuthenticated bool
	for done := false; !done; {
		select {
		case s := <-snaps:
			if s.Authenticated {
				sawAuthenticated = true
				done = true
			}
		case <-time.After(time.Second):
			done = true
		}
	}
	if !sawAuthenticated {
		t.Fatal("subscriber never saw an authenticated snapshot")
	}

	cancel()
	drained := len(snaps)
	for i := 0; i < drained; i++ {
		<-snaps
	}
	client.Logout(context.Background())
	select {
	case s := <-snaps:
		t.Fatalf("cancelled subscriber received snapshot: %+v", s)
	case <-time.After(50 * time.Millisecond):
	}
}

// parkedWriteStore holds every SetAccessToken call until release is closed,
// so tests can interleave other session operations with the persist step.
type parkedWriteStore struct {
	storage.Store
	entered chan struct{}
	release chan struct{}
}

func (s *parkedWriteStore) SetAccessToken(ctx context.Context, token string) error {
	s.entered <- struct{}{}
	<-s.release
	return s.Store.SetAccessToken(ctx, token)
}

func TestRefreshRacingLogoutLeavesStorageEmpty(t *testing.T) {
	stub := newStubAuthServer()
	server := stub.start(t)
	inner := storage.NewMemoryStore()
	store := &parkedWriteStore{
		Store:   inner,
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	client := buildSessionTestClient(t, sessionTestConfig(server.URL), store)

	if _, err := client.Login(context.Background(), "alice", "secret"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	refreshed := make(chan error, 1)
	go func() {
		refreshed <- client.Refresh(context.Background())
	}()

	// Refresh has a fresh token in hand and is parked on the persist.
	// Log out underneath it, then let the stale write land.
	<-store.entered
	client.Logout(context.Background())
	close(store.release)
	if err := <-refreshed; err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	if client.IsAuthenticated() {
		t.Fatal("logout during refresh must leave the client signed out")
	}
	creds, _ := inner.Load(context.Background())
	if creds.AccessToken != "" || creds.RefreshToken != "" || creds.User != nil {
		t.Fatalf("stale refresh write must not outlive logout, got %+v", creds)
	}
	checkSessionInvariant(t, client)
}

func seedStore(t *testing.T, store storage.Store, access, refresh, userJSON string) {
	t.Helper()

	err := store.Save(context.Background(), storage.Credentials{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         []byte(userJSON),
	})
	if err != nil {
		t.Fatalf("seed store: %v", err)
	}
}
