package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, redis.UniversalClient) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs: []string{mr.Addr()},
	})
	t.Cleanup(func() { _ = rdb.Close() })

	return mr, rdb
}

func TestRedisStoreRoundTrip(t *testing.T) {
	_, rdb := newTestRedis(t)
	store := NewRedisStore(rdb, "gc")
	ctx := context.Background()

	in := Credentials{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		User:         []byte(`{"username":"alice"}`),
	}
	if err := store.Save(ctx, in); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	out, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if out.AccessToken != in.AccessToken || out.RefreshToken != in.RefreshToken {
		t.Fatalf("token mismatch: got %+v", out)
	}
	if string(out.User) != string(in.User) {
		t.Fatalf("user blob mismatch: got %q", out.User)
	}
}

func TestRedisStoreLoadEmpty(t *testing.T) {
	_, rdb := newTestRedis(t)
	store := NewRedisStore(rdb, "gc")

	creds, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load on empty store failed: %v", err)
	}
	if creds.AccessToken != "" || creds.RefreshToken != "" || creds.User != nil {
		t.Fatalf("expected empty credentials, got %+v", creds)
	}
}

func TestRedisStoreSetAccessTokenLeavesRest(t *testing.T) {
	_, rdb := newTestRedis(t)
	store := NewRedisStore(rdb, "gc")
	ctx := context.Background()

	if err := store.Save(ctx, Credentials{
		AccessToken:  "old",
		RefreshToken: "refresh-1",
		User:         []byte(`{"username":"alice"}`),
	}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := store.SetAccessToken(ctx, "new"); err != nil {
		t.Fatalf("SetAccessToken failed: %v", err)
	}

	out, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if out.AccessToken != "new" {
		t.Fatalf("expected replaced access token, got %q", out.AccessToken)
	}
	if out.RefreshToken != "refresh-1" || string(out.User) != `{"username":"alice"}` {
		t.Fatalf("refresh token or user blob changed: %+v", out)
	}
}

func TestRedisStoreClearRemovesWholeGroup(t *testing.T) {
	mr, rdb := newTestRedis(t)
	store := NewRedisStore(rdb, "gc")
	ctx := context.Background()

	if err := store.Save(ctx, Credentials{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		User:         []byte(`{}`),
	}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	for _, key := range []string{"gc:access_token", "gc:refresh_token", "gc:user"} {
		if mr.Exists(key) {
			t.Fatalf("expected %s to be deleted", key)
		}
	}
}

func TestRedisStorePrefixIsolation(t *testing.T) {
	_, rdb := newTestRedis(t)
	ctx := context.Background()

	a := NewRedisStore(rdb, "tab-a")
	b := NewRedisStore(rdb, "tab-b")

	if err := a.Save(ctx, Credentials{AccessToken: "token-a"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	creds, err := b.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if creds.AccessToken != "" {
		t.Fatalf("prefix b must not see prefix a's session, got %q", creds.AccessToken)
	}
}

func TestRedisStoreUnavailableWrapsError(t *testing.T) {
	mr, rdb := newTestRedis(t)
	store := NewRedisStore(rdb, "gc")
	mr.Close()

	_, err := store.Load(context.Background())
	if err == nil {
		t.Fatal("expected error after redis shutdown")
	}
	if !errorsIsUnavailable(err) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
