package resource

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/weiawesome/momentroom/internal/config"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	store, err := NewRedisStore(config.RedisConfig{Address: mr.Addr()}, "momentroom")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store, mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	if _, err := store.Get(ctx, "rooms?q="); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}

	if err := store.Set(ctx, "rooms?q=", []byte(`[1]`), time.Minute); err != nil {
		t.Fatal(err)
	}
	if !mr.Exists("momentroom:rooms?q=") {
		t.Fatal("expected prefixed key in redis")
	}
	if ttl := mr.TTL("momentroom:rooms?q="); ttl != time.Minute {
		t.Fatalf("unexpected ttl %v", ttl)
	}

	data, err := store.Get(ctx, "rooms?q=")
	if err != nil || string(data) != `[1]` {
		t.Fatalf("unexpected get: %s %v", data, err)
	}

	mr.FastForward(2 * time.Minute)
	if _, err := store.Get(ctx, "rooms?q="); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected expiry, got %v", err)
	}
}

func TestRedisStoreBacksResource(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	var calls int
	load := func(ctx context.Context) (map[string]int, error) {
		calls++
		return map[string]int{"members": 3}, nil
	}

	first := New[map[string]int]("test_redis", WithStore(store, 0))
	first.Fetch(ctx, "room/1", load)
	first.Wait()

	// A second process sharing the store does not reload.
	second := New[map[string]int]("test_redis", WithStore(store, 0))
	st := second.Fetch(ctx, "room/1", load)

	if calls != 1 {
		t.Fatalf("expected one load across both resources, got %d", calls)
	}
	if !st.IsReady() || st.Value["members"] != 3 {
		t.Fatalf("unexpected state %+v", st)
	}

	if err := second.Invalidate(ctx, "room/1"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Get(ctx, "room/1"); !errors.Is(err, ErrCacheMiss) {
		t.Fatal("expected invalidate to clear redis")
	}
}

func TestNewRedisStoreUnreachable(t *testing.T) {
	if _, err := NewRedisStore(config.RedisConfig{Address: "127.0.0.1:1"}, "x"); err == nil {
		t.Fatal("expected connection error")
	}
}

func TestStorePrefixSeparatesDeployments(t *testing.T) {
	prod := StorePrefix("momentroom", "https://api.example.com")
	if prod != StorePrefix("momentroom", "https://api.example.com") {
		t.Fatal("prefix must be stable for one base URL")
	}
	if prod == StorePrefix("momentroom", "http://localhost:8080") {
		t.Fatal("different base URLs must not share a prefix")
	}
	if !strings.HasPrefix(prod, "momentroom:") {
		t.Fatalf("unexpected prefix %q", prod)
	}
}
