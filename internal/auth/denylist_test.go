package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// newTestDenylist spins up an in-process Redis and returns a denylist
// backed by it.
func newTestDenylist(t *testing.T) (Denylist, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewRedisDenylist(rdb), mr
}

func TestDenylist_RevokeAndCheck(t *testing.T) {
	dl, _ := newTestDenylist(t)
	ctx := context.Background()

	revoked, err := dl.IsRevoked(ctx, "jti-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if revoked {
		t.Fatal("fresh jti reported as revoked")
	}

	if err := dl.Revoke(ctx, "jti-1", time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	revoked, err = dl.IsRevoked(ctx, "jti-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !revoked {
		t.Fatal("revoked jti not reported as revoked")
	}
}

func TestDenylist_EntryExpiresWithToken(t *testing.T) {
	dl, mr := newTestDenylist(t)
	ctx := context.Background()

	if err := dl.Revoke(ctx, "jti-1", time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Past the token's natural expiry the entry is useless; it should be gone.
	mr.FastForward(2 * time.Minute)

	revoked, err := dl.IsRevoked(ctx, "jti-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if revoked {
		t.Error("denylist entry outlived the token")
	}
}

func TestDenylist_ExpiredTokenIsNoop(t *testing.T) {
	dl, mr := newTestDenylist(t)
	ctx := context.Background()

	if err := dl.Revoke(ctx, "jti-1", -time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mr.Exists(denylistKeyPrefix + "jti-1") {
		t.Error("expired token must not be written to the denylist")
	}
}
