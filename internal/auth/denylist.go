package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// denylistKeyPrefix is the Redis key prefix for revoked token IDs.
const denylistKeyPrefix = "revoked:"

// Denylist records revoked token IDs until their natural expiry. Tokens are
// otherwise stateless, so logout works by denylisting the token's jti with a
// TTL equal to its remaining validity -- the entry expires exactly when the
// token would have.
type Denylist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// redisDenylist implements Denylist on a shared Redis client.
type redisDenylist struct {
	rdb *redis.Client
}

// NewRedisDenylist creates a Denylist backed by the given Redis client.
func NewRedisDenylist(rdb *redis.Client) Denylist {
	return &redisDenylist{rdb: rdb}
}

// Revoke stores the token ID with the given TTL. A non-positive TTL means
// the token is already expired and nothing needs to be recorded.
func (d *redisDenylist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := d.rdb.Set(ctx, denylistKeyPrefix+jti, "1", ttl).Err(); err != nil {
		return fmt.Errorf("storing revoked token in redis: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token ID has been revoked.
func (d *redisDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := d.rdb.Exists(ctx, denylistKeyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("checking revoked token in redis: %w", err)
	}
	return n > 0, nil
}
