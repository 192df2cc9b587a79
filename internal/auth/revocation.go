package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Denylist records revoked token ids until their natural expiry. Entries
// carry a TTL equal to the token's remaining lifetime, so the set stays
// bounded by the number of logouts inside one token window.
type Denylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

const denylistKeyPrefix = "auth:denylist:"

// RedisDenylist is the Redis-backed Denylist used in production.
type RedisDenylist struct {
	client *redis.Client
}

// NewRedisDenylist wraps an existing client.
func NewRedisDenylist(client *redis.Client) *RedisDenylist {
	return &RedisDenylist{client: client}
}

// Revoke marks the token id revoked for the given remaining lifetime.
// Non-positive TTLs mean the token already expired; nothing to record.
func (d *RedisDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return d.client.Set(ctx, denylistKeyPrefix+tokenID, "1", ttl).Err()
}

// IsRevoked reports whether the token id is present. Backend errors are
// returned to the caller, which must fail closed.
func (d *RedisDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.client.Exists(ctx, denylistKeyPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
