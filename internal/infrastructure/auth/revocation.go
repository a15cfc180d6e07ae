package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionRevoker invalidates session tokens before they expire (logout)
type SessionRevoker interface {
	// Revoke marks a token's JTI as revoked; ttl is the token's remaining lifetime
	Revoke(ctx context.Context, jti string, ttl time.Duration) error

	// IsRevoked checks whether a token's JTI has been revoked
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// RedisSessionRevoker implements SessionRevoker using Redis.
// Entries expire with the token, so the store cleans up after itself.
type RedisSessionRevoker struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisSessionRevoker creates a revoker backed by an existing Redis client
func NewRedisSessionRevoker(client *redis.Client) *RedisSessionRevoker {
	return &RedisSessionRevoker{
		client:    client,
		keyPrefix: "session:revoked:",
	}
}

// Revoke marks a JTI as revoked until the token would have expired anyway
func (r *RedisSessionRevoker) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, r.keyPrefix+jti, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// IsRevoked checks whether a JTI has been revoked
func (r *RedisSessionRevoker) IsRevoked(ctx context.Context, jti string) (bool, error) {
	exists, err := r.client.Exists(ctx, r.keyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check session revocation: %w", err)
	}
	return exists > 0, nil
}

var _ SessionRevoker = (*RedisSessionRevoker)(nil)

// InMemorySessionRevoker is a process-local revoker for tests and
// single-instance deployments without Redis.
type InMemorySessionRevoker struct {
	mu      sync.RWMutex
	revoked map[string]time.Time // jti -> entry expiry
}

// NewInMemorySessionRevoker creates an in-memory session revoker
func NewInMemorySessionRevoker() *InMemorySessionRevoker {
	return &InMemorySessionRevoker{revoked: make(map[string]time.Time)}
}

// Revoke marks a JTI as revoked
func (r *InMemorySessionRevoker) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[jti] = time.Now().Add(ttl)
	return nil
}

// IsRevoked checks whether a JTI is revoked; expired entries are dropped
func (r *InMemorySessionRevoker) IsRevoked(_ context.Context, jti string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	expiry, ok := r.revoked[jti]
	if !ok {
		return false, nil
	}
	if time.Now().After(expiry) {
		delete(r.revoked, jti)
		return false, nil
	}
	return true, nil
}

var _ SessionRevoker = (*InMemorySessionRevoker)(nil)
