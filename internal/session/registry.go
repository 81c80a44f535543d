package session

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Registry tracks which accounts currently hold an authenticated session and
// which accounts have a credential recovery in flight. Recovery is refused for
// logged-in accounts, and the in-flight marker serializes concurrent recovery
// requests for one identity.
type Registry interface {
	Login(ctx context.Context, accountID string) error
	Logout(ctx context.Context, accountID string) error
	IsActive(ctx context.Context, accountID string) (bool, error)
	// BeginRecovery claims the per-identity recovery slot. It returns false if
	// another recovery for the same account is already in flight.
	BeginRecovery(ctx context.Context, accountID string) (bool, error)
	EndRecovery(ctx context.Context, accountID string) error
}

// RedisRegistry implements Registry on Redis keys with TTLs.
type RedisRegistry struct {
	cache      *redis.Client
	sessionTTL time.Duration
	guardTTL   time.Duration
}

// NewRedisRegistry builds the production session registry. guardTTL bounds how
// long a crashed persistence task can keep an identity's recovery slot claimed.
func NewRedisRegistry(cache *redis.Client, sessionTTL, guardTTL time.Duration) *RedisRegistry {
	return &RedisRegistry{cache: cache, sessionTTL: sessionTTL, guardTTL: guardTTL}
}

func sessionKey(accountID string) string { return "session:active:" + accountID }
func guardKey(accountID string) string   { return "recovery:inflight:" + accountID }

// Login marks the account as having an active authenticated session.
func (r *RedisRegistry) Login(ctx context.Context, accountID string) error {
	return r.cache.Set(ctx, sessionKey(accountID), 1, r.sessionTTL).Err()
}

// Logout clears the account's session marker.
func (r *RedisRegistry) Logout(ctx context.Context, accountID string) error {
	return r.cache.Del(ctx, sessionKey(accountID)).Err()
}

// IsActive reports whether the account currently holds a session.
func (r *RedisRegistry) IsActive(ctx context.Context, accountID string) (bool, error) {
	n, err := r.cache.Exists(ctx, sessionKey(accountID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// BeginRecovery claims the recovery slot with SET NX so racing requests for the
// same identity resolve to exactly one winner.
func (r *RedisRegistry) BeginRecovery(ctx context.Context, accountID string) (bool, error) {
	return r.cache.SetNX(ctx, guardKey(accountID), 1, r.guardTTL).Result()
}

// EndRecovery releases the recovery slot.
func (r *RedisRegistry) EndRecovery(ctx context.Context, accountID string) error {
	return r.cache.Del(ctx, guardKey(accountID)).Err()
}
