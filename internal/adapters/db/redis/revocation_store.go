package redis

import (
	"context"
	"time"

	customErrors "github.com/Miraines/MoonyAndStarry/contacts-service/internal/domain/auth/errors"
	"github.com/redis/go-redis/v9"
)

// RevocationStore records blacklisted token IDs in redis with a TTL equal to
// the token's remaining lifetime. It fails closed: any redis failure is
// surfaced as ServiceUnavailable so callers never mistake "no answer" for
// "not blacklisted".
type RevocationStore struct {
	client  *redis.Client
	timeout time.Duration
}

func NewRevocationStore(client *redis.Client, timeout time.Duration) *RevocationStore {
	return &RevocationStore{
		client:  client,
		timeout: timeout,
	}
}

func (r *RevocationStore) Blacklist(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		// already past expiry, nothing left to deny
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.client.Set(ctx, "revoked:"+jti, "1", ttl).Err(); err != nil {
		return customErrors.WrapUnavailable(err, "Blacklist")
	}
	return nil
}

func (r *RevocationStore) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	count, err := r.client.Exists(ctx, "revoked:"+jti).Result()
	if err != nil {
		return false, customErrors.WrapUnavailable(err, "IsBlacklisted")
	}
	return count > 0, nil
}
