package repo

import (
	"context"
	"time"
)

// TokenRepo is the revocation store: a TTL-keyed denylist of token IDs.
// Implementations must fail closed — an unreachable backend surfaces
// ErrServiceUnavailable instead of answering "not blacklisted".
type TokenRepo interface {
	Blacklist(ctx context.Context, jti string, expiresAt time.Time) error

	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}
