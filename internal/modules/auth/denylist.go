package auth

import (
	"context"
	"fmt"
	"time"

	pkgredis "github.com/pitchcraft/core/internal/pkg/redis"
)

const denylistKeyPrefix = "pitch:revoked_token:"

// Denylist records signed-out token ids in Redis until they would have
// expired anyway. It satisfies middleware.RevocationChecker.
type Denylist struct {
	rc *pkgredis.Client
}

func NewDenylist(rc *pkgredis.Client) *Denylist { return &Denylist{rc: rc} }

// Revoke marks a token id revoked for the remaining token lifetime.
func (d *Denylist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if jti == "" || ttl <= 0 {
		return nil
	}
	return d.rc.Set(ctx, denylistKeyPrefix+jti, "1", ttl)
}

// IsRevoked reports whether the token id has been signed out.
func (d *Denylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	exists, err := d.rc.Exists(ctx, denylistKeyPrefix+jti)
	if err != nil {
		return false, fmt.Errorf("denylist lookup: %w", err)
	}
	return exists, nil
}
