package ports

import (
	"context"
	"time"
)

// SessionRevoker tracks session token IDs that were logged out before
// they expired.
type SessionRevoker interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
