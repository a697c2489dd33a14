package memory

import (
	"context"
	"sync"
	"time"
)

// SessionRevoker is the in-process revocation list used when no Redis
// address is configured. Expired records are pruned on every Revoke.
type SessionRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewSessionRevoker() *SessionRevoker {
	return &SessionRevoker{revoked: make(map[string]time.Time), now: time.Now}
}

func (r *SessionRevoker) Revoke(_ context.Context, tokenID string, until time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for id, exp := range r.revoked {
		if !exp.After(now) {
			delete(r.revoked, id)
		}
	}
	if until.After(now) {
		r.revoked[tokenID] = until
	}
	return nil
}

func (r *SessionRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	exp, ok := r.revoked[tokenID]
	return ok && exp.After(r.now()), nil
}
