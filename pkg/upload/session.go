package upload

import (
	"context"

	"mirrorbot-hq/tgmirror/pkg/cache"
)

// CacheSessionStore adapts the cache store to the SessionStore contract so
// upload sessions survive restarts alongside the mirrored entities.
type CacheSessionStore struct {
	store cache.Store
}

// NewCacheSessionStore returns a SessionStore backed by store.
func NewCacheSessionStore(store cache.Store) *CacheSessionStore {
	return &CacheSessionStore{store: store}
}

// Load returns the stored session credential, or cache.ErrNotFound.
func (s *CacheSessionStore) Load(ctx context.Context, botID int64) (string, error) {
	return s.store.GetSession(ctx, botID)
}

// Store saves the session credential, replacing any previous one.
func (s *CacheSessionStore) Store(ctx context.Context, botID int64, session string) error {
	return s.store.PutSession(ctx, botID, session)
}
