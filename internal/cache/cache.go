package cache

import (
	"context"
	"time"
)

// DefaultSettingsTTL bounds how stale a cached settings record may be.
const DefaultSettingsTTL = 300 * time.Second

// settingsKeyPrefix namespaces cached settings records.
const settingsKeyPrefix = "store_settings:"

// Client is a key-value cache in front of the settings store. It is a
// performance layer only: a miss or a backend failure must fall
// through to the store and never be read as "no settings exist".
type Client interface {
	// Get returns the cached value and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Invalidate removes a single key.
	Invalidate(ctx context.Context, key string) error
	// InvalidateByPattern removes all keys matching a glob pattern.
	InvalidateByPattern(ctx context.Context, pattern string) error
}

// SettingsKey returns the cache key for a seller's settings record.
func SettingsKey(sellerID string) string {
	return settingsKeyPrefix + sellerID
}

// SettingsKeyPattern matches every cached settings record.
func SettingsKeyPattern() string {
	return settingsKeyPrefix + "*"
}
