// Package cache holds analysis results locally so repeat lookups of the same
// product skip the backend entirely. The backend keeps its own URL cache;
// force_refresh bypasses both.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the storage interface shared by the memory and disk layers
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives the cache key for a product URL
func Key(productURL string) string {
	hash := sha256.Sum256([]byte(productURL))
	return "trustlens:v1:" + hex.EncodeToString(hash[:])
}
