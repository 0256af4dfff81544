// Package cache stores fetched remote payloads (dataset listings, reaction
// summary documents) so repeated runs do not re-hit the service.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for payload caching.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key builds a namespaced cache key. kind names the payload family
// (e.g. "datasets", "summary"), ref identifies the payload within it.
func Key(kind, ref string) string {
	hash := sha256.Sum256([]byte(ref))
	return "ordscan:v1:" + kind + ":" + hex.EncodeToString(hash[:])
}
