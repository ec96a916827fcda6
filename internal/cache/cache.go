// Package cache caches raw LLM responses so an interrupted run can be
// re-issued without paying again for chunks that already completed.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the interface shared by the memory, disk and layered caches.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives the cache key for one LLM request. Provider, model and
// the full prompt all participate, so a model or prompt change never
// replays a stale response.
func Key(provider, model, prompt string) string {
	hash := sha256.Sum256([]byte(provider + "\x00" + model + "\x00" + prompt))
	return "extract_terms:v1:" + hex.EncodeToString(hash[:])
}
