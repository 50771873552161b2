package gateway

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// keyPreviewLen is the number of key characters shown in cache diagnostics.
const keyPreviewLen = 8

// Fingerprint returns the cache key for the exact query text: the xxhash64
// digest as 16 lowercase hex characters. No normalization is applied.
func Fingerprint(query string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(query))
}

// KeyPreview truncates a fingerprint for display.
func KeyPreview(key string) string {
	if len(key) <= keyPreviewLen {
		return key
	}
	return key[:keyPreviewLen] + "..."
}
