package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// ContentKey returns the cache key for a document's raw bytes.
//
// The key is the SHA256 of the content alone. Path is accepted for call-site
// symmetry with the lint API but deliberately excluded from the hash: a moved
// or renamed file with identical bytes lints identically, so it should hit.
func ContentKey(path string, content []byte) string {
	_ = path
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
