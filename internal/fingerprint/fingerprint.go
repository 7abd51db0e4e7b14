// Package fingerprint computes stable content digests used for upload
// deduplication.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
)

// Sum returns the lowercase hex SHA-256 digest of data. The encoding is
// fixed-width: leading zero nibbles are preserved, so equal-length digests
// never collide through truncation.
func Sum(data []byte) string {
	digest := sha256.Sum256(data)
	return hex.EncodeToString(digest[:])
}
