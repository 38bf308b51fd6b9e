// Package hash derives short stable fingerprints for stored rules.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// IDLength is the number of hex characters kept from the digest.
const IDLength = 16

// TruncatedSHA256 returns the first IDLength hex characters of the SHA-256
// digest of data.
func TruncatedSHA256(data string) string {
	h := sha256.Sum256([]byte(data))
	return hex.EncodeToString(h[:])[:IDLength]
}
