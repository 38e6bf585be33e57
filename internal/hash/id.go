package hash

import (
	"encoding/hex"

	"github.com/cespare/xxhash/v2"
	"github.com/zeebo/blake3"
)

// ID computes the xxHash64 of the given string.
//
// Project documents store it per entry to detect entries edited out of band.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Digest returns the hex-encoded BLAKE3-256 digest of data.
func Digest(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
