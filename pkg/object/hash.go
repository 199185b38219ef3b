package object

import (
	"crypto/sha1"
	"encoding/hex"
)

// Hash is a 40-character hex-encoded SHA-1 digest.
type Hash string

// HashBytes computes the SHA-1 hash of data and returns it as a lowercase
// hex-encoded Hash. Objects are addressed by the digest of their raw
// content; there is no type envelope.
func HashBytes(data []byte) Hash {
	sum := sha1.Sum(data)
	return Hash(hex.EncodeToString(sum[:]))
}
