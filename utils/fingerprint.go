package utils

import "hash/fnv"

// FingerprintString returns a stable 64-bit fnv-1a hash of s. Used as the
// prepared-statement cache key.
func FingerprintString(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}
