package project

import (
	"crypto/sha256"
)

// Digest is a 256-bit content hash, compatible with source.File.Hash.
type Digest [32]byte

// Sum hashes raw content.
func Sum(content []byte) Digest {
	return Digest(sha256.Sum256(content))
}

// Combine builds an output fingerprint: H(content || dep1 || dep2 ...).
// Callers pass deps in a fixed order.
func Combine(content Digest, deps ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range deps {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
