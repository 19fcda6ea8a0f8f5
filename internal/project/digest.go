package project

import "crypto/sha256"

// Digest is a content hash compatible with source.File.Hash, used to key
// the driver's cross-process disk cache and to combine a file's own
// content hash with the hashes of the inputs its queries read.
type Digest [32]byte

// Combine builds a composite hash H(content || dep1 || dep2 || ...). The
// order of deps must be deterministic for the result to be stable across
// runs — callers pass them pre-sorted.
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
