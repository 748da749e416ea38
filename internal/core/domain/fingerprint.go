package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Fingerprint derives the cache key for an indexed document.
//
// It hashes the raw file content together with every parameter that
// shapes the index: chunk size, chunk overlap and the embedding model.
// Any change to one of them produces a different fingerprint, so a
// cached snapshot can never be reused with incompatible parameters.
func Fingerprint(content []byte, chunkSize, chunkOverlap int, embeddingModel string) string {
	h := sha256.New()
	h.Write(content)
	fmt.Fprintf(h, "|size=%d|overlap=%d|model=%s", chunkSize, chunkOverlap, embeddingModel)
	return hex.EncodeToString(h.Sum(nil))
}
