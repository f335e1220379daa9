// Package fingerprint provides a local, embedded vector store of
// feature-hashed strings, backing the entropy engine's cross-run "seen
// this token before" search. It replaces a networked vector database with
// an on-disk sqlite-vec store, since the engine this serves must run
// entirely locally.
package fingerprint

import (
	"crypto/sha256"
	"encoding/binary"
	"math"
	"math/rand"
)

// Dimensions is the fixed feature-vector length every fingerprint uses.
const Dimensions = 64

// FeatureHash deterministically maps s to a unit-normalized float32 vector.
// Seeds are drawn from a SHA-256 digest of s, the same technique the
// teacher's hash-based embedding service uses, scaled down from full
// semantic embeddings to a small fingerprint suited to exact/near-exact
// "have I flagged this token before" lookups rather than semantic search.
func FeatureHash(s string) []float32 {
	digest := sha256.Sum256([]byte(s))

	vec := make([]float32, Dimensions)
	seeds := []int64{
		int64(binary.BigEndian.Uint64(digest[0:8])),
		int64(binary.BigEndian.Uint64(digest[8:16])),
		int64(binary.BigEndian.Uint64(digest[16:24])),
		int64(binary.BigEndian.Uint64(digest[24:32])),
	}

	segment := Dimensions / len(seeds)
	for i, seed := range seeds {
		rng := rand.New(rand.NewSource(seed))
		start := i * segment
		end := start + segment
		if i == len(seeds)-1 {
			end = Dimensions
		}
		for j := start; j < end; j++ {
			vec[j] = float32(rng.NormFloat64())
		}
	}

	return normalize(vec)
}

func normalize(v []float32) []float32 {
	var sumSquares float64
	for _, x := range v {
		sumSquares += float64(x) * float64(x)
	}
	norm := math.Sqrt(sumSquares)
	if norm == 0 {
		return v
	}
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out
}
