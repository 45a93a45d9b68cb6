package semantic

import (
	"crypto/sha256"
	"encoding/binary"
	"math"

	"jobproof/internal/textutil"
)

// DefaultModelID names the built-in hashing embedder. The id participates in
// cache keys, so bump it when the embedding scheme changes.
const DefaultModelID = "hashing-v1"

// DefaultDimensions is the embedding vector length for the hashing embedder.
const DefaultDimensions = 256

// Embedder converts normalized text into a fixed-dimension vector.
// Implementations must be pure: equal text yields equal vectors.
type Embedder interface {
	Embed(text string) []float64
	ModelID() string
	Dimensions() int
}

// HashEmbedder is a deterministic stand-in for a real embedding model. Each
// token is hashed and scattered into a fixed number of buckets with a
// hash-derived sign; the resulting vector is L2-normalized.
type HashEmbedder struct {
	modelID string
	dims    int
}

// NewHashEmbedder builds a HashEmbedder. Zero or negative dims falls back to
// DefaultDimensions; an empty model id falls back to DefaultModelID.
func NewHashEmbedder(modelID string, dims int) *HashEmbedder {
	if modelID == "" {
		modelID = DefaultModelID
	}
	if dims <= 0 {
		dims = DefaultDimensions
	}
	return &HashEmbedder{modelID: modelID, dims: dims}
}

// ModelID returns the embedder's model identifier.
func (e *HashEmbedder) ModelID() string { return e.modelID }

// Dimensions returns the embedding vector length.
func (e *HashEmbedder) Dimensions() int { return e.dims }

// Embed maps text to a deterministic unit vector. Text with no usable
// tokens yields the zero vector.
func (e *HashEmbedder) Embed(text string) []float64 {
	vec := make([]float64, e.dims)
	tokens := textutil.Tokenize(text)
	if len(tokens) == 0 {
		return vec
	}
	for _, token := range tokens {
		sum := sha256.Sum256([]byte(token))
		idx := int(binary.BigEndian.Uint32(sum[:4]) % uint32(e.dims))
		if sum[4]&1 == 0 {
			vec[idx]++
		} else {
			vec[idx]--
		}
	}
	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}

// Cosine computes cosine similarity between two vectors. Returns 0 when
// either vector is empty, dimensions mismatch, or either norm is zero.
func Cosine(a, b []float64) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
