package service

import (
	"hash/fnv"
	"math"
	"strings"
	"unicode"

	"github.com/pageza/pantrychef/backend/internal/model"
	pgvector "github.com/pgvector/pgvector-go"
)

// GenerateEmbedding returns a deterministic bag-of-words embedding: each
// lower-cased word is hashed into one of model.EmbeddingDimensions buckets and
// the counts are normalized to unit length. Text without words yields the
// zero vector.
func GenerateEmbedding(text string) pgvector.Vector {
	vec := make([]float32, model.EmbeddingDimensions)
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		h := fnv.New32a()
		h.Write([]byte(w))
		vec[h.Sum32()%model.EmbeddingDimensions]++
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		n := float32(math.Sqrt(norm))
		for i := range vec {
			vec[i] /= n
		}
	}
	return pgvector.NewVector(vec)
}
