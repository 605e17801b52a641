// Package hashed provides a deterministic, in-process text embedder.
// Tokens are feature-hashed into a fixed-dimension vector with a
// sublinear (BM25-style) term-frequency weight, then L2-normalised so
// the inner product of two vectors is their cosine similarity.
package hashed

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// DefaultDimension is wide enough that token collisions stay rare for
// a curated corpus.
const DefaultDimension = 512

const (
	tfSaturation = 1.2
	titleBoost   = 1.5
)

var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "by": {}, "for": {}, "from": {}, "how": {}, "in": {},
	"is": {}, "it": {}, "of": {}, "on": {}, "or": {}, "the": {},
	"to": {}, "used": {}, "using": {}, "what": {}, "with": {},
}

type Embedder struct {
	dim int
}

func New(dim int) *Embedder {
	if dim <= 0 {
		dim = DefaultDimension
	}
	return &Embedder{dim: dim}
}

// Dimension is constant for the embedder's lifetime; document and
// query vectors always match.
func (e *Embedder) Dimension() int { return e.dim }

// Embed vectorises text. Empty or stopword-only text yields a zero
// vector rather than an error, so degenerate queries score zero
// everywhere instead of failing retrieval.
func (e *Embedder) Embed(_ context.Context, text string) ([]float32, error) {
	tf := make(map[int]float64, 64)
	e.accumulate(tf, text, 1.0)
	return e.vectorize(tf), nil
}

// EmbedDocument vectorises a document with its title tokens weighted
// above body tokens, so a query naming the document's subject ranks it
// ahead of documents that merely mention the terms.
func (e *Embedder) EmbedDocument(_ context.Context, title, body string) ([]float32, error) {
	tf := make(map[int]float64, 64)
	e.accumulate(tf, body, 1.0)
	e.accumulate(tf, title, titleBoost)
	return e.vectorize(tf), nil
}

func (e *Embedder) accumulate(tf map[int]float64, text string, tokenWeight float64) {
	for _, token := range tokenize(text) {
		tf[int(hashToken(token)%uint32(e.dim))] += tokenWeight
	}
}

func (e *Embedder) vectorize(tf map[int]float64) []float32 {
	vec := make([]float32, e.dim)
	if len(tf) == 0 {
		return vec
	}

	var norm float64
	for idx, count := range tf {
		weight := (count * (tfSaturation + 1.0)) / (count + tfSaturation)
		vec[idx] = float32(weight)
		norm += weight * weight
	}

	norm = math.Sqrt(norm)
	for idx := range vec {
		if vec[idx] != 0 {
			vec[idx] = float32(float64(vec[idx]) / norm)
		}
	}
	return vec
}

func hashToken(token string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(token))
	return h.Sum32()
}

func tokenize(s string) []string {
	if s == "" {
		return nil
	}
	out := make([]string, 0, 32)
	var b strings.Builder
	flush := func() {
		if b.Len() == 0 {
			return
		}
		token := b.String()
		b.Reset()
		if _, skip := stopwords[token]; !skip {
			out = append(out, token)
		}
	}
	for _, r := range s {
		r = unicode.ToLower(r)
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			continue
		}
		flush()
	}
	flush()
	return out
}
