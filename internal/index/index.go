// Package index holds the in-memory embedding index. The index value
// is copy-on-write: a rebuild constructs a complete new snapshot off to
// the side and publishes it with a single atomic pointer store, so
// concurrent readers never observe a partial index.
package index

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/rocklab/geoqa/internal/core/domain"
)

// Embedder vectorises text. The same embedder is used for documents at
// build time and for queries at search time, and its dimension must be
// constant.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// DocumentEmbedder is an optional upgrade: embedders that distinguish
// title from body tokens implement it, and Rebuild prefers it.
type DocumentEmbedder interface {
	EmbedDocument(ctx context.Context, title, body string) ([]float32, error)
}

type snapshot struct {
	docs    []domain.Document
	vectors [][]float32
	dim     int
}

type Index struct {
	embedder Embedder
	current  atomic.Pointer[snapshot]
}

func New(embedder Embedder) *Index {
	return &Index{embedder: embedder}
}

// Rebuild embeds every document and atomically swaps in the new
// snapshot. On error the previous snapshot, if any, stays published.
func (ix *Index) Rebuild(ctx context.Context, docs []domain.Document) error {
	if len(docs) == 0 {
		return domain.WrapError(domain.ErrConfiguration, "build index", fmt.Errorf("corpus is empty"))
	}

	snap := &snapshot{
		docs:    append([]domain.Document(nil), docs...),
		vectors: make([][]float32, len(docs)),
	}
	docEmbedder, boostTitles := ix.embedder.(DocumentEmbedder)
	for i, doc := range snap.docs {
		var vec []float32
		var err error
		if boostTitles {
			vec, err = docEmbedder.EmbedDocument(ctx, doc.Title, doc.Body)
		} else {
			vec, err = ix.embedder.Embed(ctx, doc.Title+"\n"+doc.Body)
		}
		if err != nil {
			return domain.WrapError(domain.ErrConfiguration, "build index",
				fmt.Errorf("embed document %s: %w", doc.ID, err))
		}
		if i == 0 {
			snap.dim = len(vec)
		} else if len(vec) != snap.dim {
			return domain.WrapError(domain.ErrConfiguration, "build index",
				fmt.Errorf("document %s: dimension %d, want %d", doc.ID, len(vec), snap.dim))
		}
		snap.vectors[i] = vec
	}

	ix.current.Store(snap)
	return nil
}

// Size returns the number of indexed documents, zero before the first
// rebuild.
func (ix *Index) Size() int {
	snap := ix.current.Load()
	if snap == nil {
		return 0
	}
	return len(snap.docs)
}

// Search embeds the query with the build-time embedder and returns the
// k most similar documents, best first. Deterministic for identical
// inputs; score ties resolve to the earlier document in corpus order.
func (ix *Index) Search(ctx context.Context, query string, k int) ([]domain.RetrievalHit, error) {
	snap := ix.current.Load()
	if snap == nil {
		return nil, domain.WrapError(domain.ErrRetrieval, "search", fmt.Errorf("index not built"))
	}
	if k < 1 || k > len(snap.docs) {
		return nil, domain.WrapError(domain.ErrValidation, "search",
			fmt.Errorf("k must be in [1,%d], got %d", len(snap.docs), k))
	}

	queryVec, err := ix.embedder.Embed(ctx, query)
	if err != nil {
		return nil, domain.WrapError(domain.ErrRetrieval, "search", fmt.Errorf("embed query: %w", err))
	}
	if len(queryVec) != snap.dim {
		return nil, domain.WrapError(domain.ErrRetrieval, "search",
			fmt.Errorf("query dimension %d, want %d", len(queryVec), snap.dim))
	}

	type scored struct {
		pos   int
		score float64
	}
	candidates := make([]scored, len(snap.docs))
	for i, vec := range snap.vectors {
		candidates[i] = scored{pos: i, score: dot(queryVec, vec)}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].pos < candidates[j].pos
	})

	hits := make([]domain.RetrievalHit, k)
	for i := 0; i < k; i++ {
		hits[i] = domain.RetrievalHit{
			DocumentID: snap.docs[candidates[i].pos].ID,
			Score:      candidates[i].score,
			Rank:       i + 1,
		}
	}
	return hits, nil
}

// Vectors are L2-normalised by the embedder, so the dot product is
// cosine similarity.
func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
