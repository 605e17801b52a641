package index

import (
	"context"
	"strings"

	"github.com/rocklab/geoqa/internal/core/domain"
)

// DefaultTopK is the retrieval depth when the caller does not ask for
// a specific one.
const DefaultTopK = 3

// Retriever turns free-text queries into ranked hits. It is the
// lenient wrapper around the index: the orchestrator calls it
// unconditionally, so degenerate input degrades to an empty result set
// instead of an error.
type Retriever struct {
	index *Index
	topK  int
}

func NewRetriever(index *Index, topK int) *Retriever {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Retriever{index: index, topK: topK}
}

// Retrieve returns up to k hits, best first. Empty or whitespace-only
// queries yield an empty sequence; k is clamped to the corpus size.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int) ([]domain.RetrievalHit, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	if k <= 0 {
		k = r.topK
	}
	if size := r.index.Size(); size == 0 {
		return nil, nil
	} else if k > size {
		k = size
	}
	return r.index.Search(ctx, query, k)
}
