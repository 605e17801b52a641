package index

import (
	"context"
	"testing"

	"github.com/rocklab/geoqa/internal/embedding/hashed"
)

func TestRetrieverEmptyQuery(t *testing.T) {
	r := NewRetriever(buildIndex(t), DefaultTopK)
	for _, query := range []string{"", "   ", "\n\t"} {
		hits, err := r.Retrieve(context.Background(), query, 3)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", query, err)
		}
		if len(hits) != 0 {
			t.Fatalf("expected no hits for %q, got %d", query, len(hits))
		}
	}
}

func TestRetrieverDefaultsAndClampsK(t *testing.T) {
	r := NewRetriever(buildIndex(t), DefaultTopK)

	hits, err := r.Retrieve(context.Background(), "settlement", 0)
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if len(hits) != 3 {
		t.Fatalf("expected default top-k hits, got %d", len(hits))
	}

	hits, err = r.Retrieve(context.Background(), "settlement", 50)
	if err != nil {
		t.Fatalf("retrieve with oversized k: %v", err)
	}
	if len(hits) != 3 {
		t.Fatalf("expected k clamped to corpus size, got %d", len(hits))
	}
}

func TestRetrieverUnbuiltIndex(t *testing.T) {
	r := NewRetriever(New(hashed.New(hashed.DefaultDimension)), DefaultTopK)
	hits, err := r.Retrieve(context.Background(), "settlement", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 0 {
		t.Fatalf("expected no hits from an unbuilt index, got %d", len(hits))
	}
}
