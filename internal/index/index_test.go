package index

import (
	"context"
	"testing"

	"github.com/rocklab/geoqa/internal/core/domain"
	"github.com/rocklab/geoqa/internal/embedding/hashed"
)

func testDocs() []domain.Document {
	return []domain.Document{
		{ID: "liquefaction", Title: "Liquefaction Analysis", Body: "liquefaction cyclic resistance ratio factor of safety earthquake"},
		{ID: "settlement", Title: "Settlement Methods", Body: "immediate settlement consolidation elastic modulus foundation"},
		{ID: "bearing", Title: "Bearing Capacity", Body: "terzaghi bearing capacity factors friction angle footing"},
	}
}

func buildIndex(t *testing.T) *Index {
	t.Helper()
	ix := New(hashed.New(hashed.DefaultDimension))
	if err := ix.Rebuild(context.Background(), testDocs()); err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	return ix
}

func TestRebuildEmptyCorpusFails(t *testing.T) {
	ix := New(hashed.New(hashed.DefaultDimension))
	err := ix.Rebuild(context.Background(), nil)
	if err == nil {
		t.Fatalf("expected error for empty corpus")
	}
	if !domain.IsKind(err, domain.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if ix.Size() != 0 {
		t.Fatalf("expected empty index after failed rebuild, size %d", ix.Size())
	}
}

func TestSearchBeforeRebuildFails(t *testing.T) {
	ix := New(hashed.New(hashed.DefaultDimension))
	if _, err := ix.Search(context.Background(), "anything", 1); err == nil {
		t.Fatalf("expected error before first rebuild")
	}
}

func TestRebuildWeighsTitleTokens(t *testing.T) {
	docs := []domain.Document{
		{ID: "body_mention", Title: "Soil Response", Body: "cyclic loading of sands including liquefaction effects"},
		{ID: "title_match", Title: "Liquefaction Analysis", Body: "cyclic loading of sands under earthquakes"},
	}
	ix := New(hashed.New(hashed.DefaultDimension))
	if err := ix.Rebuild(context.Background(), docs); err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	hits, err := ix.Search(context.Background(), "liquefaction", 2)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if hits[0].DocumentID != "title_match" {
		t.Fatalf("expected title mention to outrank body mention, got %v", hits)
	}
}

func TestSearchRanksMostSimilarFirst(t *testing.T) {
	ix := buildIndex(t)

	hits, err := ix.Search(context.Background(), "terzaghi bearing capacity factors", 3)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) != 3 {
		t.Fatalf("expected 3 hits, got %d", len(hits))
	}
	if hits[0].DocumentID != "bearing" {
		t.Fatalf("expected bearing document first, got %q", hits[0].DocumentID)
	}
	for i, hit := range hits {
		if hit.Rank != i+1 {
			t.Fatalf("expected rank %d, got %d", i+1, hit.Rank)
		}
		if i > 0 && hits[i-1].Score < hit.Score {
			t.Fatalf("hits not sorted by score: %v", hits)
		}
	}
}

func TestSearchValidatesK(t *testing.T) {
	ix := buildIndex(t)
	for _, k := range []int{0, -1, 4} {
		_, err := ix.Search(context.Background(), "settlement", k)
		if err == nil {
			t.Fatalf("expected error for k=%d", k)
		}
		if !domain.IsKind(err, domain.ErrValidation) {
			t.Fatalf("expected validation error for k=%d, got %v", k, err)
		}
	}
}

func TestSearchDeterministic(t *testing.T) {
	ix := buildIndex(t)
	first, err := ix.Search(context.Background(), "settlement of a foundation", 3)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := ix.Search(context.Background(), "settlement of a foundation", 3)
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		for j := range first {
			if first[j] != again[j] {
				t.Fatalf("search not deterministic: %v vs %v", first, again)
			}
		}
	}
}

func TestSearchTieBreaksByCorpusOrder(t *testing.T) {
	ix := buildIndex(t)

	// A zero query vector scores zero against every document, so the
	// ordering must be exactly the corpus order.
	hits, err := ix.Search(context.Background(), "the of and", 3)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	want := []string{"liquefaction", "settlement", "bearing"}
	for i, id := range want {
		if hits[i].DocumentID != id {
			t.Fatalf("tie-break order wrong at %d: got %q want %q", i, hits[i].DocumentID, id)
		}
	}
}

func TestRebuildSwapsAtomically(t *testing.T) {
	ix := buildIndex(t)

	replacement := []domain.Document{
		{ID: "cpt", Title: "CPT Basics", Body: "cone penetration test tip resistance sleeve friction"},
	}
	if err := ix.Rebuild(context.Background(), replacement); err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if ix.Size() != 1 {
		t.Fatalf("expected size 1 after rebuild, got %d", ix.Size())
	}
	hits, err := ix.Search(context.Background(), "cone penetration test", 1)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if hits[0].DocumentID != "cpt" {
		t.Fatalf("expected cpt document after swap, got %q", hits[0].DocumentID)
	}
}
