package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rocklab/geoqa/internal/core/domain"
)

func TestDefaultCorpus(t *testing.T) {
	docs := Default()
	if len(docs) != 6 {
		t.Fatalf("expected 6 curated documents, got %d", len(docs))
	}

	want := []string{
		"cpt_analysis_basics",
		"liquefaction_analysis",
		"settle3_help_overview",
		"cpt_correlations",
		"bearing_capacity_fundamentals",
		"settlement_calculation_methods",
	}
	for i, id := range want {
		if docs[i].ID != id {
			t.Fatalf("document %d: expected id %q, got %q", i, id, docs[i].ID)
		}
		if docs[i].Title == "" || docs[i].Body == "" {
			t.Fatalf("document %q has empty title or body", id)
		}
	}
}

func TestNewStoreValidation(t *testing.T) {
	if _, err := NewStore(nil); err == nil || !domain.IsKind(err, domain.ErrConfiguration) {
		t.Fatalf("expected configuration error for empty corpus, got %v", err)
	}

	dup := []domain.Document{
		{ID: "a", Title: "A", Body: "x"},
		{ID: "a", Title: "A again", Body: "y"},
	}
	if _, err := NewStore(dup); err == nil || !domain.IsKind(err, domain.ErrConfiguration) {
		t.Fatalf("expected configuration error for duplicate ids, got %v", err)
	}

	blank := []domain.Document{{ID: "", Title: "B", Body: "z"}}
	if _, err := NewStore(blank); err == nil || !domain.IsKind(err, domain.ErrConfiguration) {
		t.Fatalf("expected configuration error for empty id, got %v", err)
	}
}

func TestStoreLookup(t *testing.T) {
	store, err := NewStore(Default())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if store.Len() != 6 {
		t.Fatalf("expected 6 documents, got %d", store.Len())
	}

	doc, ok := store.Get("liquefaction_analysis")
	if !ok {
		t.Fatalf("expected liquefaction_analysis to resolve")
	}
	if doc.Title == "" {
		t.Fatalf("resolved document has empty title")
	}

	if _, ok := store.Get("missing"); ok {
		t.Fatalf("expected missing id to not resolve")
	}
}

func TestLoadFileDefaultsWithoutPath(t *testing.T) {
	docs, err := LoadFile("")
	if err != nil {
		t.Fatalf("load default corpus: %v", err)
	}
	if len(docs) != 6 {
		t.Fatalf("expected built-in corpus, got %d documents", len(docs))
	}
}

func TestLoadFileParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.yaml")
	payload := `documents:
  - id: sample_doc
    title: Sample
    body: sample body text
    tags: [cpt]
`
	if err := os.WriteFile(path, []byte(payload), 0o600); err != nil {
		t.Fatalf("write corpus file: %v", err)
	}

	docs, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load corpus file: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != "sample_doc" {
		t.Fatalf("unexpected documents %+v", docs)
	}
}

func TestLoadFileRejectsEmptyAndMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil || !domain.IsKind(err, domain.ErrConfiguration) {
		t.Fatalf("expected configuration error for missing file, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, []byte("documents: []\n"), 0o600); err != nil {
		t.Fatalf("write corpus file: %v", err)
	}
	if _, err := LoadFile(path); err == nil || !domain.IsKind(err, domain.ErrConfiguration) {
		t.Fatalf("expected configuration error for empty corpus, got %v", err)
	}
}
