package corpus

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rocklab/geoqa/internal/core/domain"
)

// Store is the immutable document store. It is built once per process
// from a fixed ordered collection and never mutated afterwards.
type Store struct {
	docs []domain.Document
	byID map[string]domain.Document
}

func NewStore(docs []domain.Document) (*Store, error) {
	if len(docs) == 0 {
		return nil, domain.WrapError(domain.ErrConfiguration, "corpus", fmt.Errorf("no documents"))
	}
	byID := make(map[string]domain.Document, len(docs))
	for _, doc := range docs {
		if doc.ID == "" {
			return nil, domain.WrapError(domain.ErrConfiguration, "corpus", fmt.Errorf("document with empty id"))
		}
		if _, dup := byID[doc.ID]; dup {
			return nil, domain.WrapError(domain.ErrConfiguration, "corpus", fmt.Errorf("duplicate document id %q", doc.ID))
		}
		byID[doc.ID] = doc
	}
	return &Store{
		docs: append([]domain.Document(nil), docs...),
		byID: byID,
	}, nil
}

// Get returns the document with the given id.
func (s *Store) Get(id string) (domain.Document, bool) {
	doc, ok := s.byID[id]
	return doc, ok
}

// All returns the documents in their canonical load order.
func (s *Store) All() []domain.Document {
	return append([]domain.Document(nil), s.docs...)
}

func (s *Store) Len() int { return len(s.docs) }

type corpusFile struct {
	Documents []domain.Document `yaml:"documents"`
}

// LoadFile reads an ordered document collection from a YAML file. An
// empty path falls back to the built-in corpus.
func LoadFile(path string) ([]domain.Document, error) {
	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.WrapError(domain.ErrConfiguration, "load corpus", err)
	}
	var file corpusFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, domain.WrapError(domain.ErrConfiguration, "load corpus", fmt.Errorf("parse yaml: %w", err))
	}
	if len(file.Documents) == 0 {
		return nil, domain.WrapError(domain.ErrConfiguration, "load corpus", fmt.Errorf("%s contains no documents", path))
	}
	return file.Documents, nil
}
