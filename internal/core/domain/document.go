package domain

// Document is one curated knowledge text. Documents are immutable and
// loaded once at startup; the body keeps its markdown headings because
// the embedder treats them as ordinary tokens.
type Document struct {
	ID    string   `json:"id" yaml:"id"`
	Title string   `json:"title" yaml:"title"`
	Body  string   `json:"body" yaml:"body"`
	Tags  []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}
