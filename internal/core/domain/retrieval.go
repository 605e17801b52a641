package domain

// RetrievalHit is one ranked search result. Hits are produced fresh per
// query and never persisted.
type RetrievalHit struct {
	DocumentID string  `json:"document_id"`
	Score      float64 `json:"score"`
	Rank       int     `json:"rank"`
}

// Citation is a hit resolved against the document store for the final
// response payload.
type Citation struct {
	DocumentID string  `json:"document_id"`
	Title      string  `json:"title"`
	Score      float64 `json:"score"`
}

// RetrievedContext carries the retrieved text a response backend may
// synthesize prose from.
type RetrievedContext struct {
	DocumentID string  `json:"document_id"`
	Title      string  `json:"title"`
	Snippet    string  `json:"snippet"`
	Score      float64 `json:"score"`
}
