package ports

import (
	"context"

	"github.com/rocklab/geoqa/internal/core/domain"
)

// Retriever turns a free-text query into ranked document hits. It must
// tolerate degenerate input: empty queries return an empty sequence.
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]domain.RetrievalHit, error)
}

// DocumentStore resolves hits back to documents for citations and
// response-backend snippets.
type DocumentStore interface {
	Get(id string) (domain.Document, bool)
	All() []domain.Document
}

// DecisionStrategy selects the capabilities a question needs. It never
// fails: a delegated strategy falls back internally.
type DecisionStrategy interface {
	Decide(ctx context.Context, question, questionContext string) domain.Decision
}

// ResponseGenerator synthesizes prose from retrieved text and tool
// results. Optional; on error the orchestrator falls back to its
// deterministic template.
type ResponseGenerator interface {
	GenerateAnswer(ctx context.Context, question string, contexts []domain.RetrievedContext, tools []domain.ToolInvocation) (string, error)
}

// QueryLogStore persists answered questions, best-effort.
type QueryLogStore interface {
	Insert(ctx context.Context, entry domain.QueryLogEntry) error
}

// RefreshBus distributes corpus refresh events between instances.
type RefreshBus interface {
	PublishRefresh(ctx context.Context, reason string) error
	SubscribeRefresh(ctx context.Context, handler func(context.Context, string) error) error
}
