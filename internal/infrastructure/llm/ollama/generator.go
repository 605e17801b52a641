package ollama

import (
	"context"

	"github.com/rocklab/geoqa/internal/core/domain"
)

// Backend exposes raw JSON-mode completion for the delegated decision
// strategy.
type Backend struct {
	client *Client
}

func NewBackend(client *Client) *Backend {
	return &Backend{client: client}
}

func (b *Backend) Complete(ctx context.Context, prompt string) (string, error) {
	raw, err := b.client.generateJSON(ctx, "decide", prompt)
	if err != nil {
		return "", err
	}
	return extractJSONObject(raw), nil
}

// Generator produces the final prose answer from retrieved passages
// and tool outputs.
type Generator struct {
	client *Client
}

func NewGenerator(client *Client) *Generator {
	return &Generator{client: client}
}

func (g *Generator) GenerateAnswer(ctx context.Context, question string, contexts []domain.RetrievedContext, tools []domain.ToolInvocation) (string, error) {
	return g.client.generateText(ctx, "generate", buildAnswerPrompt(question, contexts, tools))
}
