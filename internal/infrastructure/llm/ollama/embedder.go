package ollama

import (
	"context"
	"fmt"
)

// Embedder vectorises text through the Ollama embeddings API. It can
// replace the default hashed embedder by configuration; the index
// requires a constant dimension, which the model guarantees.
type Embedder struct {
	client *Client
	model  string
}

func NewEmbedder(client *Client, model string) *Embedder {
	return &Embedder{client: client, model: model}
}

func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	request := map[string]any{
		"model": e.model,
		"input": []string{text},
	}

	var response struct {
		Embeddings [][]float32 `json:"embeddings"`
	}
	err := e.client.exec.Do(ctx, "embed", classifyError, func(ctx context.Context) error {
		return e.client.postJSON(ctx, "/api/embed", request, &response, "embed")
	})
	if err != nil {
		return nil, wrapUnavailable("embed", err)
	}
	if len(response.Embeddings) == 0 || len(response.Embeddings[0]) == 0 {
		return nil, fmt.Errorf("embed: empty embedding result")
	}
	return response.Embeddings[0], nil
}
