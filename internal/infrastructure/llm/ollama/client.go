package ollama

import (
	"net/http"
	"strings"
	"time"

	"github.com/rocklab/geoqa/internal/infrastructure/resilience"
)

// Client talks to a local Ollama server. It backs both the delegated
// decision strategy and the answer generator; every call goes through
// the shared resilience executor.
type Client struct {
	baseURL    string
	genModel   string
	httpClient *http.Client
	exec       *resilience.Executor
}

func New(baseURL, genModel string, exec *resilience.Executor) *Client {
	if exec == nil {
		exec = resilience.NewExecutor(resilience.DefaultConfig(), nil)
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		genModel:   genModel,
		httpClient: &http.Client{Timeout: 120 * time.Second},
		exec:       exec,
	}
}

func extractJSONObject(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		return raw[start : end+1]
	}
	return raw
}
