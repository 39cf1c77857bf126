package embedding

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIEmbedder talks to any OpenAI-compatible embeddings endpoint. The
// provider-specific constructors only differ in base URL and default
// dimension.
type OpenAIEmbedder struct {
	client    *openai.Client
	model     string
	dimension int
}

func NewOpenAIEmbedder(apiKey, model string) *OpenAIEmbedder {
	return NewCompatibleEmbedder(apiKey, model, "https://api.openai.com/v1", openAIDimension(model))
}

func NewDeepSeekEmbedder(apiKey, model string) *OpenAIEmbedder {
	return NewCompatibleEmbedder(apiKey, model, "https://api.deepseek.com/v1", 1536)
}

func NewZhipuEmbedder(apiKey, model string) *OpenAIEmbedder {
	return NewCompatibleEmbedder(apiKey, model, "https://open.bigmodel.cn/api/paas/v4", 1024)
}

func NewOllamaEmbedder(model, baseURL string) *OpenAIEmbedder {
	if baseURL == "" {
		baseURL = "http://localhost:11434/v1"
	}

	dimension := 768
	switch model {
	case "nomic-embed-text":
		dimension = 768
	case "mxbai-embed-large":
		dimension = 1024
	case "all-minilm":
		dimension = 384
	}

	return NewCompatibleEmbedder("ollama", model, baseURL, dimension)
}

// NewCompatibleEmbedder builds an embedder for an arbitrary OpenAI-compatible
// endpoint. Credentials are passed in explicitly; resolving them from the
// environment is the caller's job.
func NewCompatibleEmbedder(apiKey, model, baseURL string, dimension int) *OpenAIEmbedder {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &OpenAIEmbedder{
		client:    openai.NewClientWithConfig(cfg),
		model:     model,
		dimension: dimension,
	}
}

// Embed generates the embedding for a single text. The call blocks until the
// provider responds; provider errors surface to the caller with no retries.
func (e *OpenAIEmbedder) Embed(text string) ([]float32, error) {
	resp, err := e.client.CreateEmbeddings(context.Background(), openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(e.model),
		Input: []string{text},
	})
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}

	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("no embedding data returned for model %s", e.model)
	}

	return resp.Data[0].Embedding, nil
}

func (e *OpenAIEmbedder) Dimension() int {
	return e.dimension
}

func (e *OpenAIEmbedder) ModelName() string {
	return e.model
}

func openAIDimension(model string) int {
	switch model {
	case "text-embedding-3-large":
		return 3072
	case "text-embedding-3-small", "text-embedding-ada-002":
		return 1536
	default:
		return 1536
	}
}
