package cli

import (
	"fmt"
	"os"

	"github.com/amilyk/TinyRAG/config"
	"github.com/amilyk/TinyRAG/internal/adapter/cache"
	"github.com/amilyk/TinyRAG/internal/adapter/embedding"
	"github.com/amilyk/TinyRAG/internal/adapter/llm"
	"github.com/amilyk/TinyRAG/internal/adapter/tokenizer"
	"github.com/amilyk/TinyRAG/internal/port"
)

func newTokenizer(cfg *config.Config) (port.Tokenizer, error) {
	if cfg.Tokenizer.Encoding == "approx" {
		return tokenizer.NewApprox(), nil
	}
	return tokenizer.NewTiktoken(cfg.Tokenizer.Encoding)
}

func resolveAPIKey(envName string) (string, error) {
	key := os.Getenv(envName)
	if key == "" {
		return "", fmt.Errorf("API key not found in environment variable: %s", envName)
	}
	return key, nil
}

// newEmbedder builds the configured embedding provider, wrapped in the
// persistent cache when enabled. The returned cleanup closes the cache.
func newEmbedder(cfg *config.Config, rootDir string) (port.Embedder, func(), error) {
	var embedder port.Embedder

	switch cfg.Embedding.Provider {
	case "mock":
		return embedding.NewMockEmbedder(cfg.Embedding.Dimension), func() {}, nil
	case "ollama":
		embedder = embedding.NewOllamaEmbedder(cfg.Embedding.Model, cfg.Embedding.BaseURL)
	case "openai", "deepseek", "zhipu":
		key, err := resolveAPIKey(cfg.Embedding.APIKeyEnv)
		if err != nil {
			return nil, nil, err
		}
		if cfg.Embedding.BaseURL != "" {
			embedder = embedding.NewCompatibleEmbedder(key, cfg.Embedding.Model, cfg.Embedding.BaseURL, cfg.Embedding.Dimension)
			break
		}
		switch cfg.Embedding.Provider {
		case "openai":
			embedder = embedding.NewOpenAIEmbedder(key, cfg.Embedding.Model)
		case "deepseek":
			embedder = embedding.NewDeepSeekEmbedder(key, cfg.Embedding.Model)
		case "zhipu":
			embedder = embedding.NewZhipuEmbedder(key, cfg.Embedding.Model)
		}
	default:
		return nil, nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Embedding.Provider)
	}

	if !cfg.Embedding.CacheEnabled {
		return embedder, func() {}, nil
	}

	if err := os.MkdirAll(config.StoreDir(rootDir, cfg), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create storage dir: %w", err)
	}
	embedCache, err := cache.OpenEmbedCache(config.CacheDBPath(rootDir, cfg))
	if err != nil {
		return nil, nil, err
	}

	return cache.NewCachedEmbedder(embedder, embedCache), func() { embedCache.Close() }, nil
}

// newChatModel builds the configured chat provider. The prompt template is
// tied to the provider family.
func newChatModel(cfg *config.Config) (port.ChatModel, error) {
	switch cfg.Chat.Provider {
	case "ollama":
		return llm.NewOllamaChat(cfg.Chat.Model, cfg.Chat.BaseURL), nil
	case "openai", "deepseek", "zhipu":
		key, err := resolveAPIKey(cfg.Chat.APIKeyEnv)
		if err != nil {
			return nil, err
		}
		switch cfg.Chat.Provider {
		case "openai":
			if cfg.Chat.BaseURL != "" {
				return llm.NewCompatibleChat(key, cfg.Chat.Model, cfg.Chat.BaseURL, llm.OpenAITemplate), nil
			}
			return llm.NewOpenAIChat(key, cfg.Chat.Model), nil
		case "deepseek":
			return llm.NewDeepSeekChat(key, cfg.Chat.Model), nil
		default:
			return llm.NewZhipuChat(key, cfg.Chat.Model), nil
		}
	default:
		return nil, fmt.Errorf("unsupported chat provider: %s", cfg.Chat.Provider)
	}
}
