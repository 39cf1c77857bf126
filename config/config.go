package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the RAG pipeline.
type Config struct {
	Ingest    IngestConfig    `yaml:"ingest"`
	Tokenizer TokenizerConfig `yaml:"tokenizer"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Chat      ChatConfig      `yaml:"chat"`
	Storage   StorageConfig   `yaml:"storage"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// IngestConfig holds document discovery and chunking configuration.
type IngestConfig struct {
	Includes     []string `yaml:"includes"`
	Excludes     []string `yaml:"excludes"`
	ChunkTokens  int      `yaml:"chunk_tokens"`  // max tokens per chunk
	ChunkOverlap int      `yaml:"chunk_overlap"` // overlap tokens between chunks
}

// TokenizerConfig selects the token-counting backend.
type TokenizerConfig struct {
	Encoding string `yaml:"encoding"` // "cl100k_base" etc., or "approx" for offline heuristic
}

// EmbeddingConfig holds embedding provider configuration.
type EmbeddingConfig struct {
	Provider     string `yaml:"provider"`    // "openai", "deepseek", "zhipu", "ollama", "mock"
	Model        string `yaml:"model"`       // e.g., "text-embedding-3-small"
	APIKeyEnv    string `yaml:"api_key_env"` // Environment variable for API key
	BaseURL      string `yaml:"base_url"`    // Override for OpenAI-compatible endpoints
	Dimension    int    `yaml:"dimension"`
	CacheEnabled bool   `yaml:"cache_enabled"` // bbolt-backed embedding cache
}

// ChatConfig holds chat provider configuration.
type ChatConfig struct {
	Provider  string `yaml:"provider"` // "openai", "deepseek", "zhipu", "ollama"
	Model     string `yaml:"model"`
	APIKeyEnv string `yaml:"api_key_env"`
	BaseURL   string `yaml:"base_url"`
	TopK      int    `yaml:"top_k"` // retrieved chunks per question
}

// StorageConfig holds persistence configuration.
type StorageConfig struct {
	Dir string `yaml:"dir"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Ingest: IngestConfig{
			Includes:     []string{"**/*.txt", "**/*.text", "**/*.md", "**/*.markdown", "**/*.pdf"},
			Excludes:     []string{"**/node_modules/**", "**/vendor/**", "**/.git/**", "**/.tinyrag/**"},
			ChunkTokens:  600,
			ChunkOverlap: 150,
		},
		Tokenizer: TokenizerConfig{
			Encoding: "cl100k_base",
		},
		Embedding: EmbeddingConfig{
			Provider:     "openai",
			Model:        "text-embedding-3-small",
			APIKeyEnv:    "OPENAI_API_KEY",
			Dimension:    1536,
			CacheEnabled: true,
		},
		Chat: ChatConfig{
			Provider:  "openai",
			Model:     "gpt-4o-mini",
			APIKeyEnv: "OPENAI_API_KEY",
			TopK:      3,
		},
		Storage: StorageConfig{
			Dir: ".tinyrag",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for tinyrag.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "tinyrag.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".tinyrag", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// StoreDir returns the path to the persisted vector store.
func StoreDir(dir string, cfg *Config) string {
	if filepath.IsAbs(cfg.Storage.Dir) {
		return cfg.Storage.Dir
	}
	return filepath.Join(dir, cfg.Storage.Dir)
}

// CacheDBPath returns the path to the embedding cache database.
func CacheDBPath(dir string, cfg *Config) string {
	return filepath.Join(StoreDir(dir, cfg), "cache.db")
}
