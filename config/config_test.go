package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Ingest.ChunkTokens <= 0 {
		t.Error("default chunk tokens must be positive")
	}
	if cfg.Ingest.ChunkOverlap >= cfg.Ingest.ChunkTokens {
		t.Error("default overlap must be smaller than chunk tokens")
	}
	if cfg.Tokenizer.Encoding == "" {
		t.Error("default tokenizer encoding missing")
	}
	if cfg.Embedding.Provider == "" || cfg.Chat.Provider == "" {
		t.Error("default providers missing")
	}
	if cfg.Chat.TopK <= 0 {
		t.Error("default top_k must be positive")
	}
	if cfg.Storage.Dir == "" {
		t.Error("default storage dir missing")
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Embedding.Model != DefaultConfig().Embedding.Model {
		t.Error("expected defaults for missing config file")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tinyrag.yaml")

	content := `
ingest:
  chunk_tokens: 256
  chunk_overlap: 32
embedding:
  provider: zhipu
  model: embedding-2
  api_key_env: ZHIPU_API_KEY
chat:
  provider: zhipu
  model: glm-4
  top_k: 5
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Ingest.ChunkTokens != 256 || cfg.Ingest.ChunkOverlap != 32 {
		t.Errorf("chunking not overridden: %+v", cfg.Ingest)
	}
	if cfg.Embedding.Provider != "zhipu" || cfg.Embedding.APIKeyEnv != "ZHIPU_API_KEY" {
		t.Errorf("embedding not overridden: %+v", cfg.Embedding)
	}
	if cfg.Chat.TopK != 5 {
		t.Errorf("top_k not overridden: %d", cfg.Chat.TopK)
	}

	// Untouched sections keep their defaults.
	if cfg.Storage.Dir != DefaultConfig().Storage.Dir {
		t.Errorf("storage dir should keep default, got %s", cfg.Storage.Dir)
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("ingest: [not a map"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestLoadFromDir(t *testing.T) {
	dir := t.TempDir()

	// No config anywhere: defaults.
	cfg, err := LoadFromDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Chat.Model != DefaultConfig().Chat.Model {
		t.Error("expected defaults when no config file exists")
	}

	// tinyrag.yaml in the directory wins.
	if err := os.WriteFile(filepath.Join(dir, "tinyrag.yaml"), []byte("chat:\n  model: glm-4\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadFromDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Chat.Model != "glm-4" {
		t.Errorf("expected tinyrag.yaml to be loaded, got model %s", cfg.Chat.Model)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")

	cfg := DefaultConfig()
	cfg.Chat.Model = "deepseek-chat"
	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Chat.Model != "deepseek-chat" {
		t.Errorf("round trip lost override: %s", loaded.Chat.Model)
	}
}

func TestStoreDir(t *testing.T) {
	cfg := DefaultConfig()

	got := StoreDir("/work", cfg)
	if got != filepath.Join("/work", ".tinyrag") {
		t.Errorf("StoreDir = %s", got)
	}

	cfg.Storage.Dir = "/absolute/store"
	if got := StoreDir("/work", cfg); got != "/absolute/store" {
		t.Errorf("absolute storage dir not honored: %s", got)
	}
}
