package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/amilyk/TinyRAG/internal/port"
)

var bucketEmbeddings = []byte("embeddings")

// EmbedCache persists embedding vectors in a bbolt database, keyed by model
// name and text content. Re-ingesting an unchanged corpus then costs no
// provider calls.
type EmbedCache struct {
	db *bbolt.DB
}

func OpenEmbedCache(path string) (*EmbedCache, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketEmbeddings)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache bucket: %w", err)
	}

	return &EmbedCache{db: db}, nil
}

func (c *EmbedCache) Close() error {
	return c.db.Close()
}

func cacheKey(model, text string) []byte {
	hash := sha256.Sum256([]byte(model + "\x00" + text))
	return []byte(hex.EncodeToString(hash[:]))
}

// Get returns the cached vector for text, if present.
func (c *EmbedCache) Get(model, text string) ([]float32, bool) {
	var vec []float32
	found := false

	c.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketEmbeddings).Get(cacheKey(model, text))
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, &vec); err != nil {
			return nil // treat corrupted entries as misses
		}
		found = true
		return nil
	})

	return vec, found
}

// Put stores the vector for text.
func (c *EmbedCache) Put(model, text string, vec []float32) error {
	data, err := json.Marshal(vec)
	if err != nil {
		return err
	}
	return c.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketEmbeddings).Put(cacheKey(model, text), data)
	})
}

// CachedEmbedder wraps an Embedder with the persistent cache. It satisfies
// port.Embedder, so callers cannot tell a hit from a provider call.
type CachedEmbedder struct {
	embedder port.Embedder
	cache    *EmbedCache
}

func NewCachedEmbedder(embedder port.Embedder, cache *EmbedCache) *CachedEmbedder {
	return &CachedEmbedder{
		embedder: embedder,
		cache:    cache,
	}
}

func (e *CachedEmbedder) Embed(text string) ([]float32, error) {
	if vec, hit := e.cache.Get(e.embedder.ModelName(), text); hit {
		return vec, nil
	}

	vec, err := e.embedder.Embed(text)
	if err != nil {
		return nil, err
	}

	if err := e.cache.Put(e.embedder.ModelName(), text, vec); err != nil {
		return nil, fmt.Errorf("failed to cache embedding: %w", err)
	}

	return vec, nil
}

func (e *CachedEmbedder) Dimension() int {
	return e.embedder.Dimension()
}

func (e *CachedEmbedder) ModelName() string {
	return e.embedder.ModelName()
}
