package store

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/amilyk/TinyRAG/internal/domain"
	"github.com/amilyk/TinyRAG/internal/port"
)

const (
	chunksFile  = "chunks.json"
	vectorsFile = "vectors.json"
)

// MemoryStore holds document chunks and their embedding vectors as two
// index-aligned slices. Search is a brute-force cosine scan, which is fine
// at the corpus sizes this pipeline targets. The store is owned by one
// process at a time; it does no locking.
type MemoryStore struct {
	chunks  []string
	vectors [][]float32
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// SetChunks replaces the stored chunk sequence and drops any vectors.
func (s *MemoryStore) SetChunks(chunks []string) {
	s.chunks = chunks
	s.vectors = nil
}

// ComputeVectors embeds every chunk in order, one provider call per chunk.
// The first error aborts the run and is returned unchanged; vectors computed
// before the failure stay in place.
func (s *MemoryStore) ComputeVectors(embedder port.Embedder, onProgress func(done, total int)) error {
	s.vectors = make([][]float32, 0, len(s.chunks))

	for i, chunk := range s.chunks {
		vec, err := embedder.Embed(chunk)
		if err != nil {
			return fmt.Errorf("failed to embed chunk %d: %w", i, err)
		}
		s.vectors = append(s.vectors, vec)
		if onProgress != nil {
			onProgress(i+1, len(s.chunks))
		}
	}

	return nil
}

// Persist writes the chunk and vector sequences as two JSON artifacts under
// dir, creating the directory if needed and overwriting unconditionally.
func (s *MemoryStore) Persist(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create storage dir: %w", err)
	}

	if err := writeJSON(filepath.Join(dir, chunksFile), s.chunks); err != nil {
		return fmt.Errorf("failed to persist chunks: %w", err)
	}
	if err := writeJSON(filepath.Join(dir, vectorsFile), s.vectors); err != nil {
		return fmt.Errorf("failed to persist vectors: %w", err)
	}

	return nil
}

// Load replaces all in-memory state from the artifacts under dir. A missing
// or malformed artifact is an error, as is a length mismatch between them.
func (s *MemoryStore) Load(dir string) error {
	var chunks []string
	if err := readJSON(filepath.Join(dir, chunksFile), &chunks); err != nil {
		return fmt.Errorf("failed to load chunks: %w", err)
	}

	var vectors [][]float32
	if err := readJSON(filepath.Join(dir, vectorsFile), &vectors); err != nil {
		return fmt.Errorf("failed to load vectors: %w", err)
	}

	if len(chunks) != len(vectors) {
		return fmt.Errorf("store corrupted: %d chunks but %d vectors", len(chunks), len(vectors))
	}

	s.chunks = chunks
	s.vectors = vectors
	return nil
}

// Query embeds the query text and returns the k most similar chunks, most
// similar first. Equal scores keep their original index order (stable sort).
// k beyond the stored count is clamped, not an error.
func (s *MemoryStore) Query(text string, embedder port.Embedder, k int) ([]domain.ScoredChunk, error) {
	queryVec, err := embedder.Embed(text)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	scored := make([]domain.ScoredChunk, len(s.vectors))
	for i, vec := range s.vectors {
		scored[i] = domain.ScoredChunk{
			Index: i,
			Text:  s.chunks[i],
			Score: Cosine(queryVec, vec),
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if k > len(scored) {
		k = len(scored)
	}
	if k < 0 {
		k = 0
	}

	return scored[:k], nil
}

// Count returns the number of stored chunks.
func (s *MemoryStore) Count() int {
	return len(s.chunks)
}

// Chunks returns the stored chunk sequence.
func (s *MemoryStore) Chunks() []string {
	return s.chunks
}

// Vectors returns the stored vector sequence.
func (s *MemoryStore) Vectors() [][]float32 {
	return s.vectors
}

// Cosine computes the cosine similarity between two vectors, accumulating in
// float64. Mismatched lengths or a zero-magnitude vector score 0.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func writeJSON(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}
	return nil
}
