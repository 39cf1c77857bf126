package port

import "github.com/amilyk/TinyRAG/internal/domain"

// VectorStore holds chunks and their embedding vectors as two index-aligned
// sequences and answers top-k similarity queries over them.
type VectorStore interface {
	// SetChunks replaces the stored chunk sequence and drops any vectors.
	SetChunks(chunks []string)

	// ComputeVectors embeds every chunk in order, one call per chunk.
	// The first provider error aborts the run; vectors computed so far
	// are kept (no rollback). onProgress may be nil.
	ComputeVectors(embedder Embedder, onProgress func(done, total int)) error

	// Persist writes the chunk and vector sequences under dir,
	// overwriting any existing artifacts.
	Persist(dir string) error

	// Load replaces all in-memory state from the artifacts under dir.
	Load(dir string) error

	// Query embeds the query text and returns the k most similar chunks,
	// most similar first. k larger than the stored count is clamped.
	Query(text string, embedder Embedder, k int) ([]domain.ScoredChunk, error)

	Count() int
}
