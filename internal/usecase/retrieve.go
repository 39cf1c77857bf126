package usecase

import (
	"github.com/amilyk/TinyRAG/internal/domain"
	"github.com/amilyk/TinyRAG/internal/port"
)

// RetrieveUseCase runs similarity search without a chat call, for inspecting
// what the pipeline would ground an answer on.
type RetrieveUseCase struct {
	store    port.VectorStore
	embedder port.Embedder
}

func NewRetrieveUseCase(store port.VectorStore, embedder port.Embedder) *RetrieveUseCase {
	return &RetrieveUseCase{
		store:    store,
		embedder: embedder,
	}
}

// Retrieve returns the top-k chunks most similar to the query.
func (u *RetrieveUseCase) Retrieve(query string, topK int) ([]domain.ScoredChunk, error) {
	return u.store.Query(query, u.embedder, topK)
}
