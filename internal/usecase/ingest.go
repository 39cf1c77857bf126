package usecase

import (
	"fmt"

	"github.com/amilyk/TinyRAG/internal/port"
)

// IngestUseCase runs the ingestion pipeline: discover files, read content,
// chunk, embed, persist. Any error aborts the whole run and surfaces to the
// caller; there are no retries and no partial-failure recovery.
type IngestUseCase struct {
	walker   port.FileWalker
	reader   port.ContentReader
	chunker  port.Chunker
	store    port.VectorStore
	embedder port.Embedder
}

func NewIngestUseCase(
	walker port.FileWalker,
	reader port.ContentReader,
	chunker port.Chunker,
	store port.VectorStore,
	embedder port.Embedder,
) *IngestUseCase {
	return &IngestUseCase{
		walker:   walker,
		reader:   reader,
		chunker:  chunker,
		store:    store,
		embedder: embedder,
	}
}

// IngestResult summarizes an ingestion run.
type IngestResult struct {
	FilesRead       int
	ChunksCreated   int
	VectorsComputed int
}

// Ingest processes every discovered file under root and persists the
// resulting store to storeDir. onProgress, if non-nil, is called once per
// embedded chunk.
func (u *IngestUseCase) Ingest(root, storeDir string, onProgress func(done, total int)) (*IngestResult, error) {
	files, err := u.walker.Walk(root)
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	result := &IngestResult{}
	var chunks []string

	for _, path := range files {
		content, err := u.reader.Read(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		chunks = append(chunks, u.chunker.Chunk(content)...)
		result.FilesRead++
	}
	result.ChunksCreated = len(chunks)

	u.store.SetChunks(chunks)
	if err := u.store.ComputeVectors(u.embedder, onProgress); err != nil {
		return nil, err
	}
	result.VectorsComputed = len(chunks)

	if err := u.store.Persist(storeDir); err != nil {
		return nil, err
	}

	return result, nil
}
