package port

// Embedder maps text to a fixed-length embedding vector.
type Embedder interface {
	// Embed generates the embedding for a single text. Provider errors
	// (network, auth, rate limit) are returned unchanged.
	Embed(text string) ([]float32, error)

	// Dimension returns the embedding vector dimension.
	Dimension() int

	// ModelName returns the name of the embedding model.
	ModelName() string
}
