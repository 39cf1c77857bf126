package embedding

// MockEmbedder produces deterministic vectors from rune values. It exists so
// the pipeline can run end to end without an API key.
type MockEmbedder struct {
	dimension int
}

func NewMockEmbedder(dimension int) *MockEmbedder {
	return &MockEmbedder{dimension: dimension}
}

func (e *MockEmbedder) Embed(text string) ([]float32, error) {
	vec := make([]float32, e.dimension)
	for i, r := range text {
		vec[i%e.dimension] += float32(r) / 1000.0
	}
	return vec, nil
}

func (e *MockEmbedder) Dimension() int {
	return e.dimension
}

func (e *MockEmbedder) ModelName() string {
	return "mock"
}
