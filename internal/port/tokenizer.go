package port

// Tokenizer measures text length in sub-word tokens.
type Tokenizer interface {
	// Count returns the encoded token length of text.
	Count(text string) int
}
