package port

import "github.com/amilyk/TinyRAG/internal/domain"

// ChatModel answers a question grounded on retrieved context.
type ChatModel interface {
	// Chat interpolates the question and context into the backend's
	// prompt template, replays history, and returns the model's answer.
	// The history slice passed in is never mutated.
	Chat(question string, history []domain.Message, contextText string) (string, error)

	// Prompt returns the fully-formatted user turn for the given question
	// and context, exactly as Chat will send it.
	Prompt(question, contextText string) string

	// ModelName returns the name of the chat model.
	ModelName() string
}
