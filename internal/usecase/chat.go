package usecase

import (
	"strings"

	"github.com/amilyk/TinyRAG/internal/domain"
	"github.com/amilyk/TinyRAG/internal/port"
)

// ChatUseCase answers questions grounded on the vector store: embed the
// question, retrieve the top-k chunks, format the prompt, call the chat
// model. Conversation history is treated as immutable; each turn returns a
// new slice.
type ChatUseCase struct {
	store    port.VectorStore
	embedder port.Embedder
	chat     port.ChatModel
	topK     int
}

func NewChatUseCase(
	store port.VectorStore,
	embedder port.Embedder,
	chat port.ChatModel,
	topK int,
) *ChatUseCase {
	if topK <= 0 {
		topK = 3
	}
	return &ChatUseCase{
		store:    store,
		embedder: embedder,
		chat:     chat,
		topK:     topK,
	}
}

// Ask retrieves context for question and asks the chat model. It returns the
// answer and a new history with the formatted user turn and the assistant
// turn appended. When retrieval finds nothing the model is still called with
// whatever (possibly empty) context there is.
func (u *ChatUseCase) Ask(question string, history []domain.Message) (string, []domain.Message, error) {
	results, err := u.store.Query(question, u.embedder, u.topK)
	if err != nil {
		return "", history, err
	}

	texts := make([]string, len(results))
	for i, r := range results {
		texts[i] = r.Text
	}
	contextText := strings.Join(texts, "\n")

	answer, err := u.chat.Chat(question, history, contextText)
	if err != nil {
		return "", history, err
	}

	newHistory := domain.AppendTurn(history, domain.Message{
		Role:    domain.RoleUser,
		Content: u.chat.Prompt(question, contextText),
	})
	newHistory = domain.AppendTurn(newHistory, domain.Message{
		Role:    domain.RoleAssistant,
		Content: answer,
	})

	return answer, newHistory, nil
}
