package usecase

import (
	"errors"
	"strings"
	"testing"

	"github.com/amilyk/TinyRAG/internal/adapter/embedding"
	"github.com/amilyk/TinyRAG/internal/adapter/store"
	"github.com/amilyk/TinyRAG/internal/domain"
)

// scriptedChat records what it is asked and returns a canned answer.
type scriptedChat struct {
	answer      string
	err         error
	gotQuestion string
	gotContext  string
	gotHistory  []domain.Message
}

func (c *scriptedChat) Chat(question string, history []domain.Message, contextText string) (string, error) {
	c.gotQuestion = question
	c.gotContext = contextText
	c.gotHistory = history
	if c.err != nil {
		return "", c.err
	}
	return c.answer, nil
}

func (c *scriptedChat) Prompt(question, contextText string) string {
	return "Q: " + question + "\nCTX: " + contextText
}

func (c *scriptedChat) ModelName() string { return "scripted" }

func newGroundedStore(t *testing.T, chunks []string) *store.MemoryStore {
	t.Helper()
	st := store.NewMemoryStore()
	st.SetChunks(chunks)
	if err := st.ComputeVectors(embedding.NewMockEmbedder(8), nil); err != nil {
		t.Fatal(err)
	}
	return st
}

func TestAskGroundsAnswerOnRetrievedChunks(t *testing.T) {
	st := newGroundedStore(t, []string{"refund policy is 30 days", "shipping takes a week"})
	chat := &scriptedChat{answer: "30 days"}

	uc := NewChatUseCase(st, embedding.NewMockEmbedder(8), chat, 2)

	answer, history, err := uc.Ask("refund policy is 30 days", nil)
	if err != nil {
		t.Fatal(err)
	}

	if answer != "30 days" {
		t.Errorf("answer = %q", answer)
	}
	if chat.gotQuestion != "refund policy is 30 days" {
		t.Errorf("question = %q", chat.gotQuestion)
	}

	// Both chunks concatenated in relevance order: the verbatim match first.
	lines := strings.Split(chat.gotContext, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 context chunks, got %d: %q", len(lines), chat.gotContext)
	}
	if lines[0] != "refund policy is 30 days" {
		t.Errorf("most similar chunk not first: %q", lines[0])
	}

	// History gains the formatted user turn and the assistant turn.
	if len(history) != 2 {
		t.Fatalf("expected 2 history turns, got %d", len(history))
	}
	if history[0].Role != domain.RoleUser || !strings.HasPrefix(history[0].Content, "Q: ") {
		t.Errorf("first turn is not the formatted user turn: %+v", history[0])
	}
	if history[1].Role != domain.RoleAssistant || history[1].Content != "30 days" {
		t.Errorf("second turn is not the assistant answer: %+v", history[1])
	}
}

func TestAskDoesNotMutateHistory(t *testing.T) {
	st := newGroundedStore(t, []string{"context chunk"})
	uc := NewChatUseCase(st, embedding.NewMockEmbedder(8), &scriptedChat{answer: "ok"}, 1)

	prior := []domain.Message{{Role: domain.RoleUser, Content: "earlier question"}}
	_, newHistory, err := uc.Ask("next question", prior)
	if err != nil {
		t.Fatal(err)
	}

	if len(prior) != 1 {
		t.Errorf("caller history mutated: %v", prior)
	}
	if len(newHistory) != 3 {
		t.Errorf("expected prior turn plus two new turns, got %d", len(newHistory))
	}
}

func TestAskEmptyStoreStillCallsModel(t *testing.T) {
	st := newGroundedStore(t, nil)
	chat := &scriptedChat{answer: "nothing to go on"}
	uc := NewChatUseCase(st, embedding.NewMockEmbedder(8), chat, 3)

	answer, _, err := uc.Ask("anything?", nil)
	if err != nil {
		t.Fatal(err)
	}
	if answer != "nothing to go on" {
		t.Errorf("answer = %q", answer)
	}
	if chat.gotContext != "" {
		t.Errorf("expected empty context, got %q", chat.gotContext)
	}
}

func TestAskPropagatesChatError(t *testing.T) {
	st := newGroundedStore(t, []string{"chunk"})
	uc := NewChatUseCase(st, embedding.NewMockEmbedder(8), &scriptedChat{err: errors.New("rate limited")}, 1)

	_, history, err := uc.Ask("q", nil)
	if err == nil {
		t.Fatal("expected chat error to propagate")
	}
	if len(history) != 0 {
		t.Errorf("history must be unchanged on error, got %v", history)
	}
}
