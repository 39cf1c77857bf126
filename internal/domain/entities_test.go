package domain

import "testing"

func TestAppendTurnDoesNotMutate(t *testing.T) {
	history := make([]Message, 0, 4) // spare capacity invites aliasing bugs
	history = append(history, Message{Role: RoleUser, Content: "first"})

	h1 := AppendTurn(history, Message{Role: RoleAssistant, Content: "one"})
	h2 := AppendTurn(history, Message{Role: RoleAssistant, Content: "two"})

	if len(history) != 1 {
		t.Errorf("input history mutated: %v", history)
	}
	if h1[1].Content != "one" || h2[1].Content != "two" {
		t.Errorf("histories alias each other: %v %v", h1, h2)
	}
}
