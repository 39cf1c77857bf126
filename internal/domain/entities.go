package domain

// ScoredChunk pairs a retrieved chunk with its similarity to the query.
type ScoredChunk struct {
	Index int     `json:"index"`
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// Message is one turn of a chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// AppendTurn returns a new history slice with msg appended. The input slice
// is left untouched so callers holding older histories are not aliased.
func AppendTurn(history []Message, msg Message) []Message {
	out := make([]Message, 0, len(history)+1)
	out = append(out, history...)
	return append(out, msg)
}
