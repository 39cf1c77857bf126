package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/amilyk/TinyRAG/internal/domain"
)

// OpenAIChat answers questions through any OpenAI-compatible chat-completions
// endpoint. The backend decides which prompt template is used.
type OpenAIChat struct {
	client   *openai.Client
	model    string
	template string
}

func NewOpenAIChat(apiKey, model string) *OpenAIChat {
	return NewCompatibleChat(apiKey, model, "https://api.openai.com/v1", OpenAITemplate)
}

func NewDeepSeekChat(apiKey, model string) *OpenAIChat {
	return NewCompatibleChat(apiKey, model, "https://api.deepseek.com/v1", OpenAITemplate)
}

func NewZhipuChat(apiKey, model string) *OpenAIChat {
	return NewCompatibleChat(apiKey, model, "https://open.bigmodel.cn/api/paas/v4", ZhipuTemplate)
}

func NewOllamaChat(model, baseURL string) *OpenAIChat {
	if baseURL == "" {
		baseURL = "http://localhost:11434/v1"
	}
	return NewCompatibleChat("ollama", model, baseURL, ZhipuTemplate)
}

// NewCompatibleChat builds a chat model for an arbitrary OpenAI-compatible
// endpoint with an explicit prompt template.
func NewCompatibleChat(apiKey, model, baseURL, template string) *OpenAIChat {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &OpenAIChat{
		client:   openai.NewClientWithConfig(cfg),
		model:    model,
		template: template,
	}
}

// Chat formats the grounded prompt, replays the conversation history, and
// returns the model's answer. history is copied, never mutated.
func (c *OpenAIChat) Chat(question string, history []domain.Message, contextText string) (string, error) {
	prompt := c.Prompt(question, contextText)

	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	for _, m := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	resp, err := c.client.CreateChatCompletion(context.Background(), openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion returned for model %s", c.model)
	}

	return resp.Choices[0].Message.Content, nil
}

// Prompt returns the fully-formatted user turn Chat will send.
func (c *OpenAIChat) Prompt(question, contextText string) string {
	return FormatPrompt(c.template, question, contextText)
}

func (c *OpenAIChat) ModelName() string {
	return c.model
}
