package llm

import "strings"

// Prompt templates with {question} and {context} placeholders. Each chat
// backend family has its own wording; the constructors pick the right one.

// OpenAITemplate instructs instruction-tuned API models.
const OpenAITemplate = `Answer the question using only the context below. If the answer cannot be found in the context, say "I cannot answer this question from the provided documents". Always answer in the same language as the question.

Question: {question}

Context:
{context}

Helpful answer:`

// ZhipuTemplate keeps the reference wording used for Zhipu-family models,
// which respond better to the delimited layout.
const ZhipuTemplate = `Use the following context to answer the final question. If you do not know the answer, just say that you do not know; do not try to make up an answer. Always answer in the same language as the question.

Context:
---
{context}
---

Question: {question}
Helpful answer:`

// FormatPrompt interpolates question and context into a template. Retrieved
// chunks arrive already concatenated in relevance order; an empty context is
// interpolated as-is, there is no "no results" short circuit.
func FormatPrompt(template, question, contextText string) string {
	return strings.NewReplacer(
		"{question}", question,
		"{context}", contextText,
	).Replace(template)
}
