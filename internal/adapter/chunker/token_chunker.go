package chunker

import (
	"strings"
	"unicode"

	"github.com/amilyk/TinyRAG/internal/port"
)

// whitespaceWindow bounds how far the oversized-line splitter searches for a
// whitespace cut point before falling back to a hard cut.
const whitespaceWindow = 30

// TokenChunker splits document text into overlapping chunks of at most
// maxTokens tokens, measured by the injected tokenizer. Consecutive chunks
// overlap by the trailing runes of the previous chunk so context survives
// chunk boundaries.
type TokenChunker struct {
	maxTokens int
	overlap   int
	tokenizer port.Tokenizer
}

func NewTokenChunker(maxTokens, overlap int, tokenizer port.Tokenizer) *TokenChunker {
	if maxTokens <= 0 {
		maxTokens = 600
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxTokens {
		overlap = maxTokens / 4
	}
	return &TokenChunker{
		maxTokens: maxTokens,
		overlap:   overlap,
		tokenizer: tokenizer,
	}
}

// Chunk splits text line by line into overlapping chunks. Fully empty input
// yields no chunks.
func (c *TokenChunker) Chunk(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	budget := c.maxTokens - c.overlap
	var chunks []string
	var buf strings.Builder
	bufTokens := 0

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		lineTokens := c.tokenizer.Count(line)

		if lineTokens > c.maxTokens {
			// A single line over the whole chunk budget: flush what we
			// have and split the line itself into budget-sized segments.
			seed := ""
			if buf.Len() > 0 {
				flushed := buf.String()
				chunks = append(chunks, flushed)
				seed = tailRunes(flushed, c.overlap)
				buf.Reset()
			}

			segs := c.splitLine(line, seed)
			chunks = append(chunks, segs[:len(segs)-1]...)

			// The final segment stays in the buffer so following short
			// lines can accumulate onto it. It is emitted exactly once.
			last := segs[len(segs)-1]
			buf.WriteString(last)
			buf.WriteString("\n")
			bufTokens = c.tokenizer.Count(last)
			continue
		}

		// The counter tracks line token lengths only; the joining newlines
		// are not billed against the budget.
		if bufTokens+lineTokens < budget {
			buf.WriteString(line)
			buf.WriteString("\n")
			bufTokens += lineTokens
			continue
		}

		// Flush and seed the next buffer with the overlap tail.
		flushed := buf.String()
		if flushed != "" {
			chunks = append(chunks, flushed)
		}
		seed := tailRunes(flushed, c.overlap)
		buf.Reset()
		buf.WriteString(seed)
		buf.WriteString(line)
		buf.WriteString("\n")
		bufTokens = c.tokenizer.Count(seed) + lineTokens
	}

	if buf.Len() > 0 {
		chunks = append(chunks, buf.String())
	}

	return chunks
}

// splitLine splits one oversized line into segments of roughly
// maxTokens-overlap tokens each. Every segment starts with the trailing
// overlap runes of its predecessor (or the supplied seed for the first).
func (c *TokenChunker) splitLine(line, seed string) []string {
	budget := c.maxTokens - c.overlap
	runes := []rune(line)
	var segs []string

	start := 0
	for start < len(runes) {
		end := c.sliceEnd(runes, start, budget)
		if end < len(runes) {
			end = adjustToWhitespace(runes, start, end)
		}
		seg := seed + string(runes[start:end])
		segs = append(segs, seg)
		seed = tailRunes(seg, c.overlap)
		start = end
	}

	return segs
}

// sliceEnd finds the rune offset where runes[start:end] first reaches the
// token budget. The initial guess is corrected by re-encoding, since a token
// is always at least one rune but usually several.
func (c *TokenChunker) sliceEnd(runes []rune, start, budget int) int {
	end := start + budget
	if end > len(runes) {
		end = len(runes)
	}

	step := budget / 4
	if step < 1 {
		step = 1
	}
	for end < len(runes) && c.tokenizer.Count(string(runes[start:end])) < budget {
		end += step
		if end > len(runes) {
			end = len(runes)
		}
	}
	for end > start+1 && c.tokenizer.Count(string(runes[start:end])) > budget {
		end--
	}

	return end
}

// adjustToWhitespace nudges a cut point to the nearest whitespace within a
// bounded window, searching backward first, then forward. A hard cut stands
// when no whitespace is in reach.
func adjustToWhitespace(runes []rune, start, end int) int {
	lo := end - whitespaceWindow
	if lo < start+1 {
		lo = start + 1
	}
	for i := end - 1; i >= lo; i-- {
		if unicode.IsSpace(runes[i]) {
			return i + 1
		}
	}

	hi := end + whitespaceWindow
	if hi > len(runes) {
		hi = len(runes)
	}
	for i := end; i < hi; i++ {
		if unicode.IsSpace(runes[i]) {
			return i + 1
		}
	}

	return end
}

// tailRunes returns the last n runes of s.
func tailRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}
