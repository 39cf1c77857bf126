package chunker

import (
	"strings"
	"testing"
)

// runeTokenizer treats every rune as one token, which makes chunk budgets
// exact and easy to reason about in tests.
type runeTokenizer struct{}

func (runeTokenizer) Count(text string) int {
	return len([]rune(text))
}

func TestChunkShortInputSingleChunk(t *testing.T) {
	c := NewTokenChunker(10, 2, runeTokenizer{})

	chunks := c.Chunk("a\nb\nc")

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d: %q", len(chunks), chunks)
	}
	if chunks[0] != "a\nb\nc\n" {
		t.Errorf("expected chunk %q, got %q", "a\nb\nc\n", chunks[0])
	}
}

func TestChunkInputAtBudgetBoundarySingleChunk(t *testing.T) {
	// T=10, C=2: any text of at most 8 line tokens must stay one chunk,
	// including inputs that land exactly on the budget.
	c := NewTokenChunker(10, 2, runeTokenizer{})

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"two lines totaling the budget", "abcd\nefg", "abcd\nefg\n"},
		{"one line of exactly the budget", "abcdefgh", "abcdefgh\n"},
		{"one token under the budget", "abcd\nef", "abcd\nef\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := c.Chunk(tt.input)
			if len(chunks) != 1 {
				t.Fatalf("expected 1 chunk, got %d: %q", len(chunks), chunks)
			}
			if chunks[0] != tt.want {
				t.Errorf("expected chunk %q, got %q", tt.want, chunks[0])
			}
		})
	}
}

func TestChunkEmptyInput(t *testing.T) {
	c := NewTokenChunker(10, 2, runeTokenizer{})

	for _, input := range []string{"", "\n", "   \n  \n"} {
		if chunks := c.Chunk(input); len(chunks) != 0 {
			t.Errorf("input %q: expected no chunks, got %d", input, len(chunks))
		}
	}
}

func TestChunkTrimsLineWhitespace(t *testing.T) {
	c := NewTokenChunker(20, 2, runeTokenizer{})

	chunks := c.Chunk("  hello  \n\tworld\t")

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != "hello\nworld\n" {
		t.Errorf("expected trimmed lines, got %q", chunks[0])
	}
}

func TestChunkOverlapInvariant(t *testing.T) {
	const overlap = 4
	c := NewTokenChunker(12, overlap, runeTokenizer{})

	var lines []string
	for i := 0; i < 30; i++ {
		lines = append(lines, "line "+string(rune('a'+i%26)))
	}
	chunks := c.Chunk(strings.Join(lines, "\n"))

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	for i := 1; i < len(chunks); i++ {
		prev := []rune(chunks[i-1])
		tail := string(prev[len(prev)-overlap:])
		if !strings.HasPrefix(chunks[i], tail) {
			t.Errorf("chunk %d does not start with the %d-rune tail of chunk %d: tail=%q chunk=%q",
				i, overlap, i-1, tail, chunks[i])
		}
	}
}

func TestChunkEveryLineRetained(t *testing.T) {
	c := NewTokenChunker(15, 3, runeTokenizer{})

	lines := []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf"}
	chunks := c.Chunk(strings.Join(lines, "\n"))

	for _, line := range lines {
		found := false
		for _, chunk := range chunks {
			if strings.Contains(chunk, line) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("line %q not found in any chunk", line)
		}
	}
}

func TestChunkOversizedLineSplit(t *testing.T) {
	const (
		maxTokens = 20
		overlap   = 5
	)
	c := NewTokenChunker(maxTokens, overlap, runeTokenizer{})

	// One line of 100 tokens with no whitespace forces hard cuts.
	line := strings.Repeat("x", 100)
	chunks := c.Chunk(line)

	if len(chunks) < 2 {
		t.Fatalf("expected the line to be split, got %d chunks", len(chunks))
	}

	// Segments stay near the budget. The overlap seed plus the segment body
	// can reach maxTokens but should not blow past it.
	for i, chunk := range chunks {
		n := len([]rune(chunk))
		if n > maxTokens+1 { // +1 for the trailing newline on the final chunk
			t.Errorf("chunk %d has %d runes, over budget %d", i, n, maxTokens)
		}
	}

	// Stripping the seeded overlap from each chunk must reassemble the line.
	reassembled := chunks[0]
	for i := 1; i < len(chunks); i++ {
		reassembled += string([]rune(chunks[i])[overlap:])
	}
	if strings.ReplaceAll(reassembled, "\n", "") != line {
		t.Errorf("reassembled line does not match input")
	}
}

func TestChunkOversizedLineNoDuplicateTail(t *testing.T) {
	c := NewTokenChunker(20, 5, runeTokenizer{})

	// Varied content so distinct segments can never be textually equal.
	runes := make([]rune, 50)
	for i := range runes {
		runes[i] = rune('a' + i%26)
	}
	chunks := c.Chunk(string(runes))

	if len(chunks) < 2 {
		t.Fatalf("expected the line to be split, got %d chunks", len(chunks))
	}

	seen := make(map[string]int)
	for _, chunk := range chunks {
		seen[strings.TrimSuffix(chunk, "\n")]++
	}
	for body, n := range seen {
		if n > 1 {
			t.Errorf("segment emitted %d times: %q", n, body)
		}
	}
}

func TestChunkOversizedLinePrefersWhitespaceCut(t *testing.T) {
	c := NewTokenChunker(20, 4, runeTokenizer{})

	// Words of 7 runes separated by spaces: every cut point should land
	// just after a space rather than inside a word.
	var words []string
	for i := 0; i < 12; i++ {
		words = append(words, strings.Repeat(string(rune('a'+i)), 7))
	}
	chunks := c.Chunk(strings.Join(words, " "))

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	for i, chunk := range chunks[:len(chunks)-1] {
		if !strings.HasSuffix(chunk, " ") {
			t.Errorf("chunk %d does not end at a whitespace boundary: %q", i, chunk)
		}
	}
}

func TestChunkFlushSeedsNextBuffer(t *testing.T) {
	const overlap = 3
	c := NewTokenChunker(10, overlap, runeTokenizer{})

	chunks := c.Chunk("aaaa\nbbbb\ncccc\ndddd")

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i := 1; i < len(chunks); i++ {
		prev := []rune(chunks[i-1])
		tail := string(prev[len(prev)-overlap:])
		if !strings.HasPrefix(chunks[i], tail) {
			t.Errorf("chunk %d missing overlap seed %q: %q", i, tail, chunks[i])
		}
	}
}
