package tokenizer

import (
	"strings"
	"unicode"
)

// Approx estimates token counts without a BPE vocabulary. Useful offline and
// for providers whose tokenizer we cannot reproduce locally.
type Approx struct{}

func NewApprox() *Approx {
	return &Approx{}
}

// Count approximates the sub-word token count. Average English words encode
// to about 1.3 BPE tokens.
func (a *Approx) Count(text string) int {
	words := splitWords(text)
	if len(words) == 0 {
		return 0
	}
	return int(float64(len(words)) * 1.3)
}

func splitWords(text string) []string {
	var words []string
	var current strings.Builder

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			current.WriteRune(r)
		} else {
			if current.Len() > 0 {
				words = append(words, current.String())
				current.Reset()
			}
		}
	}
	if current.Len() > 0 {
		words = append(words, current.String())
	}

	return words
}
