package textutil

import (
	"strings"

	"github.com/neurosnap/sentences/english"
)

const excerptRuneLimit = 200

// Excerpt returns the first max sentences of text, falling back to a rune
// cut when the tokenizer cannot be built or finds no boundaries.
func Excerpt(text string, max int) string {
	text = strings.TrimSpace(text)
	if text == "" || max <= 0 {
		return ""
	}

	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return truncate(text)
	}

	parts := tokenizer.Tokenize(text)
	if len(parts) == 0 {
		return truncate(text)
	}
	if len(parts) > max {
		parts = parts[:max]
	}

	out := make([]string, 0, len(parts))
	for _, s := range parts {
		out = append(out, strings.TrimSpace(s.Text))
	}
	return truncate(strings.Join(out, " "))
}

func truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= excerptRuneLimit {
		return text
	}
	return string(runes[:excerptRuneLimit]) + "…"
}
