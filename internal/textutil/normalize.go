package textutil

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

// tokenSplitPattern matches non-alphanumeric character sequences for tokenization.
var tokenSplitPattern = regexp.MustCompile(`[^a-z0-9]+`)

var foldCaser = cases.Fold()

// NormalizeText canonicalizes free text for embedding and cache keys:
// Unicode case folding, punctuation replaced by spaces, whitespace collapsed
// to single spaces, and leading/trailing whitespace trimmed. Equal inputs
// always normalize to equal outputs.
func NormalizeText(text string) string {
	folded := foldCaser.String(text)
	var b strings.Builder
	b.Grow(len(folded))
	lastSpace := true
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastSpace = false
		case r >= 0x80:
			// Non-ASCII letters survive folding; keep them.
			b.WriteRune(r)
			lastSpace = false
		default:
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// Tokenize splits normalized text into lowercase tokens, filtering short tokens.
func Tokenize(text string) []string {
	normalized := NormalizeText(text)
	raw := tokenSplitPattern.Split(normalized, -1)
	terms := make([]string, 0, len(raw))
	for _, token := range raw {
		token = strings.TrimSpace(token)
		if len(token) < 3 {
			continue
		}
		terms = append(terms, token)
	}
	return terms
}
