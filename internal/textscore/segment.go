// Package textscore implements the heuristic quality scoring for short-form
// writing: sentence segmentation, structural feature extraction, bounded
// sub-scores and the composite 0-100 evaluation.
package textscore

import (
	"strings"
	"unicode"
)

// terminal punctuation that may end a sentence
func isTerminalPunct(r rune) bool {
	switch r {
	case '.', '!', '?', '…':
		return true
	}
	return false
}

// SplitSentences splits raw text into trimmed, non-empty sentences. A sentence
// boundary is a line break, or whitespace following terminal punctuation.
func SplitSentences(text string) []string {
	var sentences []string
	var sb strings.Builder
	prevTerminal := false

	flush := func() {
		s := strings.TrimSpace(sb.String())
		if s != "" {
			sentences = append(sentences, s)
		}
		sb.Reset()
	}

	for _, r := range text {
		switch {
		case r == '\n' || r == '\r':
			flush()
			prevTerminal = false
		case unicode.IsSpace(r) && prevTerminal:
			flush()
			prevTerminal = false
		default:
			sb.WriteRune(r)
			prevTerminal = isTerminalPunct(r)
		}
	}
	flush()

	return sentences
}

// Tokenize splits text into lowercased word tokens. Tokens are whitespace
// separated with leading and trailing punctuation or symbol runes stripped;
// tokens that are empty after stripping are dropped.
func Tokenize(text string) []string {
	fields := strings.Fields(text)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		tok := strings.TrimFunc(f, func(r rune) bool {
			return unicode.IsPunct(r) || unicode.IsSymbol(r)
		})
		if tok == "" {
			continue
		}
		tokens = append(tokens, strings.ToLower(tok))
	}
	return tokens
}

// firstToken returns the first whitespace-delimited field of a sentence,
// used for sentence-opening diversity measures.
func firstToken(sentence string) string {
	fields := strings.Fields(sentence)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
